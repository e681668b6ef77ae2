package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ListenAddress   string        `env:"LISTEN_ADDRESS, default=:3000"`
	StorageDriver   string        `env:"STORAGE_DRIVER, default=file"`
	DataFile        string        `env:"DATA_FILE, default=clientes.json"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	AMQPURL         string        `env:"AMQP_URL"`
	EventsQueue     string        `env:"EVENTS_QUEUE, default=clientes_events"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	LogFormat       string        `env:"LOG_FORMAT, default=text"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on OS environment variables")
	}

	return LoadConfigWith(ctx, envconfig.OsLookuper())
}

// LoadConfigWith is LoadConfig without the .env step, reading from l.
func LoadConfigWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("failed to parse configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	var result *multierror.Error

	switch c.StorageDriver {
	case DriverFile:
		if c.DataFile == "" {
			result = multierror.Append(result, fmt.Errorf("DATA_FILE must be set for the file driver"))
		}
	case DriverPostgres, DriverSQLite:
		if c.DatabaseURL == "" {
			result = multierror.Append(result, fmt.Errorf("DATABASE_URL must be set for the %s driver", c.StorageDriver))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid LOG_LEVEL: %w", err))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		result = multierror.Append(result, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	return result.ErrorOrNil()
}

// ConfigureLogger applies level and format to the standard logrus logger.
func (c *Config) ConfigureLogger() {
	logrus.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
