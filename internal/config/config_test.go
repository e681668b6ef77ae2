package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/clientes-service/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddress)
	assert.Equal(t, config.DriverFile, cfg.StorageDriver)
	assert.Equal(t, "clientes.json", cfg.DataFile)
	assert.Equal(t, "clientes_events", cfg.EventsQueue)
	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestOverrides(t *testing.T) {
	cfg, err := config.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"LISTEN_ADDRESS":   ":9090",
		"STORAGE_DRIVER":   "sqlite",
		"DATABASE_URL":     "/tmp/clientes.db",
		"LOG_FORMAT":       "json",
		"SHUTDOWN_TIMEOUT": "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddress)
	assert.Equal(t, config.DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/clientes.db", cfg.DatabaseURL)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestValidationCollectsAllProblems(t *testing.T) {
	_, err := config.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_DRIVER": "postgres",
		"LOG_LEVEL":      "loud",
		"LOG_FORMAT":     "xml",
	}))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestUnknownDriver(t *testing.T) {
	_, err := config.LoadConfigWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORAGE_DRIVER": "mongo",
	}))
	assert.ErrorContains(t, err, "unknown STORAGE_DRIVER")
}

func TestConfigureLoggerWritesToStdout(t *testing.T) {
	logger := logrus.StandardLogger()
	prevOut, prevLevel, prevFormatter := logger.Out, logger.GetLevel(), logger.Formatter
	logrus.SetOutput(os.Stderr)
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	cfg := &config.Config{LogLevel: "debug", LogFormat: "json"}
	cfg.ConfigureLogger()

	assert.Equal(t, os.Stdout, logger.Out)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
