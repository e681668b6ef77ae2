// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/unclebandit/clientes-service/internal/config"
	"github.com/unclebandit/clientes-service/internal/controller"
	"github.com/unclebandit/clientes-service/internal/handler"
	"github.com/unclebandit/clientes-service/internal/model"
	"github.com/unclebandit/clientes-service/internal/queue"
	"github.com/unclebandit/clientes-service/internal/repository"
	"github.com/unclebandit/clientes-service/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		logrus.Fatalf("failed to load configuration: %s", err)
	}
	cfg.ConfigureLogger()

	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		logrus.Fatalf("failed to listen on %s: %s", cfg.ListenAddress, err)
	}

	if err := run(ctx, cfg, ln); err != nil {
		logrus.Fatal(err.Error())
	}
	logrus.Info("server stopped")
}

// run serves the clientes API on ln until ctx is cancelled. The startup line
// is only logged once the listener is bound.
func run(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	customerRepo, closeRepo, err := repository.Open(cfg)
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to create repository: %w", err)
	}

	publisher, closeQueue, err := setupQueue(cfg)
	if err != nil {
		ln.Close()
		closeRepo()
		return fmt.Errorf("failed to set up event queue: %w", err)
	}

	customerService := &service.CustomerService{
		CustomerRepo: customerRepo,
		Queue:        publisher,
	}

	customerController := &controller.CustomerController{
		CustomerService: customerService,
	}

	srv := &http.Server{
		Handler: handler.NewRouter(customerController),
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("graceful shutdown failed")
		}
	}()

	logrus.WithFields(logrus.Fields{
		"driver": cfg.StorageDriver,
		"file":   cfg.DataFile,
	}).Infof("🚀 Server running on %s", ln.Addr())

	var result *multierror.Error
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		result = multierror.Append(result, fmt.Errorf("failed to serve: %w", err))
	} else {
		<-shutdownDone
	}

	if err := closeQueue(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := closeRepo(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// setupQueue publishes to RabbitMQ when AMQP_URL is set; otherwise events go
// to an in-memory queue whose only subscriber is the audit log.
func setupQueue(cfg *config.Config) (queue.Publisher, func() error, error) {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL, cfg.EventsQueue)
		if err != nil {
			return nil, nil, err
		}
		logrus.WithField("queue", cfg.EventsQueue).Info("publishing cliente events to RabbitMQ")
		return q, q.Close, nil
	}

	q := queue.NewInMemoryQueue()
	audit := service.AuditEvent(logrus.WithField("component", "audit"))

	for _, topic := range []string{model.TopicClienteCreado, model.TopicClienteEliminado} {
		if err := q.Subscribe(topic, func(payload any) error {
			ev, ok := payload.(model.Event)
			if !ok {
				logrus.Warn("⚠️ Invalid payload type, expected model.Event")
				return nil
			}
			return audit(ev)
		}); err != nil {
			return nil, nil, err
		}
	}

	return q, func() error { return nil }, nil
}
