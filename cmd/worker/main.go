package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/unclebandit/clientes-service/internal/config"
	"github.com/unclebandit/clientes-service/internal/queue"
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

	if cfg.AMQPURL == "" {
		logrus.Fatal("AMQP_URL is required for the worker")
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, cfg.EventsQueue)
	if err != nil {
		logrus.Fatal(err.Error())
	}
	defer q.Close()

	deliveries, err := q.Consume("clientes-worker")
	if err != nil {
		logrus.Fatalf("failed to register consumer: %s", err)
	}

	jobs := make(chan service.Job)
	go func() {
		defer close(jobs)
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				jobs <- deliveryJob(q, d)
			}
		}
	}()

	worker := service.NewWorker(jobs, service.AuditEvent(logrus.WithField("component", "audit")))

	logrus.WithField("queue", cfg.EventsQueue).Info("Worker running, waiting for messages...")
	worker.Start()
	logrus.Info("worker stopped")
}

// deliveryJob maps a RabbitMQ delivery onto a worker job. A retry goes back
// through the queue with a bumped attempt header; if that publish fails the
// original is nacked with requeue so it is not lost.
func deliveryJob(q *queue.AMQPQueue, d amqp.Delivery) service.Job {
	return service.Job{
		Body:     d.Body,
		Attempts: queue.Attempts(d),
		Ack:      func() error { return d.Ack(false) },
		Retry: func() error {
			if err := q.Republish(d); err != nil {
				return multierror.Append(err, d.Nack(false, true)).ErrorOrNil()
			}
			return nil
		},
	}
}
