package service

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/clientes-service/internal/model"
)

// DefaultMaxAttempts is how many times an event is handled before it is dropped.
const DefaultMaxAttempts = 2

// Job is one queued event body plus the callbacks of the transport it came
// from. Attempts counts earlier failed handlings of the same event; Retry
// puts the event back with that count incremented.
type Job struct {
	Body     []byte
	Attempts int
	Ack      func() error
	Retry    func() error
}

// Worker processes queued cliente events
type Worker struct {
	Jobs        <-chan Job
	Handle      func(ev model.Event) error
	MaxAttempts int
}

// Constructor
func NewWorker(jobs <-chan Job, handle func(ev model.Event) error) *Worker {
	return &Worker{
		Jobs:        jobs,
		Handle:      handle,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Start begins processing jobs until the channel is closed.
func (w *Worker) Start() {
	for job := range w.Jobs {
		var ev model.Event
		if err := json.Unmarshal(job.Body, &ev); err != nil {
			logrus.WithError(err).Warn("invalid event, dropping")
			_ = job.Ack()
			continue
		}

		log := logrus.WithFields(logrus.Fields{"event_id": ev.ID, "type": ev.Type, "attempt": job.Attempts + 1})

		if err := w.Handle(ev); err != nil {
			if job.Attempts+1 < w.MaxAttempts {
				log.WithError(err).Warn("event handler failed, retrying")
				if rerr := job.Retry(); rerr != nil {
					log.WithError(rerr).Error("failed to requeue event")
				}
				continue
			}
			log.WithError(err).Errorf("event handler failed %d times, dropping", job.Attempts+1)
		}

		_ = job.Ack()
	}
}

// AuditEvent writes one structured log line per cliente event.
func AuditEvent(logger logrus.FieldLogger) func(ev model.Event) error {
	return func(ev model.Event) error {
		id, _ := ev.Cliente.ID()
		logger.WithFields(logrus.Fields{
			"event_id":    ev.ID,
			"type":        ev.Type,
			"cliente_id":  id,
			"nombre":      ev.Cliente[model.FieldNombre],
			"occurred_at": ev.OccurredAt,
		}).Info("cliente event")
		return nil
	}
}
