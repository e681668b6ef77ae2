// internal/service/customer_service.go
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	appErrors "github.com/unclebandit/clientes-service/internal/errors"
	"github.com/unclebandit/clientes-service/internal/model"
	"github.com/unclebandit/clientes-service/internal/queue"
	"github.com/unclebandit/clientes-service/internal/repository"
)

type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
	Queue        queue.Publisher
}

// ListCustomers returns the stored collection unchanged
func (s *CustomerService) ListCustomers(ctx context.Context) (model.Collection, error) {
	return s.CustomerRepo.ListAll(ctx)
}

// CreateCustomer validates before touching storage, so a rejected cliente
// never causes a load or a write.
func (s *CustomerService) CreateCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	if !c.HasNombre() {
		return nil, appErrors.NewValidation(model.FieldNombre)
	}

	created, err := s.CustomerRepo.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	id, _ := created.ID()
	logrus.WithFields(logrus.Fields{"op": "create", "id": id}).Info("cliente created")

	s.publish(model.TopicClienteCreado, created)
	return created, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) (model.Customer, error) {
	removed, err := s.CustomerRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"op": "delete", "id": id}).Info("cliente deleted")

	s.publish(model.TopicClienteEliminado, removed)
	return removed, nil
}

// publish never fails the request: the change is already persisted
func (s *CustomerService) publish(topic string, c model.Customer) {
	if s.Queue == nil {
		return
	}

	ev := model.NewEvent(topic, c)
	if err := s.Queue.Publish(topic, ev); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"topic": topic, "event_id": ev.ID}).Warn("failed to publish event")
	}
}
