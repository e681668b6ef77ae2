package repository

import (
	"context"
	"sync"

	"github.com/unclebandit/clientes-service/internal/db"
	appErrors "github.com/unclebandit/clientes-service/internal/errors"
	"github.com/unclebandit/clientes-service/internal/model"
)

// CustomerRepositoryInterface defines methods used by service
type CustomerRepositoryInterface interface {
	ListAll(ctx context.Context) (model.Collection, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Delete(ctx context.Context, id int) (model.Customer, error)
}

// FileCustomerRepository keeps the collection in a single JSON file. Every call
// reads the whole file and mutating calls rewrite it; the mutex makes each
// read-modify-write a single-writer section.
type FileCustomerRepository struct {
	File *db.JSONFile

	mu sync.Mutex
}

func NewFileCustomerRepository(path string) *FileCustomerRepository {
	return &FileCustomerRepository{File: db.NewJSONFile(path)}
}

// ListAll returns the collection exactly as stored
func (r *FileCustomerRepository) ListAll(ctx context.Context) (model.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.File.Load()
}

// Create assigns the next identifier, appends and persists
func (r *FileCustomerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientes, err := r.File.Load()
	if err != nil {
		return nil, err
	}

	clientes, created, err := clientes.Append(c)
	if err != nil {
		return nil, err
	}
	if err := r.File.Save(clientes); err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes the first cliente with the given id and persists the rest
func (r *FileCustomerRepository) Delete(ctx context.Context, id int) (model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientes, err := r.File.Load()
	if err != nil {
		return nil, err
	}

	clientes, removed, ok := clientes.Remove(id)
	if !ok {
		return nil, appErrors.NewNotFound(id)
	}

	if err := r.File.Save(clientes); err != nil {
		return nil, err
	}
	return removed, nil
}

var _ CustomerRepositoryInterface = (*FileCustomerRepository)(nil)
