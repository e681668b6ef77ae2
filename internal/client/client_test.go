package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/clientes-service/internal/client"
	"github.com/unclebandit/clientes-service/internal/controller"
	"github.com/unclebandit/clientes-service/internal/handler"
	"github.com/unclebandit/clientes-service/internal/model"
	"github.com/unclebandit/clientes-service/internal/repository"
	"github.com/unclebandit/clientes-service/internal/service"
)

func newServer(t *testing.T) *client.Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clientes.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))

	svc := &service.CustomerService{CustomerRepo: repository.NewFileCustomerRepository(path)}
	srv := httptest.NewServer(handler.NewRouter(&controller.CustomerController{CustomerService: svc}))
	t.Cleanup(srv.Close)

	return client.New(srv.URL + "/")
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	created, err := c.Create(ctx, model.Customer{"nombre": "Ana", "vip": true})
	require.NoError(t, err)
	id, ok := created.ID()
	require.True(t, ok)
	assert.Equal(t, 1, id)

	all, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, true, all[0]["vip"])

	removed, err := c.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", removed["nombre"])
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()
	c := newServer(t)

	_, err := c.Create(ctx, model.Customer{})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Falta el campo 'nombre'", apiErr.Message)

	_, err = c.Delete(ctx, 3)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Cliente no encontrado", apiErr.Message)
}
