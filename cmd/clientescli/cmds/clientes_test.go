package cmds

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/clientes-service/internal/controller"
	"github.com/unclebandit/clientes-service/internal/handler"
	"github.com/unclebandit/clientes-service/internal/repository"
	"github.com/unclebandit/clientes-service/internal/service"
)

func run(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	root := NewRoot("clientescli")
	root.AddCommand(GetClientesCommand(root))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", serverURL}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientes.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	svc := &service.CustomerService{CustomerRepo: repository.NewFileCustomerRepository(path)}
	srv := httptest.NewServer(handler.NewRouter(&controller.CustomerController{CustomerService: svc}))
	defer srv.Close()

	out, err := run(t, srv.URL, "clientes", "create", "--nombre", "Ana", "--campo", "ciudad=Quito")
	require.NoError(t, err)
	var created map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Quito", created["ciudad"])

	out, err = run(t, srv.URL, "clientes")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"nombre":"Ana","ciudad":"Quito"}]`, out)

	_, err = run(t, srv.URL, "clientes", "delete", "1")
	require.NoError(t, err)

	_, err = run(t, srv.URL, "clientes", "delete", "1")
	assert.ErrorContains(t, err, "Cliente no encontrado")

	_, err = run(t, srv.URL, "clientes", "create")
	assert.ErrorContains(t, err, "Falta el campo 'nombre'")
}

func TestBuildCliente(t *testing.T) {
	c, err := buildCliente("Ana", []string{"email=a@example.com", "nota=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c["nombre"])
	assert.Equal(t, "a=b", c["nota"])

	_, err = buildCliente("Ana", []string{"sinvalor"})
	assert.Error(t, err)
}
