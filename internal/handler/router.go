// internal/handler/router.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/clientes-service/internal/controller"
	"github.com/unclebandit/clientes-service/internal/middleware"
)

// NewRouter wires the middleware stack and the clientes routes
func NewRouter(customerController *controller.CustomerController) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.JSONBody)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Cliente routes
	r.Get("/clientes", customerController.ListCustomers)
	r.Post("/clientes", customerController.CreateCustomer)
	r.Delete("/clientes/{id}", customerController.DeleteCustomer)

	return r
}
