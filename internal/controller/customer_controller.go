// internal/controller/customer_controller.go
package controller

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/go-chi/chi/v5"
    "github.com/sirupsen/logrus"

    appErrors "github.com/unclebandit/clientes-service/internal/errors"
    "github.com/unclebandit/clientes-service/internal/middleware"
    "github.com/unclebandit/clientes-service/internal/service"
)

const (
    msgReadFailed   = "Error al leer los datos."
    msgSaveFailed   = "Error al guardar el cliente."
    msgDeleteFailed = "Error al eliminar el cliente."
    msgMissingName  = "Falta el campo 'nombre'"
    msgNotFound     = "Cliente no encontrado"
)

type CustomerController struct {
    CustomerService *service.CustomerService
}

func errorBody(msg string) map[string]string {
    return map[string]string{"error": msg}
}

// storage causes stay in the log, the caller only gets the generic message
func logStorageError(r *http.Request, op string, err error) {
    logrus.WithError(err).WithFields(logrus.Fields{
        "op":     op,
        "method": r.Method,
        "path":   r.URL.Path,
    }).Error("❌ storage failure")
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
    clientes, err := c.CustomerService.ListCustomers(r.Context())
    if err != nil {
        logStorageError(r, "list", err)
        middleware.WriteJSON(w, http.StatusInternalServerError, errorBody(msgReadFailed))
        return
    }

    middleware.WriteJSON(w, http.StatusOK, clientes)
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
    created, err := c.CustomerService.CreateCustomer(r.Context(), middleware.Body(r))
    if err != nil {
        var ve *appErrors.ValidationError
        if errors.As(err, &ve) {
            middleware.WriteJSON(w, http.StatusBadRequest, errorBody(msgMissingName))
            return
        }
        logStorageError(r, "create", err)
        middleware.WriteJSON(w, http.StatusInternalServerError, errorBody(msgSaveFailed))
        return
    }

    middleware.WriteJSON(w, http.StatusCreated, created)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
    // a non-numeric id can never match a stored identifier
    id, ok := parseLeadingInt(chi.URLParam(r, "id"))
    if !ok {
        middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"mensaje": msgNotFound})
        return
    }

    removed, err := c.CustomerService.DeleteCustomer(r.Context(), id)
    if err != nil {
        var nf *appErrors.NotFoundError
        if errors.As(err, &nf) {
            middleware.WriteJSON(w, http.StatusNotFound, map[string]string{"mensaje": msgNotFound})
            return
        }
        logStorageError(r, "delete", err)
        middleware.WriteJSON(w, http.StatusInternalServerError, errorBody(msgDeleteFailed))
        return
    }

    middleware.WriteJSON(w, http.StatusOK, removed)
}

// parseLeadingInt reads an optional sign and the leading decimal digits of s,
// ignoring whatever follows: "12abc" and "1.5" give 12 and 1.
func parseLeadingInt(s string) (int, bool) {
    s = strings.TrimLeft(s, " \t\n\r")

    end := 0
    if end < len(s) && (s[end] == '+' || s[end] == '-') {
        end++
    }
    start := end
    for end < len(s) && s[end] >= '0' && s[end] <= '9' {
        end++
    }
    if end == start {
        return 0, false
    }

    n, err := strconv.Atoi(s[:end])
    if err != nil {
        return 0, false
    }
    return n, true
}
