package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/unclebandit/clientes-service/internal/model"
)

// MaxBodyBytes caps request bodies accepted by JSONBody.
const MaxBodyBytes = 100 << 10

type bodyKey struct{}

// JSONBody decodes application/json request bodies before the handler runs
// and stores the result in the request context. Requests without a JSON body
// get an empty cliente; a body that is valid JSON but not an object is
// treated the same way.
func JSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := model.Customer{}

		if r.Body != nil && isJSON(r) {
			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					WriteJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Cuerpo demasiado grande"})
					return
				}
				WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
				return
			}

			if len(bytes.TrimSpace(raw)) > 0 {
				dec := json.NewDecoder(bytes.NewReader(raw))
				dec.UseNumber()

				var v any
				if err := dec.Decode(&v); err != nil || dec.More() {
					WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "JSON inválido"})
					return
				}
				if obj, ok := v.(map[string]any); ok {
					body = obj
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), bodyKey{}, body)))
	})
}

// Body returns the decoded request body; never nil.
func Body(r *http.Request) model.Customer {
	if c, ok := r.Context().Value(bodyKey{}).(model.Customer); ok {
		return c
	}
	return model.Customer{}
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
