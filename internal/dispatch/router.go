// internal/dispatch/router.go
package dispatch

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Requested-With",
}

// Routes mounts the dynamic /{business}/{function...} surface. Every verb
// lands on the same handler; the dispatcher decides whether the pair means
// anything.
func Routes(r chi.Router, d *Dispatcher) {
	r.MethodFunc(http.MethodOptions, "/*", preflight)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		r.MethodFunc(method, "/{business}/*", handler(d))
	}
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
	w.WriteHeader(http.StatusOK)
}

func handler(d *Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		business := chi.URLParam(r, "business")
		functionPath := strings.Trim(chi.URLParam(r, "*"), "/")

		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}

		var body string
		if r.Body != nil {
			raw, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "unreadable body", http.StatusBadRequest)
				return
			}
			body = string(raw)
		}

		resp := d.Dispatch(r.Context(), r.Method, business, functionPath, headers, body)
		WriteResponse(w, resp.Status, resp.Fields)
	}
}

// WriteResponse renders the uniform JSON envelope. A nil field map still
// produces a JSON object so clients can always decode the body.
func WriteResponse(w http.ResponseWriter, status int, fields map[string]any) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if fields == nil {
		_, _ = w.Write([]byte("{}"))
		return
	}
	_ = json.NewEncoder(w).Encode(fields)
}
