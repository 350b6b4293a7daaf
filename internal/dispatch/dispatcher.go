// internal/dispatch/dispatcher.go
package dispatch

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

// Dispatcher resolves (business, function path) pairs to catalog entries.
// Both the HTTP router and the event adapter run the exact same steps; only
// how the pair arrives differs.
type Dispatcher struct {
	log      *zap.SugaredLogger
	registry *businesses.Registry
	catalog  *functions.Registry
}

func NewDispatcher(log *zap.SugaredLogger, registry *businesses.Registry, catalog *functions.Registry) *Dispatcher {
	return &Dispatcher{log: log, registry: registry, catalog: catalog}
}

// Dispatch validates business membership, resolves the operation, injects
// protocol metadata headers and runs the operation. Unknown business and
// unknown function are ordinary error Responses with only the message text
// telling them apart; a panic inside the operation becomes a 500 Response.
func (d *Dispatcher) Dispatch(ctx context.Context, method, business, functionPath string, headers map[string]string, body string) functions.Response {
	return d.dispatch(ctx, method, business, functionPath, functionPath, headers, body)
}

// dispatch resolves the operation by key while the operation itself still
// sees the full function path. The router keys on the full path; the event
// adapter keys on the first two segments.
func (d *Dispatcher) dispatch(ctx context.Context, method, business, key, functionPath string, headers map[string]string, body string) functions.Response {
	if business == "" {
		return functions.Validation("No business defined on path")
	}

	ok, err := d.registry.Contains(ctx, business)
	if err != nil {
		d.log.Errorw("business registry", "err", err)
		return functions.Exception("Unable to resolve available businesses")
	}
	if !ok {
		return functions.Exception("Business not avaiable with name " + business)
	}

	if key == "" {
		return functions.Validation("No function defined on path")
	}

	fn, found := d.catalog.Lookup(key)
	if !found {
		return functions.Exception("No function with name " + key + " found")
	}

	augmented := make(map[string]string, len(headers)+2)
	augmented["X-Http-Method"] = strings.ToUpper(method)
	augmented["X-Function-Path"] = functionPath
	for k, v := range headers {
		augmented[k] = v
	}

	return d.run(ctx, fn, business, functionPath, augmented, body)
}

func (d *Dispatcher) run(ctx context.Context, fn functions.Function, business, functionPath string, headers map[string]string, body string) (resp functions.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			d.log.Errorw("function panic", "business", business, "function", functionPath, "err", rec)
			resp = functions.Exception("Internal Server Error")
		}
	}()
	return fn.Execute(ctx, business, functionPath, headers, body)
}
