// pkg/functions/function.go
package functions

import (
	"context"
	"sort"
	"sync"
)

// Function is the uniform unit of work bound to a dispatch key. Payloads are
// opaque text; operations parse what they need and answer with a Response.
type Function interface {
	Execute(ctx context.Context, business, function string, headers map[string]string, body string) Response
}

// Func adapts a plain function to the Function interface.
type Func func(ctx context.Context, business, function string, headers map[string]string, body string) Response

func (f Func) Execute(ctx context.Context, business, function string, headers map[string]string, body string) Response {
	return f(ctx, business, function, headers, body)
}

// Registry is the explicit operation catalog, keyed by the exact dispatch
// key (slash-joined path segments, e.g. "join/review"). Built once at
// startup; lookups are read-mostly.
type Registry struct {
	mu    sync.RWMutex
	byKey map[string]Function
}

func NewRegistry() *Registry {
	return &Registry{byKey: map[string]Function{}}
}

func (r *Registry) Register(key string, f Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey[key] = f
}

func (r *Registry) Lookup(key string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byKey[key]
	return f, ok
}

func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
