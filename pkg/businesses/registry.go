// pkg/businesses/registry.go
package businesses

import (
	"context"
)

// Registry is the authoritative set of routable business identifiers.
// It is recomputed from the store on every call so a business approved by
// one request is routable on the next without a restart. Read-after-write
// recency therefore follows the store's own consistency, nothing stronger.
type Registry struct {
	store     BusinessStore
	bootstrap string
}

func NewRegistry(store BusinessStore, bootstrap string) *Registry {
	return &Registry{store: store, bootstrap: bootstrap}
}

// Active returns the public ids of all APPROVED businesses plus the
// statically whitelisted bootstrap business.
func (r *Registry) Active(ctx context.Context) (map[string]struct{}, error) {
	all, err := r.store.Scan(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(all)+1)
	for _, b := range all {
		if b.State == StateApproved && b.PublicID != "" {
			out[b.PublicID] = struct{}{}
		}
	}
	if r.bootstrap != "" {
		out[r.bootstrap] = struct{}{}
	}
	return out, nil
}

// Contains reports whether the given identifier is currently routable.
func (r *Registry) Contains(ctx context.Context, business string) (bool, error) {
	active, err := r.Active(ctx)
	if err != nil {
		return false, err
	}
	_, ok := active[business]
	return ok, nil
}
