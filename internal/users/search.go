// internal/users/search.go
package users

import (
	"context"
	"encoding/json"
	"strings"

	"intrale/pkg/businesses"
	"intrale/pkg/functions"
)

type searchBusinessesRequest struct {
	Query string `json:"query"`
}

// SearchBusinesses lists APPROVED businesses, optionally filtered by a
// case-insensitive substring over name and description. Open to any
// authenticated caller; only public attributes leave the store.
type SearchBusinesses struct {
	deps Deps
}

func NewSearchBusinesses(deps Deps) *SearchBusinesses {
	return &SearchBusinesses{deps: deps}
}

func (f *SearchBusinesses) Execute(ctx context.Context, business, function string, headers map[string]string, body string) functions.Response {
	var req searchBusinessesRequest
	if strings.TrimSpace(body) != "" {
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			return functions.Validation("Request body is not valid JSON")
		}
	}

	all, err := f.deps.Businesses.Scan(ctx)
	if err != nil {
		f.deps.Log.Errorw("search scan", "err", err)
		return functions.Exception("Unable to search businesses")
	}

	query := strings.ToLower(strings.TrimSpace(req.Query))
	results := make([]map[string]any, 0, len(all))
	for _, b := range all {
		if b.State != businesses.StateApproved {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Name), query) &&
			!strings.Contains(strings.ToLower(b.Description), query) {
			continue
		}
		results = append(results, map[string]any{
			"publicId":    b.PublicID,
			"name":        b.Name,
			"description": b.Description,
		})
	}

	return functions.OKWith(map[string]any{"businesses": results})
}
