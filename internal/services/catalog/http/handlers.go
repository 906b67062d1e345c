// Package http provides the read-only http transport for the catalog
package http

import (
	stdhttp "net/http"

	phttp "grocer/internal/platform/net/http"
	"grocer/internal/services/catalog/domain"
)

// Register mounts catalog endpoints on the given router
func Register(r phttp.Router, svc domain.CatalogPort) {
	h := &handlers{svc: svc}

	// items, optionally ?category=&sort=
	phttp.GetJSON(r, "/items", h.list)

	// one item by id or unique id prefix
	phttp.GetJSON(r, "/items/{id}", h.show)

	// overview
	phttp.GetJSON(r, "/stats", h.stats)
}

type handlers struct{ svc domain.CatalogPort }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	sort, err := domain.ParseSortKey(q.Get("sort"))
	if err != nil {
		return nil, err
	}
	return h.svc.List(r.Context(), domain.ListQuery{Category: q.Get("category"), Sort: sort})
}

func (h *handlers) show(r *stdhttp.Request) (any, error) {
	return h.svc.Show(r.Context(), phttp.URLParam(r, "id"))
}

func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context())
}
