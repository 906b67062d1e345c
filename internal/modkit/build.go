package modkit

import (
	"net/http"

	phttp "grocer/internal/platform/net/http"
)

// Built is the resolved option set a module keeps for mounting
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// Build applies opts in order. Later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount registers routes on r, inside a group when there is no prefix or a
// sub-route when there is, with the module middleware applied first
func (b Built) Mount(r phttp.Router, routes func(phttp.Router)) {
	mount := func(rr phttp.Router) {
		for _, mw := range b.Mw {
			rr.Use(mw)
		}
		if routes != nil {
			routes(rr)
		}
	}
	if b.Prefix == "" || b.Prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(b.Prefix, mount)
}
