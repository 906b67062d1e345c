// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "grocer/internal/modkit"
	phttp "grocer/internal/platform/net/http"
	"grocer/internal/platform/store"
	"grocer/internal/services/groceryimport/repo"

	metahttp "grocer/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	startedAt time.Time
	store     store.Pinger
}

// New constructs a meta module; health checks read the items file in deps.DataDir
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta")}, opts...)...)
	m := &Module{deps: deps, built: b, startedAt: time.Now()}
	if deps.DataDir != "" {
		m.store = repo.NewFiles(deps.DataDir)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	m.built.Mount(r, func(rr phttp.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "grocer",
			StartedAt:   m.startedAt,
			Store:       m.store,
		})
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
