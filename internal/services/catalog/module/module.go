// Package module wires the catalog read side using modkit
package module

import (
	modkit "grocer/internal/modkit"
	phttp "grocer/internal/platform/net/http"
	"grocer/internal/services/catalog/domain"
	cataloghttp "grocer/internal/services/catalog/http"
	catalogsvc "grocer/internal/services/catalog/service"
	"grocer/internal/services/groceryimport/repo"
)

// Ports defines the catalog module ports
type Ports struct {
	Catalog domain.CatalogPort
}

// Module implements the catalog module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	ports Ports
}

// New constructs the catalog module over the data files in deps.DataDir
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWith(deps, repo.NewFiles(deps.DataDir), opts...)
}

// NewWith constructs the module over any item source
func NewWith(deps modkit.Deps, src domain.ItemSource, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog")}, opts...)...)
	return &Module{
		deps:  deps,
		built: b,
		ports: Ports{Catalog: catalogsvc.New(src)},
	}
}

// MountRoutes mounts /items and /stats under the module prefix
func (m *Module) MountRoutes(r phttp.Router) {
	m.built.Mount(r, func(rr phttp.Router) { cataloghttp.Register(rr, m.ports.Catalog) })
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Catalog returns the catalog port directly
func (m *Module) Catalog() domain.CatalogPort { return m.ports.Catalog }
