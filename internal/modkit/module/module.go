// Package module defines what a grocer module exposes: a name, routes and a typed port set
package module

import (
	phttp "grocer/internal/platform/net/http"
)

// Module is implemented by every service module.
// It lives apart from modkit so ports packages can import it without a cycle
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	// Ports returns the module's port struct, or nil when it exports none
	Ports() any
}
