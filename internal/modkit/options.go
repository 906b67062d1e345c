package modkit

import "net/http"

// Option tweaks how a module is built and mounted
type Option func(*Built)

// WithName overrides the module name used in logs and ports lookups
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module's routes under prefix, e.g. "/api"
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends middleware that wraps only this module's routes
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}
