// Package modkit provides module wiring and core deps
package modkit

import (
	"grocer/internal/platform/config"
	"grocer/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf

	// DataDir holds items.json and import_log.json
	DataDir string
}

// Logger returns Log or the named component logger when Log is unset
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log != nil {
		return d.Log
	}
	return logger.Named(component)
}
