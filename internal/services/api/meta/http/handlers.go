// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"grocer/internal/core/version"
	phttp "grocer/internal/platform/net/http"
	"grocer/internal/platform/store"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Store       store.Pinger
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r phttp.Router, d Deps) {
	h := &handlers{deps: d}

	phttp.GetJSON(r, "/healthz", h.health)
	phttp.GetJSON(r, "/version", h.version)
}

// StoreCheck reports whether the data files could be read
type StoreCheck struct {
	Status string `json:"status"` // ok fail skipped
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool       `json:"ok"`
	Service string     `json:"service"`
	Started string     `json:"started"`
	Uptime  int64      `json:"uptime"`
	Now     string     `json:"now"`
	Store   StoreCheck `json:"store"`
}

func (h *handlers) health(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := StoreCheck{Status: "skipped"}
	if h.deps.Store != nil {
		check.Status = "ok"
		if err := h.deps.Store.Ping(ctx); err != nil {
			check = StoreCheck{Status: "fail", Error: err.Error()}
		}
	}
	now := time.Now().UTC()
	return HealthResponse{
		OK:      check.Status != "fail",
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.Format(time.RFC3339),
		Store:   check,
	}, nil
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
