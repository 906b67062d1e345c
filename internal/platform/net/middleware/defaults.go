// Package middleware is the chi middleware stack in front of the read-only view
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	pnet "grocer/internal/platform/net"
	pstrings "grocer/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

const (
	slowRequest    = 500 * time.Millisecond
	requestTimeout = 30 * time.Second
)

// Defaults is the stack mounted in front of every route, outermost first
func Defaults(cors CORSOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		chimw.RealIP,
		RequestID,
		RecoverJSON,
		AccessLog(AccessLogOptions{Slow: slowRequest}),
		chimw.Timeout(requestTimeout),
		chimw.NewCompressor(flate.DefaultCompression).Handler,
		chimw.NoCache,
		chimw.StripSlashes,
		CORS(cors),
	}
}

// RequestID reuses an incoming X-Request-Id or mints one, echoes it on the
// response and puts it on the context for chi and the logger
func RequestID(next http.Handler) http.Handler {
	return chimw.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		w.Header().Set(chimw.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pnet.WithRequest(r.Context(), id)))
	}))
}

// CORSOptions configures browser access, e.g. for a local dashboard
type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS allows only safe methods; nothing in the view writes
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         o.MaxAge,
	})
}
