package http

import "net/http"

// Handler is a plain handler func; GetJSON wraps JSONFuncs into these
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount their routes on. grocer serves GET and HEAD only,
// so nothing here registers a write method
type Router interface {
	Get(path string, h Handler)
	Head(path string, h Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the finished handler passed to http.Server
	Mux() http.Handler
}
