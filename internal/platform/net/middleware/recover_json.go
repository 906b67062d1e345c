package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
	phttp "grocer/internal/platform/net/http"
)

// RecoverJSON turns a handler panic into a 500 envelope and logs the stack.
// http.ErrAbortHandler is re-raised so net/http can drop the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Str("panic", fmt.Sprint(v)).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("http: panic recovered")
			phttp.RespondError(w, r, perr.Internalf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
