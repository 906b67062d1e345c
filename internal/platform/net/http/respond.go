// Package http is the router seam of the read-only view and its JSON envelope.
// Every response, errors and panics included, is an Envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "grocer/internal/platform/errors"
	pnet "grocer/internal/platform/net"
)

// Envelope wraps every JSON response
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSONFunc is a read handler: it returns the envelope data or an error
type JSONFunc func(*stdhttp.Request) (any, error)

// GetJSON mounts h for GET path
func GetJSON(r Router, path string, h JSONFunc) {
	r.Get(path, func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		data, err := h(req)
		if err != nil {
			RespondError(w, req, err)
			return
		}
		RespondOK(w, req, data)
	})
}

// RespondOK writes a 200 envelope around data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	write(w, envelope(r, stdhttp.StatusOK, data))
}

// RespondError writes err as an envelope; the status comes from its perr code
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	wire := perr.WireFrom(err)
	env := envelope(r, perr.HTTPStatusCode(wire.Code), nil)
	env.Code, env.Error = wire.Code, wire.Message
	write(w, env)
}

// NotFound answers unknown routes
func NotFound(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	RespondError(w, r, perr.NotFoundf("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed answers known routes hit with anything but GET
func MethodNotAllowed(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	w.Header().Set("Allow", "GET")
	env := envelope(r, stdhttp.StatusMethodNotAllowed, nil)
	env.Code, env.Error = perr.ErrorCodeInvalidArgument, r.Method+" is not supported"
	write(w, env)
}

func envelope(r *stdhttp.Request, status int, data any) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
	}
}

func write(w stdhttp.ResponseWriter, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	_ = json.NewEncoder(w).Encode(env)
}
