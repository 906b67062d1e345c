package errors

import "net/http"

// ErrorCode classifies an error for callers, HTTP responses and exit statuses.
// Values are stable; add new ones at the end
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified
	ErrorCodeUnavailable                      // normalizer API or network down
	ErrorCodeInvalidArgument                  // bad flag, id or query parameter
	ErrorCodeValidation                       // config or row failed validation
	ErrorCodeJSON                             // undecodable JSON
	ErrorCodeNotFound                         // missing item, file or route
	ErrorCodeFormat                           // unparseable or ambiguous import file
	ErrorCodeNormalization                    // one title could not be normalized
	ErrorCodeStorageIO                        // ledger, store or export write/read failed
)

type codeInfo struct {
	name   string
	status int
	exit   int
}

var codes = map[ErrorCode]codeInfo{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError, 1},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable, 6},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity, 2},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest, 2},
	ErrorCodeJSON:            {"json", http.StatusBadRequest, 4},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound, 3},
	ErrorCodeFormat:          {"format", http.StatusUnprocessableEntity, 4},
	ErrorCodeNormalization:   {"normalization", http.StatusServiceUnavailable, 6},
	ErrorCodeStorageIO:       {"storage_io", http.StatusInternalServerError, 5},
}

func info(c ErrorCode) codeInfo {
	if i, ok := codes[c]; ok {
		return i
	}
	return codes[ErrorCodeUnknown]
}

// String returns the snake_case name used in logs and JSON envelopes
func (c ErrorCode) String() string { return info(c).name }

// MarshalText lets codes appear by name in JSON
func (c ErrorCode) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts the names written by MarshalText. Unknown names decode as ErrorCodeUnknown
func (c *ErrorCode) UnmarshalText(b []byte) error {
	*c = ErrorCodeUnknown
	for code, i := range codes {
		if i.name == string(b) {
			*c = code
			break
		}
	}
	return nil
}

// HTTPStatusCode maps a code to a response status
func HTTPStatusCode(c ErrorCode) int { return info(c).status }

// ExitCodeOf maps a code to a process exit status. 1 means unclassified
func ExitCodeOf(c ErrorCode) int { return info(c).exit }

// HTTPStatus returns the response status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// ExitCode returns the exit status for any error, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return ExitCodeOf(CodeOf(err))
}
