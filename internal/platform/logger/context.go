package logger

import "context"

// ctxField is a context key whose name doubles as the log field
type ctxField string

const (
	fieldRequestID ctxField = "request_id"
	fieldSource    ctxField = "source"
)

var ctxFields = []ctxField{fieldRequestID, fieldSource}

// WithRequest tags ctx with an HTTP request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	return withField(ctx, fieldRequestID, reqID)
}

// WithSource tags ctx with the export file being imported
func WithSource(ctx context.Context, path string) context.Context {
	return withField(ctx, fieldSource, path)
}

func withField(ctx context.Context, f ctxField, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, f, v)
}

// C returns a child of the root carrying whatever request_id and source ctx holds
func C(ctx context.Context) *Logger {
	b := Get().With()
	for _, f := range ctxFields {
		if v, _ := ctx.Value(f).(string); v != "" {
			b = b.Str(string(f), v)
		}
	}
	l := b.Logger()
	return &l
}
