package store

// Option mutates a SQLite handle during Open
type Option func(*SQLite)

// WithTracer emits a QueryEvent per statement
func WithTracer(t QueryTracer) Option {
	return func(s *SQLite) { s.tracer = t }
}

// WithSlowMs marks statements at or above ms as slow; negative disables slow marking
func WithSlowMs(ms int) Option {
	return func(s *SQLite) { s.slowUS = int64(ms) * 1000 }
}
