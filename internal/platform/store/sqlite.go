package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	perr "grocer/internal/platform/errors"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLite wraps database/sql over modernc.org/sqlite and implements TxRunner.
// Statements are traced when a tracer is configured
type SQLite struct {
	db     *sql.DB
	tracer QueryTracer
	slowUS int64
}

// OpenSQLite opens (creating if needed) the database file at path and pings it
func OpenSQLite(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "open sqlite %s", path)
	}
	// one writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, slowUS: 200_000}
	for _, o := range opts {
		o(s)
	}
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, perr.Wrapf(err, perr.ErrorCodeStorageIO, "ping sqlite %s", path)
	}
	return s, nil
}

// Ping implements Pinger
func (s *SQLite) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("sqlite: nil handle")
	}
	return s.db.PingContext(ctx)
}

// Close releases the database handle
func (s *SQLite) Close() error { return s.db.Close() }

// Exec implements RowQuerier
func (s *SQLite) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return exec(ctx, s.db, s, q, args)
}

// Query implements RowQuerier
func (s *SQLite) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return query(ctx, s.db, s, q, args)
}

// QueryRow implements RowQuerier
func (s *SQLite) QueryRow(ctx context.Context, q string, args ...any) Row {
	return queryRow(ctx, s.db, s, q, args)
}

// Tx runs fn in a transaction; fn's error rolls back
func (s *SQLite) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(txQuerier{tx: tx, s: s}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// emit sends a query event to the configured tracer
func (s *SQLite) emit(ctx context.Context, q string, args []any, start time.Time, err error) {
	if s == nil || s.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	s.tracer.OnQuery(ctx, QueryEvent{
		SQL:       q,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      s.slowUS >= 0 && elapsedUS >= s.slowUS,
	})
}

// conn is the part of *sql.DB and *sql.Tx the adapters need
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func exec(ctx context.Context, c conn, s *SQLite, q string, args []any) (CommandTag, error) {
	start := time.Now()
	res, err := c.ExecContext(ctx, q, args...)
	s.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return tag{res}, nil
}

func query(ctx context.Context, c conn, s *SQLite, q string, args []any) (Rows, error) {
	start := time.Now()
	rs, err := c.QueryContext(ctx, q, args...)
	s.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{r: rs}, nil
}

func queryRow(ctx context.Context, c conn, s *SQLite, q string, args []any) Row {
	start := time.Now()
	r := c.QueryRowContext(ctx, q, args...)
	// emit after Scan so the scan error is captured
	return row{r: r, after: func(scanErr error) { s.emit(ctx, q, args, start, scanErr) }}
}

// txQuerier satisfies RowQuerier inside a Tx and traces like the handle does
type txQuerier struct {
	tx *sql.Tx
	s  *SQLite
}

func (t txQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return exec(ctx, t.tx, t.s, q, args)
}

func (t txQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return query(ctx, t.tx, t.s, q, args)
}

func (t txQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	return queryRow(ctx, t.tx, t.s, q, args)
}

// adapters for database/sql to our tiny Row/Rows/CommandTag

type row struct {
	r     *sql.Row
	after func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type rows struct{ r *sql.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { _ = x.r.Close() }
func (x rows) Columns() []string     { cols, _ := x.r.Columns(); return cols }

type tag struct{ res sql.Result }

func (t tag) RowsAffected() int64 {
	n, err := t.res.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}

func (t tag) String() string { return "rows affected " + strconv.FormatInt(t.RowsAffected(), 10) }
