// Package service orchestrates one import run: read, filter, dedup, normalize, persist
package service

import (
	"context"
	"errors"
	"io"
	"time"

	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
	ptime "grocer/internal/platform/time"
	"grocer/internal/services/groceryimport/domain"
	"grocer/internal/services/groceryimport/ingest"
)

// Config holds import tuning
type Config struct {
	Lists ingest.AllowLists

	// NormalizeTimeout bounds each normalizer call; <=0 means no extra deadline
	NormalizeTimeout time.Duration
}

// Service implements domain.ImporterPort
type Service struct {
	Open  domain.Opener
	Store domain.StorageRepo
	Norm  domain.Normalizer
	Cfg   Config

	// NewFilter builds the row filter per run; swapped in tests
	NewFilter func(lists ingest.AllowLists, bypass bool) domain.RowFilter

	// Today dates rows whose order date cannot be read
	Today func() ptime.Day
}

// New constructs the import service
func New(open domain.Opener, store domain.StorageRepo, norm domain.Normalizer, cfg Config) *Service {
	if open == nil || store == nil || norm == nil {
		panic("groceryimport.Service requires an opener, a storage repo and a normalizer")
	}
	return &Service{
		Open: open, Store: store, Norm: norm, Cfg: cfg,
		NewFilter: func(l ingest.AllowLists, bypass bool) domain.RowFilter { return ingest.NewFilter(l, bypass) },
		Today:     ptime.Today,
	}
}

// run is the state of one invocation; the memo dies with it
type run struct {
	res  domain.ImportResult
	memo map[string]domain.NormalizedTitle
}

// Import applies every new grocery row of req.Path.
// The file is fully read before storage is touched, so a format error leaves no trace.
// A storage failure aborts at once; rows already applied stay applied and are skipped on rerun
func (s *Service) Import(ctx context.Context, req domain.Request) (domain.ImportResult, error) {
	ctx = logger.WithSource(ctx, req.Path)
	log := logger.C(ctx)
	start := time.Now()

	schema, records, err := s.readAll(req.Path)
	if err != nil {
		return domain.ImportResult{Source: req.Path}, err
	}

	r := &run{
		res:  domain.ImportResult{Source: req.Path, Layout: schema.Layout},
		memo: make(map[string]domain.NormalizedTitle),
	}

	ledger, err := s.Store.OpenLedger(ctx)
	if err != nil {
		return r.res, asStorage(err, "open ledger")
	}
	store, err := s.Store.OpenStore(ctx)
	if err != nil {
		return r.res, asStorage(err, "open store")
	}

	filter := s.NewFilter(s.Cfg.Lists, req.Bypass)
	today := s.Today()
	log.Info().Str("layout", schema.Layout.String()).Int("rows", len(records)).Bool("all_categories", req.Bypass).Msg("import: start")

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return r.res, err
		}
		r.res.Examined++

		if !filter.Accept(rec, schema) {
			r.res.Filtered++
			continue
		}

		row, err := ingest.ParseRow(rec, schema, today)
		if err != nil {
			r.res.Rejected++
			log.Warn().Err(err).Int("line", rec.Line).Msg("import: row rejected")
			continue
		}
		if row.DateDefaulted {
			log.Warn().Int("line", rec.Line).Str("date", rec.Get(schema, domain.FieldDate)).Stringer("using", row.Date).
				Msg("import: unreadable order date")
		}

		key := row.Key()
		if ledger.Contains(key) {
			r.res.Skipped++
			continue
		}

		identity := s.normalize(ctx, r, row.Title)

		id, created := store.UpsertItem(identity, row.ASIN)
		if created {
			r.res.ItemsCreated++
		} else {
			r.res.ItemsUpdated++
		}
		if err := store.AppendPurchase(id, domain.Purchase{
			OrderID:      row.OrderID,
			Date:         row.Date,
			Quantity:     row.Quantity,
			PricePerUnit: row.PricePerUnit,
			RawTitle:     row.Title,
		}); err != nil {
			return r.res, perr.Wrap(err, perr.ErrorCodeStorageIO, "append purchase")
		}

		// event first, then the key: a crash in between re-applies one row rather than losing it
		if err := store.Flush(ctx); err != nil {
			return r.res, asStorage(err, "flush store")
		}
		if err := ledger.Record(ctx, key); err != nil {
			return r.res, asStorage(err, "record import key")
		}
		r.res.Applied++
		log.Debug().Str("key", key.String()).Str("item", identity.CanonicalName).Msg("import: row applied")
	}

	log.Info().
		Int("examined", r.res.Examined).
		Int("filtered", r.res.Filtered).
		Int("rejected", r.res.Rejected).
		Int("skipped", r.res.Skipped).
		Int("applied", r.res.Applied).
		Int("items_created", r.res.ItemsCreated).
		Int("normalizer_calls", r.res.NormalizerCalls).
		Int("normalizer_failures", r.res.NormalizerFailures).
		Dur("elapsed", time.Since(start)).
		Msg("import: done")
	return r.res, nil
}

// readAll drains the file so parse errors surface before any write
func (s *Service) readAll(path string) (domain.Schema, []domain.RawRecord, error) {
	src, err := s.Open.Open(path)
	if err != nil {
		return domain.Schema{}, nil, err
	}
	defer src.Close()

	var out []domain.RawRecord
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return src.Schema(), out, nil
		}
		if err != nil {
			return domain.Schema{}, nil, err
		}
		out = append(out, rec)
	}
}

// normalize consults the per-run memo, calling the normalizer at most once per raw title.
// Failures degrade to the raw title and are memoized too
func (s *Service) normalize(ctx context.Context, r *run, raw string) domain.NormalizedTitle {
	if nt, ok := r.memo[raw]; ok {
		return nt
	}

	callCtx := ctx
	if s.Cfg.NormalizeTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Cfg.NormalizeTimeout)
		defer cancel()
	}

	r.res.NormalizerCalls++
	nt, err := s.Norm.Normalize(callCtx, raw)
	if err == nil && nt.CanonicalName == "" {
		err = perr.Normalizationf("empty canonical name for %q", raw)
	}
	if err != nil {
		r.res.NormalizerFailures++
		logger.C(ctx).Warn().Err(err).Str("title", raw).Msg("import: normalization failed; using raw title")
		nt = domain.Fallback(raw)
	}
	r.memo[raw] = nt
	return nt
}

// asStorage classifies err as a storage failure unless it already is one
func asStorage(err error, msg string) error {
	if perr.IsCode(err, perr.ErrorCodeStorageIO) {
		return perr.WithOp(err, msg)
	}
	return perr.Wrap(err, perr.ErrorCodeStorageIO, msg)
}
