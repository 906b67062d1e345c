package domain

import "context"

// ImporterPort is the public port exposed by the module
type ImporterPort interface {
	Import(ctx context.Context, req Request) (ImportResult, error)
}

// Source streams raw records from an export file
type Source interface {
	Schema() Schema
	Next() (RawRecord, error) // io.EOF at end
	Close() error
}

// Opener opens an export file as a Source
type Opener interface {
	Open(path string) (Source, error)
}

// RowFilter decides whether a record is a grocery purchase
type RowFilter interface {
	Accept(rec RawRecord, s Schema) bool
}

// Normalizer resolves a raw title to a canonical identity
type Normalizer interface {
	Normalize(ctx context.Context, rawTitle string) (NormalizedTitle, error)
}

// Ledger remembers which import keys were applied
type Ledger interface {
	Contains(key ImportKey) bool
	Record(ctx context.Context, key ImportKey) error
}

// Store holds items and their purchase events
type Store interface {
	UpsertItem(identity NormalizedTitle, asin string) (id string, created bool)
	AppendPurchase(id string, p Purchase) error
	Flush(ctx context.Context) error
	Items() []Item
}

// StorageRepo opens the persisted ledger and store for one run
type StorageRepo interface {
	OpenLedger(ctx context.Context) (Ledger, error)
	OpenStore(ctx context.Context) (Store, error)
}
