// Package domain holds the data shapes and ports of the grocery import pipeline
package domain

import (
	"strings"
	"time"

	"grocer/internal/core/frequency"
	ptime "grocer/internal/platform/time"
)

// Field is a logical column of an order export
type Field string

// Logical fields resolved from export headers
const (
	FieldOrderID  Field = "order_id"
	FieldDate     Field = "date"
	FieldTitle    Field = "title"
	FieldASIN     Field = "asin"
	FieldQuantity Field = "quantity"
	FieldPrice    Field = "price"
	FieldCategory Field = "category"
	FieldSeller   Field = "seller"
	FieldWebsite  Field = "website"
)

// Layout is the historical column schema of an export file
type Layout int

const (
	// LayoutLegacy carries Category and Seller columns
	LayoutLegacy Layout = iota
	// LayoutPrivacyCentral carries a Website column (newer privacy-portal exports)
	LayoutPrivacyCentral
)

// String returns the layout name
func (l Layout) String() string {
	if l == LayoutPrivacyCentral {
		return "privacy_central"
	}
	return "legacy"
}

// MarshalText encodes the layout by name
func (l Layout) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

// Schema is resolved once per file from its header
type Schema struct {
	Layout  Layout
	Columns map[Field]string // logical field -> actual header name
}

// Has reports whether the file carries a column for f
func (s Schema) Has(f Field) bool {
	_, ok := s.Columns[f]
	return ok
}

// RawRecord is one data row keyed by header name
type RawRecord struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed cell for a logical field, "" when the column is absent
func (r RawRecord) Get(s Schema, f Field) string {
	col, ok := s.Columns[f]
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.Values[col])
}

// ImportKey identifies one purchase row across repeated imports
type ImportKey struct {
	OrderID   string
	ProductID string // ASIN when the export has one, else the raw title
}

// String is the persisted ledger form "order_id|product_id"
func (k ImportKey) String() string { return k.OrderID + "|" + k.ProductID }

// Row is a RawRecord with its fields parsed and validated
type Row struct {
	Line          int
	OrderID       string
	Date          ptime.Day
	DateDefaulted bool // the export's date was missing or unreadable
	Title         string
	ASIN          string
	Quantity      int
	PricePerUnit  float64
}

// Key returns the dedup key of the row
func (r Row) Key() ImportKey {
	pid := r.ASIN
	if pid == "" {
		pid = r.Title
	}
	return ImportKey{OrderID: r.OrderID, ProductID: pid}
}

// LedgerEntry records when a key was applied
type LedgerEntry struct {
	AppliedAt time.Time `json:"applied_at"`
}

// NormalizedTitle is the canonical identity returned by a normalizer
type NormalizedTitle struct {
	CanonicalName string `json:"canonical_name" validate:"required"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	UnitSize      string `json:"unit_size"`
}

// Fallback is the identity used when normalization fails: the raw title and nothing else
func Fallback(rawTitle string) NormalizedTitle {
	return NormalizedTitle{CanonicalName: rawTitle}
}

// Purchase is one purchase event; never mutated once appended
type Purchase struct {
	OrderID      string    `json:"order_id"`
	Date         ptime.Day `json:"date"`
	Quantity     int       `json:"quantity"`
	PricePerUnit float64   `json:"price_per_unit"`
	RawTitle     string    `json:"raw_title"`
}

// Item is a canonical grocery product and its purchase history.
// Older data files call this a GroceryItem; the shape is unchanged
type Item struct {
	ID            string     `json:"id"`
	CanonicalName string     `json:"canonical_name"`
	Category      string     `json:"category"`
	Brand         string     `json:"brand"`
	UnitSize      string     `json:"unit_size"`
	ASIN          string     `json:"asin"`
	Purchases     []Purchase `json:"purchases"`
}

// Name is the canonical name, the item's frequency.Subject name
func (it Item) Name() string { return it.CanonicalName }

// Events projects the purchase history for frequency analysis
func (it Item) Events() []frequency.Event {
	out := make([]frequency.Event, 0, len(it.Purchases))
	for _, p := range it.Purchases {
		out = append(out, frequency.Event{Date: p.Date, Quantity: p.Quantity})
	}
	return out
}

// Request is one import invocation
type Request struct {
	Path   string
	Bypass bool // apply every row regardless of the category filter
}

// ImportResult counts what happened to each examined row
type ImportResult struct {
	Source             string `json:"source"`
	Layout             Layout `json:"layout"`
	Examined           int    `json:"examined"`
	Filtered           int    `json:"filtered"`
	Rejected           int    `json:"rejected"`
	Skipped            int    `json:"skipped"`
	Applied            int    `json:"applied"`
	ItemsCreated       int    `json:"items_created"`
	ItemsUpdated       int    `json:"items_updated"`
	NormalizerCalls    int    `json:"normalizer_calls"`
	NormalizerFailures int    `json:"normalizer_failures"`
}
