// Package domain holds the read-side views over the purchase store
package domain

import (
	"context"
	"strings"

	"grocer/internal/core/frequency"
	perr "grocer/internal/platform/errors"
	importdomain "grocer/internal/services/groceryimport/domain"
)

// SortKey orders item listings
type SortKey string

// Sort keys accepted by List
const (
	SortFrequency SortKey = "frequency"
	SortName      SortKey = "name"
	SortLast      SortKey = "last"
	SortNext      SortKey = "next"
)

// SortKeys lists every accepted key, default first
var SortKeys = []SortKey{SortFrequency, SortName, SortLast, SortNext}

// ParseSortKey maps user input to a SortKey; empty means frequency
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortFrequency, nil
	}
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", perr.WithField(perr.InvalidArgf("unknown sort %q (want frequency, name, last or next)", s), "sort")
}

// ListQuery filters and orders List
type ListQuery struct {
	Category string  `json:"category,omitempty"`
	Sort     SortKey `json:"sort,omitempty"`
}

// ItemSummary is one item with its derived cadence
type ItemSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand,omitempty"`
	UnitSize string `json:"unit_size,omitempty"`

	frequency.Summary
}

// ItemDetail adds the purchase history, newest first
type ItemDetail struct {
	ItemSummary
	ASIN        string                  `json:"asin,omitempty"`
	DaysOverdue int                     `json:"days_overdue"`
	History     []importdomain.Purchase `json:"history"`
}

// CategoryCount is the number of items in a category
type CategoryCount struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
}

// Stats is the catalog overview
type Stats struct {
	UniqueItems    int             `json:"unique_items"`
	TotalPurchases int             `json:"total_purchases"`
	ByCategory     []CategoryCount `json:"by_category"`
	Top            []ItemSummary   `json:"top"`
	Overdue        []ItemSummary   `json:"overdue"`
}

// CatalogPort is the read API exposed by the module
type CatalogPort interface {
	List(ctx context.Context, q ListQuery) ([]ItemSummary, error)
	Stats(ctx context.Context) (Stats, error)
	Show(ctx context.Context, idOrPrefix string) (ItemDetail, error)
	Items(ctx context.Context) ([]importdomain.Item, error)
}

// ItemSource loads a snapshot of the purchase store
type ItemSource interface {
	LoadItems(ctx context.Context) ([]importdomain.Item, error)
}
