package ingest

import (
	pstrings "grocer/internal/platform/strings"
	"grocer/internal/services/groceryimport/domain"
)

// Default allow-lists; overridable through config
var (
	DefaultWebsites   = []string{"amazonfresh", "primenow", "amazon go"}
	DefaultCategories = []string{"grocery", "gourmet", "fresh"}
	DefaultSellers    = []string{"whole foods", "amazon fresh"}
)

// AllowLists holds the substrings that mark a record as a grocery purchase
type AllowLists struct {
	Websites   []string // privacy-central layout
	Categories []string // legacy layout
	Sellers    []string // legacy layout
}

// DefaultAllowLists returns the built-in allow-lists
func DefaultAllowLists() AllowLists {
	return AllowLists{Websites: DefaultWebsites, Categories: DefaultCategories, Sellers: DefaultSellers}
}

// Filter is a pure grocery-row predicate
type Filter struct {
	lists  AllowLists
	bypass bool
}

// NewFilter builds a Filter; empty lists fall back to defaults.
// With bypass every record is accepted
func NewFilter(lists AllowLists, bypass bool) Filter {
	return Filter{
		lists: AllowLists{
			Websites:   pstrings.IfEmpty(pstrings.Lower(lists.Websites), DefaultWebsites),
			Categories: pstrings.IfEmpty(pstrings.Lower(lists.Categories), DefaultCategories),
			Sellers:    pstrings.IfEmpty(pstrings.Lower(lists.Sellers), DefaultSellers),
		},
		bypass: bypass,
	}
}

// Lists returns the effective allow-lists
func (f Filter) Lists() AllowLists { return f.lists }

// Accept implements domain.RowFilter.
// The layout is fixed per file so dispatch happens on the schema, never on the row's shape
func (f Filter) Accept(rec domain.RawRecord, s domain.Schema) bool {
	if f.bypass {
		return true
	}
	switch s.Layout {
	case domain.LayoutPrivacyCentral:
		return f.acceptPrivacyCentral(rec, s)
	default:
		return f.acceptLegacy(rec, s)
	}
}

func (f Filter) acceptPrivacyCentral(rec domain.RawRecord, s domain.Schema) bool {
	return pstrings.ContainsAnyFold(rec.Get(s, domain.FieldWebsite), f.lists.Websites)
}

func (f Filter) acceptLegacy(rec domain.RawRecord, s domain.Schema) bool {
	return pstrings.ContainsAnyFold(rec.Get(s, domain.FieldCategory), f.lists.Categories) ||
		pstrings.ContainsAnyFold(rec.Get(s, domain.FieldSeller), f.lists.Sellers)
}
