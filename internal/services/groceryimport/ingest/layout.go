package ingest

import (
	"strings"

	"grocer/internal/services/groceryimport/domain"
)

// candidates lists accepted header spellings per logical field, across export generations
var candidates = map[domain.Field][]string{
	domain.FieldOrderID:  {"order id", "order_id"},
	domain.FieldDate:     {"order date", "order_date", "shipment date", "shipment_date"},
	domain.FieldTitle:    {"title", "product name", "item name", "item title"},
	domain.FieldASIN:     {"asin/isbn", "asin", "isbn"},
	domain.FieldQuantity: {"quantity", "qty", "original quantity"},
	domain.FieldPrice:    {"purchase price per unit", "unit price", "price per unit", "list price per unit", "item price"},
	domain.FieldCategory: {"category"},
	domain.FieldSeller:   {"seller"},
	domain.FieldWebsite:  {"website"},
}

// ResolveSchema maps a header row onto logical fields and picks the layout.
// Header names match case-insensitively after trimming; earlier candidates win
func ResolveSchema(header []string) domain.Schema {
	byName := make(map[string]string, len(header))
	for _, h := range header {
		k := strings.ToLower(strings.TrimSpace(h))
		if _, dup := byName[k]; !dup {
			byName[k] = h
		}
	}

	s := domain.Schema{Columns: make(map[domain.Field]string, len(candidates))}
	for f, names := range candidates {
		for _, n := range names {
			if col, ok := byName[n]; ok {
				s.Columns[f] = col
				break
			}
		}
	}
	if s.Has(domain.FieldWebsite) {
		s.Layout = domain.LayoutPrivacyCentral
	}
	return s
}
