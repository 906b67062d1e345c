package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	perr "grocer/internal/platform/errors"
	ptime "grocer/internal/platform/time"
	"grocer/internal/services/groceryimport/domain"
)

// dateLayouts are tried in order; US month-first wins over day-first for ambiguous dates
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/06",
	"1/2/2006",
	"1/2/06",
}

var priceCleaner = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "")

// ParseRow validates and parses the fields of rec.
// Only a missing title is an error. A missing or unparseable date becomes today
// with DateDefaulted set; bad quantities and prices degrade to defaults
func ParseRow(rec domain.RawRecord, s domain.Schema, today ptime.Day) (domain.Row, error) {
	title := rec.Get(s, domain.FieldTitle)
	if title == "" {
		return domain.Row{}, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "line %d: empty title", rec.Line), string(domain.FieldTitle))
	}
	day, ok := ParseDate(rec.Get(s, domain.FieldDate))
	if !ok {
		day = today
	}
	return domain.Row{
		Line:          rec.Line,
		OrderID:       rec.Get(s, domain.FieldOrderID),
		Date:          day,
		DateDefaulted: !ok,
		Title:         title,
		ASIN:          rec.Get(s, domain.FieldASIN),
		Quantity:      ParseQuantity(rec.Get(s, domain.FieldQuantity)),
		PricePerUnit:  ParsePrice(rec.Get(s, domain.FieldPrice)),
	}, nil
}

// ParseDate accepts the date spellings seen across export generations.
// Timestamps keep only their date part
func ParseDate(s string) (ptime.Day, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ptime.Day{}, false
	}
	if i := strings.IndexByte(s, 'T'); i == len("2006-01-02") {
		s = s[:i]
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return ptime.DayOf(t), true
		}
	}
	// "2024-01-15 08:00:00 UTC"
	if fs := strings.Fields(s); len(fs) > 1 {
		if t, err := time.Parse(dateLayouts[0], fs[0]); err == nil {
			return ptime.DayOf(t), true
		}
	}
	return ptime.Day{}, false
}

// ParsePrice strips currency symbols and thousands separators; invalid input is 0
func ParsePrice(s string) float64 {
	s = priceCleaner.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseQuantity returns a positive unit count; invalid or < 1 is 1
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return max(n, 1)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 && !math.IsInf(f, 0) {
		return int(f)
	}
	return 1
}
