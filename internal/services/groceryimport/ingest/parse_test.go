package ingest

import (
	"testing"

	perr "grocer/internal/platform/errors"
	ptime "grocer/internal/platform/time"
	"grocer/internal/services/groceryimport/domain"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2024-01-15":              "2024-01-15",
		"2024-01-15T08:30:00Z":    "2024-01-15",
		"2024-01-15 08:30:00 UTC": "2024-01-15",
		"01/15/2024":              "2024-01-15",
		"15/01/2024":              "2024-01-15",
		"2024/01/15":              "2024-01-15",
		"January 15, 2024":        "2024-01-15",
		"Jan 15, 2024":            "2024-01-15",
		"01/15/24":                "2024-01-15",
		"1/5/2024":                "2024-01-05",
	}
	for in, want := range cases {
		d, ok := ParseDate(in)
		if !ok || d != ptime.MustDay(want) {
			t.Fatalf("ParseDate(%q) = %v %v, want %s", in, d, ok, want)
		}
	}
	for _, bad := range []string{"", "soon", "2024-13-45"} {
		if _, ok := ParseDate(bad); ok {
			t.Fatalf("ParseDate(%q) should fail", bad)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"$3.49":     3.49,
		"£1,234.50": 1234.50,
		"€ 2":       2,
		"":          0,
		"free":      0,
		"4.00":      4,
	}
	for in, want := range cases {
		if got := ParsePrice(in); got != want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	cases := map[string]int{"3": 3, "0": 1, "-2": 1, "": 1, "two": 1, "2.0": 2}
	for in, want := range cases {
		if got := ParseQuantity(in); got != want {
			t.Fatalf("ParseQuantity(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseRow(t *testing.T) {
	s := ResolveSchema([]string{"Order ID", "Order Date", "Title", "ASIN/ISBN", "Quantity", "Purchase Price Per Unit"})
	r := domain.RawRecord{Line: 4, Values: map[string]string{
		"Order ID": "111-1", "Order Date": "01/05/2024", "Title": " Organic Bananas ",
		"ASIN/ISBN": "B001", "Quantity": "2", "Purchase Price Per Unit": "$0.29",
	}}
	row, err := ParseRow(r, s, ptime.MustDay("2024-06-01"))
	if err != nil {
		t.Fatalf("ParseRow: %v", err)
	}
	if row.Title != "Organic Bananas" || row.Quantity != 2 || row.PricePerUnit != 0.29 || row.Line != 4 ||
		row.Date != ptime.MustDay("2024-01-05") || row.DateDefaulted {
		t.Fatalf("row = %+v", row)
	}
	if row.Key().String() != "111-1|B001" {
		t.Fatalf("key = %s", row.Key())
	}

	// ASIN-less exports key on the raw title
	delete(r.Values, "ASIN/ISBN")
	row, _ = ParseRow(r, s, ptime.MustDay("2024-06-01"))
	if row.Key().String() != "111-1|Organic Bananas" {
		t.Fatalf("title key = %s", row.Key())
	}
}

func TestParseRow_OnlyEmptyTitleRejects(t *testing.T) {
	s := ResolveSchema([]string{"Order Date", "Title"})
	today := ptime.MustDay("2024-06-01")

	_, err := ParseRow(domain.RawRecord{Values: map[string]string{"Title": " ", "Order Date": "2024-01-01"}}, s, today)
	if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != "title" {
		t.Fatalf("empty title err = %v", err)
	}

	for _, raw := range []string{"n/a", "13/13/2024", ""} {
		row, err := ParseRow(domain.RawRecord{Values: map[string]string{"Title": "Milk", "Order Date": raw}}, s, today)
		if err != nil {
			t.Fatalf("date %q: %v", raw, err)
		}
		if row.Date != today || !row.DateDefaulted {
			t.Fatalf("date %q = %v defaulted=%v, want today", raw, row.Date, row.DateDefaulted)
		}
	}
}
