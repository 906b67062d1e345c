package ingest

import (
	"testing"

	"grocer/internal/services/groceryimport/domain"
)

func rec(vals map[string]string) domain.RawRecord { return domain.RawRecord{Line: 2, Values: vals} }

func TestFilter_Legacy(t *testing.T) {
	s := ResolveSchema([]string{"Title", "Category", "Seller"})
	f := NewFilter(AllowLists{}, false)

	cases := []struct {
		name     string
		category string
		seller   string
		want     bool
	}{
		{"grocery category", "Grocery & Gourmet Food", "Amazon.com", true},
		{"fresh category", "Amazon Fresh Produce", "", true},
		{"whole foods seller", "Health", "Whole Foods Market", true},
		{"electronics", "Electronics", "Anker", false},
		{"blank", "", "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := rec(map[string]string{"Title": "x", "Category": c.category, "Seller": c.seller})
			if got := f.Accept(r, s); got != c.want {
				t.Fatalf("Accept = %v, want %v", got, c.want)
			}
		})
	}
}

func TestFilter_WebsiteLayoutIgnoresLegacyColumns(t *testing.T) {
	// both generations of columns present: the website rule decides
	s := ResolveSchema([]string{"Website", "Title", "Category", "Seller"})
	if s.Layout != domain.LayoutPrivacyCentral {
		t.Fatalf("layout = %v", s.Layout)
	}
	f := NewFilter(AllowLists{}, false)

	grocerySite := rec(map[string]string{"Website": "AmazonFresh", "Category": "Electronics"})
	if !f.Accept(grocerySite, s) {
		t.Fatalf("grocery website rejected")
	}
	groceryCategoryOnly := rec(map[string]string{"Website": "Amazon.com", "Category": "Grocery", "Seller": "Whole Foods"})
	if f.Accept(groceryCategoryOnly, s) {
		t.Fatalf("legacy columns must not decide for website layout")
	}
}

func TestFilter_InjectedAllowList(t *testing.T) {
	s := ResolveSchema([]string{"Website", "Title"})
	f := NewFilter(AllowLists{Websites: []string{" Panda01 "}}, false)
	if !f.Accept(rec(map[string]string{"Website": "panda01"}), s) {
		t.Fatalf("configured website rejected")
	}
	if f.Accept(rec(map[string]string{"Website": "primenow"}), s) {
		t.Fatalf("override should replace defaults")
	}
	if got := f.Lists().Categories; len(got) != len(DefaultCategories) {
		t.Fatalf("unset lists keep defaults, got %v", got)
	}
}

func TestFilter_Bypass(t *testing.T) {
	s := ResolveSchema([]string{"Title", "Category"})
	f := NewFilter(AllowLists{}, true)
	for _, cat := range []string{"", "Electronics", "Books"} {
		if !f.Accept(rec(map[string]string{"Title": "x", "Category": cat}), s) {
			t.Fatalf("bypass rejected category %q", cat)
		}
	}
}
