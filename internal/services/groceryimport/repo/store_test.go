package repo

import (
	"context"
	"path/filepath"
	"testing"

	perr "grocer/internal/platform/errors"
	kit "grocer/internal/platform/testkit"
	ptime "grocer/internal/platform/time"
	"grocer/internal/services/groceryimport/domain"

	"github.com/google/go-cmp/cmp"
)

func purchase(order, day string) domain.Purchase {
	return domain.Purchase{OrderID: order, Date: ptime.MustDay(day), Quantity: 1, PricePerUnit: 3.49, RawTitle: "Milk"}
}

func TestStore_UpsertMatchesByCanonicalIdentity(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	id1, created := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Whole Milk", Category: "dairy"}, "B010")
	if !created {
		t.Fatalf("first upsert should create")
	}
	id2, created := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "  whole   MILK "}, "")
	if created || id2 != id1 {
		t.Fatalf("same identity should match: created=%v %s vs %s", created, id1, id2)
	}
	if id1 != ItemID("Whole Milk") || ItemID("Whole Milk") != ItemID("whole milk") {
		t.Fatalf("ids must derive from the canonical identity key")
	}
	if s.Len() != 1 {
		t.Fatalf("items = %d", s.Len())
	}
}

func TestStore_KeepsCanonicalNameVerbatim(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	raw := "Mystery  Snack\t12ct"
	id, _ := s.UpsertItem(domain.Fallback(raw), "")
	if it, _ := s.Find(id); it.CanonicalName != raw {
		t.Fatalf("canonical name = %q, want %q", it.CanonicalName, raw)
	}
}

func TestStore_UnfoldableNamesStayDistinct(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	// zero-width space and word joiner fold to an empty identity key
	a, createdA := s.UpsertItem(domain.Fallback("\u200b"), "")
	b, createdB := s.UpsertItem(domain.Fallback("\u2060"), "")
	again, createdAgain := s.UpsertItem(domain.Fallback("\u200b"), "")

	if !createdA || !createdB || a == b {
		t.Fatalf("distinct titles collided: %s %s", a, b)
	}
	if createdAgain || again != a {
		t.Fatalf("repeat title should match its item: created=%v %s vs %s", createdAgain, again, a)
	}
	if s.Len() != 2 {
		t.Fatalf("items = %d, want 2", s.Len())
	}
	if err := s.AppendPurchase(b, purchase("1", "2024-01-01")); err != nil {
		t.Fatalf("AppendPurchase: %v", err)
	}
	if it, _ := s.Find(a); len(it.Purchases) != 0 {
		t.Fatalf("purchase landed on the wrong item: %+v", it)
	}
}

func TestStore_MergeNeverClears(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	id, _ := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Oat Milk", Category: "dairy", Brand: "Oatly"}, "B011")
	s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Oat Milk", UnitSize: "64 fl oz"}, "")
	s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Oat Milk", Category: "beverages"}, "")

	it, ok := s.Find(id)
	if !ok {
		t.Fatalf("Find(%s) missing", id)
	}
	want := domain.Item{
		ID: id, CanonicalName: "Oat Milk", Category: "beverages", Brand: "Oatly",
		UnitSize: "64 fl oz", ASIN: "B011", Purchases: []domain.Purchase{},
	}
	if diff := cmp.Diff(want, it); diff != "" {
		t.Fatalf("merged item (-want +got):\n%s", diff)
	}
}

func TestStore_AppendFlushReload(t *testing.T) {
	p := filepath.Join(t.TempDir(), ItemsFile)
	s, _ := OpenStore(p)
	id, _ := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Whole Milk"}, "")
	// arrival order is kept even when dates go backwards
	for _, pu := range []domain.Purchase{purchase("2", "2024-01-15"), purchase("1", "2024-01-01")} {
		if err := s.AppendPurchase(id, pu); err != nil {
			t.Fatalf("AppendPurchase: %v", err)
		}
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	kit.MustContain(t, kit.ReadFile(t, p), `"date": "2024-01-15"`)

	again, err := OpenStore(p)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if diff := cmp.Diff(s.Items(), again.Items()); diff != "" {
		t.Fatalf("reload mismatch (-want +got):\n%s", diff)
	}
	if got := again.Items()[0].Purchases[0].OrderID; got != "2" {
		t.Fatalf("purchase order changed, first = %s", got)
	}
}

func TestStore_AppendUnknownItem(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	if err := s.AppendPurchase("nope", purchase("1", "2024-01-01")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestStore_LoadsOlderFiles(t *testing.T) {
	// files written by the previous tool: explicit ids kept, dates with a time part accepted
	p := kit.WriteFile(t, ItemsFile, `[
  {"canonical_name": "Bananas", "category": "produce", "purchases": [
    {"order_id": "9", "date": "2023-12-01T00:00:00", "quantity": 6, "price_per_unit": 0.25, "raw_title": "Organic Bananas"}
  ], "brand": "", "unit_size": "", "asin": "B001", "id": "a1b2c3d4"}
]`)
	s, err := OpenStore(p)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	it, ok := s.Find("a1b2c3d4")
	if !ok || it.Purchases[0].Date != ptime.MustDay("2023-12-01") {
		t.Fatalf("older item not loaded: %+v", it)
	}
	// new rows for the same identity land on the stored item
	id, created := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "bananas"}, "")
	if created || id != "a1b2c3d4" {
		t.Fatalf("upsert created=%v id=%s", created, id)
	}
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s, _ := OpenStore(filepath.Join(t.TempDir(), ItemsFile))
	id, _ := s.UpsertItem(domain.NormalizedTitle{CanonicalName: "Eggs"}, "")
	_ = s.AppendPurchase(id, purchase("1", "2024-01-01"))
	items := s.Items()
	items[0].Purchases[0].OrderID = "mutated"
	if it, _ := s.Find(id); it.Purchases[0].OrderID != "1" {
		t.Fatalf("Items leaked internal state")
	}
}

func TestFiles_LoadItems(t *testing.T) {
	f := NewFiles(t.TempDir())
	st, err := f.OpenStore(context.Background())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	st.UpsertItem(domain.NormalizedTitle{CanonicalName: "Eggs"}, "")
	if err := st.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	items, err := f.LoadItems(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("LoadItems = %d, %v", len(items), err)
	}
	if _, err := f.OpenLedger(context.Background()); err != nil {
		t.Fatalf("OpenLedger: %v", err)
	}
}
