package ingest

import (
	"errors"
	"io"
	"strings"
	"testing"

	perr "grocer/internal/platform/errors"
	kit "grocer/internal/platform/testkit"
	"grocer/internal/services/groceryimport/domain"
)

const legacyCSV = "Order ID,Order Date,Title,Category,ASIN/ISBN,Seller,Quantity,Purchase Price Per Unit\n" +
	"111-1,01/05/2024,Organic Bananas,Grocery & Gourmet Food,B001,Amazon.com,2,$0.29\n" +
	"111-2,01/06/2024,USB Cable,Electronics,B002,Amazon.com,1,$9.99\n"

const privacyCSV = "Website,Order ID,Order Date,Product Name,ASIN,Quantity,Unit Price\n" +
	"Amazon.com,222-1,2024-02-01T10:00:00Z,Whole Milk,B010,1,3.49\n" +
	"panda01,222-2,2024-02-02T10:00:00Z,Oat Milk,B011,1,4.99\n"

func readAll(t *testing.T, rd *Reader) []domain.RawRecord {
	t.Helper()
	var out []domain.RawRecord
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, rec)
	}
}

func TestOpen_FlatCSV_Legacy(t *testing.T) {
	rd, err := Open(kit.WriteFile(t, "orders.csv", "\xEF\xBB\xBF"+legacyCSV))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()

	s := rd.Schema()
	if s.Layout != domain.LayoutLegacy {
		t.Fatalf("layout = %v", s.Layout)
	}
	// BOM must not leak into the first header name
	if s.Columns[domain.FieldOrderID] != "Order ID" {
		t.Fatalf("order id column = %q", s.Columns[domain.FieldOrderID])
	}
	recs := readAll(t, rd)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if got := recs[0].Get(s, domain.FieldTitle); got != "Organic Bananas" {
		t.Fatalf("first title = %q (file order must be kept)", got)
	}
	if recs[0].Line != 2 || recs[1].Line != 3 {
		t.Fatalf("lines = %d,%d", recs[0].Line, recs[1].Line)
	}
}

func TestOpen_ZipSingleMember_PrivacyCentral(t *testing.T) {
	p := kit.WriteZip(t, "export.zip", map[string]string{
		"Retail.OrderHistory.1/Retail.OrderHistory.1.csv": privacyCSV,
		"Retail.OrderHistory.1/README.txt":                "not a csv",
		"Digital.Subscriptions/Subscriptions.csv":         "Subscription Id,Plan\n1,Prime\n",
	})
	rd, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()
	if rd.Schema().Layout != domain.LayoutPrivacyCentral {
		t.Fatalf("layout = %v", rd.Schema().Layout)
	}
	kit.MustContain(t, rd.Name(), "Retail.OrderHistory.1.csv")
	if n := len(readAll(t, rd)); n != 2 {
		t.Fatalf("records = %d", n)
	}
}

func TestOpen_ZipNarrowsToOrderMember(t *testing.T) {
	p := kit.WriteZip(t, "export.zip", map[string]string{
		"Retail.OrderHistory.1.csv":   privacyCSV,
		"Retail.CartItems.1.csv":      "Product Name,Quantity\nEggs,1\n",
		"Retail.ReturnsHistory.1.csv": "Order Id,Reason\n1,Damaged\n",
	})
	rd, err := Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()
	kit.MustContain(t, rd.Name(), "Retail.OrderHistory.1.csv")
}

func TestOpen_ZipAmbiguous(t *testing.T) {
	p := kit.WriteZip(t, "export.zip", map[string]string{
		"Retail.OrderHistory.1.csv": privacyCSV,
		"Retail.OrderHistory.2.csv": privacyCSV,
	})
	_, err := Open(p)
	if !perr.IsCode(err, perr.ErrorCodeFormat) {
		t.Fatalf("want format error, got %v", err)
	}
	kit.MustContain(t, err.Error(), "ambiguous")
	kit.MustContain(t, err.Error(), "Retail.OrderHistory.2.csv")
}

func TestOpen_ZipWithoutOrders(t *testing.T) {
	p := kit.WriteZip(t, "export.zip", map[string]string{"notes.txt": "hi"})
	if _, err := Open(p); !perr.IsCode(err, perr.ErrorCodeFormat) {
		t.Fatalf("want format error, got %v", err)
	}
}

func TestOpen_EmptyFileYieldsNothing(t *testing.T) {
	rd, err := Open(kit.WriteFile(t, "empty.csv", ""))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if n := len(readAll(t, rd)); n != 0 {
		t.Fatalf("records = %d, want 0", n)
	}
	_ = rd.Close()
}

func TestOpen_HeaderOnly(t *testing.T) {
	rd, err := Open(kit.WriteFile(t, "h.csv", "Order ID,Title\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()
	if n := len(readAll(t, rd)); n != 0 {
		t.Fatalf("records = %d", n)
	}
}

func TestOpen_NoTitleColumn(t *testing.T) {
	_, err := Open(kit.WriteFile(t, "x.csv", "Order ID,Amount\n1,2\n"))
	if !perr.IsCode(err, perr.ErrorCodeFormat) {
		t.Fatalf("want format error, got %v", err)
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(t.TempDir() + "/nope.csv")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestReader_MalformedRow(t *testing.T) {
	rd, err := Open(kit.WriteFile(t, "bad.csv", "Title,Order Date\n\"Milk,2024-01-01\nEggs\"x,2024-01-02\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()
	_, err = rd.Next()
	if !perr.IsCode(err, perr.ErrorCodeFormat) {
		t.Fatalf("want format error, got %v", err)
	}
	kit.MustContain(t, err.Error(), "line")
}

func TestReader_RaggedRows(t *testing.T) {
	rd, err := Open(kit.WriteFile(t, "r.csv", "Title,Order Date,Category\nMilk,2024-01-01\n"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rd.Close()
	recs := readAll(t, rd)
	if len(recs) != 1 || recs[0].Get(rd.Schema(), domain.FieldCategory) != "" {
		t.Fatalf("ragged row not tolerated: %+v", recs)
	}
}

func TestResolveSchema_CaseInsensitive(t *testing.T) {
	s := ResolveSchema([]string{" ORDER ID ", "item title", "qty", "Website"})
	if s.Columns[domain.FieldOrderID] != " ORDER ID " || s.Columns[domain.FieldTitle] != "item title" {
		t.Fatalf("columns = %v", s.Columns)
	}
	if !strings.EqualFold(s.Columns[domain.FieldQuantity], "qty") || s.Layout != domain.LayoutPrivacyCentral {
		t.Fatalf("schema = %+v", s)
	}
}
