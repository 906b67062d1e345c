package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"grocer/internal/platform/testkit"
)

const orders = "Order ID,Order Date,Title,Category,Quantity,Purchase Price Per Unit,ASIN/ISBN\n" +
	"111-1,2024-01-01,Organic Whole Milk 1 Gallon,Grocery,1,$4.99,B001\n" +
	"111-1,2024-01-01,USB-C Cable,Electronics,1,$9.99,B002\n" +
	"111-2,2024-01-08,Organic Whole Milk 1 Gallon,Grocery,2,$4.99,B001\n" +
	"111-3,2024-01-15,Sourdough Bread,Grocery & Gourmet Food,1,$5.49,B003\n"

// env isolates a test from the caller's grocer configuration
func env(t *testing.T) string {
	t.Helper()
	testkit.Serial(t)
	for _, k := range []string{
		"GROCER_DATA_DIR", "GROCER_CONFIG", "GROCER_NORMALIZER",
		"GROCER_FILTER_WEBSITES", "GROCER_FILTER_CATEGORIES", "GROCER_FILTER_SELLERS",
		"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

func grocer(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := run(context.Background(), args, &out, &errb)
	return code, out.String(), errb.String()
}

func TestImportThenReadCommands(t *testing.T) {
	dir := env(t)
	file := testkit.WriteFile(t, "orders.csv", orders)

	code, out, errOut := grocer(t, "--data-dir", dir, "--json", "import", file)
	if code != 0 {
		t.Fatalf("import exit %d: %s", code, errOut)
	}
	var res struct {
		Applied, Filtered, Skipped int
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("import json: %v\n%s", err, out)
	}
	if res.Applied != 3 || res.Filtered != 1 {
		t.Fatalf("import result = %+v", res)
	}

	// second run skips everything
	_, out, _ = grocer(t, "--data-dir", dir, "--json", "import", file)
	if err := json.Unmarshal([]byte(out), &res); err != nil || res.Applied != 0 || res.Skipped != 3 {
		t.Fatalf("reimport = %+v %v", res, err)
	}

	code, out, _ = grocer(t, "--data-dir", dir, "list", "--sort", "name")
	if code != 0 {
		t.Fatalf("list exit %d", code)
	}
	testkit.MustContain(t, out, "Organic Whole Milk 1 Gallon")
	testkit.MustContain(t, out, "Sourdough Bread")

	code, out, _ = grocer(t, "--data-dir", dir, "--json", "list")
	var items []struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		TotalPurchases int    `json:"total_purchases"`
		PredictedNext  string `json:"predicted_next"`
	}
	if err := json.Unmarshal([]byte(out), &items); code != 0 || err != nil || len(items) != 2 {
		t.Fatalf("list json exit %d: %v\n%s", code, err, out)
	}
	if items[0].TotalPurchases != 2 || items[0].PredictedNext != "2024-01-15" {
		t.Fatalf("milk = %+v", items[0])
	}

	code, out, _ = grocer(t, "--data-dir", dir, "show", items[0].ID[:8])
	if code != 0 {
		t.Fatalf("show exit %d", code)
	}
	testkit.MustContain(t, out, "111-2")

	if code, out, _ = grocer(t, "--data-dir", dir, "stats"); code != 0 {
		t.Fatalf("stats exit %d", code)
	}
	testkit.MustContain(t, out, "Purchase overview")

	dbPath := filepath.Join(dir, "export.sqlite")
	if code, _, errOut = grocer(t, "--data-dir", dir, "export", dbPath); code != 0 {
		t.Fatalf("export exit %d: %s", code, errOut)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("export file: %v", err)
	}
}

func TestAllCategoriesFlag(t *testing.T) {
	dir := env(t)
	file := testkit.WriteFile(t, "orders.csv", orders)

	_, out, _ := grocer(t, "--data-dir", dir, "--json", "import", "--all-categories", file)
	var res struct{ Applied, Filtered int }
	if err := json.Unmarshal([]byte(out), &res); err != nil || res.Applied != 4 || res.Filtered != 0 {
		t.Fatalf("bypass = %+v %v", res, err)
	}
}

func TestExitCodes(t *testing.T) {
	dir := env(t)

	cases := []struct {
		name string
		args []string
		want int
	}{
		{"missing file", []string{"import", filepath.Join(dir, "nope.csv")}, 3},
		{"format error", []string{"import", testkit.WriteFile(t, "bad.csv", "foo,bar\n1,2\n")}, 4},
		{"no args", []string{"import"}, 2},
		{"bad flag", []string{"list", "--nope"}, 2},
		{"bad sort", []string{"list", "--sort", "price"}, 2},
		{"unknown item", []string{"show", "zzzz"}, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, errOut := grocer(t, append([]string{"--data-dir", dir}, tc.args...)...)
			if code != tc.want {
				t.Fatalf("exit = %d want %d (%s)", code, tc.want, errOut)
			}
			testkit.MustContain(t, errOut, "error:")
		})
	}
}

func TestConfigFileOverridesFilter(t *testing.T) {
	dir := env(t)
	cfg := testkit.WriteFile(t, "grocer.yaml", "filter:\n  categories: [electronics]\n")
	file := testkit.WriteFile(t, "orders.csv", orders)

	_, out, errOut := grocer(t, "--data-dir", dir, "--config", cfg, "--json", "import", file)
	var res struct{ Applied, Filtered int }
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("json: %v (%s)", err, errOut)
	}
	// sellers keep their defaults, so only the electronics row matches
	if res.Applied != 1 || res.Filtered != 3 {
		t.Fatalf("result = %+v", res)
	}

	if code, _, _ := grocer(t, "--data-dir", dir, "--config", filepath.Join(dir, "missing.yaml"), "list"); code != 3 {
		t.Fatalf("missing explicit config exit = %d", code)
	}
}
