package module

import (
	"context"
	"testing"
	"time"

	"grocer/internal/modkit"
	modport "grocer/internal/modkit/module"
	"grocer/internal/platform/config"
	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/testkit"
	"grocer/internal/services/groceryimport/domain"

	"github.com/google/go-cmp/cmp"
)

func conf(kv map[string]string) config.Conf { return config.New().WithOverlay(kv) }

func TestFromConfig_ProviderAutoSelection(t *testing.T) {
	testkit.Serial(t)
	for _, k := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GROCER_NORMALIZER"} {
		t.Setenv(k, "")
	}

	cases := []struct {
		name string
		kv   map[string]string
		want string
	}{
		{"nothing set", nil, ProviderStatic},
		{"openai key", map[string]string{"OPENAI_API_KEY": "sk"}, ProviderOpenAI},
		{"gemini key", map[string]string{"GEMINI_API_KEY": "g"}, ProviderGemini},
		{"google key", map[string]string{"GOOGLE_API_KEY": "g"}, ProviderGemini},
		{"openai wins", map[string]string{"OPENAI_API_KEY": "sk", "GEMINI_API_KEY": "g"}, ProviderOpenAI},
		{"explicit", map[string]string{"OPENAI_API_KEY": "sk", "GROCER_NORMALIZER": "static"}, ProviderStatic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromConfig(conf(tc.kv)).Provider; got != tc.want {
				t.Fatalf("provider = %q want %q", got, tc.want)
			}
		})
	}
}

func TestFromConfig_ListsAndTimeout(t *testing.T) {
	testkit.Serial(t)
	t.Setenv("GROCER_FILTER_WEBSITES", "")
	t.Setenv("GROCER_NORMALIZE_TIMEOUT", "")
	t.Setenv("GROCER_DATA_DIR", "")

	o := FromConfig(conf(map[string]string{
		"GROCER_FILTER_WEBSITES":   "amazonfresh, wholefoods",
		"GROCER_NORMALIZE_TIMEOUT": "5s",
		"GROCER_DATA_DIR":          "/tmp/g",
	}))
	if diff := cmp.Diff([]string{"amazonfresh", "wholefoods"}, o.Lists.Websites); diff != "" {
		t.Fatalf("websites (-want +got):\n%s", diff)
	}
	if o.Timeout != 5*time.Second || o.DataDir != "/tmp/g" {
		t.Fatalf("timeout/data dir = %v %q", o.Timeout, o.DataDir)
	}
	if len(o.Lists.Categories) == 0 {
		t.Fatal("categories should keep defaults")
	}
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	ok := Options{DataDir: "/d", Provider: ProviderStatic}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid options: %v", err)
	}
	bad := []Options{
		{DataDir: "/d", Provider: "llama"},
		{DataDir: "/d", Provider: ProviderOpenAI},
		{DataDir: "", Provider: ProviderStatic},
		{DataDir: "/d", Provider: ProviderStatic, OpenAIBaseURL: "not a url"},
	}
	for i, o := range bad {
		if err := o.Validate(); !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("case %d: want validation error, got %v", i, err)
		}
	}
}

func TestNewNormalizer_MissingKeyIsInvalidArgument(t *testing.T) {
	t.Parallel()

	_, err := NewNormalizer(context.Background(), Options{Provider: ProviderOpenAI})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want invalid argument, got %v", err)
	}
}

func TestModule_ImportsThroughPorts(t *testing.T) {
	testkit.Serial(t)
	for _, k := range []string{"OPENAI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GROCER_NORMALIZER"} {
		t.Setenv(k, "")
	}

	dir := t.TempDir()
	m, err := New(context.Background(), modkit.Deps{Cfg: config.New(), DataDir: dir})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if m.Options().Provider != ProviderStatic || m.Options().DataDir != dir {
		t.Fatalf("options = %+v", m.Options())
	}

	csv := "Order ID,Order Date,Title,Category,Quantity,Purchase Price Per Unit\n" +
		"111,2024-01-05,Organic Bananas,Grocery,2,$0.25\n" +
		"112,2024-01-06,USB Cable,Electronics,1,$9.99\n"
	path := testkit.WriteFile(t, "orders.csv", csv)

	imp := modport.MustPortsOf[domain.ImporterPort](m)
	res, err := imp.Import(context.Background(), domain.Request{Path: path})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Applied != 1 || res.Filtered != 1 {
		t.Fatalf("result = %+v", res)
	}
}
