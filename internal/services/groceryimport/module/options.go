package module

import (
	"time"

	"grocer/internal/platform/config"
	"grocer/internal/platform/validate"
	"grocer/internal/services/groceryimport/ingest"
)

// Provider names accepted by GROCER_NORMALIZER
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderStatic = "static"
)

// Options holds configuration options for the import module
type Options struct {
	DataDir string `yaml:"data_dir" validate:"required"`
	Lists   ingest.AllowLists

	Provider      string        `yaml:"provider" validate:"oneof=openai gemini static"`
	OpenAIKey     string        `yaml:"openai_api_key" validate:"required_if=Provider openai"`
	OpenAIModel   string        `yaml:"openai_model"`
	OpenAIBaseURL string        `yaml:"openai_base_url" validate:"omitempty,url"`
	GeminiKey     string        `yaml:"gemini_api_key" validate:"required_if=Provider gemini"`
	GeminiModel   string        `yaml:"gemini_model"`
	Timeout       time.Duration `yaml:"normalize_timeout" validate:"gte=0"`
}

// FromConfig reads import options from cfg; product keys use the GROCER_ prefix, API keys are read unprefixed
func FromConfig(cfg config.Conf) Options {
	g := cfg.Prefix("GROCER_")
	def := ingest.DefaultAllowLists()

	o := Options{
		DataDir: g.MayPath("DATA_DIR", "~/.grocer"),
		Lists: ingest.AllowLists{
			Websites:   g.MayCSV("FILTER_WEBSITES", def.Websites),
			Categories: g.MayCSV("FILTER_CATEGORIES", def.Categories),
			Sellers:    g.MayCSV("FILTER_SELLERS", def.Sellers),
		},
		OpenAIKey:     cfg.MayString("OPENAI_API_KEY", ""),
		OpenAIModel:   g.MayString("OPENAI_MODEL", ""),
		OpenAIBaseURL: g.MayString("OPENAI_BASE_URL", ""),
		GeminiKey:     cfg.MayFirst("", "GEMINI_API_KEY", "GOOGLE_API_KEY"),
		GeminiModel:   g.MayString("GEMINI_MODEL", ""),
		Timeout:       g.MayDuration("NORMALIZE_TIMEOUT", 30*time.Second),
	}
	o.Provider = g.MayString("NORMALIZER", autoProvider(o))
	return o
}

// autoProvider prefers OpenAI, then Gemini, then the offline normalizer
func autoProvider(o Options) string {
	switch {
	case o.OpenAIKey != "":
		return ProviderOpenAI
	case o.GeminiKey != "":
		return ProviderGemini
	default:
		return ProviderStatic
	}
}

// Validate checks the options with the shared validator
func (o Options) Validate() error { return validate.Struct(o) }
