// Package module wires the grocery import service from config
package module

import (
	"context"

	"grocer/internal/adapters/titlenorm/gemini"
	"grocer/internal/adapters/titlenorm/openai"
	"grocer/internal/adapters/titlenorm/static"
	"grocer/internal/modkit"
	perr "grocer/internal/platform/errors"
	phttp "grocer/internal/platform/net/http"
	"grocer/internal/services/groceryimport/domain"
	"grocer/internal/services/groceryimport/ingest"
	"grocer/internal/services/groceryimport/repo"
	"grocer/internal/services/groceryimport/service"
)

// Ports defines the import module ports
type Ports struct {
	Importer domain.ImporterPort
}

// Module implements the import module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the import module from deps.Cfg; deps.DataDir overrides the configured directory
func New(ctx context.Context, deps modkit.Deps) (*Module, error) {
	opts := FromConfig(deps.Cfg)
	if deps.DataDir != "" {
		opts.DataDir = deps.DataDir
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	norm, err := NewNormalizer(ctx, opts)
	if err != nil {
		return nil, err
	}
	return NewWith(deps, opts, norm), nil
}

// NewWith wires the module around an already built normalizer
func NewWith(deps modkit.Deps, opts Options, norm domain.Normalizer) *Module {
	svc := service.New(
		ingest.NewExtractor(),
		repo.NewFiles(opts.DataDir),
		norm,
		service.Config{Lists: opts.Lists, NormalizeTimeout: opts.Timeout},
	)
	deps.Logger("groceryimport").Debug().
		Str("data_dir", opts.DataDir).
		Str("normalizer", opts.Provider).
		Msg("groceryimport: module ready")
	return &Module{deps: deps, opts: opts, ports: Ports{Importer: svc}}
}

// NewNormalizer picks the title normalizer named by opts.Provider
func NewNormalizer(ctx context.Context, opts Options) (domain.Normalizer, error) {
	switch opts.Provider {
	case ProviderOpenAI:
		return openai.New(openai.Options{APIKey: opts.OpenAIKey, Model: opts.OpenAIModel, BaseURL: opts.OpenAIBaseURL})
	case ProviderGemini:
		return gemini.New(ctx, gemini.Options{APIKey: opts.GeminiKey, Model: opts.GeminiModel})
	case ProviderStatic, "":
		return static.New(), nil
	default:
		return nil, perr.InvalidArgf("unknown normalizer %q", opts.Provider)
	}
}

// Name returns the module name
func (m *Module) Name() string { return "groceryimport" }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Options returns the resolved options
func (m *Module) Options() Options { return m.opts }

// MountRoutes is a no-op; imports only run from the CLI
func (m *Module) MountRoutes(_ phttp.Router) {}
