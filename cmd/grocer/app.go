package main

import (
	"cmp"
	"context"
	"encoding/json"
	"io"
	"path/filepath"

	"grocer/internal/adapters/render"
	"grocer/internal/core/version"
	"grocer/internal/modkit"
	"grocer/internal/modkit/module"
	"grocer/internal/platform/config"
	perr "grocer/internal/platform/errors"
	"grocer/internal/platform/logger"
	catalogdomain "grocer/internal/services/catalog/domain"
	catalogmod "grocer/internal/services/catalog/module"
	importdomain "grocer/internal/services/groceryimport/domain"
	importmod "grocer/internal/services/groceryimport/module"

	"github.com/spf13/cobra"
)

// app carries global flags and the wiring built once per invocation
type app struct {
	stdout io.Writer
	stderr io.Writer

	dataDir    string
	configPath string
	verbose    bool
	asJSON     bool

	deps modkit.Deps
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "grocer",
		Short: "Track how often you buy groceries from your order history",
		Long: `grocer imports order-history exports (CSV or the ZIP archive they ship in),
keeps only grocery purchases, folds product titles into canonical items and
predicts when you will need each item again.

Imports are idempotent: rows already applied are skipped on the next run.`,
		Version:       version.Info().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return perr.InvalidArgf("%v", err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.dataDir, "data-dir", "", "data directory (default $GROCER_DATA_DIR or ~/.grocer)")
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default <data-dir>/config.yaml when present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	pf.BoolVar(&a.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newImportCmd(a),
		newListCmd(a),
		newStatsCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup initializes logging and resolves config and the data directory.
// The data dir is resolved before the config file because the file defaults to living inside it
func (a *app) setup() error {
	opts := logger.FromEnv()
	opts.Writer = a.stderr
	logger.Init(opts)
	if a.verbose {
		logger.SetLevel("debug")
	} else {
		logger.SetLevel(opts.Level)
	}

	cfg := config.New()
	dir := a.dataDir
	if dir == "" {
		dir = cfg.Prefix("GROCER_").MayPath("DATA_DIR", "~/.grocer")
	}

	// an explicit file must exist; the default one is optional
	if path := cmp.Or(a.configPath, cfg.MayString("GROCER_CONFIG", "")); path != "" {
		f, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = cfg.WithOverlay(f.Overlay("GROCER_"))
	} else {
		var err error
		if cfg, err = cfg.WithFile(filepath.Join(dir, "config.yaml"), "GROCER_"); err != nil {
			return err
		}
	}
	if a.dataDir == "" {
		dir = cfg.Prefix("GROCER_").MayPath("DATA_DIR", dir)
	}

	a.deps = modkit.Deps{Log: logger.Named("cli"), Cfg: cfg, DataDir: dir}
	a.deps.Log.Debug().Str("data_dir", dir).Msg("cli: ready")
	return nil
}

func (a *app) importer(ctx context.Context) (importdomain.ImporterPort, error) {
	m, err := importmod.New(ctx, a.deps)
	if err != nil {
		return nil, err
	}
	return module.MustPortsOf[importdomain.ImporterPort](m), nil
}

func (a *app) catalog() catalogdomain.CatalogPort {
	return module.MustPortsOf[catalogdomain.CatalogPort](catalogmod.New(a.deps))
}

func (a *app) printer() *render.Printer { return render.New(a.stdout) }

// emit prints v as JSON when --json is set and reports whether it did
func (a *app) emit(v any) (bool, error) {
	if !a.asJSON {
		return false, nil
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

// exactArgs is cobra.ExactArgs with an invalid-argument error so the exit status is a usage error
func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return perr.InvalidArgf("expected %s", what)
		}
		return nil
	}
}
