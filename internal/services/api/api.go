// Package api provides the read-only HTTP view over the purchase store
package api

import (
	"grocer/internal/modkit"
	"grocer/internal/modkit/module"
	"grocer/internal/platform/config"
	"grocer/internal/platform/logger"
	phttp "grocer/internal/platform/net/http"
	"grocer/internal/platform/net/middleware"

	metamod "grocer/internal/services/api/meta/module"
	catalogmod "grocer/internal/services/catalog/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Logger  *logger.Logger
	DataDir string
	CORS    middleware.CORSOptions
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Log:     opt.Logger,
		Cfg:     opt.Config,
		DataDir: opt.DataDir,
	}

	log := deps.Logger("api")
	mods := []module.Module{
		metamod.New(deps),
		catalogmod.New(deps),
	}

	r.Group(func(api phttp.Router) {
		api.Use(middleware.Defaults(opt.CORS)...)
		for _, m := range mods {
			log.Debug().Str("module", m.Name()).Msg("api: mount")
			m.MountRoutes(api)
		}
	})
}

// CORSFromConfig reads GROCER_CORS_* keys
func CORSFromConfig(cfg config.Conf) middleware.CORSOptions {
	c := cfg.Prefix("GROCER_CORS_")
	return middleware.CORSOptions{
		AllowedOrigins: c.MayCSV("ORIGINS", nil),
		MaxAge:         c.MayInt("MAX_AGE", 300),
	}
}
