package main

import (
	"grocer/internal/platform/net/http"
	"grocer/internal/services/api"

	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only JSON view of the catalog",
		Args:  exactArgs(0, "no arguments"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.deps.Cfg.Prefix("GROCER_").MayString("SERVE_ADDR", http.DefaultAddr)
			}
			srv := http.NewServer(addr)
			api.Mount(srv.Router(), api.Options{
				Config:  a.deps.Cfg,
				Logger:  a.deps.Log,
				DataDir: a.deps.DataDir,
				CORS:    api.CORSFromConfig(a.deps.Cfg),
			})
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $GROCER_SERVE_ADDR or "+http.DefaultAddr+")")
	return cmd
}
