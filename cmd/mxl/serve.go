package main

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/musicxml/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the score API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			srv := server.New(server.Config{
				Logger:         a.log,
				Options:        a.openOptions(),
				MaxUpload:      a.cfg.MaxDocumentSize,
				AllowedOrigins: origins,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins (default: any)")
	return cmd
}
