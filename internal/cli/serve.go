package cli

import (
	"github.com/extkit-labs/extkit/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve static assets for local development",
		Long: `Serve a directory over HTTP with Access-Control-Allow-Origin: * and caching
disabled. Only GET requests are answered. Stops on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ServeAddr
			}
			if dir == "" {
				dir = a.cfg.AssetsDir
			}
			return server.Run(cmd.Context(), addr, dir, a.log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default "+server.DefaultAddr+")")
	cmd.Flags().StringVar(&dir, subDirFlag, "", "Directory to serve (default: the assets directory)")
	return cmd
}
