package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zxyasa/ai-zhao-tutor/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory development backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}
		srv := devserver.NewServer(devserver.NewBackend(), logger,
			devserver.WithAllowedOrigins(cfg.Server.AllowedOrigins...))
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
