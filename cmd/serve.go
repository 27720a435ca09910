package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/calctutor/internal/config"
	"github.com/abhisek/calctutor/internal/metrics"
	"github.com/abhisek/calctutor/internal/server"
	"github.com/abhisek/calctutor/internal/technique"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API used by the browser widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = fileCfg.ServerAddr()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(technique.Default(), metrics.New(), logger)
		logger.Info("listening", "addr", addr)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default [server] addr or "+config.DefaultServerAddr+")")
}
