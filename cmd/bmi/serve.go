package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/bmitracker/internal/metrics"
	"github.com/mmynk/bmitracker/internal/server"
)

func serveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser form and the Connect API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			slog.Info("Storage initialized", "database", a.settings.Database.Path)

			m, err := metrics.New()
			if err != nil {
				return err
			}

			srv, err := server.New(a.settings, store, m)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Port to listen on")
	_ = a.viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}
