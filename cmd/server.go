/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/authdemo/apiserver/config"
	"github.com/authdemo/apiserver/internal/logging"
	"github.com/authdemo/apiserver/internal/server"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the authentication API server",
	Long: `Starts the authentication API server. Usage:

	authdemo server

The user store lives in memory and is empty on every start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
		slog.SetDefault(logger)

		srv, err := server.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server",
			slog.String("addr", srv.Addr()),
			slog.String("env", cfg.Env),
			slog.Duration("token_ttl", cfg.Auth.TokenTTL),
		)
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
