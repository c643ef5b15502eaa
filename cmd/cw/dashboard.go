package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nlowry/callwright/internal/config"
	"github.com/nlowry/callwright/internal/dashboard"
	"github.com/nlowry/callwright/internal/transcript"
)

func newDashboardCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Start the read-only transcript dashboard",
		Long:  "Launches a local JSON API for browsing saved transcripts and on-demand findings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Callwright config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (defaults to config)")
	return cmd
}

func runDashboard(cmd *cobra.Command, configPath string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port <= 0 {
		port = cfg.Dashboard.Port
	}

	store, err := transcript.NewStore(cfg.TranscriptsDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	return dashboard.Start(ctx, dashboard.StartOpts{
		Store: store,
		Port:  port,
		Out:   cmd.OutOrStdout(),
	})
}
