package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		schedule   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the full battery on a schedule",
		Long:  "Runs every scenario against the target number on a cron schedule, analyzing transcripts after each battery. Runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, configPath, schedule)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Callwright config file")
	cmd.Flags().StringVar(&schedule, "schedule", "0 9 * * *", "5-field cron expression for battery runs")
	return cmd
}

func runWatch(cmd *cobra.Command, configPath, schedule string) error {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", schedule, err)
	}

	// Validate the config up front so a bad setup fails now, not at 9 AM.
	if _, _, err := buildPipeline(cmd, configPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Watching on schedule %q... (Ctrl+C to stop)\n", schedule)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	for {
		next := sched.Next(time.Now())
		fmt.Fprintf(out, "Next battery at %s\n", next.Format(time.RFC3339))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Until(next)):
		}

		// Rebuild per run so config edits between batteries take effect.
		_, pipeline, err := buildPipeline(cmd, configPath)
		if err != nil {
			return err
		}
		if err := pipeline.RunAll(ctx); err != nil {
			fmt.Fprintf(out, "battery failed: %v\n", err)
			continue
		}
		if err := runAnalyze(cmd, configPath, false); err != nil {
			fmt.Fprintf(out, "analyze failed: %v\n", err)
		}
	}
}
