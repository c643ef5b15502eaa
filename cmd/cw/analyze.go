package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nlowry/callwright/internal/analysis"
	"github.com/nlowry/callwright/internal/config"
	"github.com/nlowry/callwright/internal/notify"
	"github.com/nlowry/callwright/internal/transcript"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		noNotify   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Scan saved transcripts and write the bug report",
		Long:  "Loads every saved transcript, runs the bug rules over the agent's lines, writes a severity-grouped Markdown report, and posts a summary to the configured chat channels when findings warrant it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, configPath, noNotify)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Callwright config file")
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "skip chat notifications")
	return cmd
}

func runAnalyze(cmd *cobra.Command, configPath string, noNotify bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := transcript.NewStore(cfg.TranscriptsDir)
	if err != nil {
		return err
	}
	records, err := store.LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No transcripts found in %s. Run \"cw run all\" first.\n", store.Dir())
		return nil
	}

	report := analysis.BuildReport(records, time.Now)
	if err := os.WriteFile(cfg.ReportPath, []byte(report.Markdown()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	summary := notify.FromReport(report)
	fmt.Fprintf(out, "Analyzed %d transcripts: %d critical, %d high, %d medium\n",
		summary.Transcripts, summary.Critical, summary.High, summary.Medium)
	fmt.Fprintf(out, "Report written to %s\n", cfg.ReportPath)

	if noNotify || !summary.Notable() {
		return nil
	}
	notifiers, err := buildNotifiers(cfg)
	if err != nil {
		return err
	}
	if len(notifiers) == 0 {
		return nil
	}
	defer func() {
		for _, n := range notifiers {
			n.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	notify.Fanout(ctx, notifiers, summary)
	fmt.Fprintf(out, "Notified %d channel(s)\n", len(notifiers))
	return nil
}

// buildNotifiers assembles a notifier per configured channel. A channel with
// no matching credential is a configuration error, not a silent skip.
func buildNotifiers(cfg *config.Config) ([]notify.Notifier, error) {
	creds := config.CredentialsFromEnv()
	var notifiers []notify.Notifier

	if cfg.Notify.SlackChannel != "" {
		n, err := notify.NewSlack(notify.SlackOpts{
			Token:   creds.SlackBotToken,
			Channel: cfg.Notify.SlackChannel,
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	if cfg.Notify.DiscordChannelID != "" {
		n, err := notify.NewDiscord(notify.DiscordOpts{
			BotToken:  creds.DiscordBotToken,
			ChannelID: cfg.Notify.DiscordChannelID,
		})
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, n)
	}

	return notifiers, nil
}
