package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nlowry/callwright/internal/config"
)

func newDoctorCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and credentials",
		Long:  "Runs diagnostic checks on Callwright prerequisites: config, phone numbers, provider and transcription credentials, chat credentials, and the transcripts directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Callwright config file")
	return cmd
}

type checkResult struct {
	name   string
	status string // "PASS", "FAIL", "WARN"
	detail string
}

func runDoctor(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Callwright Doctor")
	fmt.Fprintln(out, "=================")

	var results []checkResult

	// 1. Config
	cfg, cfgResult := checkConfig(configPath)
	results = append(results, cfgResult)

	// 2. Credentials
	creds := config.CredentialsFromEnv()
	results = append(results, checkCredential("Twilio account SID", "TWILIO_ACCOUNT_SID", creds.TwilioAccountSID))
	results = append(results, checkCredential("Twilio auth token", "TWILIO_AUTH_TOKEN", creds.TwilioAuthToken))
	results = append(results, checkCredential("Groq API key", "GROQ_API_KEY", creds.GroqAPIKey))

	// 3. Chat credentials, only required when a channel is configured.
	if cfg != nil {
		if cfg.Notify.SlackChannel != "" {
			results = append(results, checkCredential("Slack bot token", "SLACK_BOT_TOKEN", creds.SlackBotToken))
		} else {
			results = append(results, checkResult{"Slack bot token", "WARN", "no slack_channel configured; notifications disabled"})
		}
		if cfg.Notify.DiscordChannelID != "" {
			results = append(results, checkCredential("Discord bot token", "DISCORD_BOT_TOKEN", creds.DiscordBotToken))
		} else {
			results = append(results, checkResult{"Discord bot token", "WARN", "no discord_channel_id configured; notifications disabled"})
		}
	}

	// 4. Transcripts directory
	if cfg != nil {
		results = append(results, checkTranscriptsDir(cfg.TranscriptsDir))
	} else {
		results = append(results, checkResult{"Transcripts dir", "FAIL", "skipped (no config)"})
	}

	// Print results.
	passed, failed, warned := 0, 0, 0
	for _, r := range results {
		printCheckResult(out, r)
		switch r.status {
		case "PASS":
			passed++
		case "FAIL":
			failed++
		case "WARN":
			warned++
		}
	}

	fmt.Fprintf(out, "\n%d passed, %d failed, %d warning\n", passed, failed, warned)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func printCheckResult(out io.Writer, r checkResult) {
	fmt.Fprintf(out, "[%s] %s: %s\n", r.status, r.name, r.detail)
}

func checkConfig(path string) (*config.Config, checkResult) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, checkResult{"Config file", "FAIL", fmt.Sprintf("%s: %v", path, err)}
	}
	return cfg, checkResult{"Config file", "PASS", fmt.Sprintf("%s (target %s)", path, cfg.TargetNumber)}
}

func checkCredential(name, envVar, value string) checkResult {
	if value == "" {
		return checkResult{name, "FAIL", envVar + " not set"}
	}
	return checkResult{name, "PASS", envVar + " set"}
}

// checkTranscriptsDir verifies the directory exists (or can be created) and
// is writable by actually writing a probe file.
func checkTranscriptsDir(dir string) checkResult {
	if dir == "" {
		dir = "transcripts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return checkResult{"Transcripts dir", "FAIL", fmt.Sprintf("%s: %v", dir, err)}
	}
	probe := filepath.Join(dir, ".doctor_probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return checkResult{"Transcripts dir", "FAIL", fmt.Sprintf("%s not writable: %v", dir, err)}
	}
	os.Remove(probe)
	return checkResult{"Transcripts dir", "PASS", dir}
}
