package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nlowry/callwright/internal/call"
	"github.com/nlowry/callwright/internal/config"
	"github.com/nlowry/callwright/internal/scenario"
	"github.com/nlowry/callwright/internal/telephony"
	"github.com/nlowry/callwright/internal/transcribe"
	"github.com/nlowry/callwright/internal/transcript"
)

const defaultConfigPath = "callwright.yaml"

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run [scenario_id|all]",
		Short: "Place one scripted test call, or the full battery",
		Long:  "Places a scripted call at the configured target number, waits for it to finish, retrieves and transcribes the recording, and saves the transcript. With \"all\", runs every scenario in sequence.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := ""
			if len(args) > 0 {
				selector = args[0]
			}
			return runRun(cmd, configPath, selector)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Callwright config file")
	return cmd
}

func runRun(cmd *cobra.Command, configPath, selector string) error {
	_, pipeline, err := buildPipeline(cmd, configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if selector == "all" {
		return pipeline.RunAll(ctx)
	}

	sc := pickScenario(cmd, selector)
	callSID, err := pipeline.RunScenario(ctx, sc)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Done. Call SID: %s\n", callSID)
	return nil
}

// pickScenario resolves a scenario selector. An empty, malformed, or unknown
// selector falls through to the first catalog entry with a usage note, so a
// bare "cw run" always does something useful.
func pickScenario(cmd *cobra.Command, selector string) scenario.Scenario {
	out := cmd.OutOrStdout()
	if selector == "" {
		return scenario.Get(1)
	}
	id, err := strconv.Atoi(selector)
	if err != nil {
		fmt.Fprintf(out, "Unknown scenario %q, running scenario 1. Use \"cw scenarios\" to list them.\n", selector)
		return scenario.Get(1)
	}
	return scenario.Get(id)
}

// buildPipeline loads config and credentials and assembles the call pipeline
// with real provider and transcription clients.
func buildPipeline(cmd *cobra.Command, configPath string) (*config.Config, *call.Pipeline, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	creds := config.CredentialsFromEnv()

	provider, err := telephony.New(telephony.Opts{
		AccountSID: creds.TwilioAccountSID,
		AuthToken:  creds.TwilioAuthToken,
		BaseURL:    cfg.Provider.BaseURL,
	})
	if err != nil {
		return nil, nil, err
	}

	transcriber, err := transcribe.New(transcribe.Opts{
		APIKey:  creds.GroqAPIKey,
		BaseURL: cfg.Transcription.BaseURL,
		Model:   cfg.Transcription.Model,
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := transcript.NewStore(cfg.TranscriptsDir)
	if err != nil {
		return nil, nil, err
	}

	out := cmd.OutOrStdout()
	pipeline := &call.Pipeline{
		Provider:    provider,
		Transcriber: transcriber,
		Store:       store,
		FromNumber:  cfg.FromNumber,
		ToNumber:    cfg.TargetNumber,
		Poller: call.Poller{
			Interval: cfg.Timing.PollInterval(),
			Budget:   cfg.Timing.PollBudget(),
			Out:      out,
		},
		RecordingGrace: cfg.Timing.RecordingGrace(),
		InterCallDelay: cfg.Timing.InterCallDelay(),
		Out:            out,
	}
	return cfg, pipeline, nil
}
