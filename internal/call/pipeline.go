package call

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nlowry/callwright/internal/audio"
	"github.com/nlowry/callwright/internal/scenario"
	"github.com/nlowry/callwright/internal/telephony"
	"github.com/nlowry/callwright/internal/transcribe"
	"github.com/nlowry/callwright/internal/transcript"
	"github.com/nlowry/callwright/internal/twiml"
)

// Fixed pipeline timings. Recordings are often not listable the instant a
// call goes terminal, hence the grace delay; the inter-call delay respects
// provider rate limits and lets recordings finalize between batch calls.
const (
	DefaultRecordingGrace = 5 * time.Second
	DefaultInterCallDelay = 15 * time.Second
	ringTimeoutSeconds    = 60
)

// Provider is the subset of the telephony client the pipeline uses.
type Provider interface {
	PlaceCall(ctx context.Context, opts telephony.PlaceCallOpts) (*telephony.Call, error)
	FetchCall(ctx context.Context, callSID string) (*telephony.Call, error)
	ListRecordings(ctx context.Context, callSID string) ([]telephony.Recording, error)
	DownloadRecording(ctx context.Context, rec telephony.Recording) ([]byte, error)
}

// Transcriber converts downloaded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, data []byte) (*transcribe.Result, error)
}

// Pipeline runs scripted test calls sequentially. All I/O is blocking; there
// is no parallelism across scenarios and no shared state across calls beyond
// the transcript directory.
type Pipeline struct {
	Provider    Provider
	Transcriber Transcriber
	Store       *transcript.Store

	FromNumber string
	ToNumber   string

	Poller         Poller
	RecordingGrace time.Duration
	InterCallDelay time.Duration

	Out   io.Writer
	Now   func() time.Time
	Sleep func(time.Duration)
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

func (p *Pipeline) sleep(d time.Duration) {
	if p.Sleep != nil {
		p.Sleep(d)
		return
	}
	time.Sleep(d)
}

// RunScenario drives one scenario through the full call pipeline and returns
// the provider call SID. A placement failure aborts the attempt: no call
// reference, no transcript. Every later failure is non-fatal and the
// transcript is still written with whatever was gathered.
func (p *Pipeline) RunScenario(ctx context.Context, sc scenario.Scenario) (string, error) {
	out := p.out()
	run := NewRun(sc, p.ToNumber, p.Now)

	fmt.Fprintf(out, "Calling %s\n", p.ToNumber)
	fmt.Fprintf(out, "Scenario: %s\n", sc.Name)
	fmt.Fprintf(out, "Persona: %s\n", sc.Persona)

	doc := twiml.Render(run.Script)
	payload, err := doc.Encode()
	if err != nil {
		return "", fmt.Errorf("call: render script: %w", err)
	}

	fmt.Fprintf(out, "Script has %d patient messages\n", len(run.Script))

	placed, err := p.Provider.PlaceCall(ctx, telephony.PlaceCallOpts{
		To:             p.ToNumber,
		From:           p.FromNumber,
		Twiml:          payload,
		Record:         true,
		TimeoutSeconds: ringTimeoutSeconds,
	})
	if err != nil {
		return "", fmt.Errorf("call: no call reference obtained: %w", err)
	}
	fmt.Fprintf(out, "Call initiated: %s (status %s)\n", placed.SID, placed.Status)

	run.LogScript()

	fmt.Fprintln(out, "Waiting for call to complete...")
	poller := p.Poller
	if poller.Out == nil {
		poller.Out = out
	}
	src := p.statusSource()
	final := poller.AwaitTerminal(ctx, src, placed.SID)
	fmt.Fprintf(out, "Call finished with status: %s\n", final)

	// Recordings may exist even when we timed out waiting, so retrieval
	// runs regardless of which terminal status we ended on.
	grace := p.RecordingGrace
	if grace <= 0 {
		grace = DefaultRecordingGrace
	}
	fmt.Fprintln(out, "Waiting for recording to be ready...")
	p.sleep(grace)

	p.processRecordings(ctx, run, placed.SID)

	rec := run.Record(placed.SID)
	if err := p.Store.Save(rec); err != nil {
		return placed.SID, err
	}
	fmt.Fprintf(out, "Transcript saved: %s.json (%d logged items)\n", rec.CallID, len(rec.Conversation))
	return placed.SID, nil
}

// processRecordings lists, downloads, probes, and transcribes the call's
// recordings. Nothing here is fatal: zero recordings, download failures, and
// transcription failures are logged and skipped.
func (p *Pipeline) processRecordings(ctx context.Context, run *Run, callSID string) {
	out := p.out()

	recordings, err := p.Provider.ListRecordings(ctx, callSID)
	if err != nil {
		log.Printf("call: list recordings %s: %v", callSID, err)
		return
	}
	if len(recordings) == 0 {
		fmt.Fprintln(out, "No recordings found yet")
		return
	}
	fmt.Fprintf(out, "Found %d recording(s)\n", len(recordings))

	for i, recording := range recordings {
		fmt.Fprintf(out, "Processing recording %d/%d (%s, %ss)\n", i+1, len(recordings), recording.SID, recording.Duration)

		data, err := p.Provider.DownloadRecording(ctx, recording)
		if err != nil {
			log.Printf("call: download recording %s: %v", recording.SID, err)
			continue
		}

		audioPath, err := p.Store.SaveRecording(run.CallID, data)
		if err != nil {
			log.Printf("call: %v", err)
		} else {
			fmt.Fprintf(out, "Audio saved: %s\n", audioPath)
		}

		if info, err := audio.ProbeBytes(data); err != nil {
			log.Printf("call: probe recording %s: %v", recording.SID, err)
		} else {
			fmt.Fprintf(out, "Measured duration: %s (%d Hz)\n", info.Duration.Round(time.Second), info.SampleRate)
		}

		result, err := p.Transcriber.Transcribe(ctx, run.CallID+"_recording.mp3", data)
		if err != nil {
			log.Printf("call: transcribe recording %s: %v", recording.SID, err)
			continue
		}
		fmt.Fprintf(out, "Transcription: %s\n", result.Text)
		run.AddTranscription(result.Text)
	}
}

func (p *Pipeline) statusSource() StatusSource {
	return providerStatusSource{p.Provider}
}

// providerStatusSource polls a Provider via FetchCall.
type providerStatusSource struct {
	provider Provider
}

func (s providerStatusSource) Status(ctx context.Context, callSID string) (telephony.Status, error) {
	call, err := s.provider.FetchCall(ctx, callSID)
	if err != nil {
		return "", err
	}
	return call.Status, nil
}

// RunAll runs every catalog scenario sequentially with a fixed delay between
// calls. Per-call failures are reported and do not stop the batch.
func (p *Pipeline) RunAll(ctx context.Context) error {
	scenarios := scenario.All()
	out := p.out()
	delay := p.InterCallDelay
	if delay <= 0 {
		delay = DefaultInterCallDelay
	}

	fmt.Fprintf(out, "Running %d scenarios...\n", len(scenarios))
	var failures int
	for i, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("call: batch stopped after %d scenario(s): %w", i, err)
		}
		fmt.Fprintf(out, "\n==== Scenario %d/%d: %s ====\n", i+1, len(scenarios), sc.Name)

		if _, err := p.RunScenario(ctx, sc); err != nil {
			failures++
			log.Printf("call: scenario %d: %v", sc.ID, err)
			fmt.Fprintf(out, "Call failed: %v\n", err)
		} else {
			fmt.Fprintln(out, "Call completed successfully")
		}

		if i < len(scenarios)-1 {
			fmt.Fprintf(out, "Waiting %s before next call...\n", delay)
			p.sleep(delay)
		}
	}

	fmt.Fprintf(out, "\nAll %d scenarios completed (%d failed)\n", len(scenarios), failures)
	fmt.Fprintf(out, "Check %s/ for call transcripts\n", p.Store.Dir())
	return nil
}
