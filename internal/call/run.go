// Package call drives one outbound test call end to end: render the script,
// place the call, poll to a terminal status, retrieve and transcribe
// recordings, and persist the transcript.
package call

import (
	"time"

	"github.com/nlowry/callwright/internal/scenario"
	"github.com/nlowry/callwright/internal/transcript"
)

// segmentNote marks conversation entries derived by the heuristic speaker
// split, which is approximate by design.
const segmentNote = "Parsed from audio (speaker detection is approximate)"

const fullRecordingNote = "Complete call transcription - includes both patient and agent"

// Run is the per-call context object. It owns the call's identity and its
// append-only conversation log, is created when the call starts, and is
// discarded after the transcript is persisted. Nothing about a call lives in
// process-global state.
type Run struct {
	CallID       string
	Scenario     scenario.Scenario
	Script       []string
	TargetNumber string
	StartedAt    time.Time

	now func() time.Time
	log []transcript.Entry
}

// NewRun creates the context for one call attempt. The call ID is derived
// from the start timestamp, so IDs collide only within one wall-clock
// second. now is injectable for tests; nil means time.Now.
func NewRun(sc scenario.Scenario, targetNumber string, now func() time.Time) *Run {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &Run{
		CallID:       "call_" + start.Format("20060102_150405"),
		Scenario:     sc,
		Script:       scenario.BuildScript(sc.ID),
		TargetNumber: targetNumber,
		StartedAt:    start,
		now:          now,
	}
}

// LogScript appends the scripted patient lines to the conversation log with
// 1-based turn numbers. Called once after the call is placed.
func (r *Run) LogScript() {
	for i, line := range r.Script {
		turn := i + 1
		r.log = append(r.log, transcript.Entry{
			Speaker:   transcript.SpeakerPatient,
			Message:   line,
			Turn:      &turn,
			Timestamp: r.now(),
		})
	}
}

// AddTranscription appends the raw undivided transcription text and then the
// heuristically labeled per-speaker segments. The raw blob always comes
// first so downstream analysis can fall back to it when the split mislabels.
func (r *Run) AddTranscription(fullText string) {
	r.log = append(r.log, transcript.Entry{
		Speaker:   transcript.SpeakerFullRecording,
		Message:   fullText,
		Timestamp: r.now(),
		Note:      fullRecordingNote,
	})

	for _, seg := range labelSegments(fullText, r.patientLines()) {
		r.log = append(r.log, transcript.Entry{
			Speaker:   seg.Speaker,
			Message:   seg.Message,
			Timestamp: r.now(),
			Note:      segmentNote,
		})
	}
}

// patientLines returns the messages already logged as patient speech, which
// is what the labeling heuristic matches transcribed segments against.
func (r *Run) patientLines() []string {
	var lines []string
	for _, e := range r.log {
		if e.Speaker == transcript.SpeakerPatient {
			lines = append(lines, e.Message)
		}
	}
	return lines
}

// Record freezes the run into a persistable transcript record.
func (r *Run) Record(callSID string) transcript.Record {
	return transcript.Record{
		CallID:       r.CallID,
		CallSID:      callSID,
		ScenarioID:   r.Scenario.ID,
		ScenarioName: r.Scenario.Name,
		Persona:      r.Scenario.Persona,
		Goal:         r.Scenario.Goal,
		Timestamp:    r.now(),
		TargetNumber: r.TargetNumber,
		Conversation: append([]transcript.Entry(nil), r.log...),
		Note:         "Scripted test call. Transcription parsed from audio recording.",
	}
}
