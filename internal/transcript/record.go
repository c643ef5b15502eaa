// Package transcript defines the persisted record of one test call and the
// flat-file store that holds one JSON file per call.
package transcript

import "time"

// Speaker labels for conversation log entries.
const (
	SpeakerPatient = "patient"
	SpeakerAgent   = "agent"
	// SpeakerFullRecording marks the single undivided transcription blob.
	// It is kept alongside the derived per-speaker segments because the
	// speaker split is heuristic and downstream analysis may need to fall
	// back to the raw text.
	SpeakerFullRecording = "full_recording"
)

// Entry is one append-only line of a call's conversation log.
type Entry struct {
	Speaker   string    `json:"speaker"`
	Message   string    `json:"message"`
	Turn      *int      `json:"turn,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note,omitempty"`
}

// Record is the full persisted outcome of one call: scenario metadata plus
// the ordered conversation log. Immutable once written.
type Record struct {
	CallID       string    `json:"call_id"`
	CallSID      string    `json:"call_sid"`
	ScenarioID   int       `json:"scenario_id"`
	ScenarioName string    `json:"scenario_name"`
	Persona      string    `json:"persona"`
	Goal         string    `json:"goal"`
	Timestamp    time.Time `json:"timestamp"`
	TargetNumber string    `json:"target_number"`
	Conversation []Entry   `json:"conversation"`
	Note         string    `json:"note"`
}

// AgentLines returns the messages attributed to the far-end agent, in order.
func (r Record) AgentLines() []Entry {
	var out []Entry
	for _, e := range r.Conversation {
		if e.Speaker == SpeakerAgent {
			out = append(out, e)
		}
	}
	return out
}
