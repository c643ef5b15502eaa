package call

import (
	"strings"

	"github.com/nlowry/callwright/internal/transcript"
)

// segment is one sentence-like piece of the transcription with a best-effort
// speaker label.
type segment struct {
	Speaker string
	Message string
}

// labelSegments splits the transcription on ". " and labels each piece
// patient when any scripted patient line appears in it as a
// case-insensitive substring, agent otherwise. This is order-insensitive
// and approximate: agent speech that quotes a scripted phrase gets
// mislabeled patient, and patient speech the service transcribed differently
// than the script gets mislabeled agent.
func labelSegments(fullText string, patientLines []string) []segment {
	lowered := make([]string, len(patientLines))
	for i, line := range patientLines {
		lowered[i] = strings.ToLower(line)
	}

	var out []segment
	for _, raw := range strings.Split(fullText, ". ") {
		msg := strings.TrimSpace(raw)
		if msg == "" {
			continue
		}

		speaker := transcript.SpeakerAgent
		segLower := strings.ToLower(msg)
		for _, line := range lowered {
			if line != "" && strings.Contains(segLower, line) {
				speaker = transcript.SpeakerPatient
				break
			}
		}
		out = append(out, segment{Speaker: speaker, Message: msg})
	}
	return out
}
