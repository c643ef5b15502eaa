package call

import (
	"testing"

	"github.com/nlowry/callwright/internal/transcript"
)

func TestLabelSegments_MatchesScriptedLines(t *testing.T) {
	patient := []string{"Is this the veterinary clinic?", "Oh, wrong number"}
	full := "Thank you for calling the medical office. Is this the veterinary clinic? No, this is a medical office. Oh, wrong number. Sorry about that"

	segs := labelSegments(full, patient)
	if len(segs) != 4 {
		t.Fatalf("len(segs) = %d, want 4: %v", len(segs), segs)
	}

	wantSpeakers := []string{
		transcript.SpeakerAgent, // greeting
		// The split is on ". " only, so the scripted question and the
		// agent's answer share one segment and both get the patient label.
		transcript.SpeakerPatient,
		transcript.SpeakerPatient, // scripted wrong-number line
		transcript.SpeakerAgent,   // trailing apology, not in script
	}
	for i, want := range wantSpeakers {
		if segs[i].Speaker != want {
			t.Errorf("segs[%d] = %q labeled %q, want %q", i, segs[i].Message, segs[i].Speaker, want)
		}
	}
}

func TestLabelSegments_CaseInsensitive(t *testing.T) {
	segs := labelSegments("YES, PPO. Great", []string{"Yes, PPO"})
	if segs[0].Speaker != transcript.SpeakerPatient {
		t.Errorf("uppercase segment labeled %q, want patient", segs[0].Speaker)
	}
}

func TestLabelSegments_AgentQuotingScriptIsMislabeled(t *testing.T) {
	// Known limitation: agent speech containing a scripted substring gets
	// the patient label.
	segs := labelSegments("You said I need a medication refill, correct", []string{"I need a medication refill"})
	if len(segs) != 1 {
		t.Fatalf("len = %d, want 1", len(segs))
	}
	if segs[0].Speaker != transcript.SpeakerPatient {
		t.Errorf("labeled %q, heuristic is expected to mislabel this as patient", segs[0].Speaker)
	}
}

func TestLabelSegments_EmptyAndWhitespace(t *testing.T) {
	if segs := labelSegments("", nil); len(segs) != 0 {
		t.Errorf("empty text produced %d segments", len(segs))
	}
	segs := labelSegments("Hello.  . World", nil)
	for _, s := range segs {
		if s.Message == "" {
			t.Error("blank segment survived trimming")
		}
	}
}

func TestLabelSegments_NoPatientLinesMeansAllAgent(t *testing.T) {
	segs := labelSegments("One. Two. Three", nil)
	for i, s := range segs {
		if s.Speaker != transcript.SpeakerAgent {
			t.Errorf("segs[%d].Speaker = %q, want agent", i, s.Speaker)
		}
	}
}
