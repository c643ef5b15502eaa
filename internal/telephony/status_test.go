package telephony

import "testing"

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusFailed, StatusBusy, StatusNoAnswer, StatusCanceled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}

	nonTerminal := []Status{StatusQueued, StatusRinging, StatusInitiated, StatusInProgress, StatusTimeout, Status("weird")}
	for _, s := range nonTerminal {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
}
