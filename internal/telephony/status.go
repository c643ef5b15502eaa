package telephony

// Status is a provider call status. The provider reports the first eight;
// StatusTimeout is synthesized locally when the polling budget runs out
// without a provider-terminal status.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusRinging    Status = "ringing"
	StatusInitiated  Status = "initiated"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusBusy       Status = "busy"
	StatusNoAnswer   Status = "no-answer"
	StatusCanceled   Status = "canceled"

	// StatusTimeout is never reported by the provider. It does not cancel
	// the remote call; the call keeps running on the provider side after
	// the local driver gives up waiting.
	StatusTimeout Status = "timeout"
)

// Terminal reports whether the provider will make no further state changes.
// StatusTimeout is terminal for the local driver but is deliberately not a
// provider-terminal status.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusBusy, StatusNoAnswer, StatusCanceled:
		return true
	}
	return false
}
