package call

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nlowry/callwright/internal/telephony"
)

// fakeClock advances a synthetic wall clock whenever the poller sleeps.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// scriptedSource returns canned statuses in sequence, repeating the last.
type scriptedSource struct {
	statuses []telephony.Status
	errs     []error
	calls    int
}

func (s *scriptedSource) Status(_ context.Context, _ string) (telephony.Status, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	return s.statuses[i], nil
}

func newTestPoller(clock *fakeClock) Poller {
	return Poller{
		Interval: 2 * time.Second,
		Budget:   180 * time.Second,
		Now:      clock.Now,
		Sleep:    clock.Sleep,
	}
}

func TestAwaitTerminal_ReturnsProviderStatusImmediately(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	src := &scriptedSource{statuses: []telephony.Status{telephony.StatusRinging, telephony.StatusCompleted}}

	got := newTestPoller(clock).AwaitTerminal(context.Background(), src, "CA1")
	if got != telephony.StatusCompleted {
		t.Errorf("status = %q, want completed", got)
	}
	if src.calls != 2 {
		t.Errorf("polled %d times, want 2", src.calls)
	}
}

func TestAwaitTerminal_TimesOutOnForeverInProgress(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	src := &scriptedSource{statuses: []telephony.Status{telephony.StatusInProgress}}

	got := newTestPoller(clock).AwaitTerminal(context.Background(), src, "CA1")
	if got != telephony.StatusTimeout {
		t.Errorf("status = %q, want timeout", got)
	}
	// 180s budget at 2s per poll.
	if src.calls != 90 {
		t.Errorf("polled %d times, want 90", src.calls)
	}
}

func TestAwaitTerminal_AllProviderTerminals(t *testing.T) {
	for _, terminal := range []telephony.Status{
		telephony.StatusCompleted,
		telephony.StatusFailed,
		telephony.StatusBusy,
		telephony.StatusNoAnswer,
		telephony.StatusCanceled,
	} {
		clock := &fakeClock{now: time.Unix(0, 0)}
		src := &scriptedSource{statuses: []telephony.Status{terminal}}
		got := newTestPoller(clock).AwaitTerminal(context.Background(), src, "CA1")
		if got != terminal {
			t.Errorf("status = %q, want %q", got, terminal)
		}
	}
}

func TestAwaitTerminal_PollErrorsContinueUntilBudget(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &scriptedSource{
		statuses: []telephony.Status{telephony.StatusInProgress},
		errs:     []error{errors.New("transient"), errors.New("transient")},
	}

	got := newTestPoller(clock).AwaitTerminal(context.Background(), src, "CA1")
	if got != telephony.StatusTimeout {
		t.Errorf("status = %q, want timeout despite errors", got)
	}
}

func TestAwaitTerminal_ErrorThenTerminal(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	src := &scriptedSource{
		statuses: []telephony.Status{telephony.StatusInProgress, telephony.StatusCompleted},
		errs:     []error{errors.New("blip"), nil},
	}

	got := newTestPoller(clock).AwaitTerminal(context.Background(), src, "CA1")
	if got != telephony.StatusCompleted {
		t.Errorf("status = %q, want completed after transient error", got)
	}
}

func TestAwaitTerminal_ContextCancelled(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := &scriptedSource{statuses: []telephony.Status{telephony.StatusInProgress}}

	got := newTestPoller(clock).AwaitTerminal(ctx, src, "CA1")
	if got != telephony.StatusTimeout {
		t.Errorf("status = %q, want timeout on cancelled context", got)
	}
	if src.calls != 0 {
		t.Errorf("polled %d times after cancel, want 0", src.calls)
	}
}
