package call

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/nlowry/callwright/internal/telephony"
)

// Polling defaults: a fixed short interval, no backoff, and a wall-clock
// budget after which the driver gives up locally. Giving up does not cancel
// the remote call.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollBudget   = 180 * time.Second
)

// StatusSource yields the current status of a call by provider reference.
// The production implementation is the telephony client; tests inject fakes.
type StatusSource interface {
	Status(ctx context.Context, callSID string) (telephony.Status, error)
}

// Poller watches a call until a provider-terminal status or until its budget
// elapses. Time sources are injectable so the terminal/timeout logic is
// testable without wall-clock delays.
type Poller struct {
	Interval time.Duration
	Budget   time.Duration
	Now      func() time.Time
	Sleep    func(time.Duration)
	Out      io.Writer
}

// AwaitTerminal polls src at a fixed interval. It returns the provider
// status as soon as a terminal one is observed, and the synthetic
// StatusTimeout once the budget elapses without one. Poll errors are not
// distinguishable from "still in progress": they are logged and the loop
// continues until the budget runs out.
func (p Poller) AwaitTerminal(ctx context.Context, src StatusSource, callSID string) telephony.Status {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	budget := p.Budget
	if budget <= 0 {
		budget = DefaultPollBudget
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	out := p.Out
	if out == nil {
		out = io.Discard
	}

	start := now()
	var last telephony.Status

	for now().Sub(start) < budget {
		if ctx.Err() != nil {
			return telephony.StatusTimeout
		}

		status, err := src.Status(ctx, callSID)
		if err != nil {
			log.Printf("call: poll %s: %v", callSID, err)
		} else {
			if status != last {
				fmt.Fprintf(out, "   Status: %s\n", status)
				last = status
			}
			if status.Terminal() {
				return status
			}
		}

		sleep(interval)
	}
	return telephony.StatusTimeout
}
