// Package notify pushes analysis results to chat platforms. Delivery is
// best-effort: a failed notification never fails the analysis run.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/nlowry/callwright/internal/analysis"
)

// maxHeadlines caps how many findings are itemized per notification.
const maxHeadlines = 5

// Summary is the platform-neutral digest of one analysis run.
type Summary struct {
	RunID       string
	Transcripts int
	Critical    int
	High        int
	Medium      int
	Headlines   []string
}

// FromReport digests a report into a Summary. Headlines list the most
// severe findings first, capped to keep chat messages short.
func FromReport(r analysis.Report) Summary {
	s := Summary{RunID: r.RunID, Transcripts: r.Transcripts}
	for _, sev := range []analysis.Severity{analysis.SeverityCritical, analysis.SeverityHigh, analysis.SeverityMedium} {
		for _, f := range r.BySeverity(sev) {
			switch sev {
			case analysis.SeverityCritical:
				s.Critical++
			case analysis.SeverityHigh:
				s.High++
			case analysis.SeverityMedium:
				s.Medium++
			}
			if len(s.Headlines) < maxHeadlines {
				s.Headlines = append(s.Headlines, fmt.Sprintf("%s: %s — %s", sev, f.Type, f.Scenario))
			}
		}
	}
	return s
}

// Notable reports whether the summary warrants a push notification. Only
// Critical and High findings page anyone.
func (s Summary) Notable() bool {
	return s.Critical > 0 || s.High > 0
}

// Title is the notification headline.
func (s Summary) Title() string {
	return fmt.Sprintf("Voice agent test run: %d critical, %d high, %d medium", s.Critical, s.High, s.Medium)
}

// Notifier delivers a summary to one chat platform.
type Notifier interface {
	Send(ctx context.Context, s Summary) error
	Close() error
}

// Fanout sends the summary to every notifier when it is notable. Errors are
// logged, not returned.
func Fanout(ctx context.Context, notifiers []Notifier, s Summary) {
	if !s.Notable() {
		return
	}
	for _, n := range notifiers {
		if err := n.Send(ctx, s); err != nil {
			log.Printf("notify: send failed: %v", err)
		}
	}
}
