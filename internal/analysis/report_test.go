package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/nlowry/callwright/internal/transcript"
)

func TestBuildReport(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC) }
	records := []transcript.Record{
		recordWith(2, "Medication Refill",
			patient("Lisinopril for blood pressure."),
			agent("Your metformin is ready"),
		),
		recordWith(6, "Urgent Appointment",
			agent("Earliest slot is two weeks from now"),
		),
		recordWith(4, "Office Hours Inquiry",
			agent("Our office hours include Sunday mornings"),
		),
	}

	report := BuildReport(records, now)
	if report.Transcripts != 3 {
		t.Errorf("Transcripts = %d, want 3", report.Transcripts)
	}
	if report.RunID == "" {
		t.Error("RunID is empty")
	}
	if len(report.Findings) != 3 {
		t.Fatalf("len(Findings) = %d, want 3", len(report.Findings))
	}
	if got := report.BySeverity(SeverityCritical); len(got) != 1 {
		t.Errorf("Critical findings = %d, want 1", len(got))
	}
	if got := report.BySeverity(SeverityHigh); len(got) != 1 {
		t.Errorf("High findings = %d, want 1", len(got))
	}
	if got := report.BySeverity(SeverityMedium); len(got) != 1 {
		t.Errorf("Medium findings = %d, want 1", len(got))
	}
}

func TestReport_Markdown(t *testing.T) {
	now := func() time.Time { return time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC) }
	records := []transcript.Record{
		recordWith(2, "Medication Refill",
			patient("Lisinopril for blood pressure."),
			agent("Your metformin is ready"),
		),
		recordWith(6, "Urgent Appointment",
			agent("Earliest slot is two weeks from now"),
		),
	}
	md := BuildReport(records, now).Markdown()

	for _, frag := range []string{
		"# BUG REPORT - Medical Office AI Voice Agent",
		"Generated: 2026-04-02 10:30:00",
		"Total Scenarios Tested: 2",
		"Total Bugs Found: 2",
		"## CRITICAL ISSUES",
		"### Critical Bug #1: Hallucination",
		"## HIGH PRIORITY ISSUES",
		"### High Bug #1: Inappropriate Response",
		"**Scenario:** Urgent Appointment",
		"## SUMMARY & RECOMMENDATIONS",
		"**Medication Safety:**",
		"**Urgency Detection:**",
	} {
		if !strings.Contains(md, frag) {
			t.Errorf("markdown missing %q", frag)
		}
	}
	if strings.Contains(md, "MEDIUM PRIORITY ISSUES") {
		t.Error("empty medium section should be omitted")
	}
}

func TestReport_MarkdownNoFindings(t *testing.T) {
	md := BuildReport(nil, nil).Markdown()
	if !strings.Contains(md, "Total Bugs Found: 0") {
		t.Error("markdown missing zero-findings count")
	}
	for _, absent := range []string{"CRITICAL ISSUES", "HIGH PRIORITY", "Medication Safety"} {
		if strings.Contains(md, absent) {
			t.Errorf("markdown unexpectedly contains %q with no findings", absent)
		}
	}
}

func TestSeverity_Rank(t *testing.T) {
	if !(SeverityCritical.Rank() < SeverityHigh.Rank() && SeverityHigh.Rank() < SeverityMedium.Rank()) {
		t.Error("severity ranking out of order")
	}
}
