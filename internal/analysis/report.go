package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nlowry/callwright/internal/transcript"
)

// Report is one analysis run over all stored transcripts.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Transcripts int
	Findings    []Finding
}

// BuildReport scans the records and assembles a report. now is injectable
// for tests; nil means time.Now.
func BuildReport(records []transcript.Record, now func() time.Time) Report {
	if now == nil {
		now = time.Now
	}
	return Report{
		RunID:       uuid.NewString(),
		GeneratedAt: now(),
		Transcripts: len(records),
		Findings:    Scan(records),
	}
}

// BySeverity returns the findings with the given severity, preserving
// transcript scan order.
func (r Report) BySeverity(s Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Markdown renders the fixed report structure: header, severity sections
// from Critical down, and a summary with recommendations.
func (r Report) Markdown() string {
	var b strings.Builder

	b.WriteString("# BUG REPORT - Medical Office AI Voice Agent\n")
	fmt.Fprintf(&b, "\nGenerated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "\nTotal Scenarios Tested: %d\n", r.Transcripts)
	fmt.Fprintf(&b, "Total Bugs Found: %d\n", len(r.Findings))
	b.WriteString("\n" + strings.Repeat("=", 80) + "\n")

	critical := r.BySeverity(SeverityCritical)
	high := r.BySeverity(SeverityHigh)
	medium := r.BySeverity(SeverityMedium)

	writeSection(&b, "CRITICAL ISSUES", "Critical", critical)
	writeSection(&b, "HIGH PRIORITY ISSUES", "High", high)
	writeSection(&b, "MEDIUM PRIORITY ISSUES", "Medium", medium)

	b.WriteString("\n## SUMMARY & RECOMMENDATIONS\n\n")
	fmt.Fprintf(&b, "- **Critical Issues:** %d - Require immediate attention\n", len(critical))
	fmt.Fprintf(&b, "- **High Priority:** %d - Should be fixed before production\n", len(high))
	fmt.Fprintf(&b, "- **Medium Priority:** %d - Quality improvements needed\n", len(medium))

	b.WriteString("\n### Key Recommendations:\n")
	if len(critical) > 0 {
		b.WriteString("1. **Medication Safety:** Implement strict validation to prevent medication hallucinations\n")
	}
	if len(high) > 0 {
		b.WriteString("2. **Logic Validation:** Add checks to prevent offering duplicate time slots\n")
		b.WriteString("3. **Urgency Detection:** Improve triage system for urgent care requests\n")
	}
	if len(medium) > 0 {
		b.WriteString("4. **Context Awareness:** Better handling of edge cases and wrong-number scenarios\n")
		b.WriteString("5. **Information Accuracy:** Verify office hours and other factual information\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, heading, label string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n", heading)
	for i, f := range findings {
		fmt.Fprintf(b, "\n### %s Bug #%d: %s\n", label, i+1, f.Type)
		fmt.Fprintf(b, "**Scenario:** %s\n", f.Scenario)
		fmt.Fprintf(b, "**Description:** %s\n", f.Description)
		fmt.Fprintf(b, "**Impact:** %s\n", f.Impact)
		fmt.Fprintf(b, "\n**Evidence:**\n```\n%s\n```\n", f.Evidence)
	}
}
