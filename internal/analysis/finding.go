// Package analysis scans stored call transcripts for known failure patterns
// in the far-end voice agent and renders a severity-grouped report.
package analysis

// Severity ranks a finding. Critical outranks High outranks Medium.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
)

// Rank returns a sort key, lower is more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	}
	return 3
}

// Finding is one detected issue instance: a single rule firing against a
// single transcript. Findings exist only inside a generated report and are
// never persisted on their own.
type Finding struct {
	Scenario    string   `json:"scenario"`
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence"`
	Impact      string   `json:"impact"`
}
