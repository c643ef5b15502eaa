package analysis

import (
	"fmt"
	"strings"

	"github.com/nlowry/callwright/internal/scenario"
	"github.com/nlowry/callwright/internal/transcript"
)

// A rule inspects one transcript independently and emits zero or more
// findings. Rules share no state; scenario-scoped rules check the
// transcript's scenario ID and never fire outside it.
type rule func(transcript.Record) []Finding

// rules run in a fixed order; within a severity bucket the report keeps
// transcript scan order, not any domain ranking.
var rules = []rule{
	checkDuplicateSlot,
	checkMedicationHallucination,
	checkUrgencyHandling,
	checkRescheduleLookup,
	checkSundayHours,
	checkWrongNumberRecognition,
	checkRepeatRequests,
}

// Scan runs every rule over every transcript, in order.
func Scan(records []transcript.Record) []Finding {
	var findings []Finding
	for _, rec := range records {
		for _, r := range rules {
			findings = append(findings, r(rec)...)
		}
	}
	return findings
}

// checkDuplicateSlot fires when the agent offers the same time slot twice in
// one utterance.
func checkDuplicateSlot(rec transcript.Record) []Finding {
	var out []Finding
	for _, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent {
			continue
		}
		if strings.Count(e.Message, "2 PM") > 1 {
			out = append(out, Finding{
				Scenario:    rec.ScenarioName,
				Type:        "Logic Error",
				Severity:    SeverityHigh,
				Description: "Agent offered the same time slot twice (2 PM and 2 PM)",
				Evidence:    e.Message,
				Impact:      "Confuses patients and makes scheduling impossible",
			})
		}
	}
	return out
}

// checkMedicationHallucination fires when the agent mentions metformin right
// after the patient asked about lisinopril.
func checkMedicationHallucination(rec transcript.Record) []Finding {
	var out []Finding
	for i, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent || i == 0 {
			continue
		}
		prev := rec.Conversation[i-1]
		if strings.Contains(strings.ToLower(e.Message), "metformin") &&
			strings.Contains(strings.ToLower(prev.Message), "lisinopril") {
			out = append(out, Finding{
				Scenario:    rec.ScenarioName,
				Type:        "Hallucination",
				Severity:    SeverityCritical,
				Description: "Agent hallucinated wrong medication - patient asked for lisinopril (blood pressure) but agent mentioned metformin (diabetes)",
				Evidence:    fmt.Sprintf("Patient: %s\nAgent: %s", prev.Message, e.Message),
				Impact:      "Could lead to dangerous medication errors",
			})
		}
	}
	return out
}

// checkUrgencyHandling is scoped to the urgent-appointment scenario: an
// urgent request answered with a two-week wait is a triage failure.
func checkUrgencyHandling(rec transcript.Record) []Finding {
	if rec.ScenarioID != scenario.IDUrgent {
		return nil
	}
	var out []Finding
	for _, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent {
			continue
		}
		if strings.Contains(strings.ToLower(e.Message), "two weeks") {
			out = append(out, Finding{
				Scenario:    rec.ScenarioName,
				Type:        "Inappropriate Response",
				Severity:    SeverityHigh,
				Description: "Agent offered appointment 2 weeks out for urgent care request",
				Evidence:    e.Message,
				Impact:      "Patient with urgent medical need is not properly triaged",
			})
		}
	}
	return out
}

// checkRescheduleLookup is scoped to the rescheduling scenario: the agent
// re-collecting identity while failing to find the existing appointment.
func checkRescheduleLookup(rec transcript.Record) []Finding {
	if rec.ScenarioID != scenario.IDRescheduling {
		return nil
	}
	var out []Finding
	for _, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent {
			continue
		}
		lower := strings.ToLower(e.Message)
		if strings.Contains(lower, "date of birth") && strings.Contains(lower, "not seeing any upcoming") {
			out = append(out, Finding{
				Scenario:    rec.ScenarioName,
				Type:        "Data Retrieval Failure",
				Severity:    SeverityMedium,
				Description: "Agent unable to find existing appointment for rescheduling",
				Evidence:    e.Message,
				Impact:      "Creates friction for legitimate rescheduling requests",
			})
		}
	}
	return out
}

// checkSundayHours fires when the agent claims Sunday office hours, unusual
// for a medical office.
func checkSundayHours(rec transcript.Record) []Finding {
	var out []Finding
	for _, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent {
			continue
		}
		lower := strings.ToLower(e.Message)
		if strings.Contains(lower, "office hours") && strings.Contains(lower, "sunday") {
			out = append(out, Finding{
				Scenario:    rec.ScenarioName,
				Type:        "Information Accuracy",
				Severity:    SeverityMedium,
				Description: "Agent claims office is open on Sundays (unusual for medical office)",
				Evidence:    e.Message,
				Impact:      "Patient may show up when office is actually closed",
			})
		}
	}
	return out
}

// checkWrongNumberRecognition is scoped to the wrong-number scenario: the
// agent should acknowledge the caller wanted a veterinary clinic.
func checkWrongNumberRecognition(rec transcript.Record) []Finding {
	if rec.ScenarioID != scenario.IDWrongNumber {
		return nil
	}
	for _, e := range rec.Conversation {
		if e.Speaker != transcript.SpeakerAgent {
			continue
		}
		lower := strings.ToLower(e.Message)
		if strings.Contains(lower, "veterinary") || strings.Contains(lower, "wrong") {
			return nil
		}
	}
	return []Finding{{
		Scenario:    rec.ScenarioName,
		Type:        "Context Understanding Failure",
		Severity:    SeverityMedium,
		Description: "Agent failed to recognize caller was looking for veterinary clinic, not human medical office",
		Evidence:    "Agent proceeded with appointment scheduling despite clear mismatch",
		Impact:      "Wastes time for both caller and office",
	}}
}

// checkRepeatRequests fires when the agent asked the patient to repeat
// themselves three or more times in one call.
func checkRepeatRequests(rec transcript.Record) []Finding {
	count := 0
	for _, e := range rec.Conversation {
		if e.Speaker == transcript.SpeakerAgent &&
			strings.Contains(strings.ToLower(e.Message), "didn't quite catch") {
			count++
		}
	}
	if count < 3 {
		return nil
	}
	return []Finding{{
		Scenario:    rec.ScenarioName,
		Type:        "Poor Conversation Flow",
		Severity:    SeverityMedium,
		Description: fmt.Sprintf("Agent asked patient to repeat themselves %d times in one call", count),
		Evidence:    fmt.Sprintf("%d instances of \"I didn't quite catch that\"", count),
		Impact:      "Frustrating user experience, suggests poor speech recognition",
	}}
}
