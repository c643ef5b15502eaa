// Package scenario holds the fixed catalog of synthetic-patient test cases
// and the per-scenario conversation scripts used to drive outbound calls.
package scenario

// Scenario describes one synthetic-patient test case: who the caller is,
// what they want, and how they open the conversation.
type Scenario struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Persona        string `json:"persona" yaml:"persona"`
	Goal           string `json:"goal" yaml:"goal"`
	InitialMessage string `json:"initial_message" yaml:"initial_message"`
	Context        string `json:"context" yaml:"context"`
}

// Well-known scenario IDs referenced by scenario-scoped analysis rules.
const (
	IDRescheduling = 3
	IDUrgent       = 6
	IDWrongNumber  = 10
)

// catalog is the fixed, ordered list of test scenarios. IDs are stable and
// referenced by the script table and by scenario-scoped analysis rules.
var catalog = []Scenario{
	{
		ID:             1,
		Name:           "Simple Appointment Scheduling",
		Persona:        "Sarah Chen, new patient",
		Goal:           "Schedule a first-time appointment",
		InitialMessage: "Hi, I'd like to schedule an appointment. This is my first time visiting.",
		Context:        "Be polite, provide name when asked, prefer morning appointments",
	},
	{
		ID:             2,
		Name:           "Medication Refill",
		Persona:        "John Martinez, existing patient",
		Goal:           "Request prescription refill",
		InitialMessage: "Hello, I need to refill my blood pressure medication.",
		Context:        "Patient ID if asked, mention the medication is lisinopril",
	},
	{
		ID:             3,
		Name:           "Appointment Rescheduling",
		Persona:        "Emily Thompson",
		Goal:           "Reschedule existing appointment",
		InitialMessage: "Hi, I need to reschedule my appointment for next Tuesday. Something came up.",
		Context:        "Be apologetic, flexible with new times",
	},
	{
		ID:             4,
		Name:           "Office Hours Inquiry",
		Persona:        "Michael Rodriguez",
		Goal:           "Ask about office hours and location",
		InitialMessage: "Hi, what are your office hours? And do you have a location near downtown?",
		Context:        "Just gathering information, not booking yet",
	},
	{
		ID:             5,
		Name:           "Insurance Question",
		Persona:        "Lisa Wang",
		Goal:           "Verify insurance coverage",
		InitialMessage: "Hello, I wanted to check if you accept Blue Cross Blue Shield insurance?",
		Context:        "Needs confirmation before booking",
	},
	{
		ID:             6,
		Name:           "Urgent Appointment",
		Persona:        "David Kim",
		Goal:           "Get same-day or next-day appointment",
		InitialMessage: "Hi, I'm not feeling well and need to see a doctor as soon as possible. Do you have anything available today?",
		Context:        "Urgent but not emergency, willing to come in anytime",
	},
	{
		ID:             7,
		Name:           "Cancellation",
		Persona:        "Jennifer Lee",
		Goal:           "Cancel an upcoming appointment",
		InitialMessage: "Hi, I need to cancel my appointment next week. I'm feeling better now.",
		Context:        "Straightforward cancellation",
	},
	{
		ID:             8,
		Name:           "Confused Patient - Multiple Questions",
		Persona:        "Robert Brown (elderly, confused)",
		Goal:           "Ask multiple questions in confusing order",
		InitialMessage: "Yes hello, my doctor said I should call but I'm not sure... do I need to schedule something? Or was it a refill? Also what's your address?",
		Context:        "Test how AI handles confused/unclear requests",
	},
	{
		ID:             9,
		Name:           "Billing Question",
		Persona:        "Amanda Foster",
		Goal:           "Ask about a bill from previous visit",
		InitialMessage: "Hi, I received a bill for my last visit and I have some questions about the charges.",
		Context:        "Wants explanation of billing",
	},
	{
		ID:             10,
		Name:           "Wrong Number Test",
		Persona:        "Chris Anderson",
		Goal:           "Test how AI handles wrong requests",
		InitialMessage: "Hi, I'm looking for the veterinary clinic. Is this the animal hospital?",
		Context:        "Test error handling - clearly wrong type of office",
	},
}

// Get returns the scenario with the given ID. Unknown IDs fall back to the
// first scenario so a bad selector still produces a usable call.
func Get(id int) Scenario {
	for _, s := range catalog {
		if s.ID == id {
			return s
		}
	}
	return catalog[0]
}

// All returns the full catalog in order.
func All() []Scenario {
	out := make([]Scenario, len(catalog))
	copy(out, catalog)
	return out
}
