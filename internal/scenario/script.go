package scenario

// scripts maps scenario ID to the ordered patient lines spoken during the
// call. Lines are literal: the speaker-labeling heuristic later matches the
// transcribed audio against these exact strings.
var scripts = map[int][]string{
	1: {
		"Hi, I'm Sarah Chen. I'd like to schedule an appointment.",
		"March 15, 1990.",
		"Yes, that's correct.",
		"A new patient consultation for a general checkup.",
		"The earliest available time works for me.",
		"Yes, please book that time.",
		"Yes, that's correct.",
		"No, that's all. Thank you!",
	},
	2: {
		"Hi, I'm John Martinez. I need a medication refill.",
		"June 10, 1975.",
		"Correct.",
		"Lisinopril for blood pressure.",
		"Yes, please process that.",
		"Thank you!",
	},
	3: {
		"Hi, I'm Emily Thompson. I need to reschedule.",
		"April 22, 1988.",
		"Yes.",
		"My appointment next Tuesday to Wednesday afternoon.",
		"Yes, that works.",
		"Thank you!",
	},
	4: {
		"What are your weekend hours?",
		"And the downtown location address?",
		"Thank you!",
	},
	5: {
		"Do you accept Blue Cross Blue Shield?",
		"Yes, PPO.",
		"Thank you!",
	},
	6: {
		"I'm not feeling well. Do you have anything today?",
		"Two weeks is too long. Any urgent options?",
		"Okay, thank you.",
	},
	7: {
		"Hi, I'm Jennifer Lee. I need to cancel.",
		"September 5, 1982.",
		"My appointment next week.",
		"Yes, cancel it. Thank you!",
	},
	8: {
		"My doctor said to call. Not sure why.",
		"Maybe an appointment or refill?",
		"What's your address?",
		"Okay, thanks.",
	},
	9: {
		"I have a billing question.",
		"My visit last month. The amount seems high.",
		"Okay, I'll call them. Thank you!",
	},
	10: {
		"Is this the veterinary clinic?",
		"Oh, wrong number. Sorry!",
	},
}

// BuildScript returns the ordered patient lines for a scenario. Unknown IDs
// yield an empty script: the call still runs (greeting pause, goodbye,
// hangup) with no patient content. That degenerate call is intentional.
func BuildScript(id int) []string {
	src, ok := scripts[id]
	if !ok {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
