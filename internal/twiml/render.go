package twiml

// Rendering constants. Pauses are deliberately conservative so the far-end
// agent can finish speaking; the renderer gets no feedback from the live
// call and cannot adapt to actual pacing.
const (
	// DefaultVoice is the synthesized patient voice.
	DefaultVoice = "Polly.Joanna"
	// DefaultRate speaks slightly slower than normal for clarity.
	DefaultRate = "90%"
	// ClosingLine is always spoken before hanging up.
	ClosingLine = "Goodbye."

	// greetingPause covers the far end's full opening greeting.
	greetingPause = 18
	// introGap follows the first line, which prompts a short question (DOB).
	introGap = 10
	// shortAnswerGap follows positions 1-2, expected short confirmations.
	shortAnswerGap = 12
	// generalGap follows middle positions, open-ended agent questions.
	generalGap = 14
	// finalGap follows the last line, capturing a possibly long close-out.
	finalGap = 18
	// preClosePause and postClosePause bracket the goodbye.
	preClosePause  = 4
	postClosePause = 3
)

// Render converts an ordered patient script into a timed document: a long
// leading silence for the greeting, each line spoken with a position-tapered
// silence after it, then the closing line and a hangup. The empty script
// still yields a valid document.
func Render(script []string) Document {
	verbs := make([]Verb, 0, 2*len(script)+5)
	verbs = append(verbs, Pause{Length: greetingPause})

	for i, line := range script {
		verbs = append(verbs,
			Say{Voice: DefaultVoice, Rate: DefaultRate, Text: line},
			Pause{Length: gapAfter(i, len(script))},
		)
	}

	verbs = append(verbs,
		Pause{Length: preClosePause},
		Say{Voice: DefaultVoice, Rate: DefaultRate, Text: ClosingLine},
		Pause{Length: postClosePause},
		Hangup{},
	)
	return Document{Verbs: verbs}
}

// gapAfter returns the silence length following the line at position i of an
// n-line script. Early positions expect short answers (identity
// confirmation), later positions leave room for open-ended agent speech, and
// the final position gets the longest gap.
func gapAfter(i, n int) int {
	switch {
	case i == 0:
		return introGap
	case i == 1, i == 2:
		return shortAnswerGap
	case i < n-1:
		return generalGap
	default:
		return finalGap
	}
}
