package service

import (
	"fmt"
	"strings"

	"medinfo-backend/models"
)

// answerSchemaDecl is the output contract declared to the generator. The
// field names are fixed: parseRawAnswer in answer.go reads exactly these
// keys, so prompt and parser cannot drift independently.
const answerSchemaDecl = `{
  "answer": "string (medical advice)",
  "confidence_score": "number (0.0-1.0)",
  "risk_level": "integer (1=safe, 5=emergency)",
  "updated_summary": "string (summarize current symptom + previous context for future reference)"
}`

// BuildAnswerPrompt composes the system prompt for one answer turn.
// The output is deterministic for given inputs: role framing, body-part
// context, previous-summary line (or an explicit no-context marker), the
// retrieved reference block when present, and the JSON schema declaration,
// always in that order.
func BuildAnswerPrompt(bodyPartLabel, previousSummary string, facts []models.RetrievedFact) string {
	lines := []string{
		"You are a helpful medical AI assistant.",
		"Respond in Korean.",
		fmt.Sprintf("Current context - Body Part: %s.", bodyPartLabel),
	}

	if previousSummary != "" {
		lines = append(lines, "Previous Context Summary: "+previousSummary)
	} else {
		lines = append(lines, "No previous context.")
	}

	if len(facts) > 0 {
		lines = append(lines,
			"",
			"Reference knowledge retrieved from a verified medical corpus:",
			FormatFacts(facts),
			"",
			"Base your answer on the reference knowledge above whenever it covers the question."+
				" If it is insufficient, fall back to general medical knowledge and answer conservatively.",
		)
	}

	lines = append(lines,
		"",
		"Analyze the user's symptom and provide a JSON response.",
		"The schema must be exactly:",
		answerSchemaDecl,
	)

	return strings.Join(lines, "\n")
}

// FormatFacts renders retrieved facts as a compact reference block:
// "[Medical Fact 1] (내과): ..." entries separated by blank lines.
func FormatFacts(facts []models.RetrievedFact) string {
	entries := make([]string, 0, len(facts))
	for i, fact := range facts {
		entries = append(entries, fmt.Sprintf("[Medical Fact %d] (%s): %s", i+1, fact.Category, fact.Content))
	}
	return strings.Join(entries, "\n\n")
}
