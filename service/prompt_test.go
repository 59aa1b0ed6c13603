package service

import (
	"strings"
	"testing"

	"medinfo-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswerPrompt(t *testing.T) {
	facts := []models.RetrievedFact{
		{Content: "Fact A", Category: "내과", Similarity: 0.91},
		{Content: "Fact B", Category: "외과", Similarity: 0.77},
	}

	t.Run("line order is deterministic", func(t *testing.T) {
		prompt := BuildAnswerPrompt("무릎", "지난 턴: 무릎 통증 호소", facts)

		positions := []int{
			strings.Index(prompt, "You are a helpful medical AI assistant."),
			strings.Index(prompt, "Respond in Korean."),
			strings.Index(prompt, "Current context - Body Part: 무릎."),
			strings.Index(prompt, "Previous Context Summary: 지난 턴: 무릎 통증 호소"),
			strings.Index(prompt, "[Medical Fact 1] (내과): Fact A"),
			strings.Index(prompt, "[Medical Fact 2] (외과): Fact B"),
			strings.Index(prompt, "The schema must be exactly:"),
			strings.Index(prompt, `"risk_level"`),
		}

		for i, pos := range positions {
			require.GreaterOrEqual(t, pos, 0, "segment %d missing from prompt", i)
			if i > 0 {
				assert.Greater(t, pos, positions[i-1], "segment %d out of order", i)
			}
		}
	})

	t.Run("identical inputs produce identical prompts", func(t *testing.T) {
		a := BuildAnswerPrompt("무릎", "요약", facts)
		b := BuildAnswerPrompt("무릎", "요약", facts)
		assert.Equal(t, a, b)
	})

	t.Run("empty summary yields explicit no-context marker", func(t *testing.T) {
		prompt := BuildAnswerPrompt("심장", "", nil)
		assert.Contains(t, prompt, "No previous context.")
		assert.NotContains(t, prompt, "Previous Context Summary:")
	})

	t.Run("no reference block without facts", func(t *testing.T) {
		prompt := BuildAnswerPrompt("심장", "", nil)
		assert.NotContains(t, prompt, "[Medical Fact")
		assert.NotContains(t, prompt, "Reference knowledge")
	})

	t.Run("schema names all four answer fields", func(t *testing.T) {
		prompt := BuildAnswerPrompt("폐", "", nil)
		for _, field := range []string{`"answer"`, `"confidence_score"`, `"risk_level"`, `"updated_summary"`} {
			assert.Contains(t, prompt, field)
		}
	})
}

func TestFormatFacts(t *testing.T) {
	facts := []models.RetrievedFact{
		{Content: "Fact A", Category: "cardio"},
		{Content: "Fact B", Category: "neuro"},
	}

	block := FormatFacts(facts)
	assert.Equal(t, "[Medical Fact 1] (cardio): Fact A\n\n[Medical Fact 2] (neuro): Fact B", block)
}
