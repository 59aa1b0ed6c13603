package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawAnswer holds the generator output after the structural parse but
// before normalization. ConfidenceScore and RiskLevel stay untyped here:
// generators return numbers, numeric strings, or nothing at all, and the
// finalize step owns the coercion rules.
type RawAnswer struct {
	Answer          string
	ConfidenceScore interface{}
	RiskLevel       interface{}
	UpdatedSummary  string
}

// stripCodeFences removes markdown code-fence markers that generation
// models frequently wrap around JSON output
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseRawAnswer parses generator output against the answer schema.
// A body that is not a JSON object, or that lacks a usable "answer"
// string, fails with ErrMalformedGeneration carrying the raw text for
// diagnostics. Bounds on the numeric fields are not checked here; that
// is the finalize step's job.
func parseRawAnswer(text string) (*RawAnswer, error) {
	clean := stripCodeFences(text)

	decoder := json.NewDecoder(bytes.NewReader([]byte(clean)))
	decoder.UseNumber()

	var fields map[string]interface{}
	if err := decoder.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %q)", ErrMalformedGeneration, err, text)
	}

	answer, ok := fields["answer"].(string)
	if !ok || strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: missing answer field (raw: %q)", ErrMalformedGeneration, text)
	}

	raw := &RawAnswer{
		Answer:          answer,
		ConfidenceScore: fields["confidence_score"],
		RiskLevel:       fields["risk_level"],
	}
	if summary, ok := fields["updated_summary"].(string); ok {
		raw.UpdatedSummary = summary
	}

	return raw, nil
}

// toNumber coerces a decoded JSON value to a float64 where possible
func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// normalizeConfidence clamps a reported confidence score to [0,1].
// A missing, non-finite, or negative value becomes the neutral 0.5;
// an over-reported value is capped at 1.
func normalizeConfidence(v interface{}) float64 {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return neutralConfidence
	}
	if f > 1 {
		return 1
	}
	return f
}

// normalizeRiskLevel clamps a reported risk level to [1,5]. Unlike
// confidence, a missing or uncoercible value is a hard failure: risk
// feeds triage decisions and must never be fabricated.
func normalizeRiskLevel(v interface{}) (int, error) {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrMissingRiskLevel
	}
	level := int(math.Round(f))
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return level, nil
}
