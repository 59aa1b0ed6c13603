package models

import (
	"time"

	"github.com/google/uuid"
)

// UserQuery is the persisted log of one question/answer turn.
// Rows are append-only; the core never updates or deletes them.
type UserQuery struct {
	ID              int64     `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	BodyPartID      int64     `json:"body_part_id"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	ConfidenceScore float64   `json:"confidence_score"` // always within [0,1]
	CreatedAt       time.Time `json:"created_at"`
}

// MedicalContextSummary is the rolling conversation memory returned to the
// caller after each turn. The caller resubmits Summary as previous_summary
// on the next request; nothing is cached server-side between turns.
type MedicalContextSummary struct {
	Summary   string `json:"summary"`
	RiskLevel int    `json:"risk_level"` // 1 (safe) to 5 (emergency)
}
