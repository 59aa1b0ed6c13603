package models

import (
	"time"

	"github.com/google/uuid"
)

// UserMedicalContext is a consultation summary archived when the user ends
// a chat session, distinct from the per-turn summary carried by the caller.
type UserMedicalContext struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	AgentID     int64     `json:"agent_id"`
	Summary     string    `json:"summary"`
	RiskLevel   int       `json:"risk_level"`
	ConsultedAt time.Time `json:"consulted_at"`
}
