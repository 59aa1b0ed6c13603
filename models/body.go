package models

import (
	"time"
)

// BodySystem represents a body system grouping (계통), e.g. musculoskeletal
type BodySystem struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"` // "SKELETAL", "CARDIO", ...
	NameKo      string    `json:"name_ko"`
	NameEn      string    `json:"name_en"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BodyPart represents a selectable body region within a system
type BodyPart struct {
	ID                int64       `json:"id"`
	SystemID          int64       `json:"system_id"`
	Code              string      `json:"code"` // "KNEE", "HEART", ...
	NameKo            string      `json:"name_ko"`
	NameEn            string      `json:"name_en"`
	Description       string      `json:"description"`
	Roles             []string    `json:"roles"`
	ObservationPoints []string    `json:"observation_points"`
	ViewCount         int64       `json:"view_count"`
	System            *BodySystem `json:"system,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// Label returns the display label for chat context, preferring Korean
func (p *BodyPart) Label() string {
	if p.NameKo != "" {
		return p.NameKo
	}
	if p.NameEn != "" {
		return p.NameEn
	}
	return "Unknown Part"
}

// Disease represents a known condition associated with a body part
type Disease struct {
	ID                       int64     `json:"id"`
	BodyPartID               int64     `json:"body_part_id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description"`
	Symptoms                 string    `json:"symptoms"`
	Severity                 int       `json:"severity"` // 1 (mild) to 5 (emergency)
	RequiresMedicalAttention bool      `json:"requires_medical_attention"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}
