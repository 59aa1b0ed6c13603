package models

import (
	"time"
)

// MedicalKnowledge represents one entry of the embedded medical corpus.
// Rows are created by the ingestion pipeline and are immutable afterwards
// except for re-embedding on a corpus refresh.
type MedicalKnowledge struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"` // 진료과, e.g. "내과", "신경과"
	Content   string    `json:"content"`
	Embedding []float64 `json:"-"` // 768 dimensions, pgvector column
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RetrievedFact is a transient search hit used to ground one answer.
// It is never persisted; Similarity is 1 - cosine distance.
type RetrievedFact struct {
	Content    string  `json:"content"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}
