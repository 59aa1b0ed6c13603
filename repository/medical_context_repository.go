package repository

import (
	"context"
	"fmt"

	"medinfo-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MedicalContextRepository handles database operations for archived
// consultation summaries
type MedicalContextRepository struct {
	db *pgxpool.Pool
}

// NewMedicalContextRepository creates a new medical context repository
func NewMedicalContextRepository(db *pgxpool.Pool) *MedicalContextRepository {
	return &MedicalContextRepository{db: db}
}

// Create archives a final consultation summary
func (r *MedicalContextRepository) Create(ctx context.Context, mc *models.UserMedicalContext) error {
	query := `
		INSERT INTO user_medical_contexts (
			user_id, agent_id, summary, risk_level
		) VALUES ($1, $2, $3, $4)
		RETURNING id, consulted_at`

	err := r.db.QueryRow(
		ctx, query,
		mc.UserID,
		mc.AgentID,
		mc.Summary,
		mc.RiskLevel,
	).Scan(&mc.ID, &mc.ConsultedAt)

	if err != nil {
		return fmt.Errorf("failed to insert medical context: %w", err)
	}

	return nil
}

// ListByUserID retrieves the archived summaries for a user, newest first
func (r *MedicalContextRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserMedicalContext, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, agent_id, summary, risk_level, consulted_at
		FROM user_medical_contexts
		WHERE user_id = $1
		ORDER BY consulted_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical contexts: %w", err)
	}
	defer rows.Close()

	var contexts []*models.UserMedicalContext
	for rows.Next() {
		mc := &models.UserMedicalContext{}
		err := rows.Scan(
			&mc.ID,
			&mc.UserID,
			&mc.AgentID,
			&mc.Summary,
			&mc.RiskLevel,
			&mc.ConsultedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medical context: %w", err)
		}
		contexts = append(contexts, mc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical contexts: %w", err)
	}

	return contexts, nil
}
