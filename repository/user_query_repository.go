package repository

import (
	"context"
	"fmt"

	"medinfo-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserQueryRepository handles database operations for the query log
type UserQueryRepository struct {
	db *pgxpool.Pool
}

// NewUserQueryRepository creates a new user query repository
func NewUserQueryRepository(db *pgxpool.Pool) *UserQueryRepository {
	return &UserQueryRepository{db: db}
}

// Create appends one finished turn to the query log
func (r *UserQueryRepository) Create(ctx context.Context, query *models.UserQuery) error {
	sql := `
		INSERT INTO user_queries (
			user_id, body_part_id, question, answer, confidence_score
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, sql,
		query.UserID,
		query.BodyPartID,
		query.Question,
		query.Answer,
		query.ConfidenceScore,
	).Scan(&query.ID, &query.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert user query: %w", err)
	}

	return nil
}

// ListByUserID retrieves the most recent turns for a user
func (r *UserQueryRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuery, error) {
	if limit <= 0 {
		limit = 20
	}

	sql := `
		SELECT id, user_id, body_part_id, question, answer, confidence_score, created_at
		FROM user_queries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, sql, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query user queries: %w", err)
	}
	defer rows.Close()

	var queries []*models.UserQuery
	for rows.Next() {
		query := &models.UserQuery{}
		err := rows.Scan(
			&query.ID,
			&query.UserID,
			&query.BodyPartID,
			&query.Question,
			&query.Answer,
			&query.ConfidenceScore,
			&query.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user query: %w", err)
		}
		queries = append(queries, query)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user queries: %w", err)
	}

	return queries, nil
}
