package repository

import (
	"context"
	"fmt"

	"medinfo-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BodyPartRepository handles database operations for the body catalog
type BodyPartRepository struct {
	db *pgxpool.Pool
}

// NewBodyPartRepository creates a new body part repository
func NewBodyPartRepository(db *pgxpool.Pool) *BodyPartRepository {
	return &BodyPartRepository{db: db}
}

// GetByID retrieves a body part with its system, incrementing the view
// counter used for the popular-parts ranking
func (r *BodyPartRepository) GetByID(ctx context.Context, id int64) (*models.BodyPart, error) {
	part := &models.BodyPart{System: &models.BodySystem{}}
	query := `
		UPDATE body_parts p SET
			view_count = p.view_count + 1,
			updated_at = NOW()
		FROM body_systems s
		WHERE p.id = $1 AND s.id = p.system_id
		RETURNING p.id, p.system_id, p.code, p.name_ko, p.name_en, p.description,
			p.roles, p.observation_points, p.view_count, p.created_at, p.updated_at,
			s.id, s.code, s.name_ko, s.name_en, s.description`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&part.ID,
		&part.SystemID,
		&part.Code,
		&part.NameKo,
		&part.NameEn,
		&part.Description,
		&part.Roles,
		&part.ObservationPoints,
		&part.ViewCount,
		&part.CreatedAt,
		&part.UpdatedAt,
		&part.System.ID,
		&part.System.Code,
		&part.System.NameKo,
		&part.System.NameEn,
		&part.System.Description,
	)

	if err != nil {
		return nil, err
	}

	return part, nil
}

// Lookup retrieves a body part without touching the view counter
func (r *BodyPartRepository) Lookup(ctx context.Context, id int64) (*models.BodyPart, error) {
	part := &models.BodyPart{}
	query := `
		SELECT id, system_id, code, name_ko, name_en, description,
			roles, observation_points, view_count, created_at, updated_at
		FROM body_parts
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&part.ID,
		&part.SystemID,
		&part.Code,
		&part.NameKo,
		&part.NameEn,
		&part.Description,
		&part.Roles,
		&part.ObservationPoints,
		&part.ViewCount,
		&part.CreatedAt,
		&part.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return part, nil
}

// List retrieves all body parts, optionally filtered by system
func (r *BodyPartRepository) List(ctx context.Context, systemID *int64) ([]*models.BodyPart, error) {
	query := `
		SELECT id, system_id, code, name_ko, name_en, description,
			roles, observation_points, view_count, created_at, updated_at
		FROM body_parts`
	var args []interface{}
	if systemID != nil {
		query += " WHERE system_id = $1"
		args = append(args, *systemID)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query body parts: %w", err)
	}
	defer rows.Close()

	var parts []*models.BodyPart
	for rows.Next() {
		part := &models.BodyPart{}
		err := rows.Scan(
			&part.ID,
			&part.SystemID,
			&part.Code,
			&part.NameKo,
			&part.NameEn,
			&part.Description,
			&part.Roles,
			&part.ObservationPoints,
			&part.ViewCount,
			&part.CreatedAt,
			&part.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan body part: %w", err)
		}
		parts = append(parts, part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating body parts: %w", err)
	}

	return parts, nil
}

// ListSystems retrieves all body systems
func (r *BodyPartRepository) ListSystems(ctx context.Context) ([]*models.BodySystem, error) {
	query := `
		SELECT id, code, name_ko, name_en, description, created_at, updated_at
		FROM body_systems
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query body systems: %w", err)
	}
	defer rows.Close()

	var systems []*models.BodySystem
	for rows.Next() {
		system := &models.BodySystem{}
		err := rows.Scan(
			&system.ID,
			&system.Code,
			&system.NameKo,
			&system.NameEn,
			&system.Description,
			&system.CreatedAt,
			&system.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan body system: %w", err)
		}
		systems = append(systems, system)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating body systems: %w", err)
	}

	return systems, nil
}

// ListDiseases retrieves the diseases associated with a body part
func (r *BodyPartRepository) ListDiseases(ctx context.Context, bodyPartID int64) ([]*models.Disease, error) {
	query := `
		SELECT id, body_part_id, name, description, symptoms, severity,
			requires_medical_attention, created_at, updated_at
		FROM diseases
		WHERE body_part_id = $1
		ORDER BY severity DESC, id`

	rows, err := r.db.Query(ctx, query, bodyPartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query diseases: %w", err)
	}
	defer rows.Close()

	var diseases []*models.Disease
	for rows.Next() {
		disease := &models.Disease{}
		err := rows.Scan(
			&disease.ID,
			&disease.BodyPartID,
			&disease.Name,
			&disease.Description,
			&disease.Symptoms,
			&disease.Severity,
			&disease.RequiresMedicalAttention,
			&disease.CreatedAt,
			&disease.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disease: %w", err)
		}
		diseases = append(diseases, disease)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating diseases: %w", err)
	}

	return diseases, nil
}
