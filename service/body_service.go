package service

import (
	"context"
	"errors"

	"medinfo-backend/models"

	"github.com/jackc/pgx/v5"
)

// BodyCatalog is the read contract over the anatomy catalog
type BodyCatalog interface {
	GetByID(ctx context.Context, id int64) (*models.BodyPart, error)
	Lookup(ctx context.Context, id int64) (*models.BodyPart, error)
	List(ctx context.Context, systemID *int64) ([]*models.BodyPart, error)
	ListSystems(ctx context.Context) ([]*models.BodySystem, error)
	ListDiseases(ctx context.Context, bodyPartID int64) ([]*models.Disease, error)
}

// BodyService exposes the anatomy catalog backing the consultation flow
type BodyService struct {
	catalog BodyCatalog
}

// NewBodyService creates a new body catalog service
func NewBodyService(catalog BodyCatalog) *BodyService {
	return &BodyService{catalog: catalog}
}

// GetBodyPart returns one body part with its system attached. Each
// lookup counts as a view.
func (s *BodyService) GetBodyPart(ctx context.Context, id int64) (*models.BodyPart, error) {
	part, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBodyPartNotFound
		}
		return nil, err
	}
	return part, nil
}

// ResolveLabel resolves the display name of a body part without
// counting a view. Used by the consultation flow to anchor prompts.
func (s *BodyService) ResolveLabel(ctx context.Context, id int64) (string, error) {
	part, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrBodyPartNotFound
		}
		return "", err
	}
	return part.Label(), nil
}

// ListBodyParts returns the catalog, optionally filtered by system
func (s *BodyService) ListBodyParts(ctx context.Context, systemID *int64) ([]*models.BodyPart, error) {
	return s.catalog.List(ctx, systemID)
}

// ListBodySystems returns all body systems
func (s *BodyService) ListBodySystems(ctx context.Context) ([]*models.BodySystem, error) {
	return s.catalog.ListSystems(ctx)
}

// ListDiseases returns the diseases associated with a body part,
// most severe first
func (s *BodyService) ListDiseases(ctx context.Context, bodyPartID int64) ([]*models.Disease, error) {
	return s.catalog.ListDiseases(ctx, bodyPartID)
}
