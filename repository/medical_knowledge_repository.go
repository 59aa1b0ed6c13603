package repository

import (
	"context"
	"fmt"
	"strings"

	"medinfo-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MedicalKnowledgeRepository handles database operations for the embedded
// medical knowledge corpus
type MedicalKnowledgeRepository struct {
	db *pgxpool.Pool
}

// NewMedicalKnowledgeRepository creates a new medical knowledge repository
func NewMedicalKnowledgeRepository(db *pgxpool.Pool) *MedicalKnowledgeRepository {
	return &MedicalKnowledgeRepository{db: db}
}

// EmbeddingDimensions is the output dimensionality of text-embedding-004
const EmbeddingDimensions = 768

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Search performs a cosine similarity search over the knowledge corpus.
// embedding: Query embedding vector (768 dimensions)
// category: Optional category filter ("" searches the whole corpus)
// topK: Maximum number of facts to return
// threshold: Only facts with similarity strictly above this value qualify
//
// Results are ordered by similarity descending; ties break by id ascending
// so that repeated searches over the same corpus are deterministic.
func (r *MedicalKnowledgeRepository) Search(
	ctx context.Context,
	embedding []float64,
	category string,
	topK int,
	threshold float64,
) ([]models.RetrievedFact, error) {
	if len(embedding) != EmbeddingDimensions {
		return nil, fmt.Errorf("embedding must be %d dimensions, got %d", EmbeddingDimensions, len(embedding))
	}

	vectorStr := formatVector(embedding)

	var categoryFilter string
	var args []interface{}
	if category == "" {
		categoryFilter = ""
		args = []interface{}{vectorStr, threshold, topK}
	} else {
		categoryFilter = "AND category = $4"
		args = []interface{}{vectorStr, threshold, topK, category}
	}

	query := fmt.Sprintf(`
		SELECT
			content,
			category,
			1 - (embedding <=> $1::vector) AS similarity
		FROM medical_knowledge
		WHERE
			1 - (embedding <=> $1::vector) > $2
			%s
		ORDER BY
			similarity DESC,
			id ASC
		LIMIT $3`, categoryFilter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical knowledge: %w", err)
	}
	defer rows.Close()

	var facts []models.RetrievedFact
	for rows.Next() {
		var fact models.RetrievedFact
		err := rows.Scan(
			&fact.Content,
			&fact.Category,
			&fact.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medical knowledge: %w", err)
		}
		facts = append(facts, fact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating medical knowledge: %w", err)
	}

	return facts, nil
}

// InsertBatch stores a batch of knowledge records in one transaction.
// Used only by the ingestion pipeline; query-time traffic never writes here.
func (r *MedicalKnowledgeRepository) InsertBatch(ctx context.Context, records []models.MedicalKnowledge) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO medical_knowledge (category, content, embedding, created_at, updated_at)
		VALUES ($1, $2, $3::vector, NOW(), NOW())`

	for i, record := range records {
		if len(record.Embedding) != EmbeddingDimensions {
			return fmt.Errorf("record %d has %d dimensions, want %d", i, len(record.Embedding), EmbeddingDimensions)
		}
		_, err = tx.Exec(ctx, query, record.Category, record.Content, formatVector(record.Embedding))
		if err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Count returns the number of knowledge records currently stored
func (r *MedicalKnowledgeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM medical_knowledge").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count medical knowledge: %w", err)
	}
	return count, nil
}
