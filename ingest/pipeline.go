package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"medinfo-backend/models"
	"medinfo-backend/storage"
)

const (
	// Gemini batch embedding caps at 100 contents per call
	batchSize = 100

	// Pause between batches to stay under the API rate limit
	batchCooldown = 1 * time.Second
)

// DocumentEmbedder produces one vector per input text, order-preserving
type DocumentEmbedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)
}

// KnowledgeWriter persists embedded knowledge records
type KnowledgeWriter interface {
	InsertBatch(ctx context.Context, records []models.MedicalKnowledge) error
}

// Pipeline reads the source corpus, embeds it in batches, and loads the
// knowledge store. It is an offline job; one run at a time.
type Pipeline struct {
	store    storage.SourceStore
	embedder DocumentEmbedder
	writer   KnowledgeWriter

	cooldown time.Duration
}

// NewPipeline creates a new ingestion pipeline
func NewPipeline(store storage.SourceStore, embedder DocumentEmbedder, writer KnowledgeWriter) *Pipeline {
	return &Pipeline{
		store:    store,
		embedder: embedder,
		writer:   writer,
		cooldown: batchCooldown,
	}
}

// Stats summarizes one ingestion run
type Stats struct {
	FilesSeen    int
	FilesSkipped int
	Inserted     int
}

// Run processes the whole source corpus. Unreadable or unparsable files
// are logged and skipped; an embedding or insert failure aborts the run
// so a partial batch is never silently lost.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	keys, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	var buffer []Document

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.FilesSeen++

		docs, err := p.readSource(ctx, key)
		if err != nil {
			log.Printf("Warning: skipping source %s: %v", key, err)
			stats.FilesSkipped++
			continue
		}

		buffer = append(buffer, docs...)

		for len(buffer) >= batchSize {
			if err := p.flush(ctx, buffer[:batchSize]); err != nil {
				return stats, err
			}
			stats.Inserted += batchSize
			buffer = buffer[batchSize:]

			log.Printf("Inserted %d knowledge records so far", stats.Inserted)
			time.Sleep(p.cooldown)
		}
	}

	if len(buffer) > 0 {
		if err := p.flush(ctx, buffer); err != nil {
			return stats, err
		}
		stats.Inserted += len(buffer)
	}

	return stats, nil
}

func (p *Pipeline) readSource(ctx context.Context, key string) ([]Document, error) {
	reader, err := p.store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	return ParseSourceDocument(data, GuessCategory(key))
}

// flush embeds one batch and writes the records, zipping vectors back to
// documents by index
func (p *Pipeline) flush(ctx context.Context, docs []Document) error {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}

	vectors, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed batch: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedding count mismatch: got %d vectors for %d documents", len(vectors), len(docs))
	}

	records := make([]models.MedicalKnowledge, len(docs))
	for i, doc := range docs {
		records[i] = models.MedicalKnowledge{
			Category:  doc.Category,
			Content:   doc.Content,
			Embedding: vectors[i],
		}
	}

	if err := p.writer.InsertBatch(ctx, records); err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	return nil
}
