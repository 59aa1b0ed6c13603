package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
)

const (
	embeddingModelName  = "text-embedding-004"
	generationModelName = "gemini-2.5-flash"

	// Low temperature: answering is structured extraction, not creative
	// generation, and the JSON contract tolerates little variance.
	generationTemperature = 0.2
)

// Embedder turns text into a fixed-length dense vector.
// Both methods are deterministic per input for a fixed model version.
type Embedder interface {
	// EmbedQuery embeds a user question for retrieval
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	// EmbedDocuments embeds a batch of corpus documents. Output order
	// matches input order: index i of the result corresponds to texts[i].
	EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error)
}

// Generator produces a machine-readable JSON answer for a composed prompt
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// GeminiClient implements Embedder and Generator over the Gemini API
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient wraps an initialized genai client
func NewGeminiClient(client *genai.Client) *GeminiClient {
	return &GeminiClient{client: client}
}

// EmbedQuery embeds a retrieval query with the RETRIEVAL_QUERY task type
func (g *GeminiClient) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	em := g.client.EmbeddingModel(embeddingModelName)
	em.TaskType = genai.TaskTypeRetrievalQuery

	// Newlines degrade embedding quality for short queries
	cleanText := strings.ReplaceAll(text, "\n", " ")

	res, err := em.EmbedContent(ctx, genai.Text(cleanText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding in response", ErrEmbeddingUnavailable)
	}

	return toFloat64(res.Embedding.Values), nil
}

// EmbedDocuments embeds a batch of documents with the RETRIEVAL_DOCUMENT
// task type. The Gemini batch API preserves request order, which the
// ingestion pipeline relies on to zip vectors back to source documents.
func (g *GeminiClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	em := g.client.EmbeddingModel(embeddingModelName)
	em.TaskType = genai.TaskTypeRetrievalDocument

	batch := em.NewBatch()
	for _, text := range texts {
		batch = batch.AddContent(genai.Text(text))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}
	if res == nil || len(res.Embeddings) != len(texts) {
		got := 0
		if res != nil {
			got = len(res.Embeddings)
		}
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbeddingUnavailable, got, len(texts))
	}

	vectors := make([][]float64, len(texts))
	for i, emb := range res.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("%w: document %d has empty embedding", ErrEmbeddingUnavailable, i)
		}
		vectors[i] = toFloat64(emb.Values)
	}

	return vectors, nil
}

// GenerateJSON asks the generation model for a strict JSON answer
func (g *GeminiClient) GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m := g.client.GenerativeModel(generationModelName)
	m.SetTemperature(generationTemperature)
	m.ResponseMIMEType = "application/json"
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	// Medical symptom questions trip the default thresholds; only block
	// the highest-confidence harm categories.
	m.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockOnlyHigh},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockOnlyHigh},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrGenerationTimeout, err)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("generation returned no candidates")
	}

	var responseText strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				responseText.WriteString(string(text))
			}
		}
	}

	result := responseText.String()
	if result == "" {
		return "", errors.New("generation returned empty content")
	}

	return result, nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
