package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"medinfo-backend/models"

	"github.com/google/uuid"
)

var (
	ErrBodyPartNotFound     = errors.New("body part not found")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	ErrRetrievalFailed      = errors.New("failed to retrieve medical knowledge")
	ErrMalformedGeneration  = errors.New("generator output does not match the answer schema")
	ErrMissingRiskLevel     = errors.New("generator output missing risk_level")
	ErrEmptySummary         = errors.New("generator output missing updated_summary")
	ErrGenerationTimeout    = errors.New("generation deadline exceeded")
)

const (
	// Retrieval cutoffs: at most retrievalTopK facts per prompt, each with
	// similarity strictly above retrievalThreshold.
	retrievalTopK      = 3
	retrievalThreshold = 0.6

	neutralConfidence = 0.5

	// Independent deadlines per I/O boundary; a blown deadline surfaces as
	// the corresponding failure kind instead of hanging the request.
	embedTimeout    = 30 * time.Second
	searchTimeout   = 10 * time.Second
	generateTimeout = 120 * time.Second
)

// KnowledgeSearcher is the store-side similarity search contract
type KnowledgeSearcher interface {
	Search(ctx context.Context, embedding []float64, category string, topK int, threshold float64) ([]models.RetrievedFact, error)
}

// QueryStore persists and lists finished turns
type QueryStore interface {
	Create(ctx context.Context, query *models.UserQuery) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuery, error)
}

// ContextStore archives final consultation summaries
type ContextStore interface {
	Create(ctx context.Context, mc *models.UserMedicalContext) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserMedicalContext, error)
}

// ChatService runs the question-answering pipeline: retrieve reference
// knowledge, compose the prompt, generate a structured answer, validate
// it, and persist the turn. It keeps no state between requests; the
// conversation memory travels with the caller.
type ChatService struct {
	knowledge KnowledgeSearcher
	queries   QueryStore
	contexts  ContextStore
	embedder  Embedder
	generator Generator
}

// ChatServiceOption is a functional option for ChatService
type ChatServiceOption func(*ChatService)

// ChatWithKnowledgeStore sets the knowledge search backend
func ChatWithKnowledgeStore(store KnowledgeSearcher) ChatServiceOption {
	return func(s *ChatService) {
		s.knowledge = store
	}
}

// ChatWithQueryStore sets the query log backend
func ChatWithQueryStore(store QueryStore) ChatServiceOption {
	return func(s *ChatService) {
		s.queries = store
	}
}

// ChatWithContextStore sets the consultation archive backend
func ChatWithContextStore(store ContextStore) ChatServiceOption {
	return func(s *ChatService) {
		s.contexts = store
	}
}

// ChatWithEmbedder sets the embedding client
func ChatWithEmbedder(embedder Embedder) ChatServiceOption {
	return func(s *ChatService) {
		s.embedder = embedder
	}
}

// ChatWithGenerator sets the generation client
func ChatWithGenerator(generator Generator) ChatServiceOption {
	return func(s *ChatService) {
		s.generator = generator
	}
}

// NewChatService creates a new chat service
func NewChatService(opts ...ChatServiceOption) *ChatService {
	s := &ChatService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnswerQuestionRequest represents one question turn
type AnswerQuestionRequest struct {
	UserID          uuid.UUID
	BodyPartID      int64
	BodyPartLabel   string
	Question        string
	PreviousSummary string
}

// AnswerQuestionResult carries the persisted turn and the updated
// conversation memory the caller must resubmit next turn
type AnswerQuestionResult struct {
	Query   *models.UserQuery
	Context models.MedicalContextSummary
}

// AnswerQuestion runs one full turn: embed → retrieve → compose →
// generate → finalize, strictly in that order.
//
// Retrieval failures are absorbed (the answer degrades to general
// knowledge); generation and validation failures terminate the turn with
// nothing persisted. That asymmetry is deliberate: reference knowledge
// is an enhancement, answer correctness is safety-critical.
func (s *ChatService) AnswerQuestion(ctx context.Context, req AnswerQuestionRequest) (*AnswerQuestionResult, error) {
	if s.queries == nil {
		return nil, errors.New("query store not set")
	}
	if s.generator == nil {
		return nil, errors.New("generator not set")
	}
	if strings.TrimSpace(req.Question) == "" {
		return nil, errors.New("question must not be empty")
	}

	facts, err := s.RetrieveFacts(ctx, req.Question, "")
	if err != nil {
		log.Printf("Warning: %v. Continuing with empty reference context.", err)
		facts = nil
	}

	prompt := BuildAnswerPrompt(req.BodyPartLabel, req.PreviousSummary, facts)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	text, err := s.generator.GenerateJSON(genCtx, prompt, req.Question)
	if err != nil {
		return nil, err
	}

	raw, err := parseRawAnswer(text)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, raw, req)
}

// RetrieveFacts embeds the question and pulls the most similar knowledge
// records, optionally restricted to one medical category. An empty result
// is a valid outcome; infrastructure failures return ErrRetrievalFailed,
// which AnswerQuestion absorbs (fail-open).
func (s *ChatService) RetrieveFacts(ctx context.Context, question, category string) ([]models.RetrievedFact, error) {
	if s.embedder == nil || s.knowledge == nil {
		return nil, nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	embedding, err := s.embedder.EmbedQuery(embedCtx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	searchCtx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	facts, err := s.knowledge.Search(searchCtx, embedding, category, retrievalTopK, retrievalThreshold)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	return facts, nil
}

// finalize normalizes the raw answer, persists the turn, and builds the
// updated memory summary. It runs to completion or not at all: any
// validation failure leaves the query log untouched.
func (s *ChatService) finalize(ctx context.Context, raw *RawAnswer, req AnswerQuestionRequest) (*AnswerQuestionResult, error) {
	confidence := normalizeConfidence(raw.ConfidenceScore)

	riskLevel, err := normalizeRiskLevel(raw.RiskLevel)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw.UpdatedSummary) == "" {
		return nil, ErrEmptySummary
	}

	query := &models.UserQuery{
		UserID:          req.UserID,
		BodyPartID:      req.BodyPartID,
		Question:        req.Question,
		Answer:          raw.Answer,
		ConfidenceScore: confidence,
	}

	if err := s.queries.Create(ctx, query); err != nil {
		return nil, fmt.Errorf("failed to persist turn: %w", err)
	}

	return &AnswerQuestionResult{
		Query: query,
		Context: models.MedicalContextSummary{
			Summary:   raw.UpdatedSummary,
			RiskLevel: riskLevel,
		},
	}, nil
}

// ListQueriesRequest represents a request to list a user's query log
type ListQueriesRequest struct {
	UserID uuid.UUID
	Limit  int
}

// ListQueriesResult represents the result of listing a user's query log
type ListQueriesResult struct {
	Queries []*models.UserQuery
}

// ListQueries returns the most recent turns for a user
func (s *ChatService) ListQueries(ctx context.Context, req ListQueriesRequest) (*ListQueriesResult, error) {
	if s.queries == nil {
		return nil, errors.New("query store not set")
	}

	queries, err := s.queries.ListByUserID(ctx, req.UserID, req.Limit)
	if err != nil {
		return nil, err
	}

	return &ListQueriesResult{Queries: queries}, nil
}

// SaveMedicalContextRequest represents a request to archive a final
// consultation summary
type SaveMedicalContextRequest struct {
	UserID    uuid.UUID
	AgentID   int64
	Summary   string
	RiskLevel int
}

// SaveMedicalContextResult represents the result of archiving a summary
type SaveMedicalContextResult struct {
	Context *models.UserMedicalContext
}

// SaveMedicalContext archives the final summary of a finished consultation
func (s *ChatService) SaveMedicalContext(ctx context.Context, req SaveMedicalContextRequest) (*SaveMedicalContextResult, error) {
	if s.contexts == nil {
		return nil, errors.New("context store not set")
	}
	if strings.TrimSpace(req.Summary) == "" {
		return nil, ErrEmptySummary
	}
	if req.RiskLevel < 1 || req.RiskLevel > 5 {
		return nil, fmt.Errorf("risk_level must be within [1,5], got %d", req.RiskLevel)
	}

	mc := &models.UserMedicalContext{
		UserID:    req.UserID,
		AgentID:   req.AgentID,
		Summary:   req.Summary,
		RiskLevel: req.RiskLevel,
	}

	if err := s.contexts.Create(ctx, mc); err != nil {
		return nil, err
	}

	return &SaveMedicalContextResult{Context: mc}, nil
}

// ListMedicalContexts returns a user's archived consultation summaries,
// newest first
func (s *ChatService) ListMedicalContexts(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserMedicalContext, error) {
	if s.contexts == nil {
		return nil, errors.New("context store not set")
	}
	return s.contexts.ListByUserID(ctx, userID, limit)
}
