package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"medinfo-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vector []float64
	err    error
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

type fakeSearcher struct {
	facts []models.RetrievedFact
	err   error

	gotTopK      int
	gotThreshold float64
}

func (f *fakeSearcher) Search(ctx context.Context, embedding []float64, category string, topK int, threshold float64) ([]models.RetrievedFact, error) {
	f.gotTopK = topK
	f.gotThreshold = threshold
	if f.err != nil {
		return nil, f.err
	}
	return f.facts, nil
}

type fakeGenerator struct {
	response  string
	err       error
	gotPrompt string
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.gotPrompt = systemPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeQueryStore struct {
	created []*models.UserQuery
	listed  []*models.UserQuery
	err     error
}

func (f *fakeQueryStore) Create(ctx context.Context, query *models.UserQuery) error {
	if f.err != nil {
		return f.err
	}
	query.ID = int64(len(f.created) + 1)
	f.created = append(f.created, query)
	return nil
}

func (f *fakeQueryStore) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuery, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed, nil
}

type fakeContextStore struct {
	created []*models.UserMedicalContext
	err     error
}

func (f *fakeContextStore) Create(ctx context.Context, mc *models.UserMedicalContext) error {
	if f.err != nil {
		return f.err
	}
	mc.ID = int64(len(f.created) + 1)
	f.created = append(f.created, mc)
	return nil
}

func (f *fakeContextStore) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserMedicalContext, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func newTestService(embedder Embedder, searcher KnowledgeSearcher, generator Generator, queries QueryStore) *ChatService {
	return NewChatService(
		ChatWithEmbedder(embedder),
		ChatWithKnowledgeStore(searcher),
		ChatWithGenerator(generator),
		ChatWithQueryStore(queries),
	)
}

func validRequest() AnswerQuestionRequest {
	return AnswerQuestionRequest{
		UserID:        uuid.New(),
		BodyPartID:    1,
		BodyPartLabel: "무릎",
		Question:      "무릎이 부었어요",
	}
}

const goodResponse = `{"answer":"냉찜질을 하고 경과를 지켜보세요.","confidence_score":0.8,"risk_level":2,"updated_summary":"무릎 부종 호소, 냉찜질 안내"}`

func TestAnswerQuestion(t *testing.T) {
	t.Run("full turn with retrieved facts", func(t *testing.T) {
		searcher := &fakeSearcher{facts: []models.RetrievedFact{
			{Content: "무릎 부종 관련 지식", Category: "외과", Similarity: 0.9},
		}}
		generator := &fakeGenerator{response: goodResponse}
		queries := &fakeQueryStore{}
		svc := newTestService(&fakeEmbedder{vector: []float64{0.1}}, searcher, generator, queries)

		result, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Contains(t, generator.gotPrompt, "[Medical Fact 1] (외과): 무릎 부종 관련 지식")
		assert.Equal(t, 3, searcher.gotTopK)
		assert.Equal(t, 0.6, searcher.gotThreshold)

		require.Len(t, queries.created, 1)
		assert.Equal(t, "냉찜질을 하고 경과를 지켜보세요.", queries.created[0].Answer)
		assert.Equal(t, 0.8, queries.created[0].ConfidenceScore)

		assert.Equal(t, "무릎 부종 호소, 냉찜질 안내", result.Context.Summary)
		assert.Equal(t, 2, result.Context.RiskLevel)
	})

	t.Run("empty corpus still answers", func(t *testing.T) {
		generator := &fakeGenerator{response: goodResponse}
		queries := &fakeQueryStore{}
		svc := newTestService(&fakeEmbedder{vector: []float64{0.1}}, &fakeSearcher{}, generator, queries)

		req := validRequest()
		req.Question = "열이 나요"

		_, err := svc.AnswerQuestion(context.Background(), req)
		require.NoError(t, err)
		assert.NotContains(t, generator.gotPrompt, "[Medical Fact")
		assert.Len(t, queries.created, 1)
	})

	t.Run("retrieval failure is absorbed", func(t *testing.T) {
		generator := &fakeGenerator{response: goodResponse}
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{err: errors.New("embedding api down")},
			&fakeSearcher{},
			generator,
			queries,
		)

		_, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.NoError(t, err)
		assert.NotContains(t, generator.gotPrompt, "[Medical Fact")
		assert.Len(t, queries.created, 1)
	})

	t.Run("malformed generation persists nothing", func(t *testing.T) {
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{},
			&fakeGenerator{response: "죄송하지만 답변할 수 없습니다."},
			queries,
		)

		_, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrMalformedGeneration)
		assert.Empty(t, queries.created)
	})

	t.Run("missing risk level persists nothing", func(t *testing.T) {
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{},
			&fakeGenerator{response: `{"answer":"ok","confidence_score":0.8,"updated_summary":"s"}`},
			queries,
		)

		_, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrMissingRiskLevel)
		assert.Empty(t, queries.created)
	})

	t.Run("empty summary persists nothing", func(t *testing.T) {
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{},
			&fakeGenerator{response: `{"answer":"ok","confidence_score":0.8,"risk_level":2,"updated_summary":"  "}`},
			queries,
		)

		_, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrEmptySummary)
		assert.Empty(t, queries.created)
	})

	t.Run("out-of-range values are clamped before persisting", func(t *testing.T) {
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{},
			&fakeGenerator{response: `{"answer":"ok","confidence_score":1.4,"risk_level":9,"updated_summary":"s"}`},
			queries,
		)

		result, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, queries.created, 1)
		assert.Equal(t, 1.0, queries.created[0].ConfidenceScore)
		assert.Equal(t, 5, result.Context.RiskLevel)
	})

	t.Run("generator error propagates", func(t *testing.T) {
		queries := &fakeQueryStore{}
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{},
			&fakeGenerator{err: ErrGenerationTimeout},
			queries,
		)

		_, err := svc.AnswerQuestion(context.Background(), validRequest())
		require.ErrorIs(t, err, ErrGenerationTimeout)
		assert.Empty(t, queries.created)
	})

	t.Run("blank question rejected", func(t *testing.T) {
		svc := newTestService(&fakeEmbedder{vector: []float64{0.1}}, &fakeSearcher{}, &fakeGenerator{response: goodResponse}, &fakeQueryStore{})

		req := validRequest()
		req.Question = "   "

		_, err := svc.AnswerQuestion(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestRetrieveFacts(t *testing.T) {
	t.Run("wraps search failures", func(t *testing.T) {
		svc := newTestService(
			&fakeEmbedder{vector: []float64{0.1}},
			&fakeSearcher{err: errors.New("connection refused")},
			&fakeGenerator{},
			&fakeQueryStore{},
		)

		_, err := svc.RetrieveFacts(context.Background(), "질문", "")
		assert.ErrorIs(t, err, ErrRetrievalFailed)
	})

	t.Run("no embedder means no facts, no error", func(t *testing.T) {
		svc := NewChatService(ChatWithQueryStore(&fakeQueryStore{}))

		facts, err := svc.RetrieveFacts(context.Background(), "질문", "")
		require.NoError(t, err)
		assert.Empty(t, facts)
	})
}

func TestListQueries(t *testing.T) {
	userID := uuid.New()
	queries := &fakeQueryStore{listed: []*models.UserQuery{
		{ID: 2, UserID: userID, Question: "최근 질문"},
		{ID: 1, UserID: userID, Question: "이전 질문"},
	}}
	svc := NewChatService(ChatWithQueryStore(queries))

	result, err := svc.ListQueries(context.Background(), ListQueriesRequest{UserID: userID})
	require.NoError(t, err)
	require.Len(t, result.Queries, 2)
	assert.Equal(t, "최근 질문", result.Queries[0].Question)
}

func TestSaveMedicalContext(t *testing.T) {
	userID := uuid.New()

	t.Run("valid context is archived", func(t *testing.T) {
		contexts := &fakeContextStore{}
		svc := NewChatService(ChatWithContextStore(contexts))

		result, err := svc.SaveMedicalContext(context.Background(), SaveMedicalContextRequest{
			UserID:    userID,
			AgentID:   1,
			Summary:   "무릎 통증 상담 종료",
			RiskLevel: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Context.ID)
		require.Len(t, contexts.created, 1)
	})

	t.Run("risk level out of bounds rejected", func(t *testing.T) {
		svc := NewChatService(ChatWithContextStore(&fakeContextStore{}))

		for _, level := range []int{0, 6, -1} {
			_, err := svc.SaveMedicalContext(context.Background(), SaveMedicalContextRequest{
				UserID:    userID,
				AgentID:   1,
				Summary:   "요약",
				RiskLevel: level,
			})
			assert.Error(t, err)
		}
	})

	t.Run("blank summary rejected", func(t *testing.T) {
		svc := NewChatService(ChatWithContextStore(&fakeContextStore{}))

		_, err := svc.SaveMedicalContext(context.Background(), SaveMedicalContextRequest{
			UserID:    userID,
			AgentID:   1,
			Summary:   strings.Repeat(" ", 3),
			RiskLevel: 2,
		})
		assert.ErrorIs(t, err, ErrEmptySummary)
	})
}
