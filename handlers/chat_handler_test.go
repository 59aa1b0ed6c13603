package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medinfo-backend/models"
	"medinfo-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct {
	parts map[int64]*models.BodyPart
}

func (s *stubCatalog) GetByID(ctx context.Context, id int64) (*models.BodyPart, error) {
	return s.Lookup(ctx, id)
}

func (s *stubCatalog) Lookup(ctx context.Context, id int64) (*models.BodyPart, error) {
	part, ok := s.parts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return part, nil
}

func (s *stubCatalog) List(ctx context.Context, systemID *int64) ([]*models.BodyPart, error) {
	return nil, nil
}

func (s *stubCatalog) ListSystems(ctx context.Context) ([]*models.BodySystem, error) {
	return nil, nil
}

func (s *stubCatalog) ListDiseases(ctx context.Context, bodyPartID int64) ([]*models.Disease, error) {
	return nil, nil
}

type stubGenerator struct {
	response string
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.response, nil
}

type stubQueryStore struct {
	created []*models.UserQuery
}

func (s *stubQueryStore) Create(ctx context.Context, query *models.UserQuery) error {
	query.ID = 1
	s.created = append(s.created, query)
	return nil
}

func (s *stubQueryStore) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*models.UserQuery, error) {
	return s.created, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubQueryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	queries := &stubQueryStore{}
	chatService := service.NewChatService(
		service.ChatWithQueryStore(queries),
		service.ChatWithGenerator(&stubGenerator{
			response: `{"answer":"휴식을 취하세요.","confidence_score":0.8,"risk_level":2,"updated_summary":"무릎 통증 상담"}`,
		}),
	)
	bodyService := service.NewBodyService(&stubCatalog{parts: map[int64]*models.BodyPart{
		1: {ID: 1, NameKo: "무릎", NameEn: "Knee"},
	}})

	handler := NewChatHandler(chatService, bodyService)

	r := gin.New()
	r.POST("/api/ai-chats/queries", handler.AskQuestion)
	r.GET("/api/ai-chats/queries", handler.ListQueries)
	return r, queries
}

func TestAskQuestion(t *testing.T) {
	t.Run("successful turn", func(t *testing.T) {
		r, queries := newTestRouter(t)

		body := `{"user_id":"` + uuid.NewString() + `","body_part_id":1,"question":"무릎이 아파요"}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai-chats/queries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Answer          string  `json:"answer"`
				ConfidenceScore float64 `json:"confidence_score"`
				MedicalContext  struct {
					Summary   string `json:"summary"`
					RiskLevel int    `json:"risk_level"`
				} `json:"medical_context"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "휴식을 취하세요.", resp.Data.Answer)
		assert.Equal(t, 0.8, resp.Data.ConfidenceScore)
		assert.Equal(t, "무릎 통증 상담", resp.Data.MedicalContext.Summary)
		assert.Equal(t, 2, resp.Data.MedicalContext.RiskLevel)
		assert.Len(t, queries.created, 1)
	})

	t.Run("unknown body part yields 404", func(t *testing.T) {
		r, queries := newTestRouter(t)

		body := `{"user_id":"` + uuid.NewString() + `","body_part_id":99,"question":"아파요"}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai-chats/queries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, queries.created)
	})

	t.Run("invalid user_id yields 400", func(t *testing.T) {
		r, _ := newTestRouter(t)

		body := `{"user_id":"not-a-uuid","body_part_id":1,"question":"아파요"}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai-chats/queries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing question yields 400", func(t *testing.T) {
		r, _ := newTestRouter(t)

		body := `{"user_id":"` + uuid.NewString() + `","body_part_id":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/ai-chats/queries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListQueriesEndpoint(t *testing.T) {
	t.Run("missing user_id yields 400", func(t *testing.T) {
		r, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/ai-chats/queries", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns the query log", func(t *testing.T) {
		r, queries := newTestRouter(t)
		queries.created = append(queries.created, &models.UserQuery{ID: 1, Question: "무릎이 아파요"})

		req := httptest.NewRequest(http.MethodGet, "/api/ai-chats/queries?user_id="+uuid.NewString(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "무릎이 아파요")
	})
}
