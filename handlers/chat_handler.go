package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"medinfo-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChatHandler handles HTTP requests for the AI consultation flow
type ChatHandler struct {
	chatService *service.ChatService
	bodyService *service.BodyService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, bodyService *service.BodyService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		bodyService: bodyService,
	}
}

// AskQuestionRequest represents the request body for one consultation turn
type AskQuestionRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	BodyPartID      int64  `json:"body_part_id" binding:"required"`
	Question        string `json:"question" binding:"required"`
	PreviousSummary string `json:"previous_summary"`
}

// AskQuestion handles POST /api/ai-chats/queries
func (h *ChatHandler) AskQuestion(c *gin.Context) {
	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	label, err := h.bodyService.ResolveLabel(c.Request.Context(), req.BodyPartID)
	if err != nil {
		if errors.Is(err, service.ErrBodyPartNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Body part not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOOKUP_FAILED",
				"message": "Failed to resolve body part",
			},
		})
		return
	}

	serviceReq := service.AnswerQuestionRequest{
		UserID:          userID,
		BodyPartID:      req.BodyPartID,
		BodyPartLabel:   label,
		Question:        req.Question,
		PreviousSummary: req.PreviousSummary,
	}

	result, err := h.chatService.AnswerQuestion(c.Request.Context(), serviceReq)
	if err != nil {
		log.Printf("Answer generation failed for user %s: %v", userID, err)

		status := http.StatusInternalServerError
		code := "GENERATION_FAILED"
		if errors.Is(err, service.ErrGenerationTimeout) {
			status = http.StatusGatewayTimeout
			code = "GENERATION_TIMEOUT"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": "Failed to generate an answer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":               result.Query.ID,
			"answer":           result.Query.Answer,
			"confidence_score": result.Query.ConfidenceScore,
			"created_at":       result.Query.CreatedAt,
			"medical_context": gin.H{
				"summary":    result.Context.Summary,
				"risk_level": result.Context.RiskLevel,
			},
		},
	})
}

// ListQueries handles GET /api/ai-chats/queries
func (h *ChatHandler) ListQueries(c *gin.Context) {
	userIDStr := c.Query("user_id")
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid or missing user_id",
			},
		})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_LIMIT",
					"message": "limit must be a non-negative integer",
				},
			})
			return
		}
	}

	result, err := h.chatService.ListQueries(c.Request.Context(), service.ListQueriesRequest{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Queries,
	})
}

// SaveMedicalContextRequest represents the request body for archiving a
// finished consultation
type SaveMedicalContextRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	AgentID   int64  `json:"agent_id" binding:"required"`
	Summary   string `json:"summary" binding:"required"`
	RiskLevel int    `json:"risk_level" binding:"required"`
}

// SaveMedicalContext handles POST /api/ai-chats/medical-context
func (h *ChatHandler) SaveMedicalContext(c *gin.Context) {
	var req SaveMedicalContextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid user_id format",
			},
		})
		return
	}

	result, err := h.chatService.SaveMedicalContext(c.Request.Context(), service.SaveMedicalContextRequest{
		UserID:    userID,
		AgentID:   req.AgentID,
		Summary:   req.Summary,
		RiskLevel: req.RiskLevel,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CONTEXT",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Context,
	})
}

// ListMedicalContexts handles GET /api/ai-chats/medical-context
func (h *ChatHandler) ListMedicalContexts(c *gin.Context) {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_USER_ID",
				"message": "Invalid or missing user_id",
			},
		})
		return
	}

	contexts, err := h.chatService.ListMedicalContexts(c.Request.Context(), userID, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contexts,
	})
}
