package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"medinfo-backend/service"

	"github.com/gin-gonic/gin"
)

// BodyHandler handles HTTP requests for the anatomy catalog
type BodyHandler struct {
	bodyService *service.BodyService
}

// NewBodyHandler creates a new body catalog handler
func NewBodyHandler(bodyService *service.BodyService) *BodyHandler {
	return &BodyHandler{bodyService: bodyService}
}

// ListBodySystems handles GET /api/body/body-systems
func (h *BodyHandler) ListBodySystems(c *gin.Context) {
	systems, err := h.bodyService.ListBodySystems(c.Request.Context())
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
		"data":    systems,
	})
}

// ListBodyParts handles GET /api/body/body-parts
func (h *BodyHandler) ListBodyParts(c *gin.Context) {
	var systemID *int64
	if systemIDStr := c.Query("system_id"); systemIDStr != "" {
		id, err := strconv.ParseInt(systemIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_SYSTEM_ID",
					"message": "system_id must be an integer",
				},
			})
			return
		}
		systemID = &id
	}

	parts, err := h.bodyService.ListBodyParts(c.Request.Context(), systemID)
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
		"data":    parts,
	})
}

// GetBodyPart handles GET /api/body/body-parts/:id
func (h *BodyHandler) GetBodyPart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid body part ID format",
			},
		})
		return
	}

	part, err := h.bodyService.GetBodyPart(c.Request.Context(), id)
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
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    part,
	})
}

// ListDiseases handles GET /api/body/body-parts/:id/diseases
func (h *BodyHandler) ListDiseases(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid body part ID format",
			},
		})
		return
	}

	diseases, err := h.bodyService.ListDiseases(c.Request.Context(), id)
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
		"data":    diseases,
	})
}
