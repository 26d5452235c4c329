package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ajharbinger/tennis-decider/internal/classifier"
	apperrors "github.com/ajharbinger/tennis-decider/internal/errors"
	"github.com/ajharbinger/tennis-decider/internal/models"
	"github.com/ajharbinger/tennis-decider/internal/services"
)

// ClassifyHandler serves single-score and batch classification
type ClassifyHandler struct {
	classificationService services.ClassificationService
}

// NewClassifyHandler creates a new classify handler with service injection
func NewClassifyHandler(classificationService services.ClassificationService) *ClassifyHandler {
	return &ClassifyHandler{
		classificationService: classificationService,
	}
}

// ClassifyRequest is the body of POST /classify
type ClassifyRequest struct {
	Score      *string `json:"score"`
	Tournament *string `json:"tournament"`
	Explain    bool    `json:"explain"`
}

// ClassifyResponse is the answer to POST /classify
type ClassifyResponse struct {
	Label     classifier.Label   `json:"label"`
	SetsCount int                `json:"sets_count"`
	Result    *classifier.Result `json:"result,omitempty"`
}

// BatchRequest is the body of POST /classify/batch
type BatchRequest struct {
	Items []models.MatchInput `json:"items"`
}

// Classify labels one score
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("Invalid request format", err))
		return
	}

	result := h.classificationService.ClassifyOne(models.MatchInput{
		Score:      req.Score,
		Tournament: req.Tournament,
	})

	resp := ClassifyResponse{
		Label:     result.Label,
		SetsCount: result.SetsCount(),
	}
	if req.Explain {
		resp.Result = &result
	}
	c.JSON(http.StatusOK, resp)
}

// ClassifyBatch labels a list of scores in order
func (h *ClassifyHandler) ClassifyBatch(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidInput("Invalid request format", err))
		return
	}
	if req.Items == nil {
		respondError(c, apperrors.InvalidInput("items is required", nil))
		return
	}

	rows, err := h.classificationService.ClassifyBatch(ctx, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	labels := make([]classifier.Label, len(rows))
	for i, row := range rows {
		labels[i] = row.Label
	}

	c.JSON(http.StatusOK, gin.H{
		"labels":  labels,
		"rows":    rows,
		"summary": models.Summarize(labels),
	})
}

// Samples returns the quick-test scenario table
func (h *ClassifyHandler) Samples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"samples":     h.classificationService.Samples(),
		"grand_slams": classifier.GrandSlams(),
	})
}

// Stats returns classification run counters and detected issues
func (h *ClassifyHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":     h.classificationService.Stats(),
		"timestamp": time.Now().UTC(),
	})
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}
