package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/intervue/intervue-backend/internal/response"
)

// SystemHandler serves health and readiness information.
type SystemHandler struct {
	embeddingModel string
	startedAt      time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(embeddingModel string) *SystemHandler {
	return &SystemHandler{
		embeddingModel: embeddingModel,
		startedAt:      time.Now(),
	}
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"status":          "healthy",
		"embedding_model": h.embeddingModel,
		"uptime_seconds":  int(time.Since(h.startedAt).Seconds()),
	})
}
