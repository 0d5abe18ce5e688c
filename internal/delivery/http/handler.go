package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pantrylens/backend/internal/domain"
	"github.com/pantrylens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline *usecase.PipelineService
	persist  bool
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(pipeline *usecase.PipelineService, persist bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{pipeline: pipeline, persist: persist, logger: logger}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pantrylens-backend",
		"version": "1.0.0",
	})
}

// parseRequest is the payload for a recipe ingredient-parsing request
type parseRequest struct {
	RecipeID string   `json:"recipeId" binding:"required"`
	Title    string   `json:"title"`
	Lines    []string `json:"lines" binding:"required"`
}

// ParseIngredients runs the parsing-and-matching pipeline over one recipe's
// ingredient lines and returns the assembled records and alternative
// relations, persisting them when the server is configured to.
func (h *Handler) ParseIngredients(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId and lines are required"})
		return
	}

	recipe := domain.RecipeContext{RecipeID: req.RecipeID, Title: req.Title}
	result, err := h.pipeline.ProcessRecipe(c.Request.Context(), recipe, req.Lines)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			status = http.StatusServiceUnavailable
		}
		if errors.Is(err, domain.ErrInvalidRequest) {
			status = http.StatusBadRequest
		}
		h.logger.Error("recipe parse failed",
			zap.String("recipe_id", req.RecipeID),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if h.persist {
		if err := h.pipeline.PersistBatch(c.Request.Context(), recipe, result); err != nil {
			h.logger.Error("batch persistence failed",
				zap.String("recipe_id", req.RecipeID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, result)
}

// InvalidateCatalog drops the cached catalog snapshot so subsequent batches
// see catalog edits immediately.
func (h *Handler) InvalidateCatalog(c *gin.Context) {
	if err := h.pipeline.InvalidateCatalog(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
