package handlers

import (
	"errors"
	"net/http"

	"commerce_agent/internal/analyzer"
	"commerce_agent/internal/strategist"

	"github.com/gin-gonic/gin"
)

// StrategyHandler triggers strategy generation through the coordinator.
type StrategyHandler struct {
	coordinator *strategist.Coordinator
}

// NewStrategyHandler wires the strategy endpoint over the coordinator.
func NewStrategyHandler(coordinator *strategist.Coordinator) *StrategyHandler {
	return &StrategyHandler{coordinator: coordinator}
}

// GenerateRequest is the strategy trigger payload.
type GenerateRequest struct {
	ProductID  string `json:"product_id" binding:"required"`
	CrisisMode bool   `json:"crisis_mode"`
}

// Generate runs one strategy generation for a product. CrisisMode simulates a
// market crash in the composed directive without touching the real financials.
func (h *StrategyHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
		return
	}

	result, err := h.coordinator.GenerateStrategy(c.Request.Context(), req.ProductID, req.CrisisMode)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrProductNotFound),
			errors.Is(err, analyzer.ErrCompetitorNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, strategist.ErrEngineFailure):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
