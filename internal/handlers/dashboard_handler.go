package handlers

import (
	"errors"
	"net/http"

	"commerce_agent/internal/analyzer"
	"commerce_agent/internal/dataset"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the read-only views: live metrics, product listings
// and per-product analysis.
type DashboardHandler struct {
	finance    *analyzer.Finance
	inventory  *analyzer.Inventory
	competitor *analyzer.Competitor
	store      *dataset.Store
}

// NewDashboardHandler wires the dashboard views over the analyzers.
func NewDashboardHandler(finance *analyzer.Finance, inventory *analyzer.Inventory, competitor *analyzer.Competitor, store *dataset.Store) *DashboardHandler {
	return &DashboardHandler{
		finance:    finance,
		inventory:  inventory,
		competitor: competitor,
		store:      store,
	}
}

// GetMetrics returns the financial snapshot plus SKU counts per inventory
// classification.
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	fin, err := h.finance.Status()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	counts := map[string]int{}
	for _, p := range h.store.Products() {
		assessment, err := h.inventory.AnalyzeProduct(p.ProductID)
		if err != nil {
			continue
		}
		counts[assessment.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"finance":          fin,
		"inventory_counts": counts,
		"total_skus":       len(h.store.Products()),
	})
}

// ListProducts returns every product with its inventory assessment.
func (h *DashboardHandler) ListProducts(c *gin.Context) {
	type row struct {
		ProductID string `json:"product_id"`
		Name      string `json:"product_name"`
		Stock     int    `json:"stock"`
		Sales7d   int    `json:"sales_7d"`
		Status    string `json:"status"`
	}

	products := h.store.Products()
	out := make([]row, 0, len(products))
	for _, p := range products {
		assessment, err := h.inventory.AnalyzeProduct(p.ProductID)
		if err != nil {
			continue
		}
		out = append(out, row{
			ProductID: p.ProductID,
			Name:      p.Name,
			Stock:     assessment.Stock,
			Sales7d:   assessment.Sales7d,
			Status:    assessment.Status,
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": out})
}

// GetProductAnalysis returns the inventory and competitor assessments for a
// single product.
func (h *DashboardHandler) GetProductAnalysis(c *gin.Context) {
	productID := c.Param("id")

	inv, err := h.inventory.AnalyzeProduct(productID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrProductNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"inventory": inv}

	// A product can legitimately lack a competitor record; the inventory view
	// still renders.
	comp, err := h.competitor.ComparePrice(productID)
	if err == nil {
		resp["competitor"] = comp
	}

	c.JSON(http.StatusOK, resp)
}
