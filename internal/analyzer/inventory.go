package analyzer

import (
	"fmt"

	"commerce_agent/internal/models"
)

// DefaultSalesWindowDays is the canonical trailing window for sales velocity.
const DefaultSalesWindowDays = 7

// Classification thresholds for the inventory rules.
const (
	overstockStockFloor  = 100 // stock must exceed this AND
	overstockSalesCeil   = 10  // window sales must be under this
	lowStockCeiling      = 10  // stock under this is LOW_STOCK
	highDemandSalesFloor = 30  // window sales over this is HIGH_DEMAND
)

// ProductSource provides inventory records.
type ProductSource interface {
	Product(id string) (models.ProductRecord, bool)
}

// SalesSource provides a product's trailing daily sale counts, newest first.
// Implementations return fewer than `days` entries when the history is
// shorter; they must not pad with zeros.
type SalesSource interface {
	RecentSales(productID string, days int) []int
}

// Inventory classifies stock level against recent sales velocity.
type Inventory struct {
	products   ProductSource
	sales      SalesSource
	windowDays int
}

// NewInventory builds an inventory analyzer. windowDays <= 0 falls back to
// the canonical 7-day window.
func NewInventory(products ProductSource, sales SalesSource, windowDays int) *Inventory {
	if windowDays <= 0 {
		windowDays = DefaultSalesWindowDays
	}
	return &Inventory{products: products, sales: sales, windowDays: windowDays}
}

// AnalyzeProduct classifies a single product. The rules run in fixed priority
// order, first match wins:
//
//	1. stock > 100 AND window sales < 10  -> OVERSTOCK
//	2. stock < 10                         -> LOW_STOCK
//	3. window sales > 30                  -> HIGH_DEMAND
//	4. otherwise                          -> NORMAL
//
// The order is load-bearing: a product with both high stock and high recent
// sales falls through OVERSTOCK's conjunctive guard into HIGH_DEMAND or
// NORMAL, never both.
func (a *Inventory) AnalyzeProduct(productID string) (models.InventoryAssessment, error) {
	var out models.InventoryAssessment

	prod, ok := a.products.Product(productID)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}

	// Sum the trailing window. A history shorter than the window contributes
	// only what exists; missing days are unknown, not zero.
	total := 0
	for _, n := range a.sales.RecentSales(productID, a.windowDays) {
		total += n
	}

	status := models.InventoryNormal
	switch {
	case prod.CurrentStock > overstockStockFloor && total < overstockSalesCeil:
		status = models.InventoryOverstock
	case prod.CurrentStock < lowStockCeiling:
		status = models.InventoryLowStock
	case total > highDemandSalesFloor:
		status = models.InventoryHighDemand
	}

	return models.InventoryAssessment{
		ProductID:   productID,
		ProductName: prod.Name,
		Stock:       prod.CurrentStock,
		Sales7d:     total,
		Status:      status,
	}, nil
}
