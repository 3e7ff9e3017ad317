package analyzer

import (
	"fmt"

	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
)

// CompetitorSource provides competitor pricing records.
type CompetitorSource interface {
	Competitor(id string) (models.CompetitorRecord, bool)
}

// Competitor compares our selling price against the tracked competitor.
type Competitor struct {
	products    ProductSource
	competitors CompetitorSource
}

// NewCompetitor builds a competitor analyzer over the two record sources.
func NewCompetitor(products ProductSource, competitors CompetitorSource) *Competitor {
	return &Competitor{products: products, competitors: competitors}
}

// ComparePrice classifies our price position for a product. Pure function of
// the two prices: the sign of (my price - competitor price) decides the
// classification, zero diff is COMPETITIVE.
func (a *Competitor) ComparePrice(productID string) (models.PricePosition, error) {
	var out models.PricePosition

	prod, ok := a.products.Product(productID)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	comp, ok := a.competitors.Competitor(productID)
	if !ok {
		return out, fmt.Errorf("%w: %s", ErrCompetitorNotFound, productID)
	}

	diff := prod.SellingPrice.Sub(comp.CompetitorPrice)

	status := models.PriceCompetitive
	position := "Competitive"
	switch {
	case diff.GreaterThan(decimal.Zero):
		status = models.PriceOverpriced
		position = fmt.Sprintf("Overpriced by $%s (We are losing)", diff)
	case diff.LessThan(decimal.Zero):
		status = models.PriceUnderpriced
		position = fmt.Sprintf("Underpriced by $%s (We are winning)", diff.Abs())
	}

	return models.PricePosition{
		ProductID:       productID,
		MyPrice:         prod.SellingPrice,
		CompetitorPrice: comp.CompetitorPrice,
		Diff:            diff,
		Status:          status,
		Position:        position,
	}, nil
}
