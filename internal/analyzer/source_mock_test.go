package analyzer

import (
	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
)

// mockSource implements every analyzer source interface for testing.
type mockSource struct {
	metrics     map[string]decimal.Decimal
	products    map[string]models.ProductRecord
	sales       map[string][]int
	competitors map[string]models.CompetitorRecord
}

func (m *mockSource) Metric(name string) (decimal.Decimal, bool) {
	v, ok := m.metrics[name]
	return v, ok
}

func (m *mockSource) Product(id string) (models.ProductRecord, bool) {
	p, ok := m.products[id]
	return p, ok
}

func (m *mockSource) Competitor(id string) (models.CompetitorRecord, bool) {
	c, ok := m.competitors[id]
	return c, ok
}

// RecentSales mirrors the real store's contract: newest-first truncation,
// never zero-padded.
func (m *mockSource) RecentSales(productID string, days int) []int {
	series := m.sales[productID]
	if days < len(series) {
		series = series[:days]
	}
	return series
}
