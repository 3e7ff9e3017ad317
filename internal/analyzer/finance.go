// Package analyzer holds the three leaf analyzers: finance, inventory and
// competitor pricing. Each one is a pure query over an injected read-only
// source; none of them mutate anything or talk to the network.
package analyzer

import (
	"fmt"

	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
)

// Metric names the finance analyzer requires from its source.
const (
	MetricCashBalance     = "cash_balance"
	MetricMonthlyBurnRate = "monthly_burn_rate"
)

// criticalRunwayMonths is the threshold below which the business is CRITICAL.
var criticalRunwayMonths = decimal.NewFromInt(3)

// FinancialSource provides named financial metrics.
type FinancialSource interface {
	Metric(name string) (decimal.Decimal, bool)
}

// Finance computes cash runway and a binary health classification.
type Finance struct {
	source FinancialSource
}

// NewFinance builds a finance analyzer over the given metric source.
func NewFinance(source FinancialSource) *Finance {
	return &Finance{source: source}
}

// Status recomputes the financial snapshot from the source. Deterministic for
// the same source data; no caching, no side effects.
func (f *Finance) Status() (models.FinancialSnapshot, error) {
	var snap models.FinancialSnapshot

	cash, ok := f.source.Metric(MetricCashBalance)
	if !ok {
		return snap, fmt.Errorf("%w: %s", ErrMetricNotFound, MetricCashBalance)
	}
	burn, ok := f.source.Metric(MetricMonthlyBurnRate)
	if !ok {
		return snap, fmt.Errorf("%w: %s", ErrMetricNotFound, MetricMonthlyBurnRate)
	}
	if burn.LessThanOrEqual(decimal.Zero) {
		return snap, fmt.Errorf("%w: got %s", ErrInvalidBurnRate, burn)
	}

	runway := cash.Div(burn).Round(1)

	status := models.FinanceHealthy
	if runway.LessThan(criticalRunwayMonths) {
		status = models.FinanceCritical
	}

	return models.FinancialSnapshot{
		Cash:         cash,
		MonthlyBurn:  burn,
		RunwayMonths: runway,
		Status:       status,
		Message:      fmt.Sprintf("Cash Runway: %s months. Status: %s", runway, status),
	}, nil
}
