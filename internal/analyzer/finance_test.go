package analyzer

import (
	"errors"
	"testing"

	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
)

func TestFinanceStatus_CriticalRunway(t *testing.T) {
	// 1. Setup: cash 12000, burn 5000 -> runway 2.4 months
	src := &mockSource{metrics: map[string]decimal.Decimal{
		MetricCashBalance:     decimal.NewFromInt(12000),
		MetricMonthlyBurnRate: decimal.NewFromInt(5000),
	}}
	fin := NewFinance(src)

	// 2. Execute
	snap, err := fin.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	// 3. Verify runway rounding and classification
	if !snap.RunwayMonths.Equal(decimal.NewFromFloat(2.4)) {
		t.Errorf("Expected runway 2.4, got %s", snap.RunwayMonths)
	}
	if snap.Status != models.FinanceCritical {
		t.Errorf("Expected CRITICAL, got %s", snap.Status)
	}
	if snap.Message != "Cash Runway: 2.4 months. Status: CRITICAL" {
		t.Errorf("Unexpected narrative: %q", snap.Message)
	}
}

func TestFinanceStatus_Healthy(t *testing.T) {
	src := &mockSource{metrics: map[string]decimal.Decimal{
		MetricCashBalance:     decimal.NewFromInt(60000),
		MetricMonthlyBurnRate: decimal.NewFromInt(5000),
	}}

	snap, err := NewFinance(src).Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if !snap.RunwayMonths.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Expected runway 12, got %s", snap.RunwayMonths)
	}
	if snap.Status != models.FinanceHealthy {
		t.Errorf("Expected HEALTHY, got %s", snap.Status)
	}
}

func TestFinanceStatus_ExactThresholdIsHealthy(t *testing.T) {
	// Runway exactly 3.0: CRITICAL only when strictly below 3.
	src := &mockSource{metrics: map[string]decimal.Decimal{
		MetricCashBalance:     decimal.NewFromInt(15000),
		MetricMonthlyBurnRate: decimal.NewFromInt(5000),
	}}

	snap, err := NewFinance(src).Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if snap.Status != models.FinanceHealthy {
		t.Errorf("Expected HEALTHY at exactly 3.0 months, got %s", snap.Status)
	}
}

func TestFinanceStatus_MissingMetric(t *testing.T) {
	src := &mockSource{metrics: map[string]decimal.Decimal{
		MetricCashBalance: decimal.NewFromInt(12000),
		// monthly_burn_rate absent
	}}

	_, err := NewFinance(src).Status()
	if !errors.Is(err, ErrMetricNotFound) {
		t.Fatalf("Expected ErrMetricNotFound, got %v", err)
	}
}

func TestFinanceStatus_NonPositiveBurn(t *testing.T) {
	for _, burn := range []int64{0, -100} {
		src := &mockSource{metrics: map[string]decimal.Decimal{
			MetricCashBalance:     decimal.NewFromInt(12000),
			MetricMonthlyBurnRate: decimal.NewFromInt(burn),
		}}

		_, err := NewFinance(src).Status()
		if !errors.Is(err, ErrInvalidBurnRate) {
			t.Errorf("burn=%d: expected ErrInvalidBurnRate, got %v", burn, err)
		}
	}
}
