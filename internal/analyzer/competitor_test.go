package analyzer

import (
	"errors"
	"testing"

	"commerce_agent/internal/models"

	"github.com/shopspring/decimal"
)

func compSource(myPrice, theirPrice float64) *mockSource {
	return &mockSource{
		products: map[string]models.ProductRecord{
			"P001": {ProductID: "P001", Name: "High-End Laptop", SellingPrice: decimal.NewFromFloat(myPrice)},
		},
		competitors: map[string]models.CompetitorRecord{
			"P001": {ProductID: "P001", CompetitorPrice: decimal.NewFromFloat(theirPrice)},
		},
	}
}

func TestComparePrice_SignDeterminesClassification(t *testing.T) {
	cases := []struct {
		name       string
		mine, comp float64
		want       string
		diff       float64
	}{
		{"overpriced", 1200, 1150, models.PriceOverpriced, 50},
		{"underpriced", 80, 95, models.PriceUnderpriced, -15},
		{"competitive", 110, 110, models.PriceCompetitive, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := compSource(tc.mine, tc.comp)
			a := NewCompetitor(src, src)

			got, err := a.ComparePrice("P001")
			if err != nil {
				t.Fatalf("ComparePrice failed: %v", err)
			}
			if got.Status != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got.Status)
			}
			if !got.Diff.Equal(decimal.NewFromFloat(tc.diff)) {
				t.Errorf("Expected diff %v, got %s", tc.diff, got.Diff)
			}
		})
	}
}

func TestComparePrice_Narratives(t *testing.T) {
	src := compSource(1200, 1150)
	a := NewCompetitor(src, src)

	got, err := a.ComparePrice("P001")
	if err != nil {
		t.Fatalf("ComparePrice failed: %v", err)
	}
	if got.Position != "Overpriced by $50 (We are losing)" {
		t.Errorf("Unexpected narrative: %q", got.Position)
	}
}

func TestComparePrice_MissingRecords(t *testing.T) {
	// No inventory row at all
	a := NewCompetitor(&mockSource{}, &mockSource{})
	if _, err := a.ComparePrice("P001"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}

	// Inventory row present, competitor row absent
	src := &mockSource{
		products: map[string]models.ProductRecord{
			"P001": {ProductID: "P001", SellingPrice: decimal.NewFromInt(100)},
		},
	}
	a = NewCompetitor(src, src)
	if _, err := a.ComparePrice("P001"); !errors.Is(err, ErrCompetitorNotFound) {
		t.Errorf("Expected ErrCompetitorNotFound, got %v", err)
	}
}
