package analyzer

import "errors"

// Sentinel errors for analyzer lookups. Callers match with errors.Is; the
// coordinator propagates these unchanged rather than substituting defaults.
var (
	// ErrMetricNotFound means a required financial metric is absent from the source.
	ErrMetricNotFound = errors.New("required financial metric not found")

	// ErrProductNotFound means the product ID has no inventory record.
	ErrProductNotFound = errors.New("product not found")

	// ErrCompetitorNotFound means the product has no competitor pricing record.
	ErrCompetitorNotFound = errors.New("competitor record not found")

	// ErrInvalidBurnRate means the burn rate is zero or negative, so runway is
	// undefined. This must surface explicitly instead of dividing through.
	ErrInvalidBurnRate = errors.New("monthly burn rate must be positive")
)
