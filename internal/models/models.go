package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Financial health classifications produced by the finance analyzer.
const (
	FinanceHealthy   = "HEALTHY"
	FinanceCritical  = "CRITICAL"
	FinanceEmergency = "EMERGENCY" // only set by the crisis override, never from real data
)

// Inventory classifications, in the priority order they are evaluated.
const (
	InventoryOverstock  = "OVERSTOCK"
	InventoryLowStock   = "LOW_STOCK"
	InventoryHighDemand = "HIGH_DEMAND"
	InventoryNormal     = "NORMAL"
)

// Price position classifications.
const (
	PriceOverpriced  = "OVERPRICED"
	PriceUnderpriced = "UNDERPRICED"
	PriceCompetitive = "COMPETITIVE"
)

// FinancialSnapshot is the finance analyzer's view of the business.
// Money fields use decimal.Decimal to avoid float drift on currency math.
type FinancialSnapshot struct {
	Cash         decimal.Decimal `json:"cash"`
	MonthlyBurn  decimal.Decimal `json:"monthly_burn"`
	RunwayMonths decimal.Decimal `json:"runway_months"` // cash / burn, rounded to 1 decimal
	Status       string          `json:"status"`        // HEALTHY or CRITICAL
	Message      string          `json:"message"`       // narrative used in directives and dashboards
}

// ProductRecord is one row of the inventory table. Owned by the external
// inventory source; the core only reads it.
type ProductRecord struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"product_name"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	CurrentStock      int             `json:"current_stock"`
	MinStockThreshold int             `json:"min_stock_threshold"`
	VendorEmail       string          `json:"vendor_email"`
}

// InventoryAssessment is the derived stock-vs-velocity classification for a
// single product, carrying the raw numbers the classification was built from.
type InventoryAssessment struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	Sales7d     int    `json:"sales_7d"` // trailing window total; may cover fewer days than configured
	Status      string `json:"status"`
}

// CompetitorRecord is one row of the competitor pricing table.
type CompetitorRecord struct {
	ProductID       string          `json:"product_id"`
	CompetitorPrice decimal.Decimal `json:"competitor_price"`
	PromoActive     bool            `json:"competitor_promo"`
}

// PricePosition is the derived price comparison for a single product.
type PricePosition struct {
	ProductID       string          `json:"product_id"`
	MyPrice         decimal.Decimal `json:"my_price"`
	CompetitorPrice decimal.Decimal `json:"competitor_price"`
	Diff            decimal.Decimal `json:"diff"` // my_price - competitor_price
	Status          string          `json:"status"`
	Position        string          `json:"position"` // narrative, e.g. "Overpriced by $50 (We are losing)"
}

// DirectiveResult is what the strategy coordinator returns on success.
// Directive is the exact text submitted to the reasoning engine; Decision is
// the engine's verbatim answer.
type DirectiveResult struct {
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Directive   string    `json:"directive"`
	Decision    string    `json:"decision"`
	Fingerprint string    `json:"fingerprint"`
	CrisisMode  bool      `json:"crisis_mode"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AuditEntry is one row of the append-only audit log. Rows are never updated
// or deleted; the fingerprint is the first 16 hex chars of the SHA-256 digest
// of the full decision text.
type AuditEntry struct {
	Timestamp            string `json:"timestamp"`
	AgentName            string `json:"agent_name"`
	ProductID            string `json:"product_id"`
	Action               string `json:"action"`
	ReasoningFingerprint string `json:"reasoning_fingerprint"`
	VerificationStatus   string `json:"verification_status"`
}
