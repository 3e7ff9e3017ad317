// Package strategist is the coordinator at the heart of the system. It
// composes the three analyzers' assessments into a single directive, submits
// it to the reasoning engine and writes the outcome through the audit log.
package strategist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"commerce_agent/internal/analyzer"
	"commerce_agent/internal/audit"
	"commerce_agent/internal/models"
)

// Identity recorded with every audit entry.
const (
	AgentName      = "MarketingAgent"
	ActionStrategy = "Strategy Generation"
)

// Narrative injected when the operator simulates a market crash. Applied to
// the composed directive only; the finance analyzer's data is never touched.
const (
	crisisMessage = "CRITICAL: Cash runway is < 2 weeks. BANKRUPTCY IMMINENT."
)

// ErrEngineFailure wraps any failure of the reasoning engine. Lookup errors
// from the analyzers pass through unwrapped so callers can still match them
// with errors.Is against the analyzer sentinels.
var ErrEngineFailure = errors.New("reasoning engine failure")

// Engine is the reasoning capability: one directive in, one decision out.
// Implementations may be slow and may fail; the coordinator makes exactly one
// attempt per invocation.
type Engine interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier announces a completed strategy. Best-effort fire-and-forget;
// failures are the notifier's problem, not the coordinator's.
type Notifier func(text string)

// Coordinator wires the analyzers, the engine and the audit log together.
// Construct one per process with explicit dependencies; there is no shared
// global instance.
type Coordinator struct {
	finance    *analyzer.Finance
	inventory  *analyzer.Inventory
	competitor *analyzer.Competitor
	engine     Engine
	audit      *audit.Log
	notify     Notifier
}

// New builds a coordinator. notify may be nil.
func New(finance *analyzer.Finance, inventory *analyzer.Inventory, competitor *analyzer.Competitor, engine Engine, auditLog *audit.Log, notify Notifier) *Coordinator {
	return &Coordinator{
		finance:    finance,
		inventory:  inventory,
		competitor: competitor,
		engine:     engine,
		audit:      auditLog,
		notify:     notify,
	}
}

// GenerateStrategy produces a marketing recommendation for one product.
//
// Analyzer lookup failures propagate unchanged: no defaults, no partial
// strategies. Engine failures come back wrapped in ErrEngineFailure and are
// never logged as verified decisions. crisisMode overrides the financial
// narrative inside this invocation only.
func (c *Coordinator) GenerateStrategy(ctx context.Context, productID string, crisisMode bool) (*models.DirectiveResult, error) {
	fin, err := c.finance.Status()
	if err != nil {
		return nil, err
	}
	inv, err := c.inventory.AnalyzeProduct(productID)
	if err != nil {
		return nil, err
	}
	comp, err := c.competitor.ComparePrice(productID)
	if err != nil {
		return nil, err
	}

	if crisisMode {
		// Presentation-time override: the copies below are all the engine
		// sees; fin itself came back by value and the analyzer stays pure.
		fin.Status = models.FinanceEmergency
		fin.Message = crisisMessage
	}

	directive := buildDirective(fin, inv, comp)

	decision, err := c.engine.Generate(ctx, directive)
	if err != nil {
		// A failed or empty decision must never reach the audit log.
		return nil, fmt.Errorf("%w: %v", ErrEngineFailure, err)
	}

	fingerprint, err := c.audit.LogEvent(AgentName, productID, ActionStrategy, decision)
	if err != nil {
		return nil, fmt.Errorf("strategy generated but audit write failed: %w", err)
	}

	if c.notify != nil {
		c.notify(fmt.Sprintf("Strategy generated for %s (%s)\n%s", inv.ProductName, productID, decision))
	}

	log.Printf("Strategy generated for %s [fingerprint %s]", productID, fingerprint)

	return &models.DirectiveResult{
		ProductID:   productID,
		ProductName: inv.ProductName,
		Directive:   directive,
		Decision:    decision,
		Fingerprint: fingerprint,
		CrisisMode:  crisisMode,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// buildDirective assembles the structured context bundle for the engine. The
// business rules ride along as constraints in the text itself; the engine's
// answer is not validated against them afterwards. That gap is deliberate:
// the audit fingerprint protects what the engine actually said, and a local
// validator would quietly change whose judgment the recommendation is.
func buildDirective(fin models.FinancialSnapshot, inv models.InventoryAssessment, comp models.PricePosition) string {
	var b strings.Builder

	b.WriteString("You are an Autonomous Marketing Agent. Make a strategic decision based on the data below.\n\n")

	b.WriteString("--- BUSINESS CONTEXT ---\n")
	fmt.Fprintf(&b, "CASH STATUS: %s\n", fin.Message)
	fmt.Fprintf(&b, "INVENTORY: %s (Stock: %d, 7-Day Sales: %d).\n", inv.Status, inv.Stock, inv.Sales7d)
	fmt.Fprintf(&b, "COMPETITOR: %s (My Price: %s, Theirs: %s).\n\n", comp.Position, comp.MyPrice, comp.CompetitorPrice)

	b.WriteString("--- PRODUCT ---\n")
	fmt.Fprintf(&b, "Product Name: %s\n\n", inv.ProductName)

	b.WriteString("--- MISSION ---\n")
	b.WriteString("Decide the immediate marketing action.\n\n")

	b.WriteString("CRITICAL INSTRUCTION:\n")
	b.WriteString("If CASH STATUS is CRITICAL/EMERGENCY, you MUST choose \"LIQUIDATION\" or \"HOLD\". Do not spend money on Ads.\n")
	b.WriteString("If INVENTORY is OVERSTOCK, you MUST clear it.\n\n")

	b.WriteString("OUTPUT FORMAT:\n")
	b.WriteString("**DECISION:** [Aggressive Push / Liquidation / Hold / Price Match]\n")
	b.WriteString("**REASONING:** [Short explanation]\n")
	b.WriteString("**ACTION:** [Specific tactic]\n")

	return b.String()
}
