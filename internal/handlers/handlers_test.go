package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"commerce_agent/internal/analyzer"
	"commerce_agent/internal/audit"
	"commerce_agent/internal/dataset"
	"commerce_agent/internal/strategist"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	answer string
	err    error
}

func (e *stubEngine) Generate(ctx context.Context, prompt string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return e.answer, nil
}

// newTestRouter builds the full route tree over a small fixture dataset and a
// stubbed reasoning engine.
func newTestRouter(t *testing.T, engine strategist.Engine) (*gin.Engine, *audit.Log) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	fixtures := map[string]string{
		dataset.FinancialsFile: "metric,value\ncash_balance,12000\nmonthly_burn_rate,5000\n",
		dataset.InventoryFile: "product_id,product_name,selling_price,current_stock\n" +
			"P001,High-End Laptop,1200,5\n" +
			"P002,Basic Mouse,15,600\n",
		dataset.CompetitorsFile: "product_id,competitor_price,competitor_promo\nP001,1150,true\nP002,10,true\n",
		dataset.SalesHistoryFile: "date,P001_sales,P002_sales\n" +
			"2026-08-29,1,1\n2026-08-28,0,1\n2026-08-27,1,1\n2026-08-26,0,1\n2026-08-25,0,1\n2026-08-24,1,1\n2026-08-23,0,1\n",
	}
	for name, content := range fixtures {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	store, err := dataset.Load(dir)
	require.NoError(t, err)

	finance := analyzer.NewFinance(store)
	inventory := analyzer.NewInventory(store, store, 7)
	competitor := analyzer.NewCompetitor(store, store)
	auditLog := audit.New(filepath.Join(dir, "audit_log.csv"))
	coordinator := strategist.New(finance, inventory, competitor, engine, auditLog, nil)

	dashboard := NewDashboardHandler(finance, inventory, competitor, store)
	strategy := NewStrategyHandler(coordinator)
	auditHandler := NewAuditHandler(auditLog)

	r := gin.New()
	r.GET("/health", HealthCheck)
	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard/metrics", dashboard.GetMetrics)
		v1.GET("/products", dashboard.ListProducts)
		v1.GET("/products/:id/analysis", dashboard.GetProductAnalysis)
		v1.POST("/strategy/generate", strategy.Generate)
		v1.GET("/audit/logs", auditHandler.GetLogs)
	}
	return r, auditLog
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestGetMetrics(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "GET", "/api/v1/dashboard/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"runway_months":"2.4"`)
	assert.Contains(t, w.Body.String(), "CRITICAL")
	assert.Contains(t, w.Body.String(), `"total_skus":2`)
}

func TestListProducts(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "GET", "/api/v1/products", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "High-End Laptop")
	assert.Contains(t, w.Body.String(), "LOW_STOCK")
	assert.Contains(t, w.Body.String(), "OVERSTOCK")
}

func TestGetProductAnalysis(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "GET", "/api/v1/products/P001/analysis", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "LOW_STOCK")
	assert.Contains(t, w.Body.String(), "OVERPRICED")

	w = do(r, "GET", "/api/v1/products/P999/analysis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateStrategy_OK(t *testing.T) {
	r, auditLog := newTestRouter(t, &stubEngine{answer: "**DECISION:** Hold"})

	w := do(r, "POST", "/api/v1/strategy/generate", `{"product_id":"P001","crisis_mode":false}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "**DECISION:** Hold")
	assert.Contains(t, w.Body.String(), `"fingerprint"`)
	assert.Len(t, auditLog.Recent(10), 1)
}

func TestGenerateStrategy_BadRequest(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "POST", "/api/v1/strategy/generate", `{"crisis_mode":true}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateStrategy_UnknownProduct(t *testing.T) {
	r, auditLog := newTestRouter(t, &stubEngine{answer: "ok"})

	w := do(r, "POST", "/api/v1/strategy/generate", `{"product_id":"P999"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, auditLog.Recent(10))
}

func TestGenerateStrategy_EngineFailure(t *testing.T) {
	r, auditLog := newTestRouter(t, &stubEngine{err: fmt.Errorf("engine down")})

	w := do(r, "POST", "/api/v1/strategy/generate", `{"product_id":"P001"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	// No audit entry for a failed decision.
	assert.Empty(t, auditLog.Recent(10))
}

func TestGetAuditLogs(t *testing.T) {
	r, _ := newTestRouter(t, &stubEngine{answer: "**DECISION:** Hold"})

	// Empty log renders as an empty list, not an error.
	w := do(r, "GET", "/api/v1/audit/logs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logs":[]`)

	// After one generation the entry shows up.
	do(r, "POST", "/api/v1/strategy/generate", `{"product_id":"P001"}`)
	w = do(r, "GET", "/api/v1/audit/logs?limit=5", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MarketingAgent")
	assert.Contains(t, w.Body.String(), "VERIFIED")
}
