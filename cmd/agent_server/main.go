package main

import (
	"log"
	"time"

	"commerce_agent/internal/ai"
	"commerce_agent/internal/analyzer"
	"commerce_agent/internal/audit"
	"commerce_agent/internal/config"
	"commerce_agent/internal/dataset"
	"commerce_agent/internal/handlers"
	"commerce_agent/internal/logger"
	"commerce_agent/internal/notifications"
	"commerce_agent/internal/strategist"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const LogFile = "agent.log"

// main is the entry point of the application.
func main() {
	// 1. Initialization
	// Load configuration first to get logger settings
	cfg := config.Load()
	logger.Setup(LogFile, cfg.MaxLogSizeMB, cfg.MaxLogBackups)

	// 2. Data sources (read-only snapshot of the business tables)
	store, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("CRITICAL: Could not load business data from %s: %v", cfg.DataDir, err)
	}

	// 3. Core components, explicitly constructed and injected. No singletons:
	// every dependency is passed down so tests can build isolated instances.
	finance := analyzer.NewFinance(store)
	inventory := analyzer.NewInventory(store, store, cfg.SalesWindowDays)
	competitor := analyzer.NewCompetitor(store, store)

	auditLog := audit.New(cfg.AuditLogFile)
	if err := auditLog.Init(); err != nil {
		log.Fatalf("CRITICAL: Could not initialize audit log: %v", err)
	}

	engine := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, time.Duration(cfg.AITimeoutSec)*time.Second)

	var notify strategist.Notifier
	if cfg.TelegramEnabled {
		notify = notifications.Notify
	}

	coordinator := strategist.New(finance, inventory, competitor, engine, auditLog, notify)

	// 4. HTTP presentation layer
	dashboardHandler := handlers.NewDashboardHandler(finance, inventory, competitor, store)
	strategyHandler := handlers.NewStrategyHandler(coordinator)
	auditHandler := handlers.NewAuditHandler(auditLog)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", handlers.HealthCheck)

	v1 := r.Group("/api/v1")
	{
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/metrics", dashboardHandler.GetMetrics)
		}

		products := v1.Group("/products")
		{
			products.GET("", dashboardHandler.ListProducts)
			products.GET("/:id/analysis", dashboardHandler.GetProductAnalysis)
		}

		strategy := v1.Group("/strategy")
		{
			strategy.POST("/generate", strategyHandler.Generate)
		}

		auditGroup := v1.Group("/audit")
		{
			auditGroup.GET("/logs", auditHandler.GetLogs)
		}
	}

	log.Printf("Commerce agent listening on :%s (data dir: %s, %d SKUs)", cfg.Port, cfg.DataDir, len(store.Products()))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
