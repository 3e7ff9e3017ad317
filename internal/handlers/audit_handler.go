package handlers

import (
	"net/http"
	"strconv"

	"commerce_agent/internal/audit"

	"github.com/gin-gonic/gin"
)

// AuditHandler serves the recent-decisions view of the audit trail.
type AuditHandler struct {
	log *audit.Log
}

// NewAuditHandler wires the audit view over the log.
func NewAuditHandler(log *audit.Log) *AuditHandler {
	return &AuditHandler{log: log}
}

// GetLogs returns the most recent audit entries, newest first. An empty or
// unreadable log is an empty list, never an error.
func (h *AuditHandler) GetLogs(c *gin.Context) {
	limit := audit.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	c.JSON(http.StatusOK, gin.H{"logs": h.log.Recent(limit)})
}
