// Package handlers exposes the dashboard's JSON endpoints. This layer only
// translates HTTP to core calls and back; every decision rule lives below it.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "commerce-agent",
	})
}
