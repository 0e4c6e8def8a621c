// internal/handlers/health/health_handler.go
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gastro-insights/internal/repository/postgres"
)

type HealthHandler struct {
	db *postgres.DB
}

func NewHealthHandler(db *postgres.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check probes database connectivity. A failing probe reports degraded
// with a 200 status so load balancers can distinguish "reachable but
// unhealthy" from "down".
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	if !h.db.Healthy(c.Request.Context()) {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
