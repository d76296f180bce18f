package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing datastore is reachable
type Pinger interface {
	Ping() error
}

// HealthHandler handles service health checks
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{
		db: db,
	}
}

// Check handles GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	status := "healthy"
	message := "Transit API is running"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "unhealthy"
		message = "Database is unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"message":   message,
		"timestamp": timeNow().UTC().Format(time.RFC3339),
	})
}
