package handlers

import (
	"log"
	"net/http"

	"github.com/cityconnect/transit-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles operational statistics HTTP requests
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// Daily handles GET /api/staff/stats (staff only)
func (h *StatsHandler) Daily(c *gin.Context) {
	stats, err := h.statsService.DailyStats(timeNow())
	if err != nil {
		log.Printf("STATS FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to compute stats",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
