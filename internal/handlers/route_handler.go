package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/cityconnect/transit-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RouteHandler handles journey planning HTTP requests
type RouteHandler struct {
	planner *services.RoutePlanner
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(planner *services.RoutePlanner) *RouteHandler {
	return &RouteHandler{
		planner: planner,
	}
}

// Plan handles GET /api/routes/plan?from=X&to=Y
func (h *RouteHandler) Plan(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))

	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "from and to query parameters are required",
		})
		return
	}

	plan, err := h.planner.Plan(from, to)
	if err != nil {
		log.Printf("ROUTE PLAN FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to plan route",
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}
