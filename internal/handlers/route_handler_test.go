package handlers

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cityconnect/transit-backend/internal/database"
	"github.com/cityconnect/transit-backend/internal/middleware"
	"github.com/cityconnect/transit-backend/internal/services"
	"github.com/cityconnect/transit-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newRouteRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *jwt.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock := newMockDB(t)
	jwtService := jwt.NewService("access", "refresh", time.Hour, time.Hour)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	handler := NewRouteHandler(services.NewRoutePlanner(database.NewVehicleRepository(db), logger))

	router := gin.New()
	router.GET("/api/routes/plan", middleware.AuthMiddleware(jwtService), handler.Plan)

	return router, mock, jwtService
}

func activeVehicleRows() *sqlmock.Rows {
	columns := []string{
		"id", "vehicle_number", "route_name", "vehicle_type", "capacity",
		"status", "next_stop", "eta", "base_fare", "created_at", "updated_at",
	}
	return sqlmock.NewRows(columns).
		AddRow(uuid.New(), "CC-3001", "Airport Shuttle", "shuttle", 14,
			"active", "Terminal 1", "5 min", 50.0, time.Now(), time.Now()).
		AddRow(uuid.New(), "CC-1042", "Downtown Express", "bus", 52,
			"active", "Central Station", "3 min", 25.0, time.Now(), time.Now())
}

func TestRoutePlanMatchesQuery(t *testing.T) {
	router, mock, jwtService := newRouteRouter(t)

	mock.ExpectQuery("WHERE status").WillReturnRows(activeVehicleRows())

	w := getWithAuth(router, "/api/routes/plan?from=airport&to=harbour", bearerFor(t, jwtService, "traveller"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Airport Shuttle")
	assert.NotContains(t, w.Body.String(), "Downtown Express")
	assert.Contains(t, w.Body.String(), `"total_options":1`)
}

func TestRoutePlanMissingQueryParams(t *testing.T) {
	router, mock, jwtService := newRouteRouter(t)

	w := getWithAuth(router, "/api/routes/plan?from=airport", bearerFor(t, jwtService, "traveller"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutePlanNoMatches(t *testing.T) {
	router, mock, jwtService := newRouteRouter(t)

	mock.ExpectQuery("WHERE status").WillReturnRows(activeVehicleRows())

	w := getWithAuth(router, "/api/routes/plan?from=moon&to=mars", bearerFor(t, jwtService, "traveller"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_options":0`)
	assert.Contains(t, w.Body.String(), `"routes":[]`)
}

func TestRoutePlanRequiresAuth(t *testing.T) {
	router, _, _ := newRouteRouter(t)

	w := getWithAuth(router, "/api/routes/plan?from=a&to=b", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
