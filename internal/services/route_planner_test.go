package services

import (
	"errors"
	"io"
	"testing"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVehicleLister struct {
	vehicles []models.Vehicle
	err      error
}

func (s *stubVehicleLister) ListActive() ([]models.Vehicle, error) {
	return s.vehicles, s.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPlanMatchesRouteNameSubstring(t *testing.T) {
	lister := &stubVehicleLister{
		vehicles: []models.Vehicle{
			{
				ID:            uuid.New(),
				VehicleNumber: "CC-3001",
				RouteName:     "Airport Shuttle",
				VehicleType:   models.VehicleTypeShuttle,
				Status:        models.VehicleStatusActive,
				NextStop:      "Terminal 1",
				BaseFare:      50,
			},
			{
				ID:            uuid.New(),
				VehicleNumber: "CC-1042",
				RouteName:     "Downtown Express",
				VehicleType:   models.VehicleTypeBus,
				Status:        models.VehicleStatusActive,
				BaseFare:      25,
			},
		},
	}
	planner := NewRoutePlanner(lister, quietLogger())

	plan, err := planner.Plan("airport", "Harbour")
	require.NoError(t, err)

	assert.Equal(t, "airport", plan.From)
	assert.Equal(t, "Harbour", plan.To)
	require.Equal(t, 1, plan.TotalOptions)
	assert.Equal(t, "Airport Shuttle", plan.Routes[0].RouteName)
	assert.Equal(t, 50.0, plan.Routes[0].EstimatedFare)
}

func TestPlanMatchIsCaseInsensitive(t *testing.T) {
	lister := &stubVehicleLister{
		vehicles: []models.Vehicle{
			{ID: uuid.New(), RouteName: "Harbour Loop", Status: models.VehicleStatusActive, BaseFare: 15},
		},
	}
	planner := NewRoutePlanner(lister, quietLogger())

	plan, err := planner.Plan("HARBOUR", "museum")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.TotalOptions)
}

func TestPlanMatchesEitherEndpoint(t *testing.T) {
	lister := &stubVehicleLister{
		vehicles: []models.Vehicle{
			{ID: uuid.New(), RouteName: "Museum Line", Status: models.VehicleStatusActive, BaseFare: 10},
		},
	}
	planner := NewRoutePlanner(lister, quietLogger())

	// Only the destination term appears in the route name
	plan, err := planner.Plan("Nowhere", "museum")
	require.NoError(t, err)
	assert.Equal(t, 1, plan.TotalOptions)
}

func TestPlanFallsBackToFlatFare(t *testing.T) {
	lister := &stubVehicleLister{
		vehicles: []models.Vehicle{
			{ID: uuid.New(), RouteName: "Harbour Loop", Status: models.VehicleStatusActive, BaseFare: 0},
		},
	}
	planner := NewRoutePlanner(lister, quietLogger())

	plan, err := planner.Plan("harbour", "anywhere")
	require.NoError(t, err)
	require.Equal(t, 1, plan.TotalOptions)
	assert.Equal(t, DefaultFlatFare, plan.Routes[0].EstimatedFare)
}

func TestPlanNoMatchesReturnsEmptyList(t *testing.T) {
	lister := &stubVehicleLister{
		vehicles: []models.Vehicle{
			{ID: uuid.New(), RouteName: "Downtown Express", Status: models.VehicleStatusActive},
		},
	}
	planner := NewRoutePlanner(lister, quietLogger())

	plan, err := planner.Plan("Moon", "Mars")
	require.NoError(t, err)
	assert.Zero(t, plan.TotalOptions)
	assert.NotNil(t, plan.Routes)
	assert.Empty(t, plan.Routes)
}

func TestPlanPropagatesListerError(t *testing.T) {
	planner := NewRoutePlanner(&stubVehicleLister{err: errors.New("db down")}, quietLogger())

	_, err := planner.Plan("a", "b")
	assert.Error(t, err)
}
