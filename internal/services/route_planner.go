package services

import (
	"fmt"
	"strings"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultFlatFare is used when a matched vehicle has no base fare configured.
const DefaultFlatFare = 20.0

// Placeholder display strings: the planner has no timetable data, so
// duration and departure are fixed labels rather than computed estimates.
const (
	placeholderDuration  = "30-45 min"
	placeholderDeparture = "Every 15 min"
)

// ActiveVehicleLister lists vehicles currently in service
type ActiveVehicleLister interface {
	ListActive() ([]models.Vehicle, error)
}

// RoutePlanner matches free-text origin/destination queries against active
// vehicle routes. This is a case-insensitive substring scan with no relevance
// ranking; it is a placeholder for real trip planning.
type RoutePlanner struct {
	vehicles ActiveVehicleLister
	logger   *logrus.Logger
}

// NewRoutePlanner creates a new route planner
func NewRoutePlanner(vehicles ActiveVehicleLister, logger *logrus.Logger) *RoutePlanner {
	return &RoutePlanner{
		vehicles: vehicles,
		logger:   logger,
	}
}

// Plan returns every active vehicle whose route name contains either query
// term, case-insensitively.
func (p *RoutePlanner) Plan(from, to string) (*models.RoutePlanResponse, error) {
	vehicles, err := p.vehicles.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load active vehicles: %w", err)
	}

	fromLower := strings.ToLower(from)
	toLower := strings.ToLower(to)

	options := []models.RouteOption{}
	for _, v := range vehicles {
		route := strings.ToLower(v.RouteName)
		if !strings.Contains(route, fromLower) && !strings.Contains(route, toLower) {
			continue
		}

		fare := v.BaseFare
		if fare == 0 {
			fare = DefaultFlatFare
		}

		options = append(options, models.RouteOption{
			VehicleID:     v.ID,
			VehicleNumber: v.VehicleNumber,
			RouteName:     v.RouteName,
			VehicleType:   v.VehicleType,
			Status:        v.Status,
			NextStop:      v.NextStop,
			EstimatedFare: fare,
			EstimatedTime: placeholderDuration,
			NextDeparture: placeholderDeparture,
		})
	}

	p.logger.WithFields(logrus.Fields{
		"from":    from,
		"to":      to,
		"matches": len(options),
	}).Info("Route plan computed")

	return &models.RoutePlanResponse{
		From:         from,
		To:           to,
		Routes:       options,
		TotalOptions: len(options),
	}, nil
}
