package services

import (
	"fmt"
	"time"

	"github.com/cityconnect/transit-backend/internal/models"
)

// AverageTripLoad is the assumed passengers-per-trip used to derive the trip
// estimate. There is no real trip ledger; this stays a rough figure.
const AverageTripLoad = 18

// TicketAggregator aggregates tickets over a creation-time range
type TicketAggregator interface {
	CountAndRevenueBetween(start, end time.Time) (int, float64, error)
}

// ActiveVehicleCounter counts vehicles currently in service
type ActiveVehicleCounter interface {
	CountActive() (int, error)
}

// StatsService computes the staff dashboard figures for the current local
// calendar day. Day boundaries use the server's local zone, not the
// traveller's.
type StatsService struct {
	tickets  TicketAggregator
	vehicles ActiveVehicleCounter
}

// NewStatsService creates a new stats service
func NewStatsService(tickets TicketAggregator, vehicles ActiveVehicleCounter) *StatsService {
	return &StatsService{
		tickets:  tickets,
		vehicles: vehicles,
	}
}

// DailyStats aggregates ticket count, revenue, a derived trip estimate and
// the active vehicle count for the calendar day containing now.
func (s *StatsService) DailyStats(now time.Time) (*models.StaffStats, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	passengers, revenue, err := s.tickets.CountAndRevenueBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate today's tickets: %w", err)
	}

	activeVehicles, err := s.vehicles.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active vehicles: %w", err)
	}

	return &models.StaffStats{
		Date:           dayStart.Format("2006-01-02"),
		Passengers:     passengers,
		Revenue:        revenue,
		Trips:          passengers / AverageTripLoad,
		ActiveVehicles: activeVehicles,
	}, nil
}
