package database

import (
	"fmt"
	"time"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
)

// LocationRepository handles vehicle position samples. Samples are append
// only; the current location of a vehicle is the newest row.
type LocationRepository struct {
	db DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db DB) *LocationRepository {
	return &LocationRepository{
		db: db,
	}
}

// Record inserts a new position sample and marks the vehicle active in the
// same transaction, so the vehicle status can never go stale relative to its
// location history.
func (r *LocationRepository) Record(location *models.VehicleLocation) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO vehicle_locations (
			id, vehicle_id, latitude, longitude,
			speed, heading, updated_by, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(
		insertQuery,
		location.ID,
		location.VehicleID,
		location.Latitude,
		location.Longitude,
		location.Speed,
		location.Heading,
		location.UpdatedBy,
		location.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert location: %w", err)
	}

	if _, err := tx.Exec(touchStatusQuery, models.VehicleStatusActive, time.Now(), location.VehicleID); err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit location: %w", err)
	}

	return nil
}

// LatestForVehicle retrieves the most recent position sample for a vehicle.
// Callers check sql.ErrNoRows for vehicles that have never reported.
func (r *LocationRepository) LatestForVehicle(vehicleID uuid.UUID) (*models.VehicleLocation, error) {
	var location models.VehicleLocation

	query := `
		SELECT id, vehicle_id, latitude, longitude, speed, heading,
		       updated_by, recorded_at
		FROM vehicle_locations
		WHERE vehicle_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	if err := r.db.Get(&location, query, vehicleID); err != nil {
		return nil, err
	}

	return &location, nil
}
