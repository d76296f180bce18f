package database

import (
	"fmt"
	"time"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
)

// VehicleRepository handles vehicle database operations
type VehicleRepository struct {
	db DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db DB) *VehicleRepository {
	return &VehicleRepository{
		db: db,
	}
}

// Create registers a new vehicle
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, vehicle_number, route_name, vehicle_type, capacity,
			status, next_stop, eta, base_fare, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(
		query,
		vehicle.ID,
		vehicle.VehicleNumber,
		vehicle.RouteName,
		vehicle.VehicleType,
		vehicle.Capacity,
		vehicle.Status,
		vehicle.NextStop,
		vehicle.ETA,
		vehicle.BaseFare,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vehicle number %s is already registered", vehicle.VehicleNumber)
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	return nil
}

// GetByID retrieves a vehicle by ID. Callers check sql.ErrNoRows for 404s.
func (r *VehicleRepository) GetByID(id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle

	query := `
		SELECT id, vehicle_number, route_name, vehicle_type, capacity,
		       status, next_stop, eta, base_fare, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	if err := r.db.Get(&vehicle, query, id); err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// ListWithLatestLocation retrieves all vehicles joined with each vehicle's
// most recent position sample. Location columns are null for vehicles that
// have never reported. Ordering is newest registration first and stable.
func (r *VehicleRepository) ListWithLatestLocation() ([]models.VehicleWithLocation, error) {
	vehicles := []models.VehicleWithLocation{}

	query := `
		SELECT v.id, v.vehicle_number, v.route_name, v.vehicle_type,
		       v.capacity, v.status, v.next_stop, v.eta, v.base_fare,
		       v.created_at,
		       l.latitude, l.longitude, l.speed, l.heading,
		       l.recorded_at AS location_at
		FROM vehicles v
		LEFT JOIN LATERAL (
			SELECT latitude, longitude, speed, heading, recorded_at
			FROM vehicle_locations
			WHERE vehicle_id = v.id
			ORDER BY recorded_at DESC
			LIMIT 1
		) l ON true
		ORDER BY v.created_at DESC
	`

	if err := r.db.Select(&vehicles, query); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

// ListActive retrieves all vehicles with status active
func (r *VehicleRepository) ListActive() ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}

	query := `
		SELECT id, vehicle_number, route_name, vehicle_type, capacity,
		       status, next_stop, eta, base_fare, created_at, updated_at
		FROM vehicles
		WHERE status = $1
		ORDER BY created_at DESC
	`

	if err := r.db.Select(&vehicles, query, models.VehicleStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active vehicles: %w", err)
	}

	return vehicles, nil
}

// CountActive returns the number of vehicles with status active
func (r *VehicleRepository) CountActive() (int, error) {
	var count int

	query := `SELECT COUNT(*) FROM vehicles WHERE status = $1`

	if err := r.db.QueryRow(query, models.VehicleStatusActive).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active vehicles: %w", err)
	}

	return count, nil
}

// touchStatus updates a vehicle's status inside an existing transaction
const touchStatusQuery = `
	UPDATE vehicles
	SET status = $1, updated_at = $2
	WHERE id = $3
`

// MarkActive sets a vehicle's status to active
func (r *VehicleRepository) MarkActive(id uuid.UUID) error {
	_, err := r.db.Exec(touchStatusQuery, models.VehicleStatusActive, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark vehicle active: %w", err)
	}
	return nil
}
