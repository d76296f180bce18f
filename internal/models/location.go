package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleLocation is an immutable, timestamped position sample for a vehicle.
// Locations are append-only; the current position is the newest sample.
type VehicleLocation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VehicleID  uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Latitude   float64   `json:"latitude" db:"latitude"`
	Longitude  float64   `json:"longitude" db:"longitude"`
	Speed      float64   `json:"speed" db:"speed"`
	Heading    float64   `json:"heading" db:"heading"`
	UpdatedBy  uuid.UUID `json:"updated_by" db:"updated_by"`
	RecordedAt time.Time `json:"recorded_at" db:"recorded_at"`
}

// PostLocationRequest represents the request to record a position sample.
// Latitude and longitude are pointers so a legitimate zero coordinate is
// distinguishable from a missing field.
type PostLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Speed     float64  `json:"speed"`
	Heading   float64  `json:"heading"`
}
