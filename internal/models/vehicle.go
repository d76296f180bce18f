package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// VehicleType represents the category of a vehicle
type VehicleType string

const (
	VehicleTypeBus     VehicleType = "bus"
	VehicleTypeMinibus VehicleType = "minibus"
	VehicleTypeTram    VehicleType = "tram"
	VehicleTypeShuttle VehicleType = "shuttle"
)

// VehicleStatus represents the current operational status of a vehicle
type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "active"
	VehicleStatusInactive VehicleStatus = "inactive"
)

// Vehicle represents a transit vehicle registered in the system
type Vehicle struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	VehicleNumber string        `json:"vehicle_number" db:"vehicle_number"`
	RouteName     string        `json:"route_name" db:"route_name"`
	VehicleType   VehicleType   `json:"vehicle_type" db:"vehicle_type"`
	Capacity      int           `json:"capacity" db:"capacity"`
	Status        VehicleStatus `json:"status" db:"status"`
	NextStop      string        `json:"next_stop" db:"next_stop"`
	ETA           string        `json:"eta" db:"eta"`
	BaseFare      float64       `json:"base_fare" db:"base_fare"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// VehicleWithLocation is a vehicle flattened together with its most recent
// position sample. Location fields are null until the first sample arrives.
type VehicleWithLocation struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	VehicleNumber string        `json:"vehicle_number" db:"vehicle_number"`
	RouteName     string        `json:"route_name" db:"route_name"`
	VehicleType   VehicleType   `json:"vehicle_type" db:"vehicle_type"`
	Capacity      int           `json:"capacity" db:"capacity"`
	Status        VehicleStatus `json:"status" db:"status"`
	NextStop      string        `json:"next_stop" db:"next_stop"`
	ETA           string        `json:"eta" db:"eta"`
	BaseFare      float64       `json:"base_fare" db:"base_fare"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	Latitude      *float64      `json:"latitude" db:"latitude"`
	Longitude     *float64      `json:"longitude" db:"longitude"`
	Speed         *float64      `json:"speed" db:"speed"`
	Heading       *float64      `json:"heading" db:"heading"`
	LocationAt    *time.Time    `json:"location_updated_at" db:"location_at"`
}

// CreateVehicleRequest represents the request to register a new vehicle
type CreateVehicleRequest struct {
	VehicleNumber string  `json:"vehicle_number" binding:"required"`
	RouteName     string  `json:"route_name" binding:"required"`
	VehicleType   string  `json:"vehicle_type" binding:"required"`
	Capacity      int     `json:"capacity" binding:"required,gt=0"`
	NextStop      string  `json:"next_stop"`
	ETA           string  `json:"eta"`
	BaseFare      float64 `json:"base_fare"`
	Status        *string `json:"status,omitempty"`
}

// Validate validates the CreateVehicleRequest
func (req *CreateVehicleRequest) Validate() error {
	vt := VehicleType(req.VehicleType)
	if vt != VehicleTypeBus && vt != VehicleTypeMinibus &&
		vt != VehicleTypeTram && vt != VehicleTypeShuttle {
		return errors.New("invalid vehicle_type: must be bus, minibus, tram, or shuttle")
	}

	if req.BaseFare < 0 {
		return errors.New("base_fare cannot be negative")
	}

	if req.Status != nil {
		status := VehicleStatus(*req.Status)
		if status != VehicleStatusActive && status != VehicleStatusInactive {
			return errors.New("invalid status: must be active or inactive")
		}
	}

	return nil
}
