package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the state of a ticket booking. Only confirmed is
// reachable today; there is no cancel/refund flow.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

// Ticket represents a booked journey. Tickets are immutable after creation.
type Ticket struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	TicketNumber  string        `json:"ticket_number" db:"ticket_number"`
	UserID        uuid.UUID     `json:"user_id" db:"user_id"`
	VehicleID     uuid.UUID     `json:"vehicle_id" db:"vehicle_id"`
	FromLocation  string        `json:"from_location" db:"from_location"`
	ToLocation    string        `json:"to_location" db:"to_location"`
	FareAmount    float64       `json:"fare_amount" db:"fare_amount"`
	TravelDate    string        `json:"travel_date" db:"travel_date"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// BookTicketRequest represents the request to book a ticket
type BookTicketRequest struct {
	VehicleID    string   `json:"vehicle_id" binding:"required"`
	FromLocation string   `json:"from_location" binding:"required"`
	ToLocation   string   `json:"to_location" binding:"required"`
	FareAmount   *float64 `json:"fare_amount" binding:"required"`
	TravelDate   string   `json:"travel_date"`
}

// TicketView is a ticket shaped with human-readable vehicle details
type TicketView struct {
	Ticket
	VehicleNumber string `json:"vehicle_number"`
	RouteName     string `json:"route_name"`
}
