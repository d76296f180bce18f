package database

import (
	"fmt"
	"time"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
)

// TicketRepository handles ticket database operations
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{
		db: db,
	}
}

// Create inserts a new ticket row. Tickets are immutable after creation.
func (r *TicketRepository) Create(ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, ticket_number, user_id, vehicle_id, from_location,
			to_location, fare_amount, travel_date, booking_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(
		query,
		ticket.ID,
		ticket.TicketNumber,
		ticket.UserID,
		ticket.VehicleID,
		ticket.FromLocation,
		ticket.ToLocation,
		ticket.FareAmount,
		ticket.TravelDate,
		ticket.BookingStatus,
		ticket.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

// GetByID retrieves a ticket by ID. Callers check sql.ErrNoRows for 404s.
func (r *TicketRepository) GetByID(id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket

	query := `
		SELECT id, ticket_number, user_id, vehicle_id, from_location,
		       to_location, fare_amount, travel_date, booking_status, created_at
		FROM tickets
		WHERE id = $1
	`

	if err := r.db.Get(&ticket, query, id); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// ListByUser retrieves all tickets booked by the given user, newest first
func (r *TicketRepository) ListByUser(userID uuid.UUID) ([]models.Ticket, error) {
	tickets := []models.Ticket{}

	query := `
		SELECT id, ticket_number, user_id, vehicle_id, from_location,
		       to_location, fare_amount, travel_date, booking_status, created_at
		FROM tickets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	if err := r.db.Select(&tickets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}

// CountAndRevenueBetween returns the ticket count and fare sum for tickets
// created in the half-open interval [start, end).
func (r *TicketRepository) CountAndRevenueBetween(start, end time.Time) (int, float64, error) {
	var result struct {
		Count   int     `db:"count"`
		Revenue float64 `db:"revenue"`
	}

	query := `
		SELECT COUNT(*) AS count, COALESCE(SUM(fare_amount), 0) AS revenue
		FROM tickets
		WHERE created_at >= $1 AND created_at < $2
	`

	if err := r.db.Get(&result, query, start, end); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate tickets: %w", err)
	}

	return result.Count, result.Revenue, nil
}
