package services

import (
	"bytes"
	"fmt"

	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders PDF e-tickets for confirmed bookings
type ReceiptService struct{}

// NewReceiptService creates a new receipt service
func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// BuildTicketPDF renders a single-page e-ticket for the given booking
func (s *ReceiptService) BuildTicketPDF(ticket models.Ticket, vehicle *models.Vehicle, passengerName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "CityConnect E-Ticket")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Ticket: %s", ticket.TicketNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Passenger: %s", passengerName))
	pdf.Ln(8)
	if vehicle != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Vehicle: %s (%s)", vehicle.VehicleNumber, vehicle.RouteName))
		pdf.Ln(8)
	}
	pdf.Cell(0, 8, fmt.Sprintf("From: %s", ticket.FromLocation))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("To: %s", ticket.ToLocation))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Travel date: %s", ticket.TravelDate))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", ticket.BookingStatus))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 10, fmt.Sprintf("Fare: %.2f", ticket.FareAmount))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Booked at %s", ticket.CreatedAt.Format("2006-01-02 15:04:05")))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Present this ticket when boarding. Tickets are non-refundable.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render ticket PDF: %w", err)
	}

	return buf.Bytes(), nil
}
