package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/cityconnect/transit-backend/internal/database"
	"github.com/cityconnect/transit-backend/internal/middleware"
	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/cityconnect/transit-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles ticket booking HTTP requests
type TicketHandler struct {
	ticketRepo     *database.TicketRepository
	vehicleRepo    *database.VehicleRepository
	userRepo       *database.UserRepository
	receiptService *services.ReceiptService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(
	ticketRepo *database.TicketRepository,
	vehicleRepo *database.VehicleRepository,
	userRepo *database.UserRepository,
	receiptService *services.ReceiptService,
) *TicketHandler {
	return &TicketHandler{
		ticketRepo:     ticketRepo,
		vehicleRepo:    vehicleRepo,
		userRepo:       userRepo,
		receiptService: receiptService,
	}
}

// Book handles POST /api/tickets/book (traveller only)
func (h *TicketHandler) Book(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
		return
	}

	var req models.BookTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid vehicle_id",
		})
		return
	}

	if *req.FareAmount < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "fare_amount cannot be negative",
		})
		return
	}

	vehicle, err := h.vehicleRepo.GetByID(vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Vehicle not found",
			})
			return
		}
		log.Printf("BOOKING VEHICLE LOOKUP FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to book ticket",
		})
		return
	}

	now := timeNow().UTC()
	ticketNumber, err := services.GenerateTicketNumber(now)
	if err != nil {
		log.Printf("TICKET NUMBER FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to book ticket",
		})
		return
	}

	travelDate := req.TravelDate
	if travelDate == "" {
		travelDate = now.Format("2006-01-02")
	}

	ticket := models.Ticket{
		ID:            uuid.New(),
		TicketNumber:  ticketNumber,
		UserID:        userCtx.UserID,
		VehicleID:     vehicleID,
		FromLocation:  req.FromLocation,
		ToLocation:    req.ToLocation,
		FareAmount:    *req.FareAmount,
		TravelDate:    travelDate,
		BookingStatus: models.BookingStatusConfirmed,
		CreatedAt:     now,
	}

	if err := h.ticketRepo.Create(&ticket); err != nil {
		log.Printf("TICKET CREATE FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to book ticket",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ticket": models.TicketView{
			Ticket:        ticket,
			VehicleNumber: vehicle.VehicleNumber,
			RouteName:     vehicle.RouteName,
		},
	})
}

// List handles GET /api/tickets, returning the caller's own tickets
func (h *TicketHandler) List(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
		return
	}

	tickets, err := h.ticketRepo.ListByUser(userCtx.UserID)
	if err != nil {
		log.Printf("TICKET LIST FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list tickets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tickets": tickets,
		"count":   len(tickets),
	})
}

// Receipt handles GET /api/tickets/:id/receipt, rendering the e-ticket as a
// PDF. Only the ticket's owner may download it.
func (h *TicketHandler) Receipt(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid ticket id",
		})
		return
	}

	ticket, err := h.ticketRepo.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Ticket not found",
			})
			return
		}
		log.Printf("RECEIPT TICKET LOOKUP FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to build receipt",
		})
		return
	}

	if ticket.UserID != userCtx.UserID {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "You can only download your own tickets",
			Code:    "INSUFFICIENT_PERMISSIONS",
		})
		return
	}

	vehicle, err := h.vehicleRepo.GetByID(ticket.VehicleID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("RECEIPT VEHICLE LOOKUP FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to build receipt",
		})
		return
	}

	passengerName := ""
	if profile, err := h.userRepo.GetProfileByUserID(ticket.UserID); err == nil && profile != nil {
		passengerName = profile.FullName
	}

	pdf, err := h.receiptService.BuildTicketPDF(*ticket, vehicle, passengerName)
	if err != nil {
		log.Printf("RECEIPT RENDER FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to build receipt",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", ticket.TicketNumber))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
