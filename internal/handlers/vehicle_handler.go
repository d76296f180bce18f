package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/cityconnect/transit-backend/internal/database"
	"github.com/cityconnect/transit-backend/internal/middleware"
	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VehicleHandler handles vehicle and location HTTP requests
type VehicleHandler struct {
	vehicleRepo  *database.VehicleRepository
	locationRepo *database.LocationRepository
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleRepo *database.VehicleRepository, locationRepo *database.LocationRepository) *VehicleHandler {
	return &VehicleHandler{
		vehicleRepo:  vehicleRepo,
		locationRepo: locationRepo,
	}
}

// List handles GET /api/vehicles. Each vehicle carries its most recently
// recorded location, or nulls if it has never reported one.
func (h *VehicleHandler) List(c *gin.Context) {
	vehicles, err := h.vehicleRepo.ListWithLatestLocation()
	if err != nil {
		log.Printf("VEHICLE LIST FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to list vehicles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// Create handles POST /api/vehicles (staff only)
func (h *VehicleHandler) Create(c *gin.Context) {
	var req models.CreateVehicleRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	now := timeNow().UTC()
	status := models.VehicleStatusInactive
	if req.Status != nil {
		status = models.VehicleStatus(*req.Status)
	}

	vehicle := &models.Vehicle{
		ID:            uuid.New(),
		VehicleNumber: req.VehicleNumber,
		RouteName:     req.RouteName,
		VehicleType:   models.VehicleType(req.VehicleType),
		Capacity:      req.Capacity,
		Status:        status,
		NextStop:      req.NextStop,
		ETA:           req.ETA,
		BaseFare:      req.BaseFare,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.vehicleRepo.Create(vehicle); err != nil {
		log.Printf("VEHICLE CREATE FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// GetLocation handles GET /api/vehicles/:id/location
func (h *VehicleHandler) GetLocation(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid vehicle id",
		})
		return
	}

	location, err := h.locationRepo.LatestForVehicle(vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "No location recorded for this vehicle",
			})
			return
		}
		log.Printf("LOCATION FETCH FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to fetch location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}

// PostLocation handles POST /api/vehicles/:id/location (staff only).
// Recording a location also marks the vehicle active.
func (h *VehicleHandler) PostLocation(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Invalid vehicle id",
		})
		return
	}

	var req models.PostLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "latitude and longitude are required",
		})
		return
	}

	if _, err := h.vehicleRepo.GetByID(vehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Vehicle not found",
			})
			return
		}
		log.Printf("VEHICLE LOOKUP FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to record location",
		})
		return
	}

	location := models.VehicleLocation{
		ID:         uuid.New(),
		VehicleID:  vehicleID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Speed:      req.Speed,
		Heading:    req.Heading,
		UpdatedBy:  userCtx.UserID,
		RecordedAt: timeNow().UTC(),
	}

	if err := h.locationRepo.Record(&location); err != nil {
		log.Printf("LOCATION RECORD FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to record location",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"location": location})
}
