package database

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	vehicle := &models.Vehicle{
		ID:            uuid.New(),
		VehicleNumber: "CC-1042",
		RouteName:     "Downtown Express",
		VehicleType:   models.VehicleTypeBus,
		Capacity:      52,
		Status:        models.VehicleStatusInactive,
		BaseFare:      25,
		CreatedAt:     nowForTest(),
		UpdatedAt:     nowForTest(),
	}

	mock.ExpectExec("INSERT INTO vehicles").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(vehicle)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVehicleCreateDuplicateNumber(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	mock.ExpectExec("INSERT INTO vehicles").
		WillReturnError(duplicateKeyError())

	err := repo.Create(&models.Vehicle{ID: uuid.New(), VehicleNumber: "CC-1042"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestListWithLatestLocationIncludesNullLocations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	tracked := uuid.New()
	silent := uuid.New()

	columns := []string{
		"id", "vehicle_number", "route_name", "vehicle_type", "capacity",
		"status", "next_stop", "eta", "base_fare", "created_at",
		"latitude", "longitude", "speed", "heading", "location_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(tracked, "CC-1042", "Downtown Express", "bus", 52,
			"active", "Central Station", "5 min", 25.0, nowForTest(),
			6.9271, 79.8612, 32.5, 180.0, nowForTest()).
		AddRow(silent, "CC-2088", "Harbour Loop", "minibus", 18,
			"inactive", "", "", 15.0, nowForTest(),
			nil, nil, nil, nil, nil)

	mock.ExpectQuery("SELECT v.id, v.vehicle_number").
		WillReturnRows(rows)

	vehicles, err := repo.ListWithLatestLocation()
	require.NoError(t, err)
	require.Len(t, vehicles, 2)

	require.NotNil(t, vehicles[0].Latitude)
	assert.Equal(t, 6.9271, *vehicles[0].Latitude)
	assert.NotNil(t, vehicles[0].LocationAt)

	assert.Nil(t, vehicles[1].Latitude)
	assert.Nil(t, vehicles[1].Longitude)
	assert.Nil(t, vehicles[1].LocationAt)
}

func TestGetByIDPassesThroughNoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	vehicleID := uuid.New()
	mock.ExpectQuery("SELECT id, vehicle_number").
		WithArgs(vehicleID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(vehicleID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListActiveFiltersByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	columns := []string{
		"id", "vehicle_number", "route_name", "vehicle_type", "capacity",
		"status", "next_stop", "eta", "base_fare", "created_at", "updated_at",
	}
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.New(), "CC-1042", "Downtown Express", "bus", 52,
			"active", "Central Station", "5 min", 25.0, nowForTest(), nowForTest())

	mock.ExpectQuery("WHERE status").
		WithArgs(models.VehicleStatusActive).
		WillReturnRows(rows)

	vehicles, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, models.VehicleStatusActive, vehicles[0].Status)
}

func TestCountActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewVehicleRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.VehicleStatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountActive()
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
