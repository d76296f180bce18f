package models

import "github.com/google/uuid"

// RouteOption is a single match produced by the route planner. Duration and
// departure values are fixed display placeholders, not computed estimates.
type RouteOption struct {
	VehicleID     uuid.UUID     `json:"vehicle_id"`
	VehicleNumber string        `json:"vehicle_number"`
	RouteName     string        `json:"route_name"`
	VehicleType   VehicleType   `json:"vehicle_type"`
	Status        VehicleStatus `json:"status"`
	NextStop      string        `json:"next_stop"`
	EstimatedFare float64       `json:"estimated_fare"`
	EstimatedTime string        `json:"estimated_duration"`
	NextDeparture string        `json:"next_departure"`
}

// RoutePlanResponse is the response body for route planning
type RoutePlanResponse struct {
	From         string        `json:"from"`
	To           string        `json:"to"`
	Routes       []RouteOption `json:"routes"`
	TotalOptions int           `json:"total_options"`
}

// StaffStats aggregates the current day's operational figures for the staff
// dashboard. Trips is a rough estimate derived from an assumed average load,
// not a real trip ledger.
type StaffStats struct {
	Date           string  `json:"date"`
	Passengers     int     `json:"passengers"`
	Revenue        float64 `json:"revenue"`
	Trips          int     `json:"trips"`
	ActiveVehicles int     `json:"active_vehicles"`
}
