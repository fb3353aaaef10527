package model

import "strings"

type Occupancy string

const (
	OccupancyOccupied    Occupancy = "OCCUPIED"
	OccupancyAvailable   Occupancy = "AVAILABLE"
	OccupancyMaintenance Occupancy = "MAINTENANCE"
)

func ParseOccupancy(raw string) Occupancy {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "occupied", "ocupado":
		return OccupancyOccupied
	case "available", "disponible":
		return OccupancyAvailable
	case "maintenance", "under maintenance", "mantenimiento", "en mantenimiento":
		return OccupancyMaintenance
	default:
		return Occupancy(strings.TrimSpace(raw))
	}
}

type CommercialSpace struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Tenant      *string   `json:"tenant"`
	Category    string    `json:"category"`
	MonthlyRent *float64  `json:"monthly_rent"`
	Occupancy   Occupancy `json:"occupancy"`
}
