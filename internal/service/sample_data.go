package service

import (
	"time"

	"github.com/nurpe/aifa-contracts/internal/model"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func amountPtr(v float64) *float64 { return &v }

func textPtr(v string) *string { return &v }

// sampleContracts is served when the contracts table cannot be read.
func sampleContracts() []model.Contract {
	return []model.Contract{
		{ID: 1, Provider: "Servicios Integrales de Limpieza SA de CV", Service: "Limpieza de terminal de pasajeros", ContractNumber: "AIFA-DAF-001/2026", StartDate: datePtr(2026, 1, 1), EndDate: datePtr(2026, 12, 31), Amount: amountPtr(18500000), Status: model.ContractStatusActive, Area: "Terminal de Pasajeros"},
		{ID: 2, Provider: "Seguridad Privada Aeroportuaria SA", Service: "Vigilancia perimetral", ContractNumber: "AIFA-DAF-014/2025", StartDate: datePtr(2025, 3, 1), EndDate: datePtr(2026, 11, 30), Amount: amountPtr(9200000), Status: model.ContractStatusExpiring, Area: "Seguridad"},
		{ID: 3, Provider: "Mantenimiento Electromecánico del Centro", Service: "Mantenimiento de aerocares y pasillos", ContractNumber: "AIFA-DAF-022/2025", StartDate: datePtr(2025, 2, 1), EndDate: datePtr(2026, 1, 31), Amount: amountPtr(6400000), Status: model.ContractStatusExpired, Area: "Mantenimiento"},
		{ID: 4, Provider: "Tecnologías de Información Aeroportuaria", Service: "Soporte a sistemas FIDS", ContractNumber: "AIFA-DTI-003/2026", StartDate: datePtr(2026, 2, 1), EndDate: datePtr(2027, 1, 31), Amount: amountPtr(4100000), Status: model.ContractStatusActive, Area: "Tecnologías de la Información"},
	}
}

// sampleSpaces is served when the commercial spaces table cannot be read.
func sampleSpaces() []model.CommercialSpace {
	return []model.CommercialSpace{
		{ID: 1, Code: "L-101", Tenant: textPtr("Café de Altura"), Category: "Alimentos y Bebidas", MonthlyRent: amountPtr(85000), Occupancy: model.OccupancyOccupied},
		{ID: 2, Code: "L-102", Tenant: textPtr("Duty Free Americas"), Category: "Retail", MonthlyRent: amountPtr(240000), Occupancy: model.OccupancyOccupied},
		{ID: 3, Code: "L-103", Category: "Retail", MonthlyRent: amountPtr(60000), Occupancy: model.OccupancyAvailable},
		{ID: 4, Code: "L-201", Category: "Servicios", Occupancy: model.OccupancyMaintenance},
	}
}

// demoFlights is the static operations board; it is not connected to a live
// flight source.
func demoFlights() []model.FlightOperation {
	flights := []model.FlightOperation{
		{ID: "1", FlightNumber: "AM-492", Status: model.FlightStatusOnTime, Destination: "Cancún (CUN)", Gate: "B12", Time: "14:30", PassengerCount: 142},
		{ID: "2", FlightNumber: "VB-201", Status: model.FlightStatusDelayed, Destination: "Monterrey (MTY)", Gate: "A04", Time: "14:45", PassengerCount: 189},
		{ID: "3", FlightNumber: "Y4-882", Status: model.FlightStatusBoarding, Destination: "Tijuana (TIJ)", Gate: "C01", Time: "15:00", PassengerCount: 165},
		{ID: "4", FlightNumber: "DL-120", Status: model.FlightStatusOnTime, Destination: "Atlanta (ATL)", Gate: "B08", Time: "15:15", PassengerCount: 210},
		{ID: "5", FlightNumber: "AM-500", Status: model.FlightStatusCancelled, Destination: "Guadalajara (GDL)", Gate: "-", Time: "15:30", PassengerCount: 0},
		{ID: "6", FlightNumber: "UA-773", Status: model.FlightStatusArrived, Destination: "Houston (IAH)", Gate: "B10", Time: "14:10", PassengerCount: 150},
	}
	for i := range flights {
		flights[i].StatusLabel = flights[i].Status.Label()
	}
	return flights
}
