package model

type FlightStatus string

const (
	FlightStatusOnTime    FlightStatus = "ON_TIME"
	FlightStatusDelayed   FlightStatus = "DELAYED"
	FlightStatusBoarding  FlightStatus = "BOARDING"
	FlightStatusArrived   FlightStatus = "ARRIVED"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

// Label returns the status text shown on the operations board.
func (s FlightStatus) Label() string {
	switch s {
	case FlightStatusOnTime:
		return "A Tiempo"
	case FlightStatusDelayed:
		return "Demorado"
	case FlightStatusBoarding:
		return "Abordando"
	case FlightStatusArrived:
		return "Aterrizado"
	case FlightStatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

type FlightOperation struct {
	ID             string       `json:"id"`
	FlightNumber   string       `json:"flight_number"`
	Status         FlightStatus `json:"status"`
	StatusLabel    string       `json:"status_label"`
	Destination    string       `json:"destination"`
	Gate           string       `json:"gate"`
	Time           string       `json:"time"`
	PassengerCount int          `json:"passenger_count"`
}
