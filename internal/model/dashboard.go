package model

// DataSource tells the client where a list came from, so sample data is
// never mistaken for an empty store.
type DataSource string

const (
	DataSourceLive     DataSource = "live"
	DataSourceFallback DataSource = "fallback"
	DataSourceDemo     DataSource = "demo"
)

type ContractList struct {
	Items  []Contract `json:"items"`
	Source DataSource `json:"source"`
}

type CommercialSpaceList struct {
	Items  []CommercialSpace `json:"items"`
	Source DataSource        `json:"source"`
}

type FlightList struct {
	Items  []FlightOperation `json:"items"`
	Source DataSource        `json:"source"`
}

type ContractStatusCounts struct {
	Active    int `json:"active"`
	Expiring  int `json:"expiring"`
	Expired   int `json:"expired"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

type UnitTotal struct {
	OrgUnit string  `json:"org_unit"`
	Amount  float64 `json:"amount"`
	Items   int     `json:"items"`
}

type SpaceCounts struct {
	Occupied    int     `json:"occupied"`
	Available   int     `json:"available"`
	Maintenance int     `json:"maintenance"`
	Total       int     `json:"total"`
	MonthlyRent float64 `json:"monthly_rent"`
}

type FlightCounts struct {
	Total      int `json:"total"`
	OnTime     int `json:"on_time"`
	Delayed    int `json:"delayed"`
	Boarding   int `json:"boarding"`
	Arrived    int `json:"arrived"`
	Cancelled  int `json:"cancelled"`
	Passengers int `json:"passengers"`
}

type BudgetSummary struct {
	ItemCount      int          `json:"item_count"`
	TotalRequested float64      `json:"total_requested"`
	TotalRevised   float64      `json:"total_revised"`
	ByUnit         []UnitTotal  `json:"by_unit"`
	TopItems       []BudgetItem `json:"top_items"`
}

type Overview struct {
	Contracts      ContractStatusCounts `json:"contracts"`
	ContractSource DataSource           `json:"contract_source"`
	Spaces         SpaceCounts          `json:"spaces"`
	SpaceSource    DataSource           `json:"space_source"`
	Flights        FlightCounts         `json:"flights"`
	Budget         BudgetSummary        `json:"budget"`
}
