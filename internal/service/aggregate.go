package service

import (
	"sort"
	"strings"

	"github.com/nurpe/aifa-contracts/internal/model"
)

const UnassignedUnit = model.UnassignedOrgUnit

const topItemsLimit = 5

func CountContractStatuses(contracts []model.Contract) model.ContractStatusCounts {
	counts := model.ContractStatusCounts{Total: len(contracts)}
	for _, c := range contracts {
		switch c.Status {
		case model.ContractStatusActive:
			counts.Active++
		case model.ContractStatusExpiring:
			counts.Expiring++
		case model.ContractStatusExpired:
			counts.Expired++
		case model.ContractStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// GroupByOrgUnit sums requested amounts per organizational unit, largest
// first. Ties are ordered by unit name.
func GroupByOrgUnit(items []model.BudgetItem) []model.UnitTotal {
	index := make(map[string]int)
	groups := make([]model.UnitTotal, 0)

	for _, item := range items {
		unit := strings.TrimSpace(item.OrgUnit)
		if unit == "" {
			unit = UnassignedUnit
		}
		pos, ok := index[unit]
		if !ok {
			groups = append(groups, model.UnitTotal{OrgUnit: unit})
			pos = len(groups) - 1
			index[unit] = pos
		}
		groups[pos].Amount += item.Requested()
		groups[pos].Items++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Amount != groups[j].Amount {
			return groups[i].Amount > groups[j].Amount
		}
		return groups[i].OrgUnit < groups[j].OrgUnit
	})
	return groups
}

// TopByRequested returns the n items with the highest requested amount.
// Ties keep the newest id first.
func TopByRequested(items []model.BudgetItem, n int) []model.BudgetItem {
	sorted := make([]model.BudgetItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Requested() != sorted[j].Requested() {
			return sorted[i].Requested() > sorted[j].Requested()
		}
		return sorted[i].ID > sorted[j].ID
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func SummarizeBudget(items []model.BudgetItem) model.BudgetSummary {
	summary := model.BudgetSummary{
		ItemCount: len(items),
		ByUnit:    GroupByOrgUnit(items),
		TopItems:  TopByRequested(items, topItemsLimit),
	}
	for _, item := range items {
		summary.TotalRequested += item.Requested()
		summary.TotalRevised += item.Revised()
	}
	return summary
}

func CountSpaces(spaces []model.CommercialSpace) model.SpaceCounts {
	counts := model.SpaceCounts{Total: len(spaces)}
	for _, s := range spaces {
		switch s.Occupancy {
		case model.OccupancyOccupied:
			counts.Occupied++
			if s.MonthlyRent != nil {
				counts.MonthlyRent += *s.MonthlyRent
			}
		case model.OccupancyAvailable:
			counts.Available++
		case model.OccupancyMaintenance:
			counts.Maintenance++
		}
	}
	return counts
}

func CountFlights(flights []model.FlightOperation) model.FlightCounts {
	counts := model.FlightCounts{Total: len(flights)}
	for _, f := range flights {
		counts.Passengers += f.PassengerCount
		switch f.Status {
		case model.FlightStatusOnTime:
			counts.OnTime++
		case model.FlightStatusDelayed:
			counts.Delayed++
		case model.FlightStatusBoarding:
			counts.Boarding++
		case model.FlightStatusArrived:
			counts.Arrived++
		case model.FlightStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}
