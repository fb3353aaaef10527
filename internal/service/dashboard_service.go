package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/model"
)

type ContractStore interface {
	List(ctx context.Context) ([]model.Contract, error)
}

type SpaceStore interface {
	List(ctx context.Context) ([]model.CommercialSpace, error)
}

// DashboardService serves the read-only dashboard sections.
type DashboardService struct {
	contracts ContractStore
	spaces    SpaceStore
	budget    BudgetStore
	fallback  bool
	log       zerolog.Logger
}

func NewDashboardService(contracts ContractStore, spaces SpaceStore, budget BudgetStore, fallback bool, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		contracts: contracts,
		spaces:    spaces,
		budget:    budget,
		fallback:  fallback,
		log:       log,
	}
}

// ListContracts reads the contracts table. When the read fails and fallback
// is enabled the sample contracts are returned flagged as fallback.
func (s *DashboardService) ListContracts(ctx context.Context) (*model.ContractList, error) {
	contracts, err := s.contracts.List(ctx)
	if err != nil {
		if !s.fallback {
			return nil, fmt.Errorf("%w: list contracts: %v", ErrUpstream, err)
		}
		s.log.Warn().Err(err).Str("section", "contracts").Msg("serving fallback data")
		return &model.ContractList{Items: sampleContracts(), Source: model.DataSourceFallback}, nil
	}
	return &model.ContractList{Items: contracts, Source: model.DataSourceLive}, nil
}

func (s *DashboardService) ListSpaces(ctx context.Context) (*model.CommercialSpaceList, error) {
	spaces, err := s.spaces.List(ctx)
	if err != nil {
		if !s.fallback {
			return nil, fmt.Errorf("%w: list commercial spaces: %v", ErrUpstream, err)
		}
		s.log.Warn().Err(err).Str("section", "commercial_spaces").Msg("serving fallback data")
		return &model.CommercialSpaceList{Items: sampleSpaces(), Source: model.DataSourceFallback}, nil
	}
	return &model.CommercialSpaceList{Items: spaces, Source: model.DataSourceLive}, nil
}

func (s *DashboardService) ListFlights() model.FlightList {
	return model.FlightList{Items: demoFlights(), Source: model.DataSourceDemo}
}

// Overview recomputes every KPI from the current lists.
func (s *DashboardService) Overview(ctx context.Context) (*model.Overview, error) {
	contracts, err := s.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	spaces, err := s.ListSpaces(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.budget.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list budget items: %v", ErrUpstream, err)
	}
	flights := s.ListFlights()

	return &model.Overview{
		Contracts:      CountContractStatuses(contracts.Items),
		ContractSource: contracts.Source,
		Spaces:         CountSpaces(spaces.Items),
		SpaceSource:    spaces.Source,
		Flights:        CountFlights(flights.Items),
		Budget:         SummarizeBudget(items),
	}, nil
}
