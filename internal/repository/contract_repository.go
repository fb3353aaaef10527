package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/aifa-contracts/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type contractRow struct {
	ID             int64
	Provider       string
	Service        string
	ContractNumber string
	StartDate      *time.Time
	EndDate        *time.Time
	Amount         *float64
	Status         string
	Area           string
}

func (r *ContractRepository) List(ctx context.Context) ([]model.Contract, error) {
	var rows []contractRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			COALESCE(provider, '') AS provider,
			COALESCE(service, '') AS service,
			COALESCE(contract_number, '') AS contract_number,
			start_date,
			end_date,
			amount,
			COALESCE(status, '') AS status,
			COALESCE(area, '') AS area
		FROM contracts
		ORDER BY end_date ASC NULLS LAST, id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	contracts := make([]model.Contract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, model.Contract{
			ID:             row.ID,
			Provider:       row.Provider,
			Service:        row.Service,
			ContractNumber: row.ContractNumber,
			StartDate:      row.StartDate,
			EndDate:        row.EndDate,
			Amount:         row.Amount,
			Status:         model.ParseContractStatus(row.Status),
			Area:           row.Area,
		})
	}
	return contracts, nil
}
