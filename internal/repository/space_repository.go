package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/aifa-contracts/internal/model"
)

type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

type spaceRow struct {
	ID          int64
	Code        string
	Tenant      *string
	Category    string
	MonthlyRent *float64
	Occupancy   string
}

func (r *SpaceRepository) List(ctx context.Context) ([]model.CommercialSpace, error) {
	var rows []spaceRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			COALESCE(code, '') AS code,
			tenant,
			COALESCE(category, '') AS category,
			monthly_rent,
			COALESCE(occupancy, '') AS occupancy
		FROM commercial_spaces
		ORDER BY code ASC, id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	spaces := make([]model.CommercialSpace, 0, len(rows))
	for _, row := range rows {
		spaces = append(spaces, model.CommercialSpace{
			ID:          row.ID,
			Code:        row.Code,
			Tenant:      row.Tenant,
			Category:    row.Category,
			MonthlyRent: row.MonthlyRent,
			Occupancy:   model.ParseOccupancy(row.Occupancy),
		})
	}
	return spaces, nil
}
