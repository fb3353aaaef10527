package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/aifa-contracts/internal/model"
)

type BudgetRepository struct {
	db      *gorm.DB
	columns BudgetColumns
}

func NewBudgetRepository(db *gorm.DB, columns BudgetColumns) *BudgetRepository {
	return &BudgetRepository{db: db, columns: columns}
}

type budgetRow struct {
	ID              int64    `gorm:"column:id"`
	SeqNo           *string  `gorm:"column:seq_no"`
	ProcurementCode *string  `gorm:"column:procurement_code"`
	ServiceName     *string  `gorm:"column:service_name"`
	OrgUnit         *string  `gorm:"column:org_unit"`
	RequestedAmount *float64 `gorm:"column:requested_amount"`
	RevisedAmount   *float64 `gorm:"column:revised_amount"`
	Justification   *string  `gorm:"column:justification"`
}

func (row budgetRow) toModel() model.BudgetItem {
	return model.BudgetItem{
		ID:              row.ID,
		SeqNo:           deref(row.SeqNo),
		ProcurementCode: deref(row.ProcurementCode),
		ServiceName:     deref(row.ServiceName),
		OrgUnit:         deref(row.OrgUnit),
		RequestedAmount: row.RequestedAmount,
		RevisedAmount:   row.RevisedAmount,
		Justification:   deref(row.Justification),
	}
}

// values returns the item fields in mapping order.
func values(item model.BudgetItem) []interface{} {
	return []interface{}{
		item.SeqNo,
		item.ProcurementCode,
		item.ServiceName,
		item.OrgUnit,
		item.RequestedAmount,
		item.RevisedAmount,
		item.Justification,
	}
}

// List returns every budget item, newest id first.
func (r *BudgetRepository) List(ctx context.Context) ([]model.BudgetItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id DESC`, r.columns.selectList(), r.columns.table())

	var rows []budgetRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]model.BudgetItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return items, nil
}

func (r *BudgetRepository) Create(ctx context.Context, item model.BudgetItem) (*model.BudgetItem, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		r.columns.table(),
		r.columns.insertColumns(),
		r.columns.placeholders(),
		r.columns.selectList(),
	)

	var row budgetRow
	if err := r.db.WithContext(ctx).Raw(query, values(item)...).Scan(&row).Error; err != nil {
		return nil, translate(err)
	}
	saved := row.toModel()
	return &saved, nil
}

// Update overwrites every mapped column of the item. Returns
// gorm.ErrRecordNotFound when no row has the id.
func (r *BudgetRepository) Update(ctx context.Context, item model.BudgetItem) error {
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, r.columns.table(), r.columns.setList())
	args := append(values(item), item.ID)

	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.columns.table())

	result := r.db.WithContext(ctx).Exec(query, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
