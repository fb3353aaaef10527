package repository

import (
	"fmt"
	"strings"

	"github.com/nurpe/aifa-contracts/internal/config"
)

// BudgetColumns maps the stable budget item fields onto the labelled
// columns of the external PAAS table.
type BudgetColumns struct {
	Table   string
	mapping []columnMapping
}

type columnMapping struct {
	field    string
	external string
}

func NewBudgetColumns(table string, cols config.BudgetColumns) (BudgetColumns, error) {
	mapping := []columnMapping{
		{field: "seq_no", external: cols.SeqNo},
		{field: "procurement_code", external: cols.ProcurementCode},
		{field: "service_name", external: cols.ServiceName},
		{field: "org_unit", external: cols.OrgUnit},
		{field: "requested_amount", external: cols.RequestedAmount},
		{field: "revised_amount", external: cols.RevisedAmount},
		{field: "justification", external: cols.Justification},
	}

	if strings.TrimSpace(table) == "" {
		return BudgetColumns{}, fmt.Errorf("budget table name is empty")
	}
	seen := make(map[string]string, len(mapping))
	for _, m := range mapping {
		if strings.TrimSpace(m.external) == "" {
			return BudgetColumns{}, fmt.Errorf("budget column for %s is empty", m.field)
		}
		if other, dup := seen[m.external]; dup {
			return BudgetColumns{}, fmt.Errorf("budget columns %s and %s both map to %q", other, m.field, m.external)
		}
		seen[m.external] = m.field
	}

	return BudgetColumns{Table: table, mapping: mapping}, nil
}

func (c BudgetColumns) table() string {
	return quoteTable(c.Table)
}

// selectList renders `"External" AS field` for every mapped column.
func (c BudgetColumns) selectList() string {
	parts := make([]string, 0, len(c.mapping)+1)
	parts = append(parts, "id")
	for _, m := range c.mapping {
		parts = append(parts, fmt.Sprintf("%s AS %s", quoteIdent(m.external), m.field))
	}
	return strings.Join(parts, ", ")
}

func (c BudgetColumns) insertColumns() string {
	parts := make([]string, 0, len(c.mapping))
	for _, m := range c.mapping {
		parts = append(parts, quoteIdent(m.external))
	}
	return strings.Join(parts, ", ")
}

func (c BudgetColumns) placeholders() string {
	return strings.TrimSuffix(strings.Repeat("?, ", len(c.mapping)), ", ")
}

func (c BudgetColumns) setList() string {
	parts := make([]string, 0, len(c.mapping))
	for _, m := range c.mapping {
		parts = append(parts, quoteIdent(m.external)+" = ?")
	}
	return strings.Join(parts, ", ")
}

// External returns the external column label for a stable field name.
func (c BudgetColumns) External(field string) (string, bool) {
	for _, m := range c.mapping {
		if m.field == field {
			return m.external, true
		}
	}
	return "", false
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteTable quotes each part of an optionally schema-qualified table name.
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = quoteIdent(part)
	}
	return strings.Join(parts, ".")
}
