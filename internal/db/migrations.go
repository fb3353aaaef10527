package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/aifa-contracts/internal/config"
)

var baseStatements = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id BIGSERIAL PRIMARY KEY,
		provider TEXT NOT NULL,
		service TEXT,
		contract_number VARCHAR(64),
		start_date DATE,
		end_date DATE,
		amount NUMERIC(18,2),
		status VARCHAR(32) NOT NULL DEFAULT 'active',
		area TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number ON contracts (contract_number) WHERE contract_number IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts (status);`,
	`CREATE TABLE IF NOT EXISTS commercial_spaces (
		id BIGSERIAL PRIMARY KEY,
		code VARCHAR(32) NOT NULL,
		tenant TEXT,
		category TEXT,
		monthly_rent NUMERIC(18,2),
		occupancy VARCHAR(32) NOT NULL DEFAULT 'available',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_commercial_spaces_code ON commercial_spaces (code);`,
}

// budgetStatements builds the PAAS table with the configured column labels.
func budgetStatements(data config.DataConfig) []string {
	table := quoteTable(data.BudgetTable)
	// Index names cannot carry a schema; the index lives in the table's schema.
	bare := data.BudgetTable[strings.LastIndex(data.BudgetTable, ".")+1:]
	cols := data.BudgetColumns
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		%s TEXT,
		%s TEXT,
		%s TEXT NOT NULL,
		%s TEXT,
		%s NUMERIC(18,2),
		%s NUMERIC(18,2),
		%s TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
			table,
			quoteIdent(cols.SeqNo),
			quoteIdent(cols.ProcurementCode),
			quoteIdent(cols.ServiceName),
			quoteIdent(cols.OrgUnit),
			quoteIdent(cols.RequestedAmount),
			quoteIdent(cols.RevisedAmount),
			quoteIdent(cols.Justification),
		),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (%s);`,
			quoteIdent("idx_"+bare+"_org_unit"), table, quoteIdent(cols.OrgUnit)),
	}
}

func migrationStatements(data config.DataConfig) []string {
	statements := append([]string{}, baseStatements...)
	return append(statements, budgetStatements(data)...)
}

func runMigrations(db *gorm.DB, data config.DataConfig) error {
	for i, stmt := range migrationStatements(data) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = quoteIdent(part)
	}
	return strings.Join(parts, ".")
}
