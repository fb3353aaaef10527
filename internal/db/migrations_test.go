package db

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nurpe/aifa-contracts/internal/config"
)

func dataConfig() config.DataConfig {
	return config.DataConfig{
		BudgetTable:   "balance_paas_2026",
		BudgetColumns: config.DefaultBudgetColumns(),
	}
}

func TestMigrationStatements_UseConfiguredLabels(t *testing.T) {
	statements := migrationStatements(dataConfig())
	require.NotEmpty(t, statements)

	budget := statements[len(statements)-2]
	assert.Contains(t, budget, `CREATE TABLE IF NOT EXISTS "balance_paas_2026"`)
	assert.Contains(t, budget, `"Nombre del Servicio" TEXT NOT NULL`)
	assert.Contains(t, budget, `"Monto Solicitado" NUMERIC(18,2)`)
	assert.Contains(t, statements[len(statements)-1], `("Área")`)
}

func TestMigrationStatements_SchemaQualifiedTable(t *testing.T) {
	data := dataConfig()
	data.BudgetTable = "public.balance_paas_2026"

	statements := budgetStatements(data)

	assert.Contains(t, statements[0], `CREATE TABLE IF NOT EXISTS "public"."balance_paas_2026"`)
	assert.Contains(t, statements[1], `"idx_balance_paas_2026_org_unit" ON "public"."balance_paas_2026"`)
}

func TestRunMigrations_StopsOnFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	database, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS contracts`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE UNIQUE INDEX IF NOT EXISTS uq_contracts_number`)).
		WillReturnError(assert.AnError)

	err = runMigrations(database, dataConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration 2 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
