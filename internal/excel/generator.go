package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/aifa-contracts/internal/model"
)

const (
	ledgerSheet  = "Partidas PAAS"
	byUnitSheet  = "Por área"
	maxSheetName = 31
)

var ledgerHeaders = []string{
	"ID",
	"No.",
	"Clave CUCoP",
	"Nombre del Servicio",
	"Área",
	"Monto Solicitado",
	"Monto Modificado",
	"Justificación",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the PAAS workbook: the full ledger, the by-unit totals and
// one detail sheet per unit.
func (g *Generator) Generate(items []model.BudgetItem, summary model.BudgetSummary, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	styles, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	if err := file.SetSheetName("Sheet1", ledgerSheet); err != nil {
		return nil, err
	}
	g.writeLedger(file, ledgerSheet, items, summary, generatedAt, styles)

	if _, err := file.NewSheet(byUnitSheet); err != nil {
		return nil, err
	}
	g.writeByUnit(file, byUnitSheet, summary, styles)

	used := sheetNames{}
	used.add(ledgerSheet)
	used.add(byUnitSheet)
	for _, unit := range summary.ByUnit {
		sheet := buildSheetName(unit.OrgUnit, used)
		if _, err := file.NewSheet(sheet); err != nil {
			return nil, err
		}
		g.writeUnitDetail(file, sheet, unit, itemsOfUnit(items, unit.OrgUnit), styles)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styles struct {
	header int
	money  int
	total  int
}

func newStyles(file *excelize.File) (styles, error) {
	moneyFormat := "#,##0.00"
	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, err
	}
	money, err := file.NewStyle(&excelize.Style{CustomNumFmt: &moneyFormat})
	if err != nil {
		return styles{}, err
	}
	total, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &moneyFormat})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, money: money, total: total}, nil
}

func (g *Generator) writeLedger(file *excelize.File, sheet string, items []model.BudgetItem, summary model.BudgetSummary, generatedAt time.Time, st styles) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Programa Anual de Adquisiciones, Arrendamientos y Servicios")
	set("A2", "Generado")
	set("B2", generatedAt.Format("2006-01-02 15:04"))
	_ = file.SetCellStyle(sheet, "A1", "A1", st.header)

	tableRow := 4
	writeHeaderRow(file, sheet, tableRow, ledgerHeaders, st.header)

	for i, item := range items {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), item.ID)
		set(fmt.Sprintf("B%d", row), item.SeqNo)
		set(fmt.Sprintf("C%d", row), item.ProcurementCode)
		set(fmt.Sprintf("D%d", row), item.ServiceName)
		set(fmt.Sprintf("E%d", row), item.OrgUnit)
		setAmount(file, sheet, fmt.Sprintf("F%d", row), item.RequestedAmount)
		setAmount(file, sheet, fmt.Sprintf("G%d", row), item.RevisedAmount)
		set(fmt.Sprintf("H%d", row), item.Justification)
	}

	totalRow := tableRow + 1 + len(items)
	set(fmt.Sprintf("E%d", totalRow), "Total")
	set(fmt.Sprintf("F%d", totalRow), summary.TotalRequested)
	set(fmt.Sprintf("G%d", totalRow), summary.TotalRevised)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("G%d", totalRow), st.total)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("F%d", tableRow+1), fmt.Sprintf("G%d", totalRow-1), st.money)

	_ = file.SetColWidth(sheet, "A", "B", 8)
	_ = file.SetColWidth(sheet, "C", "C", 14)
	_ = file.SetColWidth(sheet, "D", "D", 45)
	_ = file.SetColWidth(sheet, "E", "E", 32)
	_ = file.SetColWidth(sheet, "F", "G", 18)
	_ = file.SetColWidth(sheet, "H", "H", 50)
}

func (g *Generator) writeByUnit(file *excelize.File, sheet string, summary model.BudgetSummary, st styles) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	writeHeaderRow(file, sheet, 1, []string{"Área", "Partidas", "Monto Solicitado"}, st.header)
	for i, unit := range summary.ByUnit {
		row := 2 + i
		set(fmt.Sprintf("A%d", row), unit.OrgUnit)
		set(fmt.Sprintf("B%d", row), unit.Items)
		set(fmt.Sprintf("C%d", row), unit.Amount)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), st.money)
	}

	totalRow := 2 + len(summary.ByUnit)
	set(fmt.Sprintf("A%d", totalRow), "Total")
	set(fmt.Sprintf("B%d", totalRow), summary.ItemCount)
	set(fmt.Sprintf("C%d", totalRow), summary.TotalRequested)
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("C%d", totalRow), st.total)

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	_ = file.SetColWidth(sheet, "C", "C", 18)
}

func (g *Generator) writeUnitDetail(file *excelize.File, sheet string, unit model.UnitTotal, items []model.BudgetItem, st styles) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Área")
	set("B1", unit.OrgUnit)
	set("A2", "Monto Solicitado")
	set("B2", unit.Amount)
	_ = file.SetCellStyle(sheet, "B2", "B2", st.total)

	tableRow := 4
	writeHeaderRow(file, sheet, tableRow, []string{"No.", "Clave CUCoP", "Nombre del Servicio", "Monto Solicitado", "Monto Modificado"}, st.header)
	for i, item := range items {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), item.SeqNo)
		set(fmt.Sprintf("B%d", row), item.ProcurementCode)
		set(fmt.Sprintf("C%d", row), item.ServiceName)
		setAmount(file, sheet, fmt.Sprintf("D%d", row), item.RequestedAmount)
		setAmount(file, sheet, fmt.Sprintf("E%d", row), item.RevisedAmount)
		_ = file.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), st.money)
	}

	_ = file.SetColWidth(sheet, "A", "B", 14)
	_ = file.SetColWidth(sheet, "C", "C", 45)
	_ = file.SetColWidth(sheet, "D", "E", 18)
}

func writeHeaderRow(file *excelize.File, sheet string, row int, headers []string, style int) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = file.SetCellValue(sheet, cell, header)
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(headers), row)
	_ = file.SetCellStyle(sheet, first, last, style)
}

// setAmount leaves the cell empty for a missing amount so it is not read as
// a zero budget.
func setAmount(file *excelize.File, sheet, cell string, value *float64) {
	if value == nil {
		return
	}
	_ = file.SetCellValue(sheet, cell, *value)
}

func itemsOfUnit(items []model.BudgetItem, unit string) []model.BudgetItem {
	result := make([]model.BudgetItem, 0)
	for _, item := range items {
		name := strings.TrimSpace(item.OrgUnit)
		if name == unit || (name == "" && unit == model.UnassignedOrgUnit) {
			result = append(result, item)
		}
	}
	return result
}

// sheetNames tracks sheet names case-insensitively, the way Excel and
// excelize compare them.
type sheetNames map[string]struct{}

func (n sheetNames) add(name string) {
	n[strings.ToLower(name)] = struct{}{}
}

func (n sheetNames) has(name string) bool {
	_, ok := n[strings.ToLower(name)]
	return ok
}

// buildSheetName returns a free sheet name for unit and reserves it.
func buildSheetName(unit string, used sheetNames) string {
	base := truncateRunes(sanitizeSheetName(unit), maxSheetName)

	candidate := base
	counter := 2
	for {
		if !used.has(candidate) {
			used.add(candidate)
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Hoja"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
		"'", "",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Hoja"
	}
	return value
}

func truncateRunes(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit]))
}
