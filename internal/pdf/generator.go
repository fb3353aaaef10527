package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/aifa-contracts/internal/format"
	"github.com/nurpe/aifa-contracts/internal/model"
)

const fontName = "Helvetica"

// Generator renders the one-page PAAS summary. The core font is used with a
// cp1252 translator, which covers Spanish text.
type Generator struct {
	money *format.Formatter
}

func NewGenerator(money *format.Formatter) *Generator {
	if money == nil {
		money = format.NewFormatter("es-MX")
	}
	return &Generator{money: money}
}

func (g *Generator) Generate(summary model.BudgetSummary, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Resumen PAAS", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Aeropuerto Internacional Felipe Ángeles"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr("Resumen del Programa Anual de Adquisiciones (PAAS)"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Generado el %s", generatedAt.Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, tr("Totales"))
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Partidas: %d", summary.ItemCount)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Monto solicitado: %s", g.money.Amount(summary.TotalRequested))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Monto modificado: %s", g.money.Amount(summary.TotalRevised))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, tr("Monto solicitado por área"))
	unitWidths := []float64{110, 25, 45}
	drawTableRow(pdf, tr, []string{"Área", "Partidas", "Monto"}, unitWidths, true)
	for _, unit := range summary.ByUnit {
		drawTableRow(pdf, tr, []string{
			clip(unit.OrgUnit, 60),
			fmt.Sprintf("%d", unit.Items),
			g.money.Amount(unit.Amount),
		}, unitWidths, false)
	}
	if len(summary.ByUnit) == 0 {
		emptyRow(pdf, tr)
	}
	pdf.Ln(4)

	sectionTitle(pdf, tr("Partidas con mayor monto"))
	topWidths := []float64{20, 100, 60}
	drawTableRow(pdf, tr, []string{"No.", "Servicio", "Monto solicitado"}, topWidths, true)
	for _, item := range summary.TopItems {
		drawTableRow(pdf, tr, []string{
			safeValue(item.SeqNo),
			clip(item.ServiceName, 55),
			g.money.Currency(item.RequestedAmount),
		}, topWidths, false)
	}
	if len(summary.TopItems) == 0 {
		emptyRow(pdf, tr)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 && !header {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func emptyRow(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont(fontName, "I", 10)
	pdf.CellFormat(0, 7, tr("Sin partidas registradas"), "1", 1, "C", false, 0, "")
}

func clip(value string, limit int) string {
	value = safeValue(value)
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-3]) + "..."
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
