package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
	"github.com/jhoicas/inventario-movimientos/internal/domain/movement"
	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/export"
)

func strPtr(s string) *string { return &s }

// sampleDocument dos bodegas; la segunda sin datos para el producto.
func sampleDocument(t *testing.T) report.Document {
	t.Helper()
	rep := report.AggregateMovements([]report.RawRow{
		{WarehouseID: "8", ProductID: "1", Moves: map[movement.Key]float64{movement.Purchase: 12.5}},
	})
	view := report.NewMovementView(rep, []movement.Key{movement.Sales, movement.Purchase})
	item := entity.CatalogItem{ID: "1", Label: "Arroz <blanco>", Category: strPtr("Granos"), Code: strPtr("7701")}
	names := map[string]string{"8": "Central", "9": "Norte"}
	return report.Document{
		Kind:   report.KindMovement,
		From:   "2025-07-01",
		Tables: view.Tables([]entity.CatalogItem{item}, []string{"8", "9"}, func(k string) string { return names[k] }),
		Totals: report.MovementTotals(rep),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// HTML (.xls)
// ──────────────────────────────────────────────────────────────────────────────

func TestHTMLExporter_Contenido(t *testing.T) {
	exp := export.NewHTMLExporter()
	assert.Equal(t, "xls", exp.Format())
	assert.Equal(t, "application/vnd.ms-excel;charset=utf-8;", exp.ContentType())

	var buf bytes.Buffer
	require.NoError(t, exp.Render(&buf, sampleDocument(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<strong>From:</strong> 2025-07-01")
	assert.Contains(t, out, "<strong>To:</strong> —")
	assert.Contains(t, out, `colspan="3"`)
	assert.Contains(t, out, "Arroz &lt;blanco&gt; — Granos — 7701", "el texto se escapa")
	assert.NotContains(t, out, "<blanco>")
	assert.Contains(t, out, "<th>Purchases</th><th>Sales</th>", "orden canónico de columnas")
	assert.Contains(t, out, `<td style="text-align:left">Central</td><td>12.50</td><td>0.00</td>`)
	assert.Contains(t, out, `<td style="text-align:left">Norte</td><td></td><td></td>`, "bodega sin datos en blanco")
	assert.Contains(t, out, `<tfoot><tr><td style="text-align:left">Totals</td><td>12.50</td><td>0.00</td></tr></tfoot>`)
}

func TestHTMLExporter_SinTablas(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewHTMLExporter().Render(&buf, report.Document{}))
	assert.Contains(t, buf.String(), "<strong>From:</strong> —")
	assert.NotContains(t, buf.String(), "<table>")
}

// ──────────────────────────────────────────────────────────────────────────────
// XLSX
// ──────────────────────────────────────────────────────────────────────────────

func TestXLSXExporter_Celdas(t *testing.T) {
	exp := export.NewXLSXExporter()
	assert.Equal(t, "xlsx", exp.Extension())

	var buf bytes.Buffer
	require.NoError(t, exp.Render(&buf, sampleDocument(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 8)

	assert.Equal(t, []string{"From:", "2025-07-01"}, rows[0])
	assert.Equal(t, []string{"To:", "—"}, rows[1])
	assert.Equal(t, "Arroz <blanco> — Granos — 7701", rows[3][0])
	assert.Equal(t, []string{"Warehouse", "Purchases", "Sales"}, rows[4])
	assert.Equal(t, []string{"Central", "12.5", "0"}, rows[5], "valores numéricos crudos")
	assert.Equal(t, []string{"Norte"}, rows[6], "celdas vacías al final no se listan")
	assert.Equal(t, []string{"Totals", "12.5", "0"}, rows[7])

	for _, cell := range []string{"B6", "C6", "B8", "C8"} {
		assert.Equal(t, "0.00", numFmtOf(t, f, cell), cell)
	}

	merged, err := f.GetMergeCells("Report")
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Equal(t, "A4", merged[0].GetStartAxis())
	assert.Equal(t, "C4", merged[0].GetEndAxis())
}

// numFmtOf formato numérico aplicado a la celda de la hoja "Report".
func numFmtOf(t *testing.T, f *excelize.File, cell string) string {
	t.Helper()
	idx, err := f.GetCellStyle("Report", cell)
	require.NoError(t, err)
	style, err := f.GetStyle(idx)
	require.NoError(t, err)
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt
	}
	if style.NumFmt == 2 {
		return "0.00"
	}
	return ""
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestPDFExporter_GeneraDocumento(t *testing.T) {
	exp := export.NewPDFExporter()
	assert.Equal(t, "application/pdf", exp.ContentType())

	var buf bytes.Buffer
	require.NoError(t, exp.Render(&buf, sampleDocument(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
