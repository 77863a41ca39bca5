package export

import (
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 55, Green: 65, Blue: 81}
	colorBorder  = &props.Color{Red: 209, Green: 213, Blue: 219}
	colorTitle   = &props.Color{Red: 243, Green: 244, Blue: 246}
	colorHeader  = &props.Color{Red: 249, Green: 250, Blue: 251}
)

// La columna de bodega ocupa dos unidades de la grilla; cada columna numérica una.
const warehouseSpan = 2

// ── Exporter ──────────────────────────────────────────────────────────────────

// PDFExporter genera el reporte en A4 horizontal usando Maroto v2.
type PDFExporter struct{}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (PDFExporter) Format() string      { return FormatPDF }
func (PDFExporter) Extension() string   { return "pdf" }
func (PDFExporter) ContentType() string { return "application/pdf" }

// Render genera el PDF y lo escribe en w.
func (PDFExporter) Render(w io.Writer, doc report.Document) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithMaxGridSize(gridSize(doc)).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(pdfTitle(doc.Kind), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(rangeRows(doc)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, t := range doc.Tables {
		m.AddRows(tableRows(t)...)
		m.AddRows(row.New(4))
	}

	out, err := m.Generate()
	if err != nil {
		return fmt.Errorf("pdf: generar documento: %w", err)
	}
	if _, err := w.Write(out.GetBytes()); err != nil {
		return fmt.Errorf("pdf: escribir documento: %w", err)
	}
	return nil
}

func pdfTitle(kind report.Kind) string {
	if kind == report.KindAsOf {
		return "Stock As Of Report"
	}
	return "Product Movement Report"
}

// gridSize ancho de la tabla más ancha en unidades de grilla.
func gridSize(doc report.Document) int {
	size := warehouseSpan + 1
	for _, t := range doc.Tables {
		size = max(size, warehouseSpan+len(t.Columns))
	}
	return size
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// rangeRows título y fechas From / To.
func rangeRows(doc report.Document) []core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Top: top})
	}
	return []core.Row{
		row.New(10).Add(col.New().Add(
			text.New(pdfTitle(doc.Kind), props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		)),
		row.New(6).Add(col.New().Add(label("From: "+doc.FromText(), 1))),
		row.New(6).Add(col.New().Add(label("To: "+doc.ToText(), 0))),
	}
}

// tableRows título del producto, cabecera, una fila por bodega y totales.
func tableRows(t report.ProductTable) []core.Row {
	width := warehouseSpan + len(t.Columns)
	rows := make([]core.Row, 0, len(t.Rows)+3)

	rows = append(rows, row.New(7).Add(
		col.New(width).Add(text.New(t.Title(), props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 1.5, Left: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorTitle, BorderType: border.Full, BorderColor: colorBorder}),
	))

	header := []core.Col{headerCol(report.HeaderWarehouse, warehouseSpan, align.Left)}
	for _, c := range t.Columns {
		header = append(header, headerCol(c.Label, 1, align.Center))
	}
	rows = append(rows, row.New(8).Add(header...))

	for _, tr := range t.Rows {
		rows = append(rows, row.New(6).Add(valueCols(tr.WarehouseName, tr.Cells, fontstyle.Normal, nil)...))
	}
	rows = append(rows, row.New(6).Add(valueCols(report.FooterTotals, t.Footer, fontstyle.Bold, colorHeader)...))
	return rows
}

func headerCol(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
	})).WithStyle(&props.Cell{BackgroundColor: colorHeader, BorderType: border.Full, BorderColor: colorBorder})
}

func valueCols(first string, cells []report.Cell, style fontstyle.Type, bg *props.Color) []core.Col {
	cellStyle := &props.Cell{BackgroundColor: bg, BorderType: border.Full, BorderColor: colorBorder}
	cols := make([]core.Col, 0, len(cells)+1)
	cols = append(cols, col.New(warehouseSpan).Add(text.New(first, props.Text{
		Style: style, Size: 8, Align: align.Left, Top: 1, Left: 1,
	})).WithStyle(cellStyle))
	for _, c := range cells {
		cols = append(cols, col.New(1).Add(text.New(c.Text(), props.Text{
			Style: style, Size: 8, Align: align.Center, Top: 1,
		})).WithStyle(cellStyle))
	}
	return cols
}
