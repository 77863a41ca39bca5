package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheet       = "Report"
)

// XLSXExporter libro de Excel nativo con todas las tablas en una hoja.
// Las celdas con datos se escriben como número con formato 0.00.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (XLSXExporter) Format() string      { return FormatXLSX }
func (XLSXExporter) Extension() string   { return "xlsx" }
func (XLSXExporter) ContentType() string { return xlsxContentType }

// Render escribe el libro en w.
func (XLSXExporter) Render(w io.Writer, doc report.Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export xlsx: %w", cerr)
		}
	}()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}

	st, err := newXLSXStyles(f)
	if err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	sw := &sheetWriter{f: f, st: st}

	sw.row([]any{"From:", doc.FromText()}, st.bold)
	sw.row([]any{"To:", doc.ToText()}, st.bold)
	sw.next++

	for _, t := range doc.Tables {
		sw.table(t)
		sw.next++
	}
	if sw.err != nil {
		return fmt.Errorf("export xlsx: %w", sw.err)
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 28); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export xlsx: %w", err)
	}
	return nil
}

type xlsxStyles struct {
	bold, title, header, number, footer int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var (
		s   xlsxStyles
		err error
	)
	border := []excelize.Border{
		{Type: "left", Color: "D1D5DB", Style: 1},
		{Type: "right", Color: "D1D5DB", Style: 1},
		{Type: "top", Color: "D1D5DB", Style: 1},
		{Type: "bottom", Color: "D1D5DB", Style: 1},
	}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	if s.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14}, Fill: fill("F3F4F6"), Border: border,
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "374151"}, Fill: fill("F9FAFB"), Border: border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	numFmt := "0.00"
	if s.number, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt, Border: border, Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	s.footer, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt, Font: &excelize.Font{Bold: true}, Fill: fill("F9FAFB"), Border: border,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return s, err
}

// sheetWriter escribe filas consecutivas y conserva el primer error.
type sheetWriter struct {
	f    *excelize.File
	st   xlsxStyles
	next int
	err  error
}

func (sw *sheetWriter) row(values []any, style int) int {
	sw.next++
	if sw.err != nil || len(values) == 0 {
		return sw.next
	}
	start, err := excelize.CoordinatesToCellName(1, sw.next)
	if err != nil {
		sw.err = err
		return sw.next
	}
	if err := sw.f.SetSheetRow(xlsxSheet, start, &values); err != nil {
		sw.err = err
		return sw.next
	}
	end, _ := excelize.CoordinatesToCellName(len(values), sw.next)
	sw.err = sw.f.SetCellStyle(xlsxSheet, start, end, style)
	return sw.next
}

func (sw *sheetWriter) table(t report.ProductTable) {
	width := t.ColumnCount()

	r := sw.row([]any{t.Title()}, sw.st.title)
	if sw.err == nil && width > 1 {
		start, _ := excelize.CoordinatesToCellName(1, r)
		end, _ := excelize.CoordinatesToCellName(width, r)
		if err := sw.f.MergeCell(xlsxSheet, start, end); err != nil {
			sw.err = err
		}
	}

	header := make([]any, 0, width)
	header = append(header, report.HeaderWarehouse)
	for _, c := range t.Columns {
		header = append(header, c.Label)
	}
	sw.row(header, sw.st.header)

	for _, tr := range t.Rows {
		sw.row(cellValues(tr.WarehouseName, tr.Cells), sw.st.number)
	}
	sw.row(cellValues(report.FooterTotals, t.Footer), sw.st.footer)
}

// cellValues números redondeados a dos decimales; las celdas en blanco quedan vacías.
func cellValues(first string, cells []report.Cell) []any {
	out := make([]any, 0, len(cells)+1)
	out = append(out, first)
	for _, c := range cells {
		if c.Blank {
			out = append(out, nil)
			continue
		}
		out = append(out, report.RoundAmount(c.Value))
	}
	return out
}
