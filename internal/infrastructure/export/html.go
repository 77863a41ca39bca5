// Package export genera los archivos descargables del reporte: tabla HTML que las
// hojas de cálculo abren como .xls, libro .xlsx y PDF.
package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

// Formatos soportados.
const (
	FormatXLS  = "xls"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const htmlContentType = "application/vnd.ms-excel;charset=utf-8;"

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html><html><head><meta charset="utf-8"/>
<style>
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d1d5db; padding: 6px; font-family: Arial, sans-serif; font-size: 12px; text-align: center; }
thead th { background: #f9fafb; color: #374151; }
.title { background: #f3f4f6; font-weight: 600; font-size: 14px; text-align: left; }
tfoot td { background: #f9fafb; font-weight: 600; }
</style></head><body>
<div style="text-align:left;font-family:Arial,sans-serif;font-size:12px;margin:0 0 8px 0;"><div><strong>From:</strong> {{.FromText}}</div><div><strong>To:</strong> {{.ToText}}</div></div>
{{range .Tables}}<table><thead>
<tr class="title"><th colspan="{{.ColumnCount}}" style="text-align:left">{{.Title}}</th></tr>
<tr><th style="text-align:left">Warehouse</th>{{range .Columns}}<th>{{.Label}}</th>{{end}}</tr>
</thead><tbody>
{{range .Rows}}<tr><td style="text-align:left">{{.WarehouseName}}</td>{{range .Cells}}<td>{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
<tfoot><tr><td style="text-align:left">Totals</td>{{range .Footer}}<td>{{.Text}}</td>{{end}}</tr></tfoot>
</table><br/>
{{end}}</body></html>
`))

// HTMLExporter tabla HTML con extensión .xls, una tabla por producto.
type HTMLExporter struct{}

// NewHTMLExporter construye el exportador.
func NewHTMLExporter() *HTMLExporter { return &HTMLExporter{} }

func (HTMLExporter) Format() string      { return FormatXLS }
func (HTMLExporter) Extension() string   { return "xls" }
func (HTMLExporter) ContentType() string { return htmlContentType }

// Render escribe el documento; el texto se escapa.
func (HTMLExporter) Render(w io.Writer, doc report.Document) error {
	if err := htmlTemplate.Execute(w, doc); err != nil {
		return fmt.Errorf("export html: %w", err)
	}
	return nil
}
