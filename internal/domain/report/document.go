package report

import (
	"strings"
	"time"
)

// EmptyDate texto del encabezado cuando una fecha límite no está definida.
const EmptyDate = "—"

// Document contenido de un archivo exportado: rango de fechas y una tabla por producto.
type Document struct {
	Kind        Kind
	From        string // YYYY-MM-DD o vacío
	To          string
	Tables      []ProductTable
	Totals      Totals
	GeneratedAt time.Time
}

// FromText fecha inicial para el encabezado.
func (d Document) FromText() string { return dateOrDash(d.From) }

// ToText fecha final para el encabezado.
func (d Document) ToText() string { return dateOrDash(d.To) }

func dateOrDash(s string) string {
	if s == "" {
		return EmptyDate
	}
	return s
}

// ExportFileName "<prefijo>-<instante ISO con ':' y '.' cambiados por '-'>.<ext>".
func ExportFileName(prefix string, at time.Time, ext string) string {
	ts := at.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return prefix + "-" + ts + "." + ext
}
