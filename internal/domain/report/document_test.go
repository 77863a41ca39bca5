package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-movimientos/internal/domain/report"
)

func TestExportFileName(t *testing.T) {
	at := time.Date(2025, 7, 31, 14, 5, 9, 123_000_000, time.UTC)
	assert.Equal(t, "productwise-report-2025-07-31T14-05-09-123Z.xls", report.ExportFileName("productwise-report", at, "xls"))

	bogota := time.FixedZone("COT", -5*3600)
	assert.Equal(t, "r-2025-07-31T19-05-09-000Z.pdf", report.ExportFileName("r", time.Date(2025, 7, 31, 14, 5, 9, 0, bogota), "pdf"))
}

func TestDocument_FechasVacias(t *testing.T) {
	d := report.Document{From: "2025-07-01"}
	assert.Equal(t, "2025-07-01", d.FromText())
	assert.Equal(t, "—", d.ToText())
}
