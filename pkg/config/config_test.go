package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Report.ChunkSize)
	assert.Equal(t, 4, cfg.Report.Parallelism)
	assert.Equal(t, 20, cfg.Report.PageSize)
	assert.Equal(t, "2025-07-01", cfg.Report.AsOfFrom)
	assert.Equal(t, []int64{8, 9, 10, 11, 12, 18}, cfg.Report.WarehouseIDs)
	assert.Equal(t, "productwise-report", cfg.Report.ExportPrefix)
	assert.Zero(t, cfg.Report.QueryTimeout())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("REPORT_CHUNK_SIZE", "100")
	t.Setenv("REPORT_PARALLELISM", "1")
	t.Setenv("REPORT_WAREHOUSE_IDS", " 3, 4 ,")
	t.Setenv("REPORT_QUERY_TIMEOUT_SECONDS", "30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Report.ChunkSize)
	assert.Equal(t, 1, cfg.Report.Parallelism)
	assert.Equal(t, []int64{3, 4}, cfg.Report.WarehouseIDs)
	assert.Equal(t, 30*time.Second, cfg.Report.QueryTimeout())
}

func TestLoad_Invalidos(t *testing.T) {
	t.Run("bloque cero", func(t *testing.T) {
		t.Setenv("REPORT_CHUNK_SIZE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("bodegas no numéricas", func(t *testing.T) {
		t.Setenv("REPORT_WAREHOUSE_IDS", "8,central")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("fecha a la fecha", func(t *testing.T) {
		t.Setenv("REPORT_AS_OF_FROM", "julio")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/inv?sslmode=disable", c.DSN())
	assert.Equal(t, "postgres://x", DBConfig{DatabaseURL: "postgres://x"}.ConnectionString())
}
