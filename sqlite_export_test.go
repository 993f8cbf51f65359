package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openExportDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)
	return db
}

func TestExportSQLite(t *testing.T) {
	ds := buildTestMetricsDataset(t)
	quality := AnalyzeQuality(ds)
	metrics := CalculateRateMetrics(ds)

	path := filepath.Join(t.TempDir(), "alerts.db")
	assert.NoError(t, ExportSQLite(ds, quality, metrics, path))

	db := openExportDB(t, path)

	var alerts int64
	assert.NoError(t, db.Raw("SELECT COUNT(*) FROM alerts").Scan(&alerts).Error)
	assert.Equal(t, int64(ds.Rows), alerts)

	var columns int64
	assert.NoError(t, db.Raw("SELECT COUNT(*) FROM column_summary").Scan(&columns).Error)
	assert.Equal(t, int64(len(ds.Columns)), columns)

	var overallFPR float64
	assert.NoError(t, db.Raw(
		"SELECT rate FROM rate_breakdown WHERE dimension = 'overall' AND metric = 'fpr'",
	).Scan(&overallFPR).Error)
	assert.InDelta(t, metrics.OverallFPR, overallFPR, 1e-9)

	var breakdowns int64
	assert.NoError(t, db.Raw("SELECT COUNT(*) FROM rate_breakdown").Scan(&breakdowns).Error)
	want := int64(2 + len(metrics.FPRByAlertType) + len(metrics.FPRByRiskTier) +
		len(metrics.FPRByCountry) + len(metrics.TPRByAmountBucket) + len(metrics.TPRByCountryRisk))
	assert.Equal(t, want, breakdowns)
}

func TestExportSQLiteReplacesTables(t *testing.T) {
	ds := buildTestMetricsDataset(t)
	quality := AnalyzeQuality(ds)
	metrics := CalculateRateMetrics(ds)

	path := filepath.Join(t.TempDir(), "alerts.db")
	assert.NoError(t, ExportSQLite(ds, quality, metrics, path))
	assert.NoError(t, ExportSQLite(ds, quality, metrics, path))

	db := openExportDB(t, path)
	var alerts int64
	assert.NoError(t, db.Raw("SELECT COUNT(*) FROM alerts").Scan(&alerts).Error)
	assert.Equal(t, int64(ds.Rows), alerts)
}

func TestExportSQLiteNotComputable(t *testing.T) {
	ds := loadDataset(t, "country\nDE\nFR\n")
	quality := AnalyzeQuality(ds)
	metrics := CalculateRateMetrics(ds)

	path := filepath.Join(t.TempDir(), "alerts.db")
	assert.NoError(t, ExportSQLite(ds, quality, metrics, path))

	db := openExportDB(t, path)
	var breakdowns int64
	assert.NoError(t, db.Raw("SELECT COUNT(*) FROM rate_breakdown").Scan(&breakdowns).Error)
	assert.Equal(t, int64(0), breakdowns)
}
