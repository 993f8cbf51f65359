package main

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amlstats/alert_analyzer/domain/models"
)

const exportBatchSize = 500

// ExportSQLite persists the loaded dataset plus the computed summaries
// into a SQLite file: `alerts` mirrors the input table, `column_summary`
// holds per-column quality numbers and `rate_breakdown` the grouped rates.
// Existing tables are replaced; the export is re-derivable from the input.
func ExportSQLite(ds *Dataset, quality models.QualityReport, m models.RateMetrics, path string) error {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if err := exportAlerts(db, ds); err != nil {
		return err
	}
	if err := exportColumnSummary(db, ds, quality); err != nil {
		return err
	}
	return exportRateBreakdown(db, m)
}

func sqliteType(columnType string) string {
	switch columnType {
	case models.TypeInt:
		return "INTEGER"
	case models.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

func exportAlerts(db *gorm.DB, ds *Dataset) error {
	fields := make([]string, len(ds.Columns))
	names := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		fields[i] = fmt.Sprintf("%s %s", col.Name, sqliteType(col.Type))
		names[i] = col.Name
	}

	if tx := db.Exec("DROP TABLE IF EXISTS alerts"); tx.Error != nil {
		return tx.Error
	}
	create := "CREATE TABLE alerts (" + strings.Join(fields, ", ") + ")"
	if tx := db.Exec(create); tx.Error != nil {
		return fmt.Errorf("create alerts table: %w", tx.Error)
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(ds.Columns)), ",") + ")"
	insert := "INSERT INTO alerts (" + strings.Join(names, ", ") + ") VALUES "

	args := make([]interface{}, 0, exportBatchSize*len(ds.Columns))
	placeholders := make([]string, 0, exportBatchSize)
	flush := func() error {
		if len(placeholders) == 0 {
			return nil
		}
		tx := db.Exec(insert+strings.Join(placeholders, ","), args...)
		args = args[:0]
		placeholders = placeholders[:0]
		return tx.Error
	}

	for row := 0; row < ds.Rows; row++ {
		placeholders = append(placeholders, placeholder)
		for i := range ds.Columns {
			col := &ds.Columns[i]
			switch {
			case col.Missing[row]:
				args = append(args, nil)
			case col.IsNumeric():
				args = append(args, col.Floats[row])
			default:
				args = append(args, col.Texts[row])
			}
		}
		if len(placeholders) == exportBatchSize {
			if err := flush(); err != nil {
				return fmt.Errorf("insert alerts: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return fmt.Errorf("insert alerts: %w", err)
	}
	return nil
}

func exportColumnSummary(db *gorm.DB, ds *Dataset, quality models.QualityReport) error {
	if tx := db.Exec("DROP TABLE IF EXISTS column_summary"); tx.Error != nil {
		return tx.Error
	}
	create := `CREATE TABLE column_summary (
		name TEXT, type TEXT,
		missing_count INTEGER, missing_percent REAL,
		outlier_count INTEGER, outlier_percent REAL,
		lower_bound REAL, upper_bound REAL)`
	if tx := db.Exec(create); tx.Error != nil {
		return fmt.Errorf("create column_summary table: %w", tx.Error)
	}

	for _, col := range ds.Columns {
		missing := quality.Missing.ByColumn[col.Name]
		outliers := quality.Outliers[col.Name]
		tx := db.Exec(
			"INSERT INTO column_summary VALUES (?,?,?,?,?,?,?,?)",
			col.Name, col.Type,
			missing.Count, missing.Percent,
			outliers.Count, outliers.Percent,
			outliers.LowerBound, outliers.UpperBound,
		)
		if tx.Error != nil {
			return fmt.Errorf("insert column_summary: %w", tx.Error)
		}
	}
	return nil
}

func exportRateBreakdown(db *gorm.DB, m models.RateMetrics) error {
	if tx := db.Exec("DROP TABLE IF EXISTS rate_breakdown"); tx.Error != nil {
		return tx.Error
	}
	create := `CREATE TABLE rate_breakdown (
		dimension TEXT, value TEXT, metric TEXT, rate REAL, alerts INTEGER)`
	if tx := db.Exec(create); tx.Error != nil {
		return fmt.Errorf("create rate_breakdown table: %w", tx.Error)
	}
	if !m.Computable {
		return nil
	}

	insert := func(dimension, value, metric string, rate float64, count int) error {
		tx := db.Exec("INSERT INTO rate_breakdown VALUES (?,?,?,?,?)",
			dimension, value, metric, rate, count)
		return tx.Error
	}

	if err := insert("overall", "", "fpr", m.OverallFPR, m.TotalAlerts); err != nil {
		return err
	}
	if err := insert("overall", "", "tpr", m.OverallTPR, m.TotalAlerts); err != nil {
		return err
	}
	for _, e := range m.FPRByAlertType {
		if err := insert(models.ColumnAlertType, e.Value, "fpr", e.Rate, e.Count); err != nil {
			return err
		}
	}
	for _, e := range m.FPRByRiskTier {
		if err := insert(models.ColumnRiskTier, e.Value, "fpr", e.Rate, e.Count); err != nil {
			return err
		}
	}
	for _, e := range m.FPRByCountry {
		if err := insert(models.ColumnCountry, e.Value, "fpr", e.Rate, e.Count); err != nil {
			return err
		}
	}
	for _, b := range m.TPRByAmountBucket {
		if err := insert("amount_bucket", b.Label, "tpr", b.Rate, b.Count); err != nil {
			return err
		}
	}
	for _, p := range m.TPRByCountryRisk {
		if err := insert("country_risk_tier", p.Country+"/"+p.RiskTier, "tpr", p.Rate, p.Count); err != nil {
			return err
		}
	}
	return nil
}
