package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amlstats/alert_analyzer/domain/models"
)

// AnalyzeQuality computes the data quality report over the loaded table.
// The dataset is never mutated and every ratio is zero-guarded, so empty
// tables and all-null columns are fine.
func AnalyzeQuality(ds *Dataset) models.QualityReport {
	report := models.QualityReport{
		RowCount:    ds.Rows,
		ColumnCount: len(ds.Columns),
		Missing:     analyzeMissing(ds),
		Duplicates:  analyzeDuplicates(ds),
		Outliers:    analyzeOutliers(ds),
		Inconsistencies: models.InconsistencyStats{
			NegativeValues: map[string]int{},
			EmptyStrings:   map[string]int{},
			WhitespaceOnly: map[string]int{},
		},
	}
	analyzeInconsistencies(ds, &report.Inconsistencies)
	report.Flags = generateFlags(ds, &report)
	return report
}

func analyzeMissing(ds *Dataset) models.MissingStats {
	stats := models.MissingStats{ByColumn: map[string]models.MissingColumnStats{}}
	for _, col := range ds.Columns {
		count := 0
		for _, missing := range col.Missing {
			if missing {
				count++
			}
		}
		stats.ByColumn[col.Name] = models.MissingColumnStats{
			Count:   count,
			Percent: percentOf(count, ds.Rows),
		}
	}
	for row := 0; row < ds.Rows; row++ {
		for _, col := range ds.Columns {
			if col.Missing[row] {
				stats.RowsWithMissing++
				break
			}
		}
	}
	return stats
}

func analyzeDuplicates(ds *Dataset) models.DuplicateStats {
	seen := map[string]bool{}
	for row := 0; row < ds.Rows; row++ {
		var key strings.Builder
		for i := range ds.Columns {
			key.WriteString(ds.Cell(&ds.Columns[i], row))
			key.WriteByte(0x1f)
		}
		seen[key.String()] = true
	}
	distinct := len(seen)
	count := ds.Rows - distinct
	return models.DuplicateStats{
		Count:        count,
		Percent:      percentOf(count, ds.Rows),
		DistinctRows: distinct,
	}
}

func analyzeOutliers(ds *Dataset) map[string]models.OutlierStats {
	outliers := map[string]models.OutlierStats{}
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if !col.IsNumeric() {
			continue
		}
		values := col.Values()
		if len(values) == 0 {
			continue
		}

		sorted := make([]float64, len(values))
		copy(sorted, values)
		sort.Float64s(sorted)

		q1 := calculateQuantile(sorted, 0.25)
		q3 := calculateQuantile(sorted, 0.75)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr

		count := 0
		for _, v := range values {
			if v < lower || v > upper {
				count++
			}
		}
		outliers[col.Name] = models.OutlierStats{
			Count:      count,
			Percent:    percentOf(count, len(values)),
			LowerBound: lower,
			UpperBound: upper,
			Min:        sorted[0],
			Max:        sorted[len(sorted)-1],
		}
	}
	return outliers
}

// isAmountLike reports whether a column name suggests monetary content.
func isAmountLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "amount") || strings.Contains(lower, "value")
}

func analyzeInconsistencies(ds *Dataset, stats *models.InconsistencyStats) {
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.IsNumeric() {
			if !isAmountLike(col.Name) {
				continue
			}
			negatives := 0
			for _, v := range col.Values() {
				if v < 0 {
					negatives++
				}
			}
			if negatives > 0 {
				stats.NegativeValues[col.Name] = negatives
			}
			continue
		}

		empty, blank := 0, 0
		for row, text := range col.Texts {
			if col.Missing[row] || text == "" {
				empty++
				continue
			}
			if strings.TrimSpace(text) == "" {
				// non-empty but whitespace-only, counted apart from empty
				blank++
			}
		}
		if empty > 0 {
			stats.EmptyStrings[col.Name] = empty
		}
		if blank > 0 {
			stats.WhitespaceOnly[col.Name] = blank
		}
	}
}

// generateFlags walks the analyses in a fixed order (missing, duplicates,
// outliers, inconsistencies) and emits one flag per triggering condition.
// All thresholds are strict.
func generateFlags(ds *Dataset, report *models.QualityReport) []string {
	flags := []string{}

	for _, col := range ds.Columns {
		m := report.Missing.ByColumn[col.Name]
		switch {
		case m.Percent > 50:
			flags = append(flags, fmt.Sprintf("HIGH: column %q is %.1f%% missing", col.Name, m.Percent))
		case m.Percent > 20:
			flags = append(flags, fmt.Sprintf("MODERATE: column %q is %.1f%% missing", col.Name, m.Percent))
		}
	}

	switch {
	case report.Duplicates.Percent > 10:
		flags = append(flags, fmt.Sprintf("HIGH: %.1f%% of rows are exact duplicates", report.Duplicates.Percent))
	case report.Duplicates.Percent > 5:
		flags = append(flags, fmt.Sprintf("MODERATE: %.1f%% of rows are exact duplicates", report.Duplicates.Percent))
	}

	for _, col := range ds.Columns {
		o, ok := report.Outliers[col.Name]
		if ok && o.Percent > 10 {
			flags = append(flags, fmt.Sprintf("HIGH: column %q has %.1f%% outliers", col.Name, o.Percent))
		}
	}

	for _, col := range ds.Columns {
		if n := report.Inconsistencies.NegativeValues[col.Name]; n > 0 {
			flags = append(flags, fmt.Sprintf("WARNING: column %q has %d negative values", col.Name, n))
		}
	}
	for _, col := range ds.Columns {
		if n := report.Inconsistencies.WhitespaceOnly[col.Name]; n > 0 {
			flags = append(flags, fmt.Sprintf("WARNING: column %q has %d whitespace-only values", col.Name, n))
		}
	}

	return flags
}
