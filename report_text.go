package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/amlstats/alert_analyzer/domain/models"
)

// GenerateTextReport renders the plain-text FPR report. Percentages are
// printed with one decimal, raw rates with three.
func GenerateTextReport(quality models.QualityReport, m models.RateMetrics, disposition []models.DispositionStats, runID string) string {
	buf := &strings.Builder{}
	line := strings.Repeat("=", 80)

	buf.WriteString(line + "\n")
	buf.WriteString("TRANSACTION MONITORING FALSE POSITIVE ANALYSIS\n")
	buf.WriteString("Run ID: " + runID + "\n")
	buf.WriteString(line + "\n\n")

	writeExecutiveSummary(buf, quality, m)
	writeDetailedAnalysis(buf, quality, m, disposition)
	writeRecommendations(buf, quality, m)

	return buf.String()
}

func writeExecutiveSummary(buf *strings.Builder, quality models.QualityReport, m models.RateMetrics) {
	buf.WriteString("EXECUTIVE SUMMARY\n")
	buf.WriteString("-----------------\n")
	if !m.Computable {
		fmt.Fprintf(buf, "Rate metrics not computable: column %q is absent.\n", models.ColumnOutcome)
		fmt.Fprintf(buf, "Total rows analyzed: %d\n", quality.RowCount)
		fmt.Fprintf(buf, "Data quality flags:  %d\n\n", len(quality.Flags))
		return
	}
	fmt.Fprintf(buf, "Total alerts:        %d\n", m.TotalAlerts)
	fmt.Fprintf(buf, "False positives:     %d\n", m.FalsePositives)
	fmt.Fprintf(buf, "True positives:      %d\n", m.TruePositives)
	fmt.Fprintf(buf, "Overall FPR:         %.1f%%\n", 100*m.OverallFPR)
	fmt.Fprintf(buf, "Overall TPR:         %.1f%%\n", 100*m.OverallTPR)
	fmt.Fprintf(buf, "Data quality flags:  %d\n\n", len(quality.Flags))
}

func writeDetailedAnalysis(buf *strings.Builder, quality models.QualityReport, m models.RateMetrics, disposition []models.DispositionStats) {
	buf.WriteString("DETAILED ANALYSIS\n")
	buf.WriteString("-----------------\n")

	if m.Computable {
		writeRateTable(buf, "FPR by alert type", "ALERT TYPE", m.FPRByAlertType)
		writeRateTable(buf, "FPR by customer risk tier", "RISK TIER", m.FPRByRiskTier)
		writeRateTable(buf, "FPR by country (top 10)", "COUNTRY", m.FPRByCountry)

		if len(m.TPRByAmountBucket) > 0 {
			buf.WriteString("TPR by transaction amount:\n")
			t := table.NewWriter()
			t.AppendHeader(table.Row{"BUCKET", "TPR", "ALERTS"})
			for _, b := range m.TPRByAmountBucket {
				t.AppendRows([]table.Row{{b.Label, fmt.Sprintf("%.3f", b.Rate), b.Count}})
			}
			t.SetStyle(table.StyleDefault)
			buf.WriteString(t.Render() + "\n\n")
		}

		if len(m.TPRByCountryRisk) > 0 {
			buf.WriteString("TPR by country and risk tier:\n")
			t := table.NewWriter()
			t.AppendHeader(table.Row{"COUNTRY", "RISK TIER", "TPR", "ALERTS"})
			for _, p := range m.TPRByCountryRisk {
				t.AppendRows([]table.Row{{p.Country, p.RiskTier, fmt.Sprintf("%.3f", p.Rate), p.Count}})
			}
			t.SetStyle(table.StyleDefault)
			buf.WriteString(t.Render() + "\n\n")
		}
	}

	if len(disposition) > 0 {
		buf.WriteString("Time to disposition by alert type (days):\n")
		t := table.NewWriter()
		t.AppendHeader(table.Row{"ALERT TYPE", "MEAN", "MIN", "Q1", "MEDIAN", "Q3", "MAX", "ALERTS"})
		for _, d := range disposition {
			t.AppendRows([]table.Row{{
				d.AlertType,
				fmt.Sprintf("%.1f", d.Mean),
				fmt.Sprintf("%.1f", d.Summary.Min),
				fmt.Sprintf("%.1f", d.Summary.Q1),
				fmt.Sprintf("%.1f", d.Summary.Median),
				fmt.Sprintf("%.1f", d.Summary.Q3),
				fmt.Sprintf("%.1f", d.Summary.Max),
				d.Summary.Count,
			}})
		}
		t.SetStyle(table.StyleDefault)
		buf.WriteString(t.Render() + "\n\n")
	}

	buf.WriteString("Data quality:\n")
	fmt.Fprintf(buf, "  rows: %d, distinct rows: %d, duplicates: %d (%.1f%%)\n",
		quality.RowCount, quality.Duplicates.DistinctRows, quality.Duplicates.Count, quality.Duplicates.Percent)
	fmt.Fprintf(buf, "  rows with at least one missing value: %d\n", quality.Missing.RowsWithMissing)
	if len(quality.Flags) == 0 {
		buf.WriteString("  no quality flags raised\n")
	}
	for _, flag := range quality.Flags {
		buf.WriteString("  " + flag + "\n")
	}
	buf.WriteString("\n")
}

func writeRateTable(buf *strings.Builder, title, dimension string, entries []models.RateEntry) {
	if len(entries) == 0 {
		return
	}
	buf.WriteString(title + ":\n")
	t := table.NewWriter()
	t.AppendHeader(table.Row{dimension, "FPR", "ALERTS"})
	for _, e := range entries {
		t.AppendRows([]table.Row{{e.Value, fmt.Sprintf("%.3f", e.Rate), e.Count}})
	}
	t.SetStyle(table.StyleDefault)
	buf.WriteString(t.Render() + "\n\n")
}

func writeRecommendations(buf *strings.Builder, quality models.QualityReport, m models.RateMetrics) {
	buf.WriteString("RECOMMENDATIONS\n")
	buf.WriteString("---------------\n")

	count := 0
	add := func(format string, args ...interface{}) {
		count++
		fmt.Fprintf(buf, "%d. %s\n", count, fmt.Sprintf(format, args...))
	}

	if m.Computable {
		if m.OverallFPR > 0.9 {
			add("Overall FPR is %.1f%%; the monitoring rules fire almost exclusively on benign activity and need a broad threshold review.", 100*m.OverallFPR)
		} else if m.OverallFPR > 0.5 {
			add("Overall FPR is %.1f%%; more than half of all alerts are false positives.", 100*m.OverallFPR)
		}
		if len(m.FPRByAlertType) > 0 {
			top := m.FPRByAlertType[0]
			if top.Rate > m.OverallFPR {
				add("Alert type %q has the highest FPR (%.3f over %d alerts); review its rule thresholds first.", top.Value, top.Rate, top.Count)
			}
		}
		if len(m.FPRByCountry) > 0 && m.FPRByCountry[0].Rate > 0.95 {
			add("Country %q produces almost no true positives (FPR %.3f); consider jurisdiction-specific tuning.", m.FPRByCountry[0].Value, m.FPRByCountry[0].Rate)
		}
	}
	for _, flag := range quality.Flags {
		if strings.HasPrefix(flag, "HIGH:") {
			add("Resolve data quality issue: %s", strings.TrimSpace(strings.TrimPrefix(flag, "HIGH:")))
		}
	}
	if count == 0 {
		buf.WriteString("No specific recommendations; rates and data quality are within expected ranges.\n")
	}
}
