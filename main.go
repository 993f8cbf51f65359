package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	uuid "github.com/satori/go.uuid"

	"github.com/amlstats/alert_analyzer/config"
	"github.com/amlstats/alert_analyzer/domain/models"
	"github.com/amlstats/alert_analyzer/plot"
)

func main() {
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalln("cannot load config:", err)
	}

	runID := uuid.NewV4().String()
	fmt.Println("started, run", runID)

	fmt.Println("loading", cfg.InputDataPath)
	ds, err := LoadCSV(cfg.InputDataPath)
	if err != nil {
		log.Fatalln("cannot load input data:", err)
	}
	printDataOverview(ds)

	fmt.Println("analyzing data quality...")
	quality := AnalyzeQuality(ds)
	if len(quality.Flags) == 0 {
		fmt.Println("no data quality flags raised")
	}
	for _, flag := range quality.Flags {
		fmt.Println("  " + flag)
	}

	fmt.Println("calculating false/true positive rates...")
	metrics := CalculateRateMetrics(ds)
	if !metrics.Computable {
		fmt.Printf("cannot compute rate metrics: missing %q column, rate sections will be skipped\n", models.ColumnOutcome)
	}
	for _, name := range ds.MissingColumns(
		models.ColumnAlertType, models.ColumnRiskTier, models.ColumnCountry,
		models.ColumnAmount, models.ColumnDispositionDays,
	) {
		fmt.Printf("column %q not present, its breakdown will be skipped\n", name)
	}
	disposition := AnalyzeDisposition(ds)

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalln("cannot create output dir:", err)
	}

	textPath := filepath.Join(cfg.OutputDir, "fpr_report.txt")
	report := GenerateTextReport(quality, metrics, disposition, runID)
	if err := os.WriteFile(textPath, []byte(report), 0644); err != nil {
		log.Fatalln("cannot save text report:", err)
	}
	fmt.Println("text report saved as", textPath)

	if metrics.Computable {
		htmlPath := filepath.Join(cfg.OutputDir, "transaction_monitoring_analysis.html")
		if err := GenerateInteractiveReport(metrics, disposition, runID, htmlPath); err != nil {
			log.Fatalln("cannot save interactive report:", err)
		}
		fmt.Println("interactive report saved as", htmlPath)
	}

	profilePath := filepath.Join(cfg.OutputDir, "transaction_monitoring_report.html")
	if err := GenerateProfileReport(ds, quality, cfg.ReportTitle, profilePath); err != nil {
		log.Fatalln("cannot save profile report:", err)
	}
	fmt.Println("profile report saved as", profilePath)

	savePlots(ds, metrics, cfg.OutputDir)

	if cfg.SQLiteExportPath != "" {
		fmt.Println("exporting dataset to", cfg.SQLiteExportPath)
		if err := ExportSQLite(ds, quality, metrics, cfg.SQLiteExportPath); err != nil {
			log.Fatalln("cannot export sqlite:", err)
		}
	}

	fmt.Println("done")
}

// savePlots writes the static PNG charts. Plot failures are reported but
// do not abort the run; the PNGs duplicate data already present in the
// HTML and text reports.
func savePlots(ds *Dataset, m models.RateMetrics, outputDir string) {
	if m.Computable && len(m.FPRByAlertType) > 0 {
		labels := make([]string, len(m.FPRByAlertType))
		rates := make([]float64, len(m.FPRByAlertType))
		for i, e := range m.FPRByAlertType {
			labels[i] = e.Value
			rates[i] = e.Rate
		}
		writePlot(filepath.Join(outputDir, "fpr_by_alert_type.png"), func() ([]byte, error) {
			return plot.DrawRateBars("FPR by Alert Type", labels, rates)
		})
	}

	if amount, ok := ds.Column(models.ColumnAmount); ok && amount.IsNumeric() {
		labels, counts := histogramBins(amount.Values(), 20)
		if len(labels) > 0 {
			writePlot(filepath.Join(outputDir, "amount_distribution.png"), func() ([]byte, error) {
				return plot.DrawHistogram("Transaction Amount Distribution", labels, counts)
			})
		}
	}
}

func writePlot(path string, draw func() ([]byte, error)) {
	png, err := draw()
	if err != nil {
		fmt.Println("cannot render plot:", err)
		return
	}
	if err := os.WriteFile(path, png, 0644); err != nil {
		fmt.Println("cannot save plot:", err)
		return
	}
	fmt.Println("plot saved as", path)
}
