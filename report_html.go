package main

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"

	"github.com/amlstats/alert_analyzer/domain/models"
)

const echartsAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

var analysisTemplate = template.Must(template.New("analysis").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Transaction Monitoring Model Analysis</title>
    <script src="{{ .AssetsHost }}echarts.min.js"></script>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { text-align: center; margin-bottom: 20px; }
        .section { margin: 20px 0; }
        .metrics { display: flex; justify-content: space-around; margin: 20px 0; }
        .metric { text-align: center; padding: 15px; background: #f0f0f0; border-radius: 5px; }
        .metric-value { font-size: 1.5em; font-weight: bold; color: #333; }
        .chart-row { display: flex; flex-wrap: wrap; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Transaction Monitoring Model Analysis</h1>
        <p>Generated: {{ .Generated }} &mdash; Run ID: {{ .RunID }}</p>
    </div>

    <div class="metrics">
        <div class="metric">
            <div class="metric-value">{{ .OverallFPR }}</div>
            <div>False Positive Rate</div>
        </div>
        <div class="metric">
            <div class="metric-value">{{ .FalsePositives }}</div>
            <div>False Positives</div>
        </div>
        <div class="metric">
            <div class="metric-value">{{ .TruePositives }}</div>
            <div>True Positives</div>
        </div>
        <div class="metric">
            <div class="metric-value">{{ .TotalAlerts }}</div>
            <div>Total Alerts</div>
        </div>
    </div>

    <div class="section">
        <h2>Section 1: False Positive Rate Analysis by Different Dimensions</h2>
        <div class="chart-row">
        {{ range .RateCharts }}{{ .Element }}{{ .Script }}{{ end }}
        </div>
    </div>
    {{ if .DispositionCharts }}
    <div class="section">
        <h2>Section 2: Time to Disposition Analysis</h2>
        {{ with index .DispositionCharts 0 }}{{ .Element }}{{ .Script }}{{ end }}
    </div>
    {{ if gt (len .DispositionCharts) 1 }}
    <div class="section">
        <h2>Section 3: Time to Disposition Distribution by Alert Type</h2>
        {{ with index .DispositionCharts 1 }}{{ .Element }}{{ .Script }}{{ end }}
    </div>
    {{ end }}
    {{ end }}
</body>
</html>
`))

type chartSnippet struct {
	Element template.HTML
	Script  template.HTML
}

type analysisPage struct {
	AssetsHost        string
	Generated         string
	RunID             string
	OverallFPR        string
	FalsePositives    int
	TruePositives     int
	TotalAlerts       int
	RateCharts        []chartSnippet
	DispositionCharts []chartSnippet
}

// GenerateInteractiveReport writes the chart-based HTML report: a header
// block with the four summary metrics, one section of rate charts and two
// disposition-time sections when the duration column is present.
func GenerateInteractiveReport(m models.RateMetrics, disposition []models.DispositionStats, runID, path string) error {
	if !m.Computable {
		return fmt.Errorf("rate metrics are not computable, nothing to render")
	}

	page := analysisPage{
		AssetsHost:     echartsAssetsHost,
		Generated:      time.Now().Format("2006-01-02 15:04:05"),
		RunID:          runID,
		OverallFPR:     fmt.Sprintf("%.1f%%", 100*m.OverallFPR),
		FalsePositives: m.FalsePositives,
		TruePositives:  m.TruePositives,
		TotalAlerts:    m.TotalAlerts,
	}

	page.RateCharts = append(page.RateCharts, snippetOf(outcomePie(m).Renderer))
	if len(m.FPRByAlertType) > 0 {
		page.RateCharts = append(page.RateCharts, snippetOf(rateBar("FPR by Alert Type", "#87ceeb", m.FPRByAlertType).Renderer))
	}
	if len(m.FPRByRiskTier) > 0 {
		page.RateCharts = append(page.RateCharts, snippetOf(rateBar("FPR by Risk Tier", "#90ee90", m.FPRByRiskTier).Renderer))
	}
	if len(m.FPRByCountry) > 0 {
		page.RateCharts = append(page.RateCharts, snippetOf(rateBar("FPR by Country (Top 10)", "#ffd700", m.FPRByCountry).Renderer))
	}

	if len(disposition) > 0 {
		page.DispositionCharts = append(page.DispositionCharts,
			snippetOf(dispositionMeanBar(disposition).Renderer),
			snippetOf(dispositionBoxPlot(disposition).Renderer))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return analysisTemplate.Execute(f, page)
}

func snippetOf(r render.Renderer) chartSnippet {
	sn := r.RenderSnippet()
	return chartSnippet{
		Element: template.HTML(sn.Element),
		Script:  template.HTML(sn.Script),
	}
}

func outcomePie(m models.RateMetrics) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Alert Distribution"}),
		charts.WithColorsOpts(opts.Colors{"#ff7f7f", "#7fbf7f"}),
	)
	pie.AddSeries("alerts", []opts.PieData{
		{Name: "False Positive", Value: m.FalsePositives},
		{Name: "True Positive", Value: m.TruePositives},
	}, charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))
	return pie
}

func rateBar(title, color string, entries []models.RateEntry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithColorsOpts(opts.Colors{color}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Rate"}),
	)
	labels := make([]string, len(entries))
	values := make([]opts.BarData, len(entries))
	for i, e := range entries {
		labels[i] = e.Value
		values[i] = opts.BarData{Value: e.Rate}
	}
	bar.SetXAxis(labels).AddSeries("rate", values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func dispositionMeanBar(disposition []models.DispositionStats) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average Time to Disposition by Alert Type"}),
		charts.WithColorsOpts(opts.Colors{"#f08080"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Days"}),
	)
	labels := make([]string, len(disposition))
	values := make([]opts.BarData, len(disposition))
	for i, d := range disposition {
		labels[i] = d.AlertType
		values[i] = opts.BarData{Value: d.Mean}
	}
	bar.SetXAxis(labels).AddSeries("days", values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	return bar
}

func dispositionBoxPlot(disposition []models.DispositionStats) *charts.BoxPlot {
	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Time to Disposition Distribution by Alert Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Days"}),
	)
	labels := make([]string, len(disposition))
	values := make([]opts.BoxPlotData, len(disposition))
	for i, d := range disposition {
		labels[i] = d.AlertType
		values[i] = opts.BoxPlotData{Value: []float64{
			d.Summary.Min, d.Summary.Q1, d.Summary.Median, d.Summary.Q3, d.Summary.Max,
		}}
	}
	box.SetXAxis(labels).AddSeries("days", values)
	return box
}
