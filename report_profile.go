package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/amlstats/alert_analyzer/domain/models"
)

// GenerateProfileReport writes the auto-generated data profile: missing
// values per column, a histogram per numeric column and the most frequent
// values per text column.
func GenerateProfileReport(ds *Dataset, quality models.QualityReport, title, path string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(missingValuesChart(ds, quality))
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.IsNumeric() {
			if chart := histogramChart(col); chart != nil {
				page.AddCharts(chart)
			}
		} else {
			if chart := topValuesChart(col); chart != nil {
				page.AddCharts(chart)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

func missingValuesChart(ds *Dataset, quality models.QualityReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Missing Values by Column",
			Subtitle: fmt.Sprintf("%d rows, %d with at least one null", ds.Rows, quality.Missing.RowsWithMissing),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "% missing"}),
	)
	labels := make([]string, len(ds.Columns))
	values := make([]opts.BarData, len(ds.Columns))
	for i, col := range ds.Columns {
		labels[i] = col.Name
		values[i] = opts.BarData{Value: quality.Missing.ByColumn[col.Name].Percent}
	}
	bar.SetXAxis(labels).AddSeries("missing", values)
	return bar
}

// histogramBins splits values into n equal-width bins and returns the bin
// labels and counts. Returns empty results for an empty sample.
func histogramBins(values []float64, n int) ([]string, []float64) {
	if len(values) == 0 || n <= 0 {
		return nil, nil
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []string{fmt.Sprintf("%.1f", min)}, []float64{float64(len(values))}
	}

	width := (max - min) / float64(n)
	counts := make([]float64, n)
	for _, v := range values {
		bin := int((v - min) / width)
		if bin >= n {
			bin = n - 1
		}
		counts[bin]++
	}
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.1f-%.1f", min+float64(i)*width, min+float64(i+1)*width)
	}
	return labels, counts
}

func histogramChart(col *Column) *charts.Bar {
	labels, counts := histogramBins(col.Values(), 20)
	if len(labels) == 0 {
		return nil
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Distribution: " + col.Name}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Rotate: 45}}),
	)
	values := make([]opts.BarData, len(counts))
	for i, c := range counts {
		values[i] = opts.BarData{Value: c}
	}
	bar.SetXAxis(labels).AddSeries("count", values)
	return bar
}

func topValuesChart(col *Column) *charts.Bar {
	order := []string{}
	counts := map[string]int{}
	for row, text := range col.Texts {
		if col.Missing[row] {
			continue
		}
		if _, seen := counts[text]; !seen {
			order = append(order, text)
		}
		counts[text]++
	}
	if len(order) == 0 {
		return nil
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 10 {
		order = order[:10]
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Top Values: " + col.Name,
			Subtitle: fmt.Sprintf("%d distinct values", len(counts)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	values := make([]opts.BarData, len(order))
	for i, v := range order {
		values[i] = opts.BarData{Value: counts[v]}
	}
	bar.SetXAxis(order).AddSeries("count", values)
	return bar
}
