package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// DrawPlotBar renders a bar chart for any dataForGraph as a PNG.
func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: findMaxValue(data.getYValues()),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawRateBars renders a rate-per-category bar chart with the y axis fixed
// to [0,1].
func DrawRateBars(title string, labels []string, rates []float64) ([]byte, error) {
	data := NewDataLabeledForGraph(labels, rates, "Rate", title, 1.0)

	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{
		Title: title,
		Background: chart.Style{
			StrokeColor: chart.ColorBlack,
			Padding: chart.Box{
				Bottom: paddingX,
				Top:    50,
			},
		},
		Height:   height + 50,
		Width:    width + paddingX + 50,
		BarWidth: 60,
		Bars:     barValues,
		YAxis: chart.YAxis{
			Name:  "Rate",
			Range: &chart.ContinuousRange{Min: 0.0, Max: 1.0},
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorBlack,
				FontSize:    17,
			},
		},
		XAxis: chart.Style{
			StrokeWidth:         2,
			StrokeColor:         chart.ColorBlack,
			TextRotationDegrees: 88,
			FontSize:            17,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := bar.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawHistogram renders precomputed histogram bins as a PNG bar chart.
func DrawHistogram(title string, labels []string, counts []float64) ([]byte, error) {
	return DrawPlotBar(NewDataLabeledForGraph(labels, counts, "Frequency", title, 0))
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
