package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// dataLabeledForGraph is a bar series over categorical labels: one bar per
// label, e.g. a rate per alert type or a count per amount bin.
type dataLabeledForGraph struct {
	xValues   []string
	yValues   []float64
	nameYAxis string
	nameGraph string
	maxY      float64 // 0 means autoscale to the data
}

func NewDataLabeledForGraph(xValues []string, y []float64, nameYAxis, nameGraph string, maxY float64) dataLabeledForGraph {
	return dataLabeledForGraph{
		xValues:   xValues,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
		maxY:      maxY,
	}
}

func (d dataLabeledForGraph) GetNameGraph() string {
	return d.nameGraph
}

func (d dataLabeledForGraph) getNameYAxis() string {
	return d.nameYAxis
}

func (d dataLabeledForGraph) getYValues() []float64 {
	return d.yValues
}

func (d dataLabeledForGraph) findMaxValue() float64 {
	if d.maxY > 0 {
		return d.maxY
	}
	return findMaxValue(d.yValues)
}

func (d dataLabeledForGraph) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 || len(d.xValues) == 0 || minBarWidth <= 0 {
		return 0, 0
	}
	x := 1.1
	if len(d.xValues) < 2 {
		x = 10.0
	} else if len(d.xValues) < 10 {
		x = 3.0
	}

	const (
		paddingY     = 100
		spacingRatio = 0.2
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(len(d.xValues)) + paddingY
	width = int(totalWidth*x) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d dataLabeledForGraph) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i := range d.xValues {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: d.xValues[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
