package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestDrawPlotBar(t *testing.T) {
	data := NewDataLabeledForGraph(
		[]string{"structuring", "velocity", "sanctions"},
		[]float64{120, 45, 12},
		"alerts", "Alerts by Type", 0,
	)
	png, err := DrawPlotBar(data)
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestDrawRateBars(t *testing.T) {
	png, err := DrawRateBars("FPR by Alert Type",
		[]string{"structuring", "velocity"}, []float64{0.93, 0.41})
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestDrawRateBarsEmpty(t *testing.T) {
	_, err := DrawRateBars("FPR by Alert Type", nil, nil)
	assert.Error(t, err)
}

func TestDrawHistogram(t *testing.T) {
	png, err := DrawHistogram("Amount Distribution",
		[]string{"0-1000", "1000-5000", "5000-10000"}, []float64{10, 4, 1})
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngHeader))
}

func TestFindMaxValue(t *testing.T) {
	assert.Equal(t, 7.5, findMaxValue([]float64{1, 7.5, 3}))
	assert.Equal(t, 0.0, findMaxValue(nil))
}
