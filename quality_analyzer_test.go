package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeQualityOutlierBounds(t *testing.T) {
	ds := loadDataset(t, "transaction_amount\n1\n2\n3\n4\n5\n100\n")
	report := AnalyzeQuality(ds)

	outliers, ok := report.Outliers["transaction_amount"]
	assert.True(t, ok)
	assert.InDelta(t, -1.5, outliers.LowerBound, 1e-9)
	assert.InDelta(t, 8.5, outliers.UpperBound, 1e-9)
	assert.Equal(t, 1, outliers.Count)
	assert.Equal(t, 1.0, outliers.Min)
	assert.Equal(t, 100.0, outliers.Max)
}

func TestAnalyzeQualityMissingThresholdIsStrict(t *testing.T) {
	// exactly 50% missing must not raise HIGH, 51%+ must
	buf := &strings.Builder{}
	buf.WriteString("a,b\n")
	for i := 0; i < 50; i++ {
		buf.WriteString("x,1\n")
	}
	for i := 0; i < 50; i++ {
		buf.WriteString(",1\n")
	}
	report := AnalyzeQuality(loadDataset(t, buf.String()))
	assert.Equal(t, 50.0, report.Missing.ByColumn["a"].Percent)
	for _, flag := range report.Flags {
		assert.NotContains(t, flag, `HIGH: column "a"`)
	}

	buf.WriteString(",1\n") // 51 of 101 missing
	report = AnalyzeQuality(loadDataset(t, buf.String()))
	found := false
	for _, flag := range report.Flags {
		if strings.HasPrefix(flag, `HIGH: column "a"`) {
			found = true
		}
	}
	assert.True(t, found, "51%% missing must raise a HIGH flag, got %v", report.Flags)
}

func TestAnalyzeQualityDuplicates(t *testing.T) {
	ds := loadDataset(t, "a,b\nx,1\nx,1\ny,2\nx,1\n")
	report := AnalyzeQuality(ds)
	assert.Equal(t, 2, report.Duplicates.Count)
	assert.Equal(t, 2, report.Duplicates.DistinctRows)
	assert.Equal(t, 50.0, report.Duplicates.Percent)
}

func TestAnalyzeQualityInconsistencies(t *testing.T) {
	ds := loadDataset(t, "transaction_amount,comment\n-5,\"  \"\n10,ok\n-1,\n")
	report := AnalyzeQuality(ds)

	assert.Equal(t, 2, report.Inconsistencies.NegativeValues["transaction_amount"])
	assert.Equal(t, 1, report.Inconsistencies.WhitespaceOnly["comment"])
	assert.Equal(t, 1, report.Inconsistencies.EmptyStrings["comment"])

	flags := strings.Join(report.Flags, "\n")
	assert.Contains(t, flags, `"transaction_amount" has 2 negative values`)
	assert.Contains(t, flags, `"comment" has 1 whitespace-only values`)
}

func TestAnalyzeQualityEmptyAndAllNullColumns(t *testing.T) {
	ds := loadDataset(t, "a,b\n")
	assert.NotPanics(t, func() {
		report := AnalyzeQuality(ds)
		assert.Equal(t, 0, report.RowCount)
		assert.Empty(t, report.Flags)
	})

	ds = loadDataset(t, "a,transaction_amount\nx,\ny,\n")
	assert.NotPanics(t, func() {
		report := AnalyzeQuality(ds)
		assert.Equal(t, 100.0, report.Missing.ByColumn["transaction_amount"].Percent)
		_, hasOutliers := report.Outliers["transaction_amount"]
		assert.False(t, hasOutliers)
	})
}

func TestAnalyzeQualityDeterministic(t *testing.T) {
	content := "transaction_amount,country\n100,DE\n-3,\n5000,FR\n100,DE\n"
	ds := loadDataset(t, content)
	first := AnalyzeQuality(ds)
	second := AnalyzeQuality(ds)
	assert.Equal(t, first, second)
	assert.Equal(t, fmt.Sprint(first.Flags), fmt.Sprint(second.Flags))
}

func TestAnalyzeQualityRowsWithMissing(t *testing.T) {
	ds := loadDataset(t, "a,b\nx,\n,\ny,1\n")
	report := AnalyzeQuality(ds)
	assert.Equal(t, 2, report.Missing.RowsWithMissing)
}
