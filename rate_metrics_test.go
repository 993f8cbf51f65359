package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateRateMetricsOverall(t *testing.T) {
	ds := loadDataset(t, `alert_outcome
false_positive
false_positive
true_positive
under_review
`)
	m := CalculateRateMetrics(ds)
	assert.True(t, m.Computable)
	assert.Equal(t, 4, m.TotalAlerts)
	assert.Equal(t, 2, m.FalsePositives)
	assert.Equal(t, 1, m.TruePositives)
	assert.InDelta(t, 0.5, m.OverallFPR, 1e-9)
	assert.InDelta(t, 0.25, m.OverallTPR, 1e-9)

	// other outcome labels are excluded from both rates
	assert.LessOrEqual(t, m.FalsePositives+m.TruePositives, m.TotalAlerts)
}

func TestCalculateRateMetricsMissingOutcomeColumn(t *testing.T) {
	ds := loadDataset(t, "country\nDE\nFR\n")
	m := CalculateRateMetrics(ds)
	assert.False(t, m.Computable)
	assert.Equal(t, 0, m.TotalAlerts)
	assert.Nil(t, m.FPRByAlertType)
}

func TestCalculateRateMetricsEmptyDataset(t *testing.T) {
	ds := loadDataset(t, "alert_outcome\n")
	m := CalculateRateMetrics(ds)
	assert.True(t, m.Computable)
	assert.Equal(t, 0.0, m.OverallFPR)
	assert.Equal(t, 0.0, m.OverallTPR)
}

func TestRateByColumnSortedDescending(t *testing.T) {
	ds := loadDataset(t, `alert_outcome,alert_type
false_positive,structuring
true_positive,structuring
false_positive,velocity
false_positive,velocity
true_positive,sanctions
`)
	m := CalculateRateMetrics(ds)
	assert.Equal(t, 3, len(m.FPRByAlertType))
	assert.Equal(t, "velocity", m.FPRByAlertType[0].Value)
	assert.InDelta(t, 1.0, m.FPRByAlertType[0].Rate, 1e-9)
	assert.Equal(t, 2, m.FPRByAlertType[0].Count)
	for i := 1; i < len(m.FPRByAlertType); i++ {
		assert.GreaterOrEqual(t, m.FPRByAlertType[i-1].Rate, m.FPRByAlertType[i].Rate)
	}
	for _, e := range m.FPRByAlertType {
		assert.GreaterOrEqual(t, e.Rate, 0.0)
		assert.LessOrEqual(t, e.Rate, 1.0)
	}
}

func TestRateByColumnTieBreakKeepsObservationOrder(t *testing.T) {
	ds := loadDataset(t, `alert_outcome,alert_type
false_positive,bbb
false_positive,aaa
`)
	m := CalculateRateMetrics(ds)
	assert.Equal(t, "bbb", m.FPRByAlertType[0].Value)
	assert.Equal(t, "aaa", m.FPRByAlertType[1].Value)
}

func TestCountryBreakdownCappedToTen(t *testing.T) {
	buf := &strings.Builder{}
	buf.WriteString("alert_outcome,country\n")
	countries := []string{"DE", "FR", "GB", "US", "NL", "CH", "ES", "IT", "SE", "PL", "AT", "BE"}
	for _, c := range countries {
		buf.WriteString("false_positive," + c + "\n")
	}
	m := CalculateRateMetrics(loadDataset(t, buf.String()))
	assert.Equal(t, 10, len(m.FPRByCountry))
}

func TestAmountBucketBoundaries(t *testing.T) {
	assert.Equal(t, 0, amountBucketIndex(0))
	assert.Equal(t, 0, amountBucketIndex(999.99))
	assert.Equal(t, 1, amountBucketIndex(1000)) // exactly 1000 is $1K-5K
	assert.Equal(t, 1, amountBucketIndex(4999))
	assert.Equal(t, 2, amountBucketIndex(5000))
	assert.Equal(t, 3, amountBucketIndex(10000))
	assert.Equal(t, 4, amountBucketIndex(20000))
	assert.Equal(t, 4, amountBucketIndex(1e9))
	// negative amounts still map to a bucket, bucketing is total
	assert.Equal(t, 0, amountBucketIndex(-42))
}

func TestAmountBucketTPR(t *testing.T) {
	ds := loadDataset(t, `alert_outcome,transaction_amount
true_positive,500
false_positive,500
true_positive,1000
false_positive,25000
`)
	m := CalculateRateMetrics(ds)
	assert.Equal(t, 5, len(m.TPRByAmountBucket))
	assert.Equal(t, "$0-1K", m.TPRByAmountBucket[0].Label)
	assert.Equal(t, 2, m.TPRByAmountBucket[0].Count)
	assert.InDelta(t, 0.5, m.TPRByAmountBucket[0].Rate, 1e-9)
	assert.Equal(t, "$1K-5K", m.TPRByAmountBucket[1].Label)
	assert.Equal(t, 1, m.TPRByAmountBucket[1].Count)
	assert.InDelta(t, 1.0, m.TPRByAmountBucket[1].Rate, 1e-9)
	// empty bucket reports zero rate, zero count, never an error
	assert.Equal(t, 0, m.TPRByAmountBucket[2].Count)
	assert.Equal(t, 0.0, m.TPRByAmountBucket[2].Rate)
	assert.Equal(t, "$20K+", m.TPRByAmountBucket[4].Label)
}

func TestCountryRiskTPRObservedPairsOnly(t *testing.T) {
	ds := loadDataset(t, `alert_outcome,country,customer_risk_tier
true_positive,DE,high
false_positive,DE,high
false_positive,FR,low
`)
	m := CalculateRateMetrics(ds)
	assert.Equal(t, 2, len(m.TPRByCountryRisk))

	assert.Equal(t, "DE", m.TPRByCountryRisk[0].Country)
	assert.Equal(t, "high", m.TPRByCountryRisk[0].RiskTier)
	assert.InDelta(t, 0.5, m.TPRByCountryRisk[0].Rate, 1e-9)
	assert.Equal(t, 2, m.TPRByCountryRisk[0].Count)

	// (DE, low) and (FR, high) were never observed and must not appear
	for _, p := range m.TPRByCountryRisk {
		assert.False(t, p.Country == "DE" && p.RiskTier == "low")
		assert.False(t, p.Country == "FR" && p.RiskTier == "high")
	}
}

func TestAnalyzeDisposition(t *testing.T) {
	ds := loadDataset(t, `alert_type,time_to_disposition_days
structuring,10
structuring,20
velocity,2
velocity,4
velocity,6
`)
	stats := AnalyzeDisposition(ds)
	assert.Equal(t, 2, len(stats))
	assert.Equal(t, "structuring", stats[0].AlertType)
	assert.InDelta(t, 15.0, stats[0].Mean, 1e-9)
	assert.Equal(t, 10.0, stats[0].Summary.Min)
	assert.Equal(t, 20.0, stats[0].Summary.Max)
	assert.Equal(t, "velocity", stats[1].AlertType)
	assert.InDelta(t, 4.0, stats[1].Mean, 1e-9)
	assert.InDelta(t, 4.0, stats[1].Summary.Median, 1e-9)
}

func TestAnalyzeDispositionMissingColumns(t *testing.T) {
	ds := loadDataset(t, "alert_type\nstructuring\n")
	assert.Nil(t, AnalyzeDisposition(ds))
	ds = loadDataset(t, "time_to_disposition_days\n3\n")
	assert.Nil(t, AnalyzeDisposition(ds))
}

func TestRateMetricsIgnoreMissingGroupValues(t *testing.T) {
	ds := loadDataset(t, `alert_outcome,alert_type
false_positive,structuring
false_positive,
`)
	m := CalculateRateMetrics(ds)
	assert.Equal(t, 1, len(m.FPRByAlertType))
	assert.Equal(t, "structuring", m.FPRByAlertType[0].Value)
	assert.Equal(t, 1, m.FPRByAlertType[0].Count)
}
