package main

import (
	"sort"

	"github.com/amlstats/alert_analyzer/domain/models"
)

// Fixed half-open amount buckets [lo, hi). A value of exactly 1000 belongs
// to $1K-5K; anything below the first edge collapses into the first bucket
// so the bucketing stays total.
var (
	amountBucketEdges  = []float64{1000, 5000, 10000, 20000}
	amountBucketLabels = []string{"$0-1K", "$1K-5K", "$5K-10K", "$10K-20K", "$20K+"}
)

func amountBucketIndex(amount float64) int {
	for i, edge := range amountBucketEdges {
		if amount < edge {
			return i
		}
	}
	return len(amountBucketEdges)
}

// CalculateRateMetrics computes overall and grouped false/true positive
// rates. The result is not computable without the outcome column; grouped
// breakdowns whose optional column is absent stay nil. The caller decides
// what to print or skip.
func CalculateRateMetrics(ds *Dataset) models.RateMetrics {
	outcome, ok := ds.Column(models.ColumnOutcome)
	if !ok {
		return models.RateMetrics{}
	}

	m := models.RateMetrics{Computable: true, TotalAlerts: ds.Rows}
	for row := 0; row < ds.Rows; row++ {
		switch outcomeAt(outcome, row) {
		case models.OutcomeFalsePositive:
			m.FalsePositives++
		case models.OutcomeTruePositive:
			m.TruePositives++
		}
	}
	m.OverallFPR = ratioOf(m.FalsePositives, m.TotalAlerts)
	m.OverallTPR = ratioOf(m.TruePositives, m.TotalAlerts)

	m.FPRByAlertType = rateByColumn(ds, outcome, models.ColumnAlertType, models.OutcomeFalsePositive, 0)
	m.FPRByRiskTier = rateByColumn(ds, outcome, models.ColumnRiskTier, models.OutcomeFalsePositive, 0)
	m.FPRByCountry = rateByColumn(ds, outcome, models.ColumnCountry, models.OutcomeFalsePositive, 10)
	m.TPRByAmountBucket = amountBucketTPR(ds, outcome)
	m.TPRByCountryRisk = countryRiskTPR(ds, outcome)
	return m
}

func outcomeAt(col *Column, row int) string {
	if col.Missing[row] {
		return ""
	}
	if col.IsNumeric() {
		return ""
	}
	return col.Texts[row]
}

// rateByColumn partitions rows by the distinct values of a categorical
// column and computes count(outcome==label)/count(group) per partition.
// Partitions come back sorted by rate descending; ties keep first
// observation order (the sort is stable). limit > 0 caps the output.
func rateByColumn(ds *Dataset, outcome *Column, groupColumn, label string, limit int) []models.RateEntry {
	group, ok := ds.Column(groupColumn)
	if !ok || group.IsNumeric() {
		return nil
	}

	order := []string{}
	matching := map[string]int{}
	totals := map[string]int{}
	for row := 0; row < ds.Rows; row++ {
		if group.Missing[row] {
			continue
		}
		value := group.Texts[row]
		if _, seen := totals[value]; !seen {
			order = append(order, value)
		}
		totals[value]++
		if outcomeAt(outcome, row) == label {
			matching[value]++
		}
	}

	entries := make([]models.RateEntry, 0, len(order))
	for _, value := range order {
		entries = append(entries, models.RateEntry{
			Value: value,
			Rate:  ratioOf(matching[value], totals[value]),
			Count: totals[value],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rate > entries[j].Rate
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// amountBucketTPR reports the true positive rate per fixed amount bucket.
// All five buckets are always present; empty ones carry rate 0 and count 0.
func amountBucketTPR(ds *Dataset, outcome *Column) []models.BucketRate {
	amount, ok := ds.Column(models.ColumnAmount)
	if !ok || !amount.IsNumeric() {
		return nil
	}

	totals := make([]int, len(amountBucketLabels))
	matching := make([]int, len(amountBucketLabels))
	for row := 0; row < ds.Rows; row++ {
		if amount.Missing[row] {
			continue
		}
		bucket := amountBucketIndex(amount.Floats[row])
		totals[bucket]++
		if outcomeAt(outcome, row) == models.OutcomeTruePositive {
			matching[bucket]++
		}
	}

	buckets := make([]models.BucketRate, len(amountBucketLabels))
	for i, label := range amountBucketLabels {
		buckets[i] = models.BucketRate{
			Label: label,
			Rate:  ratioOf(matching[i], totals[i]),
			Count: totals[i],
		}
	}
	return buckets
}

// countryRiskTPR cross-tabulates the true positive rate over every
// observed (country, risk tier) pair. Unobserved pairs are not emitted:
// "no alerts" must stay distinguishable from "zero true positives".
func countryRiskTPR(ds *Dataset, outcome *Column) []models.PairRate {
	country, ok := ds.Column(models.ColumnCountry)
	if !ok || country.IsNumeric() {
		return nil
	}
	tier, ok := ds.Column(models.ColumnRiskTier)
	if !ok || tier.IsNumeric() {
		return nil
	}

	type pair struct{ country, tier string }
	totals := map[pair]int{}
	matching := map[pair]int{}
	for row := 0; row < ds.Rows; row++ {
		if country.Missing[row] || tier.Missing[row] {
			continue
		}
		p := pair{country.Texts[row], tier.Texts[row]}
		totals[p]++
		if outcomeAt(outcome, row) == models.OutcomeTruePositive {
			matching[p]++
		}
	}

	pairs := make([]models.PairRate, 0, len(totals))
	for p, total := range totals {
		pairs = append(pairs, models.PairRate{
			Country:  p.country,
			RiskTier: p.tier,
			Rate:     ratioOf(matching[p], total),
			Count:    total,
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Country != pairs[j].Country {
			return pairs[i].Country < pairs[j].Country
		}
		return pairs[i].RiskTier < pairs[j].RiskTier
	})
	return pairs
}

// AnalyzeDisposition summarizes time-to-disposition per alert type: mean
// plus the full min/quartile/max distribution for box plots. Groups come
// back sorted by mean descending. Independent of the outcome column.
func AnalyzeDisposition(ds *Dataset) []models.DispositionStats {
	alertType, ok := ds.Column(models.ColumnAlertType)
	if !ok || alertType.IsNumeric() {
		return nil
	}
	days, ok := ds.Column(models.ColumnDispositionDays)
	if !ok || !days.IsNumeric() {
		return nil
	}

	order := []string{}
	grouped := map[string][]float64{}
	for row := 0; row < ds.Rows; row++ {
		if alertType.Missing[row] || days.Missing[row] {
			continue
		}
		value := alertType.Texts[row]
		if _, seen := grouped[value]; !seen {
			order = append(order, value)
		}
		grouped[value] = append(grouped[value], days.Floats[row])
	}

	stats := make([]models.DispositionStats, 0, len(order))
	for _, value := range order {
		summary, ok := summarizeNumbers(grouped[value])
		if !ok {
			continue
		}
		stats = append(stats, models.DispositionStats{
			AlertType: value,
			Mean:      summary.Mean,
			Summary:   summary,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Mean > stats[j].Mean
	})
	return stats
}
