package models

// Column types as assigned by the import type ladder.
const (
	TypeInt    = "Int64"
	TypeFloat  = "Float64"
	TypeString = "String"
)

// Well-known columns of the alert dataset. Any of them except the outcome
// column may be absent; dependent computations check first.
const (
	ColumnOutcome         = "alert_outcome"
	ColumnAlertType       = "alert_type"
	ColumnRiskTier        = "customer_risk_tier"
	ColumnCountry         = "country"
	ColumnAmount          = "transaction_amount"
	ColumnDispositionDays = "time_to_disposition_days"
)

// Outcome labels. Other labels may appear in the data and are excluded
// from both rates.
const (
	OutcomeFalsePositive = "false_positive"
	OutcomeTruePositive  = "true_positive"
)

type MissingColumnStats struct {
	Count   int
	Percent float64
}

type MissingStats struct {
	ByColumn        map[string]MissingColumnStats
	RowsWithMissing int
}

type DuplicateStats struct {
	Count        int
	Percent      float64
	DistinctRows int
}

// OutlierStats describes values outside the 1.5*IQR fence of a numeric
// column. Percent is relative to the column's non-null count.
type OutlierStats struct {
	Count      int
	Percent    float64
	LowerBound float64
	UpperBound float64
	Min        float64
	Max        float64
}

type InconsistencyStats struct {
	NegativeValues map[string]int // amount-like numeric columns
	EmptyStrings   map[string]int // text columns, value == ""
	WhitespaceOnly map[string]int // text columns, non-empty but blank
}

type QualityReport struct {
	RowCount        int
	ColumnCount     int
	Missing         MissingStats
	Duplicates      DuplicateStats
	Outliers        map[string]OutlierStats
	Inconsistencies InconsistencyStats
	Flags           []string
}

// NumberSummary is a describe-style summary of a numeric sample.
type NumberSummary struct {
	Count  int
	Mean   float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// RateEntry is one category of a grouped rate breakdown. Count is the
// number of alerts in the category, Rate the matching fraction in [0,1].
type RateEntry struct {
	Value string
	Rate  float64
	Count int
}

type BucketRate struct {
	Label string
	Rate  float64
	Count int
}

// PairRate is the TPR of one observed (country, risk tier) pair. Pairs
// with no alerts are not reported at all, which keeps "no alerts"
// distinguishable from "zero true positives".
type PairRate struct {
	Country  string
	RiskTier string
	Rate     float64
	Count    int
}

type DispositionStats struct {
	AlertType string
	Mean      float64
	Summary   NumberSummary
}

// RateMetrics holds all false/true positive rate computations. When the
// outcome column is absent Computable is false and every other field is
// zero; callers treat that as a no-op, not an error. Grouped breakdowns
// that depend on an absent optional column are left nil.
type RateMetrics struct {
	Computable bool

	TotalAlerts    int
	FalsePositives int
	TruePositives  int
	OverallFPR     float64
	OverallTPR     float64

	FPRByAlertType []RateEntry
	FPRByRiskTier  []RateEntry
	FPRByCountry   []RateEntry // capped to the top 10 by rate

	TPRByAmountBucket []BucketRate
	TPRByCountryRisk  []PairRate
}
