package simulation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Percentile labels used in band maps and representative-path keys.
const (
	P10 = "p10"
	P25 = "p25"
	P50 = "p50"
	P75 = "p75"
	P90 = "p90"
)

// PercentileRanges holds the standard five percentile levels of a
// distribution of terminal values.
type PercentileRanges struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// sortedCopy returns the values in ascending order without mutating the
// caller's slice.
func sortedCopy(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

// percentileAt picks the pct-th percentile from an ascending slice by rank.
func percentileAt(sorted []decimal.Decimal, pct int) decimal.Decimal {
	if len(sorted) == 0 {
		return decimal.Zero
	}
	idx := len(sorted) * pct / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// percentileRanges computes all five levels from unsorted values.
func percentileRanges(values []decimal.Decimal) PercentileRanges {
	s := sortedCopy(values)
	return PercentileRanges{
		P10: percentileAt(s, 10),
		P25: percentileAt(s, 25),
		P50: percentileAt(s, 50),
		P75: percentileAt(s, 75),
		P90: percentileAt(s, 90),
	}
}

// CalculatePercentiles computes per-year percentile bands across a wealth
// path matrix (paths x years+1). The result maps "p10".."p90" to one value
// per year column.
func CalculatePercentiles(wealthPaths [][]decimal.Decimal) map[string][]decimal.Decimal {
	bands := map[string][]decimal.Decimal{
		P10: nil, P25: nil, P50: nil, P75: nil, P90: nil,
	}
	if len(wealthPaths) == 0 {
		return bands
	}
	years := len(wealthPaths[0])
	column := make([]decimal.Decimal, len(wealthPaths))
	for y := 0; y < years; y++ {
		for p := range wealthPaths {
			column[p] = wealthPaths[p][y]
		}
		r := percentileRanges(column)
		bands[P10] = append(bands[P10], r.P10)
		bands[P25] = append(bands[P25], r.P25)
		bands[P50] = append(bands[P50], r.P50)
		bands[P75] = append(bands[P75], r.P75)
		bands[P90] = append(bands[P90], r.P90)
	}
	return bands
}

// SummaryStats summarizes a terminal wealth distribution.
type SummaryStats struct {
	Mean        decimal.Decimal  `json:"mean"`
	Percentiles PercentileRanges `json:"percentiles"`

	sorted []decimal.Decimal
}

// CalculateSummaryStats computes mean and percentiles of terminal wealth.
func CalculateSummaryStats(terminalWealth []decimal.Decimal) SummaryStats {
	s := sortedCopy(terminalWealth)
	stats := SummaryStats{sorted: s}
	if len(s) == 0 {
		return stats
	}
	sum := decimal.Zero
	for _, v := range s {
		sum = sum.Add(v)
	}
	stats.Mean = sum.Div(decimal.NewFromInt(int64(len(s))))
	stats.Percentiles = PercentileRanges{
		P10: percentileAt(s, 10),
		P25: percentileAt(s, 25),
		P50: percentileAt(s, 50),
		P75: percentileAt(s, 75),
		P90: percentileAt(s, 90),
	}
	return stats
}

// ProbabilityBelow returns the fraction of outcomes strictly below the
// threshold.
func (s SummaryStats) ProbabilityBelow(threshold decimal.Decimal) decimal.Decimal {
	if len(s.sorted) == 0 {
		return decimal.Zero
	}
	count := 0
	for _, v := range s.sorted {
		if v.GreaterThanOrEqual(threshold) {
			break
		}
		count++
	}
	return decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(len(s.sorted))))
}

// ConvertToNominal scales a real-dollar series into nominal dollars at the
// given inflation rate: the element at offset t grows by (1+rate)^t. A zero
// rate is the identity.
func ConvertToNominal(values []decimal.Decimal, startYear int, rate decimal.Decimal) []decimal.Decimal {
	_ = startYear // offsets are relative to the first element
	out := make([]decimal.Decimal, len(values))
	if rate.IsZero() {
		copy(out, values)
		return out
	}
	factor := decimal.NewFromInt(1)
	growth := decimal.NewFromInt(1).Add(rate)
	for i, v := range values {
		out[i] = v.Mul(factor)
		factor = factor.Mul(growth)
	}
	return out
}
