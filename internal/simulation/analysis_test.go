package simulation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decSlice(vals ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(vals))
	for i, v := range vals {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func TestCalculatePercentiles(t *testing.T) {
	// Three paths, two year columns.
	paths := [][]decimal.Decimal{
		decSlice(100, 50),
		decSlice(100, 200),
		decSlice(100, 500),
	}
	bands := CalculatePercentiles(paths)

	assert.Len(t, bands[P50], 2)
	assert.True(t, bands[P50][0].Equal(decimal.NewFromInt(100)))
	assert.True(t, bands[P50][1].Equal(decimal.NewFromInt(200)))
	assert.True(t, bands[P10][1].Equal(decimal.NewFromInt(50)))
	assert.True(t, bands[P90][1].Equal(decimal.NewFromInt(500)))
}

func TestCalculatePercentiles_Empty(t *testing.T) {
	bands := CalculatePercentiles(nil)
	for _, label := range []string{P10, P25, P50, P75, P90} {
		assert.Empty(t, bands[label])
	}
}

func TestCalculateSummaryStats(t *testing.T) {
	stats := CalculateSummaryStats(decSlice(10, 20, 30, 40, 50, 60, 70, 80, 90, 100))

	assert.True(t, stats.Mean.Equal(decimal.NewFromInt(55)))
	assert.True(t, stats.Percentiles.P10.Equal(decimal.NewFromInt(20)))
	assert.True(t, stats.Percentiles.P50.Equal(decimal.NewFromInt(60)))
	assert.True(t, stats.Percentiles.P90.Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.Percentiles.P10.LessThanOrEqual(stats.Percentiles.P25))
	assert.True(t, stats.Percentiles.P75.LessThanOrEqual(stats.Percentiles.P90))
}

func TestSummaryStats_ProbabilityBelow(t *testing.T) {
	stats := CalculateSummaryStats(decSlice(0, 100, 200, 300))

	assert.True(t, stats.ProbabilityBelow(decimal.NewFromInt(150)).Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, stats.ProbabilityBelow(decimal.Zero).IsZero(), "strictly below")
	assert.True(t, stats.ProbabilityBelow(decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(1)))

	empty := CalculateSummaryStats(nil)
	assert.True(t, empty.ProbabilityBelow(decimal.NewFromInt(100)).IsZero())
}

func TestSortedCopy_DoesNotMutate(t *testing.T) {
	orig := decSlice(3, 1, 2)
	sorted := sortedCopy(orig)

	assert.True(t, orig[0].Equal(decimal.NewFromInt(3)), "input must stay untouched")
	assert.True(t, sorted[0].Equal(decimal.NewFromInt(1)))
	assert.True(t, sorted[2].Equal(decimal.NewFromInt(3)))
}

func TestConvertToNominal(t *testing.T) {
	values := decSlice(100, 100, 100)

	t.Run("zero rate is the identity", func(t *testing.T) {
		out := ConvertToNominal(values, 2026, decimal.Zero)
		for i := range values {
			assert.True(t, out[i].Equal(values[i]))
		}
	})

	t.Run("compounds per element", func(t *testing.T) {
		out := ConvertToNominal(values, 2026, decimal.NewFromFloat(0.03))
		assert.True(t, out[0].Equal(decimal.NewFromInt(100)), "first element unscaled")
		assert.True(t, out[1].Equal(decimal.NewFromInt(103)))
		assert.True(t, out[2].Equal(decimal.NewFromFloat(106.09)))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ConvertToNominal(nil, 2026, decimal.NewFromFloat(0.03)))
	})
}
