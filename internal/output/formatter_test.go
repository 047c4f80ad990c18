package output

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

func sampleResults() *domain.SimulationResults {
	band := func(vals ...int64) []decimal.Decimal {
		out := make([]decimal.Decimal, len(vals))
		for i, v := range vals {
			out[i] = decimal.NewFromInt(v)
		}
		return out
	}
	return &domain.SimulationResults{
		RunID:          "01JTESTRUN0000000000000000",
		NumSimulations: 100,
		HorizonYears:   2,
		StartYear:      2026,
		Seed:           42,
		TerminalWealth: band(500000, 900000),
		SuccessRate:    decimal.NewFromFloat(0.95),
		DepletionYears: []int{0, 0},
		PercentileBands: map[string][]decimal.Decimal{
			"p10": band(1000000, 900000, 800000),
			"p25": band(1000000, 950000, 900000),
			"p50": band(1000000, 1000000, 1000000),
			"p75": band(1000000, 1050000, 1100000),
			"p90": band(1000000, 1100000, 1200000),
		},
		RepresentativePaths: map[string][]domain.YearRecord{
			"p50": {
				{
					Year:            2026,
					BoundedSpend:    decimal.NewFromInt(40000),
					GrossWithdrawal: decimal.NewFromInt(45000),
					EndAssets:       decimal.NewFromInt(1000000),
					GuardrailAction: domain.GuardrailNone,
				},
			},
		},
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.NotNil(t, GetFormatterByName("console"))
	assert.NotNil(t, GetFormatterByName("json"))
	assert.NotNil(t, GetFormatterByName("csv"))
	assert.NotNil(t, GetFormatterByName(" JSON "), "name lookup is case and space insensitive")
	assert.Nil(t, GetFormatterByName("html"))
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleResults())
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "PORTFOLIO SIMULATION SUMMARY")
	assert.Contains(t, text, "95.00%")
	assert.Contains(t, text, "p50")
	assert.Contains(t, text, "$1000000.00")
	assert.Contains(t, text, "Median path")
	assert.Contains(t, text, "2026")
}

func TestJSONFormatter_RoundTrips(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleResults())
	require.NoError(t, err)

	var decoded domain.SimulationResults
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 100, decoded.NumSimulations)
	assert.True(t, decoded.SuccessRate.Equal(decimal.NewFromFloat(0.95)))
}

func TestCSVBandsFormatter(t *testing.T) {
	data, err := CSVBandsFormatter{}.Format(sampleResults())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4, "header plus years+1 rows")
	assert.Equal(t, "year,p10,p25,p50,p75,p90", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2026,1000000.00,"))
	assert.True(t, strings.HasPrefix(lines[3], "2028,800000.00,"))
}

func TestWriteFormatted(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(cwd) }()

	filename, err := WriteFormatted(JSONFormatter{}, sampleResults(), "json")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filename, "simulation_"))
	assert.True(t, strings.HasSuffix(filename, ".json"))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var decoded domain.SimulationResults
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "01JTESTRUN0000000000000000", decoded.RunID)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.57", FormatCurrency(decimal.NewFromFloat(1234.567)))
	assert.Equal(t, "4.00%", FormatPercentage(decimal.NewFromFloat(0.04)))
}

func TestFormatProjection(t *testing.T) {
	res := &domain.DeterministicResults{
		RunID:        "01JTESTRUN0000000000000001",
		StartYear:    2026,
		HorizonYears: 1,
		Records: []domain.YearRecord{
			{
				Year:            2026,
				BoundedSpend:    decimal.NewFromInt(40000),
				GrossWithdrawal: decimal.NewFromInt(45000),
				Taxes:           decimal.NewFromInt(5000),
				EndAssets:       decimal.NewFromInt(955000),
				GuardrailAction: domain.GuardrailNone,
			},
		},
		FinalWealth:      decimal.NewFromInt(955000),
		TotalTaxes:       decimal.NewFromInt(5000),
		TotalWithdrawals: decimal.NewFromInt(45000),
		DepletionYear:    2030,
	}
	text := string(FormatProjection(res))

	assert.Contains(t, text, "DETERMINISTIC PROJECTION")
	assert.Contains(t, text, "$955000.00")
	assert.Contains(t, text, "Portfolio depleted in 2030")
}
