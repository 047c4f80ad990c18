package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestExampleParams_Validates(t *testing.T) {
	parser := NewInputParser()
	assert.NoError(t, parser.Validate(ExampleParams()))
}

func TestWriteExampleFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, WriteExampleFile(path))

	loaded, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# seed: 0 draws a fresh seed",
		"the example file documents the unseeded default")

	want := ExampleParams()
	assert.Equal(t, want.StartYear, loaded.StartYear)
	assert.Equal(t, want.HorizonYears, loaded.HorizonYears)
	assert.Equal(t, want.NumSimulations, loaded.NumSimulations)
	assert.True(t, loaded.StartCapital.Equal(want.StartCapital))
	assert.True(t, loaded.Guardrails.CutThreshold.Equal(want.Guardrails.CutThreshold))
	assert.Equal(t, domain.REPresetRamp, loaded.RealEstate.Preset)
	assert.Equal(t, domain.SSModerate, loaded.SocialSecurity.FundingScenario)
	assert.Len(t, loaded.Tax.Brackets, 7)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile("/nonexistent/params.yaml")
	assert.Error(t, err)
}

func TestLoadFromFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("start_year: [not: closed"), 0o644))

	_, err := NewInputParser().LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.SimulationParams)
	}{
		{"zero horizon", func(p *domain.SimulationParams) { p.HorizonYears = 0 }},
		{"excessive horizon", func(p *domain.SimulationParams) { p.HorizonYears = 150 }},
		{"zero capital", func(p *domain.SimulationParams) { p.StartCapital = decimal.Zero }},
		{"zero simulations", func(p *domain.SimulationParams) { p.NumSimulations = 0 }},
		{"zero cape", func(p *domain.SimulationParams) { p.CAPE = decimal.Zero }},
		{"weights not summing to one", func(p *domain.SimulationParams) {
			p.Allocation.Equity = decimal.NewFromFloat(0.50)
		}},
		{"negative weight", func(p *domain.SimulationParams) {
			p.Allocation.Equity = decimal.NewFromFloat(-0.1)
			p.Allocation.Bonds = decimal.NewFromFloat(0.95)
		}},
		{"negative volatility", func(p *domain.SimulationParams) {
			p.Assets.Equity.Volatility = decimal.NewFromFloat(-0.01)
		}},
		{"cut threshold at raise threshold", func(p *domain.SimulationParams) {
			p.Guardrails.CutThreshold = p.Guardrails.RaiseThreshold
		}},
		{"cut threshold below raise threshold", func(p *domain.SimulationParams) {
			p.Guardrails.CutThreshold = decimal.NewFromFloat(0.02)
		}},
		{"adjustment of one", func(p *domain.SimulationParams) {
			p.Guardrails.AdjustmentPct = decimal.NewFromInt(1)
		}},
		{"floor above ceiling", func(p *domain.SimulationParams) {
			p.Spending.Floor = decimal.NewFromInt(200000)
		}},
		{"college window inverted", func(p *domain.SimulationParams) {
			p.College.EndYear = p.College.StartYear - 1
		}},
		{"expense stream zero duration", func(p *domain.SimulationParams) {
			p.ExpenseStreams[0].DurationYears = 0
		}},
		{"income stream negative amount", func(p *domain.SimulationParams) {
			p.IncomeStreams[0].Amount = decimal.NewFromInt(-1)
		}},
		{"unknown real estate preset", func(p *domain.SimulationParams) {
			p.RealEstate.Preset = "exponential"
		}},
		{"negative inheritance", func(p *domain.SimulationParams) {
			p.Inheritance.Amount = decimal.NewFromInt(-1)
		}},
		{"empty tax brackets", func(p *domain.SimulationParams) { p.Tax.Brackets = nil }},
		{"first bracket threshold nonzero", func(p *domain.SimulationParams) {
			p.Tax.Brackets[0].Threshold = decimal.NewFromInt(100)
		}},
		{"bracket rate of one", func(p *domain.SimulationParams) {
			p.Tax.Brackets[1].Rate = decimal.NewFromInt(1)
		}},
		{"non-increasing bracket thresholds", func(p *domain.SimulationParams) {
			p.Tax.Brackets[2].Threshold = p.Tax.Brackets[1].Threshold
		}},
		{"ss start age too early", func(p *domain.SimulationParams) {
			p.SocialSecurity.StartAge = 55
		}},
		{"ss start age too late", func(p *domain.SimulationParams) {
			p.SpouseSocialSecurity.StartAge = 75
		}},
		{"unknown ss scenario", func(p *domain.SimulationParams) {
			p.SocialSecurity.FundingScenario = "pessimistic"
		}},
		{"ss custom reduction above one", func(p *domain.SimulationParams) {
			p.SocialSecurity.FundingScenario = domain.SSCustomCut
			p.SocialSecurity.CustomReduction = decimal.NewFromFloat(1.5)
		}},
		{"unknown regime", func(p *domain.SimulationParams) {
			p.Regime.Kind = "stagflation"
		}},
		{"custom regime negative window", func(p *domain.SimulationParams) {
			p.Regime.Kind = domain.RegimeCustom
			p.Regime.Custom.ShockYears = -1
		}},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ExampleParams()
			tt.mutate(p)
			assert.Error(t, parser.Validate(p))
		})
	}
}

func TestValidate_EmptyRegimeDefaultsToBaseline(t *testing.T) {
	p := ExampleParams()
	p.Regime.Kind = ""
	assert.NoError(t, NewInputParser().Validate(p))
}

func TestValidate_DisabledSectionsSkipChecks(t *testing.T) {
	p := ExampleParams()
	p.College.Enabled = false
	p.College.BaseAmount = decimal.Zero
	p.RealEstate.Enabled = false
	p.RealEstate.Preset = ""
	p.SocialSecurity.Enabled = false
	p.SocialSecurity.StartAge = 0
	assert.NoError(t, NewInputParser().Validate(p))
}
