package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// ExampleParams returns a complete, valid parameter set that exercises every
// feature: guardrails, bounds, college, streams, real estate, inheritance,
// dual Social Security and the baseline regime. Useful as a starting template
// and as a known-good fixture.
func ExampleParams() *domain.SimulationParams {
	return &domain.SimulationParams{
		StartYear:     2026,
		HorizonYears:  35,
		StartCapital:  decimal.NewFromInt(2500000),
		RetirementAge: 60,
		CAPE:          decimal.NewFromInt(32),

		Allocation: domain.AssetAllocation{
			Equity:     decimal.NewFromFloat(0.60),
			Bonds:      decimal.NewFromFloat(0.25),
			RealEstate: decimal.NewFromFloat(0.10),
			Cash:       decimal.NewFromFloat(0.05),
		},
		Assets: domain.AssetModels{
			Equity:     domain.AssetClassModel{Mean: decimal.NewFromFloat(0.07), Volatility: decimal.NewFromFloat(0.17)},
			Bonds:      domain.AssetClassModel{Mean: decimal.NewFromFloat(0.035), Volatility: decimal.NewFromFloat(0.06)},
			RealEstate: domain.AssetClassModel{Mean: decimal.NewFromFloat(0.05), Volatility: decimal.NewFromFloat(0.12)},
			Cash:       domain.AssetClassModel{Mean: decimal.NewFromFloat(0.02), Volatility: decimal.NewFromFloat(0.01)},
		},

		Guardrails: domain.GuardrailConfig{
			CutThreshold:   decimal.NewFromFloat(0.055),
			RaiseThreshold: decimal.NewFromFloat(0.03),
			AdjustmentPct:  decimal.NewFromFloat(0.10),
		},
		Spending: domain.SpendingBounds{
			Floor:        decimal.NewFromInt(60000),
			Ceiling:      decimal.NewFromInt(180000),
			FloorEndYear: 2045,
		},

		College: domain.CollegeConfig{
			Enabled:    true,
			BaseAmount: decimal.NewFromInt(35000),
			StartYear:  2027,
			EndYear:    2034,
			GrowthRate: decimal.NewFromFloat(0.03),
		},
		ExpenseStreams: []domain.ExpenseStream{
			{Name: "home renovation", Amount: decimal.NewFromInt(80000), StartYear: 2028, DurationYears: 1},
		},
		RealEstate: domain.RealEstateConfig{
			Enabled:   true,
			Preset:    domain.REPresetRamp,
			StartYear: 2029,
		},
		Inheritance: domain.InheritanceConfig{
			Amount: decimal.NewFromInt(300000),
			Year:   2040,
		},
		IncomeStreams: []domain.IncomeStream{
			{Name: "consulting", Amount: decimal.NewFromInt(25000), StartYear: 2026, DurationYears: 5},
		},

		Tax: domain.TaxConfig{
			FilingStatus:      domain.FilingMarriedJoint,
			StandardDeduction: decimal.NewFromInt(30000),
			Brackets: []domain.TaxBracket{
				{Threshold: decimal.Zero, Rate: decimal.NewFromFloat(0.10)},
				{Threshold: decimal.NewFromInt(23200), Rate: decimal.NewFromFloat(0.12)},
				{Threshold: decimal.NewFromInt(94300), Rate: decimal.NewFromFloat(0.22)},
				{Threshold: decimal.NewFromInt(201050), Rate: decimal.NewFromFloat(0.24)},
				{Threshold: decimal.NewFromInt(383900), Rate: decimal.NewFromFloat(0.32)},
				{Threshold: decimal.NewFromInt(487450), Rate: decimal.NewFromFloat(0.35)},
				{Threshold: decimal.NewFromInt(731200), Rate: decimal.NewFromFloat(0.37)},
			},
		},
		SocialSecurity: domain.SocialSecurityConfig{
			Enabled:            true,
			AnnualBenefit:      decimal.NewFromInt(42000),
			StartAge:           67,
			FundingScenario:    domain.SSModerate,
			ReductionStartYear: 2034,
		},
		SpouseSocialSecurity: domain.SocialSecurityConfig{
			Enabled:            true,
			AnnualBenefit:      decimal.NewFromInt(28000),
			StartAge:           67,
			FundingScenario:    domain.SSModerate,
			ReductionStartYear: 2034,
		},

		Regime: domain.RegimeConfig{Kind: domain.RegimeBaseline},

		NumSimulations: 1000,
	}
}

// exampleHeader documents the fields whose zero values carry meaning.
const exampleHeader = "# seed: 0 draws a fresh seed every run; set any nonzero value for\n" +
	"# reproducible results.\n"

// WriteExampleFile writes the example parameter set as YAML to the given
// path.
func WriteExampleFile(path string) error {
	data, err := yaml.Marshal(ExampleParams())
	if err != nil {
		return fmt.Errorf("failed to marshal example parameters: %w", err)
	}
	data = append([]byte(exampleHeader), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
