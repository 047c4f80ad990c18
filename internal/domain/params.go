package domain

import (
	"github.com/shopspring/decimal"
)

// MarketRegime selects a named override of expected asset returns for a
// window of years, modeling market shocks. The set is closed; anything else
// is rejected at validation time.
type MarketRegime string

const (
	RegimeBaseline         MarketRegime = "baseline"
	RegimeRecessionRecover MarketRegime = "recession_recover"
	RegimeGrindLower       MarketRegime = "grind_lower"
	RegimeLateRecession    MarketRegime = "late_recession"
	RegimeInflationShock   MarketRegime = "inflation_shock"
	RegimeLongBear         MarketRegime = "long_bear"
	RegimeTechBubble       MarketRegime = "tech_bubble"
	RegimeCustom           MarketRegime = "custom"
)

// Valid reports whether the regime is one of the known variants.
func (r MarketRegime) Valid() bool {
	switch r {
	case RegimeBaseline, RegimeRecessionRecover, RegimeGrindLower, RegimeLateRecession,
		RegimeInflationShock, RegimeLongBear, RegimeTechBubble, RegimeCustom:
		return true
	}
	return false
}

// REFlowPreset selects the shape of the real-estate cash-flow schedule.
type REFlowPreset string

const (
	REPresetRamp    REFlowPreset = "ramp"
	REPresetDelayed REFlowPreset = "delayed"
	REPresetCustom  REFlowPreset = "custom"
)

// Valid reports whether the preset is one of the known variants.
func (p REFlowPreset) Valid() bool {
	switch p {
	case REPresetRamp, REPresetDelayed, REPresetCustom:
		return true
	}
	return false
}

// SSFundingScenario selects how Social Security benefits are reduced once
// trust-fund pressure is assumed to bite.
type SSFundingScenario string

const (
	SSConservative SSFundingScenario = "conservative"
	SSModerate     SSFundingScenario = "moderate"
	SSOptimistic   SSFundingScenario = "optimistic"
	SSCustomCut    SSFundingScenario = "custom"
)

// Valid reports whether the scenario is one of the known variants.
func (s SSFundingScenario) Valid() bool {
	switch s {
	case SSConservative, SSModerate, SSOptimistic, SSCustomCut:
		return true
	}
	return false
}

// FilingStatus is the household's tax filing status. The solver itself only
// sees the bracket schedule; the status travels with the config so callers
// can select the right schedule.
type FilingStatus string

const (
	FilingSingle       FilingStatus = "single"
	FilingMarriedJoint FilingStatus = "married_joint"
)

// AssetClassModel holds the expected return and volatility for one asset class.
type AssetClassModel struct {
	Mean       decimal.Decimal `yaml:"mean" json:"mean"`
	Volatility decimal.Decimal `yaml:"volatility" json:"volatility"`
}

// AssetModels holds the return model for each of the four asset classes.
type AssetModels struct {
	Equity     AssetClassModel `yaml:"equity" json:"equity"`
	Bonds      AssetClassModel `yaml:"bonds" json:"bonds"`
	RealEstate AssetClassModel `yaml:"real_estate" json:"real_estate"`
	Cash       AssetClassModel `yaml:"cash" json:"cash"`
}

// AssetAllocation holds portfolio weights per asset class. Weights must sum
// to one; validation enforces this before any simulation runs.
type AssetAllocation struct {
	Equity     decimal.Decimal `yaml:"equity" json:"equity"`
	Bonds      decimal.Decimal `yaml:"bonds" json:"bonds"`
	RealEstate decimal.Decimal `yaml:"real_estate" json:"real_estate"`
	Cash       decimal.Decimal `yaml:"cash" json:"cash"`
}

// Sum returns the total of the four weights.
func (a AssetAllocation) Sum() decimal.Decimal {
	return a.Equity.Add(a.Bonds).Add(a.RealEstate).Add(a.Cash)
}

// GuardrailConfig holds the Guyton-Klinger style spending rule thresholds.
//
// Naming note: the withdrawal rate that triggers a spending CUT is the
// numerically higher threshold, the one that triggers a RAISE is lower.
// Earlier tooling called these "lower_wr"/"upper_wr", inverted relative to
// their values; the names here say what each threshold does.
type GuardrailConfig struct {
	CutThreshold   decimal.Decimal `yaml:"cut_threshold" json:"cut_threshold"`
	RaiseThreshold decimal.Decimal `yaml:"raise_threshold" json:"raise_threshold"`
	AdjustmentPct  decimal.Decimal `yaml:"adjustment_pct" json:"adjustment_pct"`
}

// SpendingBounds holds the absolute floor and ceiling on annual spending.
// The floor is only enforced through FloorEndYear; the ceiling always is.
type SpendingBounds struct {
	Floor        decimal.Decimal `yaml:"floor" json:"floor"`
	Ceiling      decimal.Decimal `yaml:"ceiling" json:"ceiling"`
	FloorEndYear int             `yaml:"floor_end_year" json:"floor_end_year"`
}

// CollegeConfig describes the college expense schedule: a base amount that
// compounds at GrowthRate for every year in [StartYear, EndYear].
type CollegeConfig struct {
	Enabled    bool            `yaml:"enabled" json:"enabled"`
	BaseAmount decimal.Decimal `yaml:"base_amount" json:"base_amount"`
	StartYear  int             `yaml:"start_year" json:"start_year"`
	EndYear    int             `yaml:"end_year" json:"end_year"`
	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
}

// ExpenseStream is a named multi-year expense: Amount per year for
// DurationYears starting at StartYear.
type ExpenseStream struct {
	Name          string          `yaml:"name" json:"name"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	StartYear     int             `yaml:"start_year" json:"start_year"`
	DurationYears int             `yaml:"duration_years" json:"duration_years"`
}

// IncomeStream is a named multi-year income stream, treated as net of tax.
type IncomeStream struct {
	Name          string          `yaml:"name" json:"name"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	StartYear     int             `yaml:"start_year" json:"start_year"`
	DurationYears int             `yaml:"duration_years" json:"duration_years"`
}

// RealEstateConfig describes the real-estate cash-flow schedule. The ramp
// and delayed presets use fixed amounts; the custom preset takes the two
// ramp-up amounts and a steady-state amount, starting DelayYears after
// StartYear.
type RealEstateConfig struct {
	Enabled      bool            `yaml:"enabled" json:"enabled"`
	Preset       REFlowPreset    `yaml:"preset" json:"preset"`
	StartYear    int             `yaml:"start_year" json:"start_year"`
	DelayYears   int             `yaml:"delay_years" json:"delay_years"`
	CustomYear1  decimal.Decimal `yaml:"custom_year1" json:"custom_year1"`
	CustomYear2  decimal.Decimal `yaml:"custom_year2" json:"custom_year2"`
	CustomSteady decimal.Decimal `yaml:"custom_steady" json:"custom_steady"`
}

// InheritanceConfig is a single lump sum added to the portfolio in Year.
type InheritanceConfig struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Year   int             `yaml:"year" json:"year"`
}

// TaxBracket is one step of a progressive schedule: income above Threshold
// (up to the next bracket's threshold) is taxed at Rate.
type TaxBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxConfig holds the household's tax schedule.
type TaxConfig struct {
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filing_status"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Brackets          []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// SocialSecurityConfig describes one person's Social Security benefit. The
// benefit starts once the person's eligibility age reaches StartAge and is
// reduced per the funding scenario from ReductionStartYear on.
type SocialSecurityConfig struct {
	Enabled            bool              `yaml:"enabled" json:"enabled"`
	AnnualBenefit      decimal.Decimal   `yaml:"annual_benefit" json:"annual_benefit"`
	StartAge           int               `yaml:"start_age" json:"start_age"`
	FundingScenario    SSFundingScenario `yaml:"funding_scenario" json:"funding_scenario"`
	CustomReduction    decimal.Decimal   `yaml:"custom_reduction" json:"custom_reduction"`
	ReductionStartYear int               `yaml:"reduction_start_year" json:"reduction_start_year"`
}

// CustomShockConfig parameterizes the custom market regime: ShockReturn for
// the first ShockYears, RecoveryReturn for the next RecoveryYears, then
// baseline.
type CustomShockConfig struct {
	ShockYears     int             `yaml:"shock_years" json:"shock_years"`
	ShockReturn    decimal.Decimal `yaml:"shock_return" json:"shock_return"`
	RecoveryYears  int             `yaml:"recovery_years" json:"recovery_years"`
	RecoveryReturn decimal.Decimal `yaml:"recovery_return" json:"recovery_return"`
}

// RegimeConfig selects the market regime and, for the custom regime, its
// shock parameters.
type RegimeConfig struct {
	Kind   MarketRegime      `yaml:"kind" json:"kind"`
	Custom CustomShockConfig `yaml:"custom" json:"custom"`
}

// SimulationParams is the complete, immutable input to a simulation run.
// It is constructed once (typically from YAML via internal/config), validated
// up front, and shared read-only by every path.
type SimulationParams struct {
	StartYear     int             `yaml:"start_year" json:"start_year"`
	HorizonYears  int             `yaml:"horizon_years" json:"horizon_years"`
	StartCapital  decimal.Decimal `yaml:"start_capital" json:"start_capital"`
	RetirementAge int             `yaml:"retirement_age" json:"retirement_age"`

	// CAPE is the market valuation ratio used to derive the initial
	// withdrawal rate.
	CAPE decimal.Decimal `yaml:"cape" json:"cape"`

	Allocation AssetAllocation `yaml:"allocation" json:"allocation"`
	Assets     AssetModels     `yaml:"asset_models" json:"asset_models"`

	Guardrails GuardrailConfig `yaml:"guardrails" json:"guardrails"`
	Spending   SpendingBounds  `yaml:"spending" json:"spending"`

	College        CollegeConfig    `yaml:"college" json:"college"`
	ExpenseStreams []ExpenseStream  `yaml:"expense_streams" json:"expense_streams"`
	RealEstate     RealEstateConfig `yaml:"real_estate" json:"real_estate"`
	Inheritance    InheritanceConfig `yaml:"inheritance" json:"inheritance"`
	IncomeStreams  []IncomeStream   `yaml:"income_streams" json:"income_streams"`

	Tax                  TaxConfig            `yaml:"tax" json:"tax"`
	SocialSecurity       SocialSecurityConfig `yaml:"social_security" json:"social_security"`
	SpouseSocialSecurity SocialSecurityConfig `yaml:"spouse_social_security" json:"spouse_social_security"`

	Regime RegimeConfig `yaml:"regime" json:"regime"`

	NumSimulations int `yaml:"num_simulations" json:"num_simulations"`
	// Seed seeds the ensemble RNG. Zero means unseeded: every run draws a
	// fresh seed and results vary run to run. Any nonzero value makes the
	// full ensemble reproducible; the seed actually used is reported on the
	// results either way.
	Seed int64 `yaml:"seed" json:"seed"`
}

// EndYear returns the last simulated year (inclusive).
func (p *SimulationParams) EndYear() int {
	return p.StartYear + p.HorizonYears - 1
}
