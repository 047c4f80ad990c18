package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// allocationTolerance absorbs representation noise when checking that the
// four asset weights sum to one.
var allocationTolerance = decimal.New(1, -9)

// InputParser handles parsing of simulation parameter files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulation parameters from a YAML file and validates
// them. A file that fails validation never reaches an engine.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationParams, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var params domain.SimulationParams
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&params); err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	return &params, nil
}

// Validate checks the full parameter set. Configuration errors surface here,
// before any simulation runs; a validated parameter set always completes
// 100% of its requested paths.
func (ip *InputParser) Validate(p *domain.SimulationParams) error {
	if p.HorizonYears <= 0 || p.HorizonYears > 100 {
		return fmt.Errorf("horizon_years must be between 1 and 100, got %d", p.HorizonYears)
	}
	if !p.StartCapital.IsPositive() {
		return fmt.Errorf("start_capital must be positive, got %s", p.StartCapital)
	}
	if p.NumSimulations <= 0 {
		return fmt.Errorf("num_simulations must be positive, got %d", p.NumSimulations)
	}
	if p.RetirementAge <= 0 {
		return fmt.Errorf("retirement_age must be positive, got %d", p.RetirementAge)
	}
	if p.CAPE.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("cape must be positive, got %s", p.CAPE)
	}

	if err := ip.validateAllocation(p); err != nil {
		return err
	}
	if err := ip.validateGuardrails(&p.Guardrails); err != nil {
		return err
	}
	if err := ip.validateSpending(&p.Spending); err != nil {
		return err
	}
	if err := ip.validateCollege(&p.College); err != nil {
		return err
	}
	for i, s := range p.ExpenseStreams {
		if err := validateStream(s.Amount, s.DurationYears); err != nil {
			return fmt.Errorf("expense stream %d (%s): %w", i, s.Name, err)
		}
	}
	for i, s := range p.IncomeStreams {
		if err := validateStream(s.Amount, s.DurationYears); err != nil {
			return fmt.Errorf("income stream %d (%s): %w", i, s.Name, err)
		}
	}
	if err := ip.validateRealEstate(&p.RealEstate); err != nil {
		return err
	}
	if p.Inheritance.Amount.IsNegative() {
		return fmt.Errorf("inheritance amount cannot be negative")
	}
	if err := ip.validateTax(&p.Tax); err != nil {
		return err
	}
	if err := ip.validateSocialSecurity("social_security", &p.SocialSecurity); err != nil {
		return err
	}
	if err := ip.validateSocialSecurity("spouse_social_security", &p.SpouseSocialSecurity); err != nil {
		return err
	}
	if err := ip.validateRegime(&p.Regime); err != nil {
		return err
	}
	return nil
}

func (ip *InputParser) validateAllocation(p *domain.SimulationParams) error {
	a := p.Allocation
	for _, w := range []struct {
		name   string
		weight decimal.Decimal
	}{
		{"equity", a.Equity}, {"bonds", a.Bonds}, {"real_estate", a.RealEstate}, {"cash", a.Cash},
	} {
		if w.weight.IsNegative() {
			return fmt.Errorf("allocation.%s cannot be negative", w.name)
		}
	}
	if a.Sum().Sub(decimal.NewFromInt(1)).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("allocation weights must sum to 1, got %s", a.Sum())
	}

	m := p.Assets
	for _, c := range []struct {
		name  string
		model domain.AssetClassModel
	}{
		{"equity", m.Equity}, {"bonds", m.Bonds}, {"real_estate", m.RealEstate}, {"cash", m.Cash},
	} {
		if c.model.Volatility.IsNegative() {
			return fmt.Errorf("asset_models.%s.volatility cannot be negative", c.name)
		}
		if c.model.Mean.LessThan(decimal.NewFromInt(-1)) {
			return fmt.Errorf("asset_models.%s.mean cannot be below -100%%", c.name)
		}
	}
	return nil
}

func (ip *InputParser) validateGuardrails(g *domain.GuardrailConfig) error {
	if !g.CutThreshold.IsPositive() || !g.RaiseThreshold.IsPositive() {
		return fmt.Errorf("guardrail thresholds must be positive")
	}
	// The cut threshold is the numerically higher withdrawal rate; a config
	// with cut <= raise would re-introduce the inverted-naming bug.
	if g.CutThreshold.LessThanOrEqual(g.RaiseThreshold) {
		return fmt.Errorf("guardrails.cut_threshold (%s) must exceed raise_threshold (%s)",
			g.CutThreshold, g.RaiseThreshold)
	}
	one := decimal.NewFromInt(1)
	if g.AdjustmentPct.LessThanOrEqual(decimal.Zero) || g.AdjustmentPct.GreaterThanOrEqual(one) {
		return fmt.Errorf("guardrails.adjustment_pct must be in (0, 1), got %s", g.AdjustmentPct)
	}
	return nil
}

func (ip *InputParser) validateSpending(s *domain.SpendingBounds) error {
	if s.Floor.IsNegative() {
		return fmt.Errorf("spending.floor cannot be negative")
	}
	if !s.Ceiling.IsPositive() {
		return fmt.Errorf("spending.ceiling must be positive")
	}
	if s.Floor.GreaterThanOrEqual(s.Ceiling) {
		return fmt.Errorf("spending.floor (%s) must be below ceiling (%s)", s.Floor, s.Ceiling)
	}
	return nil
}

func (ip *InputParser) validateCollege(c *domain.CollegeConfig) error {
	if !c.Enabled {
		return nil
	}
	if !c.BaseAmount.IsPositive() {
		return fmt.Errorf("college.base_amount must be positive when enabled")
	}
	if c.EndYear < c.StartYear {
		return fmt.Errorf("college.end_year (%d) cannot precede start_year (%d)", c.EndYear, c.StartYear)
	}
	if c.GrowthRate.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("college.growth_rate cannot be below -100%%")
	}
	return nil
}

func validateStream(amount decimal.Decimal, duration int) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if duration <= 0 {
		return fmt.Errorf("duration_years must be positive, got %d", duration)
	}
	return nil
}

func (ip *InputParser) validateRealEstate(r *domain.RealEstateConfig) error {
	if !r.Enabled {
		return nil
	}
	if !r.Preset.Valid() {
		return fmt.Errorf("real_estate.preset must be 'ramp', 'delayed' or 'custom', got %q", r.Preset)
	}
	if r.Preset == domain.REPresetCustom {
		if r.DelayYears < 0 {
			return fmt.Errorf("real_estate.delay_years cannot be negative")
		}
		for _, v := range []decimal.Decimal{r.CustomYear1, r.CustomYear2, r.CustomSteady} {
			if v.IsNegative() {
				return fmt.Errorf("real_estate custom amounts cannot be negative")
			}
		}
	}
	return nil
}

func (ip *InputParser) validateTax(t *domain.TaxConfig) error {
	if t.StandardDeduction.IsNegative() {
		return fmt.Errorf("tax.standard_deduction cannot be negative")
	}
	if len(t.Brackets) == 0 {
		return fmt.Errorf("tax.brackets must not be empty")
	}
	if !t.Brackets[0].Threshold.IsZero() {
		return fmt.Errorf("tax.brackets: first threshold must be 0, got %s", t.Brackets[0].Threshold)
	}
	one := decimal.NewFromInt(1)
	for i, b := range t.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("tax.brackets[%d]: rate must be in [0, 1), got %s", i, b.Rate)
		}
		if i > 0 && b.Threshold.LessThanOrEqual(t.Brackets[i-1].Threshold) {
			return fmt.Errorf("tax.brackets[%d]: thresholds must be strictly increasing", i)
		}
	}
	return nil
}

func (ip *InputParser) validateSocialSecurity(field string, s *domain.SocialSecurityConfig) error {
	if !s.Enabled {
		return nil
	}
	if s.AnnualBenefit.IsNegative() {
		return fmt.Errorf("%s.annual_benefit cannot be negative", field)
	}
	if s.StartAge < 62 || s.StartAge > 70 {
		return fmt.Errorf("%s.start_age must be between 62 and 70, got %d", field, s.StartAge)
	}
	if !s.FundingScenario.Valid() {
		return fmt.Errorf("%s.funding_scenario must be 'conservative', 'moderate', 'optimistic' or 'custom', got %q",
			field, s.FundingScenario)
	}
	one := decimal.NewFromInt(1)
	if s.FundingScenario == domain.SSCustomCut &&
		(s.CustomReduction.IsNegative() || s.CustomReduction.GreaterThan(one)) {
		return fmt.Errorf("%s.custom_reduction must be in [0, 1], got %s", field, s.CustomReduction)
	}
	return nil
}

func (ip *InputParser) validateRegime(r *domain.RegimeConfig) error {
	if r.Kind == "" {
		// Empty means baseline; normalize at load time would hide typos, so
		// only the empty string gets the default.
		return nil
	}
	if !r.Kind.Valid() {
		return fmt.Errorf("regime.kind %q is not a known regime", r.Kind)
	}
	if r.Kind == domain.RegimeCustom {
		c := r.Custom
		if c.ShockYears < 0 || c.RecoveryYears < 0 {
			return fmt.Errorf("regime.custom windows cannot be negative")
		}
		minusOne := decimal.NewFromInt(-1)
		if c.ShockReturn.LessThan(minusOne) || c.RecoveryReturn.LessThan(minusOne) {
			return fmt.Errorf("regime.custom returns cannot be below -100%%")
		}
	}
	return nil
}
