package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// Real-estate ramp schedule: first year, second year, steady state.
var (
	reRampYear1  = decimal.NewFromInt(50000)
	reRampYear2  = decimal.NewFromInt(60000)
	reRampSteady = decimal.NewFromInt(75000)
)

// Initial withdrawal rate parameters. The CAPE-derived rate follows the
// common 1/CAPE earnings-yield heuristic with a fixed base; when CAPE is
// unusable the classic 4% rule applies.
var (
	capeRateBase  = decimal.NewFromFloat(0.0175)
	capeRateScale = decimal.NewFromFloat(0.5)
	fallbackRate  = decimal.NewFromFloat(0.04)
)

// CashFlowCalculator computes every per-year income and expense contribution
// as a pure function of (year, params). It holds no mutable state.
type CashFlowCalculator struct {
	params *domain.SimulationParams
}

// NewCashFlowCalculator creates a calculator bound to the given params.
func NewCashFlowCalculator(params *domain.SimulationParams) *CashFlowCalculator {
	return &CashFlowCalculator{params: params}
}

// InitialWithdrawalRate derives the starting withdrawal rate from the
// market valuation ratio: 1.75% + 0.5/CAPE, or 4% when CAPE is unusable.
func (c *CashFlowCalculator) InitialWithdrawalRate() decimal.Decimal {
	if c.params.CAPE.LessThanOrEqual(decimal.Zero) {
		return fallbackRate
	}
	return capeRateBase.Add(capeRateScale.Div(c.params.CAPE))
}

// InitialBaseSpend seeds YearState.BaseSpend at t=0. Subsequent years carry
// the guardrail-adjusted value forward; this is never recomputed mid-path.
func (c *CashFlowCalculator) InitialBaseSpend() decimal.Decimal {
	return c.InitialWithdrawalRate().Mul(c.params.StartCapital)
}

// CollegeTopUp returns the college expense for the year: the base amount
// compounded at the growth rate since the start year, inside the window.
func (c *CashFlowCalculator) CollegeTopUp(year int) decimal.Decimal {
	cfg := c.params.College
	if !cfg.Enabled || year < cfg.StartYear || year > cfg.EndYear {
		return decimal.Zero
	}
	growth := decimal.NewFromInt(1).Add(cfg.GrowthRate)
	return cfg.BaseAmount.Mul(growth.Pow(decimal.NewFromInt(int64(year - cfg.StartYear))))
}

// OneTimeExpenses sums every expense stream active in the year.
func (c *CashFlowCalculator) OneTimeExpenses(year int) decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.params.ExpenseStreams {
		if year >= s.StartYear && year < s.StartYear+s.DurationYears {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// RealEstateIncome returns the real-estate cash flow for the year according
// to the configured preset.
func (c *CashFlowCalculator) RealEstateIncome(year int) decimal.Decimal {
	cfg := c.params.RealEstate
	if !cfg.Enabled {
		return decimal.Zero
	}
	offset := year - cfg.StartYear
	if offset < 0 {
		return decimal.Zero
	}
	switch cfg.Preset {
	case domain.REPresetRamp:
		return rampAmount(offset)
	case domain.REPresetDelayed:
		// Same ramp, shifted out five years.
		if offset < 5 {
			return decimal.Zero
		}
		return rampAmount(offset - 5)
	case domain.REPresetCustom:
		custom := offset - cfg.DelayYears
		switch {
		case custom < 0:
			return decimal.Zero
		case custom == 0:
			return cfg.CustomYear1
		case custom == 1:
			return cfg.CustomYear2
		default:
			return cfg.CustomSteady
		}
	}
	return decimal.Zero
}

func rampAmount(offset int) decimal.Decimal {
	switch {
	case offset == 0:
		return reRampYear1
	case offset == 1:
		return reRampYear2
	default:
		return reRampSteady
	}
}

// OtherIncome sums every income stream active in the year. These amounts are
// net of tax: they offset the spending need directly and never enter the
// withdrawal solve.
func (c *CashFlowCalculator) OtherIncome(year int) decimal.Decimal {
	total := decimal.Zero
	for _, s := range c.params.IncomeStreams {
		if year >= s.StartYear && year < s.StartYear+s.DurationYears {
			total = total.Add(s.Amount)
		}
	}
	return total
}

// SocialSecurityIncome returns the combined primary and spouse benefit for
// the year, each computed with its own parameters.
func (c *CashFlowCalculator) SocialSecurityIncome(year int) decimal.Decimal {
	primary := c.socialSecurityBenefit(c.params.SocialSecurity, year)
	spouse := c.socialSecurityBenefit(c.params.SpouseSocialSecurity, year)
	return primary.Add(spouse)
}

// socialSecurityBenefit computes one person's benefit: zero until the
// eligibility age reaches the claiming age, then the annual benefit reduced
// per the funding scenario once the reduction start year is reached.
func (c *CashFlowCalculator) socialSecurityBenefit(cfg domain.SocialSecurityConfig, year int) decimal.Decimal {
	if !cfg.Enabled {
		return decimal.Zero
	}
	eligibilityAge := c.params.RetirementAge + (year - c.params.StartYear)
	if eligibilityAge < cfg.StartAge {
		return decimal.Zero
	}
	benefit := cfg.AnnualBenefit
	if year < cfg.ReductionStartYear {
		return benefit
	}
	cut := fundingCut(cfg, year)
	return benefit.Mul(decimal.NewFromInt(1).Sub(cut))
}

// fundingCut returns the benefit reduction fraction for the year under the
// configured funding scenario.
func fundingCut(cfg domain.SocialSecurityConfig, year int) decimal.Decimal {
	switch cfg.FundingScenario {
	case domain.SSConservative:
		// Flat 19% cut, the trustees' depletion-scenario figure.
		return decimal.NewFromFloat(0.19)
	case domain.SSModerate:
		// Cut starts at 5% and grows 1%/year, capped at 10%.
		yearsSince := year - cfg.ReductionStartYear
		cut := decimal.NewFromFloat(0.05).Add(
			decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(yearsSince))))
		return decimal.Min(cut, decimal.NewFromFloat(0.10))
	case domain.SSOptimistic:
		return decimal.Zero
	case domain.SSCustomCut:
		return cfg.CustomReduction
	}
	return decimal.Zero
}

// InheritanceAmount returns the lump sum landing in the portfolio this year,
// zero in every other year. It is added to assets directly, never netted
// against the spending need.
func (c *CashFlowCalculator) InheritanceAmount(year int) decimal.Decimal {
	inh := c.params.Inheritance
	if inh.Amount.IsPositive() && year == inh.Year {
		return inh.Amount
	}
	return decimal.Zero
}
