package simulation

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// YearStepper composes the guardrail, cash-flow aggregation, tax solve and
// return model into a single year's state transition. It is an explicit
// fold: (prior state, year) -> (record, next state), so the transition can
// be tested without running a full horizon.
type YearStepper struct {
	params    *domain.SimulationParams
	cashflow  *CashFlowCalculator
	guardrail *GuardrailEngine
	returns   *ReturnModel
	taxes     *TaxSchedule
}

// NewYearStepper builds a stepper, validating the tax schedule up front.
func NewYearStepper(params *domain.SimulationParams) (*YearStepper, error) {
	taxes, err := NewTaxSchedule(params.Tax.StandardDeduction, params.Tax.Brackets)
	if err != nil {
		return nil, err
	}
	return &YearStepper{
		params:    params,
		cashflow:  NewCashFlowCalculator(params),
		guardrail: NewGuardrailEngine(params.Guardrails),
		returns:   NewReturnModel(params),
		taxes:     taxes,
	}, nil
}

// InitialState returns the t=0 state: full starting capital and the
// CAPE-derived base spend.
func (s *YearStepper) InitialState() domain.YearState {
	return domain.YearState{
		PortfolioValue: s.params.StartCapital,
		BaseSpend:      s.cashflow.InitialBaseSpend(),
	}
}

// Step advances one year. A nil rng produces the deterministic expected
// path; a seeded rng produces one stochastic draw per asset class.
func (s *YearStepper) Step(prior domain.YearState, year int, rng *rand.Rand) (domain.YearRecord, domain.YearState) {
	next := prior
	startAssets := prior.PortfolioValue

	// 1. Guardrail against the start-of-year portfolio, once, before bounds.
	postGuardrail, action := s.guardrail.Apply(prior.BaseSpend, startAssets)
	if action != domain.GuardrailNone {
		next.GuardrailHits++
	}
	next.BaseSpend = postGuardrail

	// 2. Bounds apply to the spend taken this year, not the carried level.
	bounded, floorApplied, ceilingApplied := ClampSpend(postGuardrail, year, s.params.Spending)

	// 3-4. Total need, then offsetting inflows.
	college := s.cashflow.CollegeTopUp(year)
	oneTime := s.cashflow.OneTimeExpenses(year)
	totalNeed := bounded.Add(college).Add(oneTime)

	reIncome := s.cashflow.RealEstateIncome(year)
	otherIncome := s.cashflow.OtherIncome(year)
	ssIncome := s.cashflow.SocialSecurityIncome(year)
	netNeed := totalNeed.Sub(reIncome.Add(otherIncome).Add(ssIncome))

	// 5. Invert the tax schedule. Social Security and real-estate income are
	// taxable and consume standard-deduction headroom; other income streams
	// are already net of tax.
	otherTaxable := ssIncome.Add(reIncome)
	gross, taxes := s.taxes.SolveGrossWithdrawal(netNeed, otherTaxable)

	// 6. Growth on the start-of-year balance.
	portfolioReturn := s.returns.PortfolioReturn(year-s.params.StartYear, rng)
	growth := startAssets.Mul(portfolioReturn)
	value := startAssets.Add(growth)

	// 7. Inheritance lands directly in the portfolio.
	inheritance := s.cashflow.InheritanceAmount(year)
	value = value.Add(inheritance)

	// 8. Withdraw, never borrowing: a withdrawal larger than the balance is
	// capped and its tax recomputed forward on the capped gross. The tax on
	// other taxable income can exceed a capped withdrawal; the record only
	// carries the tax the withdrawal itself can cover, so taxes never exceed
	// gross. A fully depleted year withdraws nothing and owes nothing here.
	if gross.GreaterThan(value) {
		gross = decimal.Max(value, decimal.Zero)
		taxes = decimal.Min(s.taxes.TaxOnWithdrawal(gross, otherTaxable), gross)
	}
	endAssets := value.Sub(gross)
	if endAssets.LessThanOrEqual(decimal.Zero) {
		endAssets = decimal.Zero
		if !next.Depleted {
			next.Depleted = true
			next.DepletionYear = year
		}
	}
	next.PortfolioValue = endAssets

	withdrawalRate := decimal.Zero
	if startAssets.IsPositive() {
		withdrawalRate = gross.Div(startAssets)
	}

	record := domain.YearRecord{
		Year:                   year,
		StartAssets:            startAssets,
		BaseSpendPreGuardrail:  prior.BaseSpend,
		BaseSpendPostGuardrail: postGuardrail,
		BoundedSpend:           bounded,
		FloorApplied:           floorApplied,
		CeilingApplied:         ceilingApplied,
		GuardrailAction:        action,
		CollegeTopUp:           college,
		OneTimeExpenses:        oneTime,
		RealEstateIncome:       reIncome,
		OtherIncome:            otherIncome,
		SocialSecurity:         ssIncome,
		NetNeed:                netNeed,
		GrossWithdrawal:        gross,
		Taxes:                  taxes,
		PortfolioReturn:        portfolioReturn,
		Growth:                 growth,
		Inheritance:            inheritance,
		EndAssets:              endAssets,
		WithdrawalRate:         withdrawalRate,
	}
	return record, next
}
