package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// TaxSchedule is a validated progressive tax schedule. Construct it with
// NewTaxSchedule; a schedule built by hand may mis-compute silently.
type TaxSchedule struct {
	StandardDeduction decimal.Decimal
	Brackets          []domain.TaxBracket
}

// NewTaxSchedule validates the bracket list and returns a schedule.
// Thresholds must be strictly increasing starting at zero and every marginal
// rate must lie in [0, 1); otherwise the withdrawal solve has no unique
// solution.
func NewTaxSchedule(standardDeduction decimal.Decimal, brackets []domain.TaxBracket) (*TaxSchedule, error) {
	if len(brackets) == 0 {
		return nil, fmt.Errorf("tax schedule requires at least one bracket")
	}
	if standardDeduction.IsNegative() {
		return nil, fmt.Errorf("standard deduction cannot be negative")
	}
	if !brackets[0].Threshold.IsZero() {
		return nil, fmt.Errorf("first bracket threshold must be 0, got %s", brackets[0].Threshold)
	}
	one := decimal.NewFromInt(1)
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return nil, fmt.Errorf("bracket %d: marginal rate must be in [0, 1), got %s", i, b.Rate)
		}
		if i > 0 && b.Threshold.LessThanOrEqual(brackets[i-1].Threshold) {
			return nil, fmt.Errorf("bracket %d: threshold %s not greater than previous %s",
				i, b.Threshold, brackets[i-1].Threshold)
		}
	}
	return &TaxSchedule{StandardDeduction: standardDeduction, Brackets: brackets}, nil
}

// Tax computes the progressive tax on the given taxable income (already net
// of deductions). Negative income owes nothing.
func (ts *TaxSchedule) Tax(taxableIncome decimal.Decimal) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for i, b := range ts.Brackets {
		if taxableIncome.LessThanOrEqual(b.Threshold) {
			break
		}
		upper := taxableIncome
		if i+1 < len(ts.Brackets) && ts.Brackets[i+1].Threshold.LessThan(taxableIncome) {
			upper = ts.Brackets[i+1].Threshold
		}
		total = total.Add(upper.Sub(b.Threshold).Mul(b.Rate))
	}
	return total
}

// TaxOnWithdrawal computes the tax owed when withdrawing gross on top of
// otherTaxable income, after the standard deduction.
func (ts *TaxSchedule) TaxOnWithdrawal(gross, otherTaxable decimal.Decimal) decimal.Decimal {
	return ts.Tax(gross.Add(otherTaxable).Sub(ts.StandardDeduction))
}

// SolveGrossWithdrawal inverts the schedule: it finds the gross withdrawal
// whose after-tax proceeds equal netNeed, given otherTaxable income already
// counted against the standard deduction.
//
// tax(G) is continuous, piecewise linear and non-decreasing in G, so
// net(G) = G - tax(G) is strictly increasing (all marginal rates < 1) and
// the solution is unique. The solver walks the bracket segments and solves
// the one linear equation whose segment contains the answer; no iteration.
//
// Invariants: gross - tax == netNeed, tax <= gross, gross >= netNeed >= 0.
// netNeed <= 0 returns (0, 0).
func (ts *TaxSchedule) SolveGrossWithdrawal(netNeed, otherTaxable decimal.Decimal) (gross, tax decimal.Decimal) {
	if netNeed.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}

	// base shifts gross into taxable-income space: T = G + base.
	base := otherTaxable.Sub(ts.StandardDeduction)

	// While the deduction still swallows the whole withdrawal, taxable income
	// is zero and the withdrawal passes through untaxed.
	if base.IsNegative() && netNeed.LessThanOrEqual(base.Neg()) {
		return netNeed, decimal.Zero
	}

	one := decimal.NewFromInt(1)
	tStart := decimal.Max(base, decimal.Zero)

	// cum is the full tax owed on income below the current bracket.
	cum := decimal.Zero
	for i, b := range ts.Brackets {
		last := i == len(ts.Brackets)-1
		var upper decimal.Decimal
		if !last {
			upper = ts.Brackets[i+1].Threshold
		}

		// Brackets entirely below the taxable income already produced by
		// other income only contribute to the cumulative tax.
		if !last && upper.LessThanOrEqual(tStart) {
			cum = cum.Add(b.Rate.Mul(upper.Sub(b.Threshold)))
			continue
		}

		// Within this segment: net(T) = T - base - cum - rate*(T - threshold).
		// Solve net(T) = netNeed for T.
		t := netNeed.Add(base).Add(cum).Sub(b.Rate.Mul(b.Threshold)).Div(one.Sub(b.Rate))
		if last || t.LessThan(upper) {
			gross = t.Sub(base)
			tax = cum.Add(b.Rate.Mul(t.Sub(b.Threshold)))
			return gross, tax
		}
		cum = cum.Add(b.Rate.Mul(upper.Sub(b.Threshold)))
	}

	// Unreachable: the last bracket always contains the solution.
	return decimal.Zero, decimal.Zero
}

// SolveGrossWithdrawal is the standalone form of the withdrawal solve,
// validating the schedule before inverting it.
func SolveGrossWithdrawal(netNeed, otherTaxable, standardDeduction decimal.Decimal, brackets []domain.TaxBracket) (gross, tax decimal.Decimal, err error) {
	ts, err := NewTaxSchedule(standardDeduction, brackets)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	gross, tax = ts.SolveGrossWithdrawal(netNeed, otherTaxable)
	return gross, tax, nil
}
