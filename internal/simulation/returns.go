package simulation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// minClassReturn bounds sampled returns below: an asset cannot lose more
// than 100% in a year, so returns alone can never push a portfolio negative.
var minClassReturn = decimal.NewFromInt(-1)

// classMeans holds the (possibly regime-adjusted) expected return per class.
type classMeans struct {
	equity, bonds, realEstate, cash decimal.Decimal
}

// meanOverride replaces selected class means for an inclusive window of
// year offsets. A nil field keeps the baseline mean.
type meanOverride struct {
	fromOffset, toOffset            int
	equity, bonds, realEstate, cash *decimal.Decimal
}

func dp(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// regimeOverrides expands a regime into its mean-override windows. Every
// named regime uses the same windowing mechanism; only the numbers differ.
func regimeOverrides(cfg domain.RegimeConfig) []meanOverride {
	switch cfg.Kind {
	case domain.RegimeRecessionRecover:
		// Sharp equity drawdown at the start, flat recovery year, then baseline.
		return []meanOverride{
			{fromOffset: 0, toOffset: 0, equity: dp(-0.15)},
			{fromOffset: 1, toOffset: 1, equity: dp(0.0)},
		}
	case domain.RegimeGrindLower:
		// A lost decade: depressed equity and real-estate means for ten years.
		return []meanOverride{
			{fromOffset: 0, toOffset: 9, equity: dp(0.02), realEstate: dp(0.02)},
		}
	case domain.RegimeLateRecession:
		// The same recession/recovery pair, landing ten years in.
		return []meanOverride{
			{fromOffset: 10, toOffset: 10, equity: dp(-0.15)},
			{fromOffset: 11, toOffset: 11, equity: dp(0.0)},
		}
	case domain.RegimeInflationShock:
		// Five years of negative real bond and cash returns with weak equity.
		return []meanOverride{
			{fromOffset: 0, toOffset: 4, equity: dp(0.01), bonds: dp(-0.02), cash: dp(-0.01)},
		}
	case domain.RegimeLongBear:
		// Fifteen years of near-zero equity.
		return []meanOverride{
			{fromOffset: 0, toOffset: 14, equity: dp(0.01)},
		}
	case domain.RegimeTechBubble:
		// Three exuberant years, then a three-year bust.
		return []meanOverride{
			{fromOffset: 0, toOffset: 2, equity: dp(0.12)},
			{fromOffset: 3, toOffset: 5, equity: dp(-0.10)},
		}
	case domain.RegimeCustom:
		c := cfg.Custom
		var out []meanOverride
		if c.ShockYears > 0 {
			r := c.ShockReturn
			out = append(out, meanOverride{
				fromOffset: 0, toOffset: c.ShockYears - 1,
				equity: &r, bonds: &r, realEstate: &r, cash: &r,
			})
		}
		if c.RecoveryYears > 0 {
			r := c.RecoveryReturn
			out = append(out, meanOverride{
				fromOffset: c.ShockYears, toOffset: c.ShockYears + c.RecoveryYears - 1,
				equity: &r, bonds: &r, realEstate: &r, cash: &r,
			})
		}
		return out
	}
	return nil
}

// ReturnModel produces the portfolio return for a year, either the
// regime-adjusted expected value (deterministic) or one draw per asset class
// around it (stochastic).
type ReturnModel struct {
	params    *domain.SimulationParams
	overrides []meanOverride
}

// NewReturnModel creates a return model for the given params.
func NewReturnModel(params *domain.SimulationParams) *ReturnModel {
	return &ReturnModel{
		params:    params,
		overrides: regimeOverrides(params.Regime),
	}
}

// means returns the regime-adjusted expected return per class for the year
// offset. Later overrides win when windows overlap.
func (rm *ReturnModel) means(offset int) classMeans {
	m := classMeans{
		equity:     rm.params.Assets.Equity.Mean,
		bonds:      rm.params.Assets.Bonds.Mean,
		realEstate: rm.params.Assets.RealEstate.Mean,
		cash:       rm.params.Assets.Cash.Mean,
	}
	for _, ov := range rm.overrides {
		if offset < ov.fromOffset || offset > ov.toOffset {
			continue
		}
		if ov.equity != nil {
			m.equity = *ov.equity
		}
		if ov.bonds != nil {
			m.bonds = *ov.bonds
		}
		if ov.realEstate != nil {
			m.realEstate = *ov.realEstate
		}
		if ov.cash != nil {
			m.cash = *ov.cash
		}
	}
	return m
}

// PortfolioReturn returns the allocation-weighted portfolio return for the
// year offset. With a nil rng it returns the regime-adjusted means exactly;
// otherwise each class is drawn from a normal around its mean.
func (rm *ReturnModel) PortfolioReturn(offset int, rng *rand.Rand) decimal.Decimal {
	m := rm.means(offset)
	eq, bo, re, ca := m.equity, m.bonds, m.realEstate, m.cash
	if rng != nil {
		eq = sampleClassReturn(eq, rm.params.Assets.Equity.Volatility, rng)
		bo = sampleClassReturn(bo, rm.params.Assets.Bonds.Volatility, rng)
		re = sampleClassReturn(re, rm.params.Assets.RealEstate.Volatility, rng)
		ca = sampleClassReturn(ca, rm.params.Assets.Cash.Volatility, rng)
	}
	a := rm.params.Allocation
	return eq.Mul(a.Equity).
		Add(bo.Mul(a.Bonds)).
		Add(re.Mul(a.RealEstate)).
		Add(ca.Mul(a.Cash))
}

// sampleClassReturn draws one normal return via Box-Muller, clipped at the
// -100% floor. Weights sum to one, so the clipped per-class floor bounds the
// portfolio return at -100% as well.
func sampleClassReturn(mean, stdDev decimal.Decimal, rng *rand.Rand) decimal.Decimal {
	if stdDev.IsZero() {
		return mean
	}
	u1 := 1 - rng.Float64() // (0, 1]: keeps Log finite
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	r := mean.Add(decimal.NewFromFloat(z).Mul(stdDev))
	return decimal.Max(r, minClassReturn)
}
