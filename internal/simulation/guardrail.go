package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// GuardrailEngine implements the Guyton-Klinger style spending rule: cut the
// carried spending level when the withdrawal rate climbs past CutThreshold,
// raise it when the rate falls below RaiseThreshold. It is the only
// component whose output depends on running state; invoke it exactly once
// per year per path, before bounds are applied.
type GuardrailEngine struct {
	cfg domain.GuardrailConfig
}

// NewGuardrailEngine creates a guardrail engine from validated config.
func NewGuardrailEngine(cfg domain.GuardrailConfig) *GuardrailEngine {
	return &GuardrailEngine{cfg: cfg}
}

// Apply adjusts the carried base spend given the current portfolio value.
// A depleted or non-positive portfolio is a no-op. Both thresholds are
// exclusive on the no-trigger side: a withdrawal rate exactly equal to
// either threshold leaves spending unchanged.
func (g *GuardrailEngine) Apply(baseSpend, portfolioValue decimal.Decimal) (decimal.Decimal, domain.GuardrailAction) {
	if portfolioValue.LessThanOrEqual(decimal.Zero) {
		return baseSpend, domain.GuardrailNone
	}
	wr := baseSpend.Div(portfolioValue)
	one := decimal.NewFromInt(1)
	switch {
	case wr.GreaterThan(g.cfg.CutThreshold):
		return baseSpend.Mul(one.Sub(g.cfg.AdjustmentPct)), domain.GuardrailDown
	case wr.LessThan(g.cfg.RaiseThreshold):
		return baseSpend.Mul(one.Add(g.cfg.AdjustmentPct)), domain.GuardrailUp
	}
	return baseSpend, domain.GuardrailNone
}

// ClampSpend applies the spending floor and ceiling. The floor only holds
// through bounds.FloorEndYear; the ceiling always holds. With floor below
// ceiling, at most one flag can be set in a given year.
func ClampSpend(spend decimal.Decimal, year int, bounds domain.SpendingBounds) (bounded decimal.Decimal, floorApplied, ceilingApplied bool) {
	bounded = spend
	if year <= bounds.FloorEndYear && bounded.LessThan(bounds.Floor) {
		bounded = bounds.Floor
		floorApplied = true
	}
	if bounded.GreaterThan(bounds.Ceiling) {
		bounded = bounds.Ceiling
		ceilingApplied = true
	}
	return bounded, floorApplied, ceilingApplied
}
