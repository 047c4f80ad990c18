package domain

import (
	"github.com/shopspring/decimal"
)

// GuardrailAction records what the spending guardrail did in a given year.
type GuardrailAction string

const (
	GuardrailUp   GuardrailAction = "up"
	GuardrailDown GuardrailAction = "down"
	GuardrailNone GuardrailAction = "none"
)

// YearState is the serially-dependent state carried across years within one
// path. Year t+1 cannot be computed without the state produced by year t.
type YearState struct {
	PortfolioValue decimal.Decimal
	// BaseSpend is the guardrail-adjusted spending level, pre-bounds. The
	// floor/ceiling clamp applies to the spend actually taken, not to the
	// carried level.
	BaseSpend     decimal.Decimal
	GuardrailHits int
	Depleted      bool
	// DepletionYear is the first year the portfolio reached zero; 0 while
	// the path is still funded.
	DepletionYear int
}

// YearRecord is the full audit trail of one simulated year. Records are
// append-only: produced once by the path simulator and never mutated.
type YearRecord struct {
	Year int `json:"year"`

	StartAssets           decimal.Decimal `json:"start_assets"`
	BaseSpendPreGuardrail decimal.Decimal `json:"base_spend_pre_guardrail"`
	BaseSpendPostGuardrail decimal.Decimal `json:"base_spend_post_guardrail"`
	BoundedSpend          decimal.Decimal `json:"bounded_spend"`
	FloorApplied          bool            `json:"floor_applied"`
	CeilingApplied        bool            `json:"ceiling_applied"`
	GuardrailAction       GuardrailAction `json:"guardrail_action"`

	CollegeTopUp     decimal.Decimal `json:"college_topup"`
	OneTimeExpenses  decimal.Decimal `json:"one_time_expenses"`
	RealEstateIncome decimal.Decimal `json:"real_estate_income"`
	OtherIncome      decimal.Decimal `json:"other_income"`
	SocialSecurity   decimal.Decimal `json:"social_security"`

	NetNeed         decimal.Decimal `json:"net_need"`
	GrossWithdrawal decimal.Decimal `json:"gross_withdrawal"`
	Taxes           decimal.Decimal `json:"taxes"`

	PortfolioReturn decimal.Decimal `json:"portfolio_return"`
	Growth          decimal.Decimal `json:"growth"`
	Inheritance     decimal.Decimal `json:"inheritance"`

	EndAssets      decimal.Decimal `json:"end_assets"`
	WithdrawalRate decimal.Decimal `json:"withdrawal_rate"`
}

// SimulationResults is the output of a stochastic ensemble run. All fields
// are read-only for consumers (charting, export, narrative layers).
type SimulationResults struct {
	// RunID is a time-sortable identifier for this run, usable as a cache or
	// artifact key by callers.
	RunID string `json:"run_id"`

	NumSimulations int `json:"num_simulations"`
	HorizonYears   int `json:"horizon_years"`
	StartYear      int `json:"start_year"`
	Seed           int64 `json:"seed"`

	// TerminalWealth holds the final portfolio value of each path.
	TerminalWealth []decimal.Decimal `json:"terminal_wealth"`
	// WealthPaths is the paths x (years+1) matrix of portfolio values; the
	// first column is the starting capital.
	WealthPaths [][]decimal.Decimal `json:"wealth_paths"`
	// GuardrailHits counts guardrail adjustments per path.
	GuardrailHits []int `json:"guardrail_hits"`
	// DepletionYears holds the first depleted year per path, 0 if never.
	DepletionYears []int `json:"depletion_years"`

	// SuccessRate is the fraction of paths ending with positive wealth.
	SuccessRate decimal.Decimal `json:"success_rate"`

	// PercentileBands maps "p10".."p90" to per-year wealth percentiles.
	PercentileBands map[string][]decimal.Decimal `json:"percentile_bands"`

	// RepresentativePaths maps "p10", "p50" and "p90" to the full year
	// records of the path whose terminal wealth is closest to that
	// percentile of the ensemble.
	RepresentativePaths map[string][]YearRecord `json:"representative_paths"`
}

// NeverDepletedCount returns how many paths never hit zero mid-horizon.
// Canonical success is terminal wealth > 0; this supports the stricter
// definition for callers that want it.
func (r *SimulationResults) NeverDepletedCount() int {
	n := 0
	for _, y := range r.DepletionYears {
		if y == 0 {
			n++
		}
	}
	return n
}

// DeterministicResults is the output of the single expected-path projection.
type DeterministicResults struct {
	RunID string `json:"run_id"`

	StartYear    int `json:"start_year"`
	HorizonYears int `json:"horizon_years"`

	// Wealth has years+1 entries; the first is the starting capital.
	Wealth      []decimal.Decimal `json:"wealth"`
	Spending    []decimal.Decimal `json:"spending"`
	Withdrawals []decimal.Decimal `json:"withdrawals"`
	Taxes       []decimal.Decimal `json:"taxes"`

	Records []YearRecord `json:"records"`

	FinalWealth      decimal.Decimal `json:"final_wealth"`
	TotalTaxes       decimal.Decimal `json:"total_taxes"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	GuardrailYears   int             `json:"guardrail_years"`
	DepletionYear    int             `json:"depletion_year"`
}
