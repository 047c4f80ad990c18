package simulation

import (
	"context"
	"fmt"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
	"github.com/wealthsim/portfolio-simulator/pkg/id"
)

// RunProjection runs the single expected-value path: the same year stepper
// as the stochastic ensemble, fed regime-adjusted means instead of draws.
func RunProjection(params *domain.SimulationParams) (*domain.DeterministicResults, error) {
	proj, err := NewDeterministicProjector(params)
	if err != nil {
		return nil, err
	}
	return proj.Run(), nil
}

// RunSimulation runs the full stochastic ensemble.
func RunSimulation(ctx context.Context, params *domain.SimulationParams) (*domain.SimulationResults, error) {
	runner, err := NewEnsembleRunner(params)
	if err != nil {
		return nil, err
	}
	return runner.Run(ctx)
}

// DeterministicProjector mirrors the Monte Carlo engine with a single
// expected path. It reuses PathSimulator with sampling disabled, so the two
// engines cannot drift apart.
type DeterministicProjector struct {
	params *domain.SimulationParams
	path   *PathSimulator
}

// NewDeterministicProjector builds a projector for the given params.
func NewDeterministicProjector(params *domain.SimulationParams) (*DeterministicProjector, error) {
	sim, err := NewPathSimulator(params)
	if err != nil {
		return nil, fmt.Errorf("building projector: %w", err)
	}
	return &DeterministicProjector{params: params, path: sim}, nil
}

// Run executes the expected path and assembles the projection series.
func (dp *DeterministicProjector) Run() *domain.DeterministicResults {
	records, state := dp.path.Run(nil)

	res := &domain.DeterministicResults{
		RunID:        id.New(),
		StartYear:    dp.params.StartYear,
		HorizonYears: dp.params.HorizonYears,
		Wealth:       wealthSeries(dp.params.StartCapital, records),
		Records:      records,
		FinalWealth:  state.PortfolioValue,
		DepletionYear: state.DepletionYear,
		GuardrailYears: state.GuardrailHits,
	}
	for _, r := range records {
		res.Spending = append(res.Spending, r.BoundedSpend)
		res.Withdrawals = append(res.Withdrawals, r.GrossWithdrawal)
		res.Taxes = append(res.Taxes, r.Taxes)
		res.TotalTaxes = res.TotalTaxes.Add(r.Taxes)
		res.TotalWithdrawals = res.TotalWithdrawals.Add(r.GrossWithdrawal)
	}
	return res
}
