package simulation

import (
	"math/rand"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// PathSimulator folds the year stepper across the full horizon for one
// path. Stochastic paths pass a seeded rng; the deterministic projection
// passes nil. The year loop is strictly sequential: each year's state is a
// hard dependency of the next.
type PathSimulator struct {
	params  *domain.SimulationParams
	stepper *YearStepper
}

// NewPathSimulator builds a path simulator for the given params.
func NewPathSimulator(params *domain.SimulationParams) (*PathSimulator, error) {
	stepper, err := NewYearStepper(params)
	if err != nil {
		return nil, err
	}
	return &PathSimulator{params: params, stepper: stepper}, nil
}

// Run simulates one full path and returns its year records and terminal
// state. Depleted paths keep running at zero portfolio value rather than
// terminating early.
func (ps *PathSimulator) Run(rng *rand.Rand) ([]domain.YearRecord, domain.YearState) {
	state := ps.stepper.InitialState()
	records := make([]domain.YearRecord, 0, ps.params.HorizonYears)
	for year := ps.params.StartYear; year <= ps.params.EndYear(); year++ {
		var record domain.YearRecord
		record, state = ps.stepper.Step(state, year, rng)
		records = append(records, record)
	}
	return records, state
}
