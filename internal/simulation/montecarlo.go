package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
	"github.com/wealthsim/portfolio-simulator/pkg/id"
)

// EnsembleRunner executes many independent stochastic paths and reduces
// them into percentile bands, success metrics and representative paths.
// Paths share nothing but the read-only params, so they run in parallel;
// the reduction waits for all of them.
type EnsembleRunner struct {
	params *domain.SimulationParams
	logger Logger
}

// NewEnsembleRunner builds a runner for the given params. Params must
// already be validated; the tax schedule is re-checked here because a bad
// schedule would mis-compute every path.
func NewEnsembleRunner(params *domain.SimulationParams) (*EnsembleRunner, error) {
	if _, err := NewTaxSchedule(params.Tax.StandardDeduction, params.Tax.Brackets); err != nil {
		return nil, fmt.Errorf("invalid tax schedule: %w", err)
	}
	return &EnsembleRunner{params: params, logger: NopLogger{}}, nil
}

// SetLogger sets the logger. A nil logger restores the no-op default.
func (er *EnsembleRunner) SetLogger(l Logger) {
	if l == nil {
		er.logger = NopLogger{}
		return
	}
	er.logger = l
}

// Run executes the full ensemble. With an explicit seed in params the run is
// fully reproducible: path i always draws from a generator seeded with
// seed+i, independent of scheduling order.
func (er *EnsembleRunner) Run(ctx context.Context) (*domain.SimulationResults, error) {
	p := er.params
	if p.NumSimulations <= 0 {
		return nil, fmt.Errorf("num_simulations must be positive, got %d", p.NumSimulations)
	}

	seed := p.Seed
	if seed == 0 {
		seed = seedFunc()
	}
	er.logger.Infof("running %d paths over %d years (seed %d)", p.NumSimulations, p.HorizonYears, seed)

	allRecords := make([][]domain.YearRecord, p.NumSimulations)
	terminal := make([]decimal.Decimal, p.NumSimulations)
	wealthPaths := make([][]decimal.Decimal, p.NumSimulations)
	guardrailHits := make([]int, p.NumSimulations)
	depletionYears := make([]int, p.NumSimulations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := 0; i < p.NumSimulations; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sim, err := NewPathSimulator(p)
			if err != nil {
				return fmt.Errorf("path %d: %w", i, err)
			}
			rng := rand.New(rand.NewSource(seed + int64(i)))
			records, state := sim.Run(rng)

			allRecords[i] = records
			terminal[i] = state.PortfolioValue
			guardrailHits[i] = state.GuardrailHits
			depletionYears[i] = state.DepletionYear
			wealthPaths[i] = wealthSeries(p.StartCapital, records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := &domain.SimulationResults{
		RunID:          id.New(),
		NumSimulations: p.NumSimulations,
		HorizonYears:   p.HorizonYears,
		StartYear:      p.StartYear,
		Seed:           seed,
		TerminalWealth: terminal,
		WealthPaths:    wealthPaths,
		GuardrailHits:  guardrailHits,
		DepletionYears: depletionYears,
		SuccessRate:    successRate(terminal),
		PercentileBands: CalculatePercentiles(wealthPaths),
	}
	results.RepresentativePaths = representativePaths(terminal, allRecords)
	return results, nil
}

// wealthSeries builds the years+1 wealth column for one path: starting
// capital followed by each year-end balance.
func wealthSeries(startCapital decimal.Decimal, records []domain.YearRecord) []decimal.Decimal {
	series := make([]decimal.Decimal, 0, len(records)+1)
	series = append(series, startCapital)
	for _, r := range records {
		series = append(series, r.EndAssets)
	}
	return series
}

// successRate is the fraction of paths ending with positive wealth.
func successRate(terminal []decimal.Decimal) decimal.Decimal {
	if len(terminal) == 0 {
		return decimal.Zero
	}
	success := 0
	for _, w := range terminal {
		if w.IsPositive() {
			success++
		}
	}
	return decimal.NewFromInt(int64(success)).Div(decimal.NewFromInt(int64(len(terminal))))
}

// representativePaths picks, for each of the 10th/50th/90th percentiles of
// terminal wealth, the path whose terminal value lands closest, and returns
// its full record sequence.
func representativePaths(terminal []decimal.Decimal, allRecords [][]domain.YearRecord) map[string][]domain.YearRecord {
	out := make(map[string][]domain.YearRecord, 3)
	if len(terminal) == 0 {
		return out
	}
	sorted := sortedCopy(terminal)
	for label, pct := range map[string]int{P10: 10, P50: 50, P90: 90} {
		target := percentileAt(sorted, pct)
		best := 0
		bestDist := terminal[0].Sub(target).Abs()
		for i := 1; i < len(terminal); i++ {
			dist := terminal[i].Sub(target).Abs()
			if dist.LessThan(bestDist) {
				best = i
				bestDist = dist
			}
		}
		out[label] = allRecords[best]
	}
	return out
}
