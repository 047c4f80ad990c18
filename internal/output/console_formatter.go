package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// bandOrder fixes the print order of the percentile bands; map iteration
// order would shuffle it run to run.
var bandOrder = []string{"p10", "p25", "p50", "p75", "p90"}

// ConsoleFormatter renders a concise console summary of an ensemble run.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PORTFOLIO SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run:         %s\n", results.RunID)
	fmt.Fprintf(&buf, "Paths:       %d over %d years from %d (seed %d)\n",
		results.NumSimulations, results.HorizonYears, results.StartYear, results.Seed)
	fmt.Fprintf(&buf, "Success:     %s of paths end with positive wealth\n", FormatPercentage(results.SuccessRate))
	fmt.Fprintf(&buf, "Never dry:   %d of %d paths never touched zero\n",
		results.NeverDepletedCount(), results.NumSimulations)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Terminal wealth percentiles:")
	lastCol := func(band []decimal.Decimal) decimal.Decimal {
		if len(band) == 0 {
			return decimal.Zero
		}
		return band[len(band)-1]
	}
	for _, label := range bandOrder {
		band, ok := results.PercentileBands[label]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %-4s %s\n", label, FormatCurrency(lastCol(band)))
	}

	if rep, ok := results.RepresentativePaths["p50"]; ok && len(rep) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "Median path (closest to p50 terminal wealth):")
		fmt.Fprintf(&buf, "  %-6s %-14s %-14s %-14s %-10s\n", "Year", "Spend", "Withdrawal", "End Assets", "Guardrail")
		for _, r := range rep {
			fmt.Fprintf(&buf, "  %-6d %-14s %-14s %-14s %-10s\n",
				r.Year,
				FormatCurrency(r.BoundedSpend),
				FormatCurrency(r.GrossWithdrawal),
				FormatCurrency(r.EndAssets),
				r.GuardrailAction,
			)
		}
	}
	return buf.Bytes(), nil
}
