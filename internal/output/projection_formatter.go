package output

import (
	"bytes"
	"fmt"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// FormatProjection renders the single expected-path projection as a
// year-by-year console table.
func FormatProjection(res *domain.DeterministicResults) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DETERMINISTIC PROJECTION")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Run:    %s\n", res.RunID)
	fmt.Fprintf(&buf, "Years:  %d from %d\n", res.HorizonYears, res.StartYear)
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %-14s %-14s %-12s %-14s %-10s\n",
		"Year", "Spend", "Withdrawal", "Taxes", "End Assets", "Guardrail")
	for _, r := range res.Records {
		fmt.Fprintf(&buf, "%-6d %-14s %-14s %-12s %-14s %-10s\n",
			r.Year,
			FormatCurrency(r.BoundedSpend),
			FormatCurrency(r.GrossWithdrawal),
			FormatCurrency(r.Taxes),
			FormatCurrency(r.EndAssets),
			r.GuardrailAction,
		)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Final wealth:      %s\n", FormatCurrency(res.FinalWealth))
	fmt.Fprintf(&buf, "Total withdrawals: %s\n", FormatCurrency(res.TotalWithdrawals))
	fmt.Fprintf(&buf, "Total taxes:       %s\n", FormatCurrency(res.TotalTaxes))
	fmt.Fprintf(&buf, "Guardrail years:   %d\n", res.GuardrailYears)
	if res.DepletionYear > 0 {
		fmt.Fprintf(&buf, "Portfolio depleted in %d\n", res.DepletionYear)
	}
	return buf.Bytes()
}
