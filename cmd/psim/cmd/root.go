package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "psim",
	Short: "A retirement portfolio Monte Carlo simulator",
	Long: `Psim projects retirement portfolios over multi-decade horizons.

It provides tools for:
  - Monte Carlo simulation across thousands of market paths
  - Guardrail-based dynamic spending with floors and ceilings
  - Progressive tax-aware withdrawal sizing
  - Named market regimes (recessions, long bears, inflation shocks)
  - Social Security funding scenarios and household cash flows`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
