package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthsim/portfolio-simulator/internal/config"
	"github.com/wealthsim/portfolio-simulator/internal/output"
	"github.com/wealthsim/portfolio-simulator/internal/simulation"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the single deterministic projection",
	Long: `Project runs one path through the same yearly engine as the ensemble,
using expected returns instead of random draws. Useful for sanity-checking a
parameter file before burning CPU on thousands of paths.

Example:
  psim project -c params.yaml`,
	RunE: runProject,
}

var (
	projConfigPath string
	projJSON       bool
)

func init() {
	rootCmd.AddCommand(projectCmd)

	projectCmd.Flags().StringVarP(&projConfigPath, "config", "c", "", "path to YAML parameter file (required)")
	projectCmd.Flags().BoolVar(&projJSON, "json", false, "emit JSON instead of the console table")

	projectCmd.MarkFlagRequired("config")
}

func runProject(cmd *cobra.Command, args []string) error {
	params, err := config.NewInputParser().LoadFromFile(projConfigPath)
	if err != nil {
		return err
	}

	res, err := simulation.RunProjection(params)
	if err != nil {
		return err
	}

	if projJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal projection: %w", err)
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	_, err = os.Stdout.Write(output.FormatProjection(res))
	return err
}
