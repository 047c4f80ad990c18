package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/wealthsim/portfolio-simulator/internal/config"
	"github.com/wealthsim/portfolio-simulator/internal/output"
	"github.com/wealthsim/portfolio-simulator/internal/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the Monte Carlo ensemble",
	Long: `Simulate runs the full stochastic ensemble defined by a parameter file:
many independent market paths, reduced to a success rate, wealth percentile
bands and representative best/median/worst paths.

Example:
  psim simulate -c params.yaml -n 5000 --seed 42 -f json`,
	RunE: runSimulate,
}

var (
	simConfigPath string
	simNumPaths   int
	simSeed       int64
	simFormat     string
	simSave       bool
	simVerbose    bool
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVarP(&simConfigPath, "config", "c", "", "path to YAML parameter file (required)")
	simulateCmd.Flags().IntVarP(&simNumPaths, "paths", "n", 0, "override num_simulations from the file")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "override the file's seed (0 draws a fresh seed per run)")
	simulateCmd.Flags().StringVarP(&simFormat, "format", "f", "console", fmt.Sprintf("output format %v", output.FormatterNames()))
	simulateCmd.Flags().BoolVar(&simSave, "save", false, "write the report to a timestamped file instead of stdout")
	simulateCmd.Flags().BoolVarP(&simVerbose, "verbose", "v", false, "log progress to stderr")

	simulateCmd.MarkFlagRequired("config")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	params, err := config.NewInputParser().LoadFromFile(simConfigPath)
	if err != nil {
		return err
	}
	if simNumPaths > 0 {
		params.NumSimulations = simNumPaths
	}
	if cmd.Flags().Changed("seed") {
		params.Seed = simSeed
	}

	formatter := output.GetFormatterByName(simFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q, available: %v", simFormat, output.FormatterNames())
	}

	runner, err := simulation.NewEnsembleRunner(params)
	if err != nil {
		return err
	}
	if simVerbose {
		runner.SetLogger(stderrLogger{})
	}

	results, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if simSave {
		filename, err := output.WriteFormatted(formatter, results, formatExt(formatter))
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", filename)
		return nil
	}

	data, err := formatter.Format(results)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// formatExt maps a formatter to its report-file extension.
func formatExt(f output.Formatter) string {
	if f.Name() == "console" {
		return "txt"
	}
	return f.Name()
}

// stderrLogger adapts the standard log package to the engine's logger.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...interface{}) { log.Printf("DEBUG "+format, args...) }
func (stderrLogger) Infof(format string, args ...interface{})  { log.Printf("INFO "+format, args...) }
func (stderrLogger) Warnf(format string, args ...interface{})  { log.Printf("WARN "+format, args...) }
func (stderrLogger) Errorf(format string, args ...interface{}) { log.Printf("ERROR "+format, args...) }
