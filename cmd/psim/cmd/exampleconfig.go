package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wealthsim/portfolio-simulator/internal/config"
)

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Write an example parameter file",
	Long: `Example-config writes a complete, valid YAML parameter file that
exercises every feature. Edit it to match your own household.`,
	RunE: runExampleConfig,
}

var exampleOutPath string

func init() {
	rootCmd.AddCommand(exampleConfigCmd)

	exampleConfigCmd.Flags().StringVarP(&exampleOutPath, "out", "o", "params.yaml", "output file path")
}

func runExampleConfig(cmd *cobra.Command, args []string) error {
	if err := config.WriteExampleFile(exampleOutPath); err != nil {
		return err
	}
	fmt.Printf("wrote example parameters to %s\n", exampleOutPath)
	return nil
}
