package main

import (
	"os"

	"github.com/wealthsim/portfolio-simulator/cmd/psim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
