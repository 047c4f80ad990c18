package output

import (
	"encoding/json"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// JSONFormatter serializes the full ensemble results as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
