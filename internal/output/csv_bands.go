package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/wealthsim/portfolio-simulator/internal/domain"
)

// CSVBandsFormatter exports the per-year wealth percentile bands as CSV, one
// row per year, suitable for charting in a spreadsheet.
type CSVBandsFormatter struct{}

func (c CSVBandsFormatter) Name() string { return "csv" }

func (c CSVBandsFormatter) Format(results *domain.SimulationResults) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"year"}, bandOrder...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := 0; i <= results.HorizonYears; i++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(results.StartYear+i))
		for _, label := range bandOrder {
			band := results.PercentileBands[label]
			if i < len(band) {
				row = append(row, band[i].StringFixed(2))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
