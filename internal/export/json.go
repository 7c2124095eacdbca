package export

import (
	"encoding/json"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
)

// jsonPayload is the export envelope: the full report under "data" with
// the statistics lifted alongside for consumers that only want the
// headline numbers.
type jsonPayload struct {
	Data       *engine.AggregatedReport `json:"data"`
	Statistics engine.Statistics        `json:"statistics"`
}

func (e *Exporter) renderJSON(report *engine.AggregatedReport) ([]byte, error) {
	payload := jsonPayload{Data: report, Statistics: report.Statistics}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
