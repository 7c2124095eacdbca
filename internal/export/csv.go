package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
)

// renderCSV writes flat "metric,value" rows: totalEmissions first, then
// one category_<name> row per category present, in canonical category
// order so identical reports serialize byte-identically.
func (e *Exporter) renderCSV(report *engine.AggregatedReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"totalEmissions", formatCSVValue(report.TotalEmissions)}); err != nil {
		return nil, err
	}

	for _, cat := range carbon.CategoryOrder {
		value, ok := report.EmissionsByCategory[cat]
		if !ok {
			continue
		}
		if err := w.Write([]string{"category_" + string(cat), formatCSVValue(value)}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatCSVValue renders a kg value without trailing zeros ("82", not
// "82.000"), matching the flat metric contract.
func formatCSVValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
