package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
)

// Workbook sheet names are part of the export contract.
const (
	sheetSummary    = "summary"
	sheetByCategory = "by_category"
	sheetTrends     = "trends"
)

// renderExcel builds the three-sheet workbook. Empty sections carry
// explicit no-data markers instead of omitting rows.
func (e *Exporter) renderExcel(report *engine.AggregatedReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetByCategory); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(sheetTrends); err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeCategorySheet(f, report); err != nil {
		return nil, err
	}
	if err := writeTrendsSheet(f, report); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *engine.AggregatedReport) error {
	peakDate := "n/a"
	if report.Statistics.PeakEmissionDate != nil {
		peakDate = *report.Statistics.PeakEmissionDate
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Emissions (kg CO2e)", formatKg(report.TotalEmissions)},
		{"Total Activities", formatCount(report.Statistics.TotalActivities)},
		{"Average Daily Emissions (kg CO2e)", formatKg(report.Statistics.AverageDailyEmissions)},
		{"Peak Emission Date", peakDate},
		{"Peak Emission Value (kg CO2e)", formatKg(report.Statistics.PeakEmissionValue)},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeCategorySheet(f *excelize.File, report *engine.AggregatedReport) error {
	rows := [][]interface{}{{"Category", "Emissions (kg CO2e)"}}

	if len(report.EmissionsByCategory) == 0 {
		rows = append(rows, []interface{}{"No category data", ""})
		return writeRows(f, sheetByCategory, rows)
	}

	for _, cat := range carbon.CategoryOrder {
		if value, ok := report.EmissionsByCategory[cat]; ok {
			rows = append(rows, []interface{}{string(cat), formatKg(value)})
		}
	}
	return writeRows(f, sheetByCategory, rows)
}

func writeTrendsSheet(f *excelize.File, report *engine.AggregatedReport) error {
	rows := [][]interface{}{{"Month", "Emissions (kg CO2e)"}}

	if len(report.MonthlyTrend) == 0 {
		rows = append(rows, []interface{}{"No trend data", ""})
		return writeRows(f, sheetTrends, rows)
	}

	for _, point := range report.MonthlyTrend {
		rows = append(rows, []interface{}{point.Month, formatKg(point.Emissions)})
	}
	return writeRows(f, sheetTrends, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
