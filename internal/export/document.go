package export

import (
	"fmt"
	"time"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
)

// Document is the declarative tree behind the PDF artifact: an ordered
// list of sections rendered by a pluggable backend. Building the tree is
// pure and independently testable; only renderPDF touches the drawing
// API.
type Document struct {
	Title    string
	Subtitle string
	Meta     []string
	Sections []Section
}

// Section is one titled block. Exactly one of Table, List or Note is
// rendered; a Note stands in when a section has no data.
type Section struct {
	Title string
	Table *Table
	List  []string
	Note  string
}

// Table is a simple column/row grid.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BuildDocument lays out the paginated report in its fixed section
// order: branded header, period and generation metadata, summary,
// emissions by category, monthly trends, then recommendations when any
// exist.
func (e *Exporter) BuildDocument(report *engine.AggregatedReport, period engine.Period) *Document {
	doc := &Document{
		Title:    e.brand,
		Subtitle: "Carbon Emissions Report",
		Meta: []string{
			fmt.Sprintf("Period: %s to %s",
				period.Start.Format("2006-01-02"), period.End.Format("2006-01-02")),
			fmt.Sprintf("Generated: %s", e.now().UTC().Format(time.RFC3339)),
		},
	}

	doc.Sections = append(doc.Sections, summarySection(report))
	doc.Sections = append(doc.Sections, categorySection(report))
	doc.Sections = append(doc.Sections, trendsSection(report))

	if len(report.Recommendations) > 0 {
		doc.Sections = append(doc.Sections, Section{
			Title: "Recommendations",
			List:  report.Recommendations,
		})
	}

	return doc
}

func summarySection(report *engine.AggregatedReport) Section {
	return Section{
		Title: "Summary",
		Table: &Table{
			Columns: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Total Emissions (kg CO2e)", formatKg(report.TotalEmissions)},
				{"Total Activities", formatCount(report.Statistics.TotalActivities)},
				{"Average Daily Emissions (kg CO2e)", formatKg(report.Statistics.AverageDailyEmissions)},
			},
		},
	}
}

func categorySection(report *engine.AggregatedReport) Section {
	if len(report.EmissionsByCategory) == 0 {
		return Section{Title: "Emissions by Category", Note: "No category data"}
	}

	table := &Table{Columns: []string{"Category", "Emissions (kg CO2e)"}}
	for _, cat := range carbon.CategoryOrder {
		if value, ok := report.EmissionsByCategory[cat]; ok {
			table.Rows = append(table.Rows, []string{string(cat), formatKg(value)})
		}
	}
	return Section{Title: "Emissions by Category", Table: table}
}

func trendsSection(report *engine.AggregatedReport) Section {
	if len(report.MonthlyTrend) == 0 {
		return Section{Title: "Trends (Monthly)", Note: "No trend data"}
	}

	table := &Table{Columns: []string{"Month", "Emissions (kg CO2e)"}}
	for _, point := range report.MonthlyTrend {
		table.Rows = append(table.Rows, []string{point.Month, formatKg(point.Emissions)})
	}
	return Section{Title: "Trends (Monthly)", Table: table}
}
