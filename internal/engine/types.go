// Package engine aggregates computed activity records into the
// multi-dimensional statistics behind dashboards and reports: category
// and scope totals, monthly trend, peak-day detection and rule-based
// reduction recommendations.
//
// Aggregation is a synchronous batch computation over an immutable
// snapshot of records. It never mutates its inputs and holds no shared
// state, so concurrent report requests recompute independently.
package engine

import (
	"time"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/factors"
)

// Period is the reporting window. End must be strictly after Start.
type Period struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Validate rejects windows where the end does not follow the start.
func (p Period) Validate() error {
	if !p.End.After(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns the inclusive day count of the period, by calendar date.
func (p Period) Days() int {
	start := p.Start.Truncate(24 * time.Hour)
	end := p.End.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

// ScopeTotals holds emissions per GHG accounting scope.
type ScopeTotals struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
	Scope3 float64 `json:"scope3"`
}

// MonthlyEmission is one point of the monthly trend. Month is a "YYYY-MM"
// key; the trend is sorted ascending by it.
type MonthlyEmission struct {
	Month     string  `json:"month"`
	Emissions float64 `json:"emissions"`
}

// Statistics are the headline numbers of a report. PeakEmissionDate is a
// "YYYY-MM-DD" date, nil when the record set was empty.
type Statistics struct {
	TotalActivities       int     `json:"totalActivities"`
	AverageDailyEmissions float64 `json:"averageDailyEmissions"`
	PeakEmissionDate      *string `json:"peakEmissionDate"`
	PeakEmissionValue     float64 `json:"peakEmissionValue"`
}

// AggregatedReport is a derived, disposable value recomputed from scratch
// per request. SkippedRecords lists records dropped as malformed; they do
// not abort aggregation.
type AggregatedReport struct {
	TotalEmissions      float64                     `json:"totalEmissions"`
	EmissionsByCategory map[carbon.Category]float64 `json:"emissionsByCategory"`
	EmissionsByScope    ScopeTotals                 `json:"emissionsByScope"`
	MonthlyTrend        []MonthlyEmission           `json:"monthlyTrend"`
	Statistics          Statistics                  `json:"statistics"`
	Recommendations     []string                    `json:"recommendations"`
	SkippedRecords      []string                    `json:"-"`
}

// scopeOf classifies categories into GHG scopes. The table is application
// logic, fixed across institutions: direct fuel burn is scope 1,
// purchased electricity scope 2, everything else scope 3.
//
//nolint:gochecknoglobals // Fixed classification table, never mutated.
var scopeOf = map[carbon.Category]factors.Scope{
	carbon.CategoryTransportation: factors.Scope1,
	carbon.CategoryHeating:        factors.Scope1,
	carbon.CategoryElectricity:    factors.Scope2,
}

// ScopeOf returns the accounting scope for a category; categories outside
// the fixed table are scope 3.
func ScopeOf(category carbon.Category) factors.Scope {
	if s, ok := scopeOf[category]; ok {
		return s
	}
	return factors.Scope3
}
