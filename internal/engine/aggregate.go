package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/factors"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// statsPrecision is the rounding applied to derived statistics such as
// the daily average. Per-activity totals arrive already rounded; sums are
// carried in decimal and not re-rounded.
const statsPrecision = 3

const (
	monthKeyFormat = "2006-01"
	dayKeyFormat   = "2006-01-02"
)

// Aggregate groups computed activity records into an AggregatedReport for
// the given period.
//
// Records with an unknown category or a zero activity date are skipped
// and listed in SkippedRecords; they never abort the batch. An empty
// record set yields all-zero statistics, empty maps and sequences, and no
// error. Recommendations are not filled in here; see Recommend.
func Aggregate(ctx context.Context, records []carbon.ActivityRecord, period Period) (*AggregatedReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	var (
		total      decimal.Decimal
		byCategory = make(map[carbon.Category]decimal.Decimal)
		byScope    = make(map[factors.Scope]decimal.Decimal)
		byMonth    = make(map[string]decimal.Decimal)
		byDay      = make(map[string]decimal.Decimal)
		skipped    []string
		counted    int
	)

	for i := range records {
		rec := &records[i]
		if !rec.Category.Valid() {
			skipped = append(skipped, fmt.Sprintf("record %s: unknown category %q", rec.ID, rec.Category))
			continue
		}
		if rec.ActivityDate.IsZero() {
			skipped = append(skipped, fmt.Sprintf("record %s: missing activity date", rec.ID))
			continue
		}

		kg := decimal.NewFromFloat(rec.CarbonEmissionKg)
		total = total.Add(kg)
		byCategory[rec.Category] = byCategory[rec.Category].Add(kg)
		byScope[ScopeOf(rec.Category)] = byScope[ScopeOf(rec.Category)].Add(kg)
		byMonth[rec.ActivityDate.Format(monthKeyFormat)] = byMonth[rec.ActivityDate.Format(monthKeyFormat)].Add(kg)
		byDay[rec.ActivityDate.Format(dayKeyFormat)] = byDay[rec.ActivityDate.Format(dayKeyFormat)].Add(kg)
		counted++
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &AggregatedReport{
		TotalEmissions:      total.InexactFloat64(),
		EmissionsByCategory: make(map[carbon.Category]float64, len(byCategory)),
		EmissionsByScope: ScopeTotals{
			Scope1: byScope[factors.Scope1].InexactFloat64(),
			Scope2: byScope[factors.Scope2].InexactFloat64(),
			Scope3: byScope[factors.Scope3].InexactFloat64(),
		},
		MonthlyTrend:    monthlyTrend(byMonth),
		Recommendations: []string{},
		SkippedRecords:  skipped,
	}
	for cat, sum := range byCategory {
		report.EmissionsByCategory[cat] = sum.InexactFloat64()
	}

	report.Statistics = Statistics{
		TotalActivities:       counted,
		AverageDailyEmissions: averageDaily(total, period, counted),
		PeakEmissionValue:     0,
	}
	if date, value, ok := peakDay(byDay); ok {
		report.Statistics.PeakEmissionDate = &date
		report.Statistics.PeakEmissionValue = value
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "aggregate").
		Int("records", len(records)).
		Int("skipped", len(skipped)).
		Float64("total_kg", report.TotalEmissions).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("aggregation complete")

	return report, nil
}

// monthlyTrend flattens the month buckets into a sequence sorted
// ascending by "YYYY-MM" key.
func monthlyTrend(byMonth map[string]decimal.Decimal) []MonthlyEmission {
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trend := make([]MonthlyEmission, 0, len(keys))
	for _, k := range keys {
		trend = append(trend, MonthlyEmission{Month: k, Emissions: byMonth[k].InexactFloat64()})
	}
	return trend
}

// peakDay finds the single maximum-total day. Ties are broken by the
// earliest date, which the lexicographic order of "YYYY-MM-DD" keys gives
// directly.
func peakDay(byDay map[string]decimal.Decimal) (string, float64, bool) {
	var (
		bestDate  string
		bestTotal decimal.Decimal
		found     bool
	)
	for date, sum := range byDay {
		switch {
		case !found, sum.GreaterThan(bestTotal):
			bestDate, bestTotal, found = date, sum, true
		case sum.Equal(bestTotal) && date < bestDate:
			bestDate = date
		}
	}
	if !found {
		return "", 0, false
	}
	return bestDate, bestTotal.InexactFloat64(), true
}

// averageDaily divides the period total across the inclusive day count.
// An empty record set reports zero regardless of the period length.
func averageDaily(total decimal.Decimal, period Period, counted int) float64 {
	if counted == 0 {
		return 0
	}
	days := period.Days()
	if days < 1 {
		days = 1
	}
	return total.Div(decimal.NewFromInt(int64(days))).Round(statsPrecision).InexactFloat64()
}
