package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func activity(cat carbon.Category, kg float64, date time.Time) carbon.ActivityRecord {
	return carbon.ActivityRecord{
		ID:               uuid.New(),
		UserID:           uuid.New(),
		Category:         cat,
		ActivityDate:     date,
		CarbonEmissionKg: kg,
		DataSource:       carbon.SourceManual,
	}
}

func january2024() Period {
	return Period{Start: day(2024, time.January, 1), End: day(2024, time.January, 31)}
}

func TestAggregateScenario(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryTransportation, 3.42, day(2024, time.January, 10)),
		activity(carbon.CategoryElectricity, 82, day(2024, time.January, 12)),
	}

	report, err := Aggregate(context.Background(), records, january2024())
	require.NoError(t, err)

	assert.InDelta(t, 85.42, report.TotalEmissions, 0.001)
	assert.InDelta(t, 3.42, report.EmissionsByCategory[carbon.CategoryTransportation], 0.001)
	assert.InDelta(t, 82, report.EmissionsByCategory[carbon.CategoryElectricity], 0.001)
	assert.InDelta(t, 3.42, report.EmissionsByScope.Scope1, 0.001)
	assert.InDelta(t, 82, report.EmissionsByScope.Scope2, 0.001)
	assert.Zero(t, report.EmissionsByScope.Scope3)

	assert.Equal(t, 2, report.Statistics.TotalActivities)
	assert.InDelta(t, 2.755, report.Statistics.AverageDailyEmissions, 0.001)

	require.NotNil(t, report.Statistics.PeakEmissionDate)
	assert.Equal(t, "2024-01-12", *report.Statistics.PeakEmissionDate)
	assert.InDelta(t, 82, report.Statistics.PeakEmissionValue, 0.001)

	require.Len(t, report.MonthlyTrend, 1)
	assert.Equal(t, "2024-01", report.MonthlyTrend[0].Month)
	assert.InDelta(t, 85.42, report.MonthlyTrend[0].Emissions, 0.001)
}

func TestAggregateCategorySumEqualsTotal(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryTransportation, 12.345, day(2024, time.February, 1)),
		activity(carbon.CategoryElectricity, 7.001, day(2024, time.February, 2)),
		activity(carbon.CategoryFood, 3.333, day(2024, time.February, 3)),
		activity(carbon.CategoryWaste, 0.587, day(2024, time.February, 4)),
		activity(carbon.CategoryWater, 0.688, day(2024, time.February, 5)),
		activity(carbon.CategoryOther, 1.5, day(2024, time.February, 6)),
	}
	period := Period{Start: day(2024, time.February, 1), End: day(2024, time.February, 29)}

	report, err := Aggregate(context.Background(), records, period)
	require.NoError(t, err)

	var sum float64
	for _, v := range report.EmissionsByCategory {
		sum += v
	}
	assert.InDelta(t, report.TotalEmissions, sum, 0.001)

	scopes := report.EmissionsByScope
	assert.InDelta(t, report.TotalEmissions, scopes.Scope1+scopes.Scope2+scopes.Scope3, 0.001)
}

func TestAggregatePeakDay(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryOther, 10, day(2024, time.January, 1)),
		activity(carbon.CategoryOther, 20, day(2024, time.January, 2)),
		activity(carbon.CategoryOther, 5, day(2024, time.January, 2)),
		activity(carbon.CategoryOther, 5, day(2024, time.January, 3)),
	}

	report, err := Aggregate(context.Background(), records, january2024())
	require.NoError(t, err)

	require.NotNil(t, report.Statistics.PeakEmissionDate)
	assert.Equal(t, "2024-01-02", *report.Statistics.PeakEmissionDate)
	assert.InDelta(t, 25, report.Statistics.PeakEmissionValue, 0.001)
}

func TestAggregatePeakDayTieBrokenByEarliestDate(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryOther, 15, day(2024, time.January, 20)),
		activity(carbon.CategoryOther, 15, day(2024, time.January, 5)),
	}

	report, err := Aggregate(context.Background(), records, january2024())
	require.NoError(t, err)

	require.NotNil(t, report.Statistics.PeakEmissionDate)
	assert.Equal(t, "2024-01-05", *report.Statistics.PeakEmissionDate)
}

func TestAggregateMonthlyTrendSorted(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryOther, 3, day(2024, time.March, 10)),
		activity(carbon.CategoryOther, 1, day(2024, time.January, 10)),
		activity(carbon.CategoryOther, 2, day(2024, time.February, 10)),
	}
	period := Period{Start: day(2024, time.January, 1), End: day(2024, time.March, 31)}

	report, err := Aggregate(context.Background(), records, period)
	require.NoError(t, err)

	require.Len(t, report.MonthlyTrend, 3)
	assert.Equal(t, "2024-01", report.MonthlyTrend[0].Month)
	assert.Equal(t, "2024-02", report.MonthlyTrend[1].Month)
	assert.Equal(t, "2024-03", report.MonthlyTrend[2].Month)
}

func TestAggregateEmptyRecordSet(t *testing.T) {
	report, err := Aggregate(context.Background(), nil, january2024())
	require.NoError(t, err)

	assert.Zero(t, report.TotalEmissions)
	assert.Empty(t, report.EmissionsByCategory)
	assert.Zero(t, report.EmissionsByScope.Scope1)
	assert.Zero(t, report.EmissionsByScope.Scope2)
	assert.Zero(t, report.EmissionsByScope.Scope3)
	assert.Empty(t, report.MonthlyTrend)
	assert.Zero(t, report.Statistics.TotalActivities)
	assert.Zero(t, report.Statistics.AverageDailyEmissions)
	assert.Nil(t, report.Statistics.PeakEmissionDate)
	assert.Zero(t, report.Statistics.PeakEmissionValue)
}

func TestAggregateSkipsMalformedRecords(t *testing.T) {
	good := activity(carbon.CategoryOther, 5, day(2024, time.January, 10))
	badCategory := activity("quantum", 100, day(2024, time.January, 11))
	noDate := activity(carbon.CategoryOther, 100, time.Time{})

	report, err := Aggregate(context.Background(),
		[]carbon.ActivityRecord{good, badCategory, noDate}, january2024())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Statistics.TotalActivities)
	assert.InDelta(t, 5, report.TotalEmissions, 0.001)
	assert.Len(t, report.SkippedRecords, 2)
}

func TestAggregateInvalidPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period Period
	}{
		{name: "end before start", period: Period{Start: day(2024, time.February, 1), End: day(2024, time.January, 1)}},
		{name: "end equals start", period: Period{Start: day(2024, time.January, 1), End: day(2024, time.January, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Aggregate(context.Background(), nil, tt.period)
			assert.ErrorIs(t, err, ErrInvalidPeriod)
		})
	}
}

func TestAggregateIdempotent(t *testing.T) {
	records := []carbon.ActivityRecord{
		activity(carbon.CategoryTransportation, 3.42, day(2024, time.January, 10)),
		activity(carbon.CategoryElectricity, 82, day(2024, time.January, 12)),
		activity(carbon.CategoryWaste, 1.761, day(2024, time.January, 12)),
	}

	first, err := Aggregate(context.Background(), records, january2024())
	require.NoError(t, err)
	second, err := Aggregate(context.Background(), records, january2024())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Aggregate(ctx, nil, january2024())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScopeOf(t *testing.T) {
	assert.Equal(t, ScopeOf(carbon.CategoryTransportation), ScopeOf(carbon.CategoryHeating))
	assert.NotEqual(t, ScopeOf(carbon.CategoryTransportation), ScopeOf(carbon.CategoryElectricity))
	assert.EqualValues(t, 3, ScopeOf(carbon.CategoryFood))
	assert.EqualValues(t, 3, ScopeOf(carbon.CategoryPaper))
}

func TestPeriodDays(t *testing.T) {
	assert.Equal(t, 31, january2024().Days())
	assert.Equal(t, 1, Period{
		Start: day(2024, time.January, 1),
		End:   day(2024, time.January, 1),
	}.Days())
	assert.Equal(t, 2, Period{
		Start: day(2024, time.January, 1),
		End:   day(2024, time.January, 2),
	}.Days())
}
