package engine

import "github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"

// Thresholds (kg CO2e over the reporting period) above which a category
// earns reduction tips.
const (
	TransportThresholdKg   = 100.0
	ElectricityThresholdKg = 50.0
	FoodThresholdKg        = 30.0
	WasteThresholdKg       = 0.0
)

//nolint:gochecknoglobals // Fixed rule tables, never mutated.
var (
	transportTips = []string{
		"Consider carpooling, public transport or cycling for regular commutes.",
		"Combine errands into a single trip to cut total distance driven.",
		"For trips under two kilometres, walk or cycle instead of driving.",
	}
	electricityTips = []string{
		"Replace remaining incandescent bulbs with LED lighting.",
		"Unplug idle electronics; standby power adds up over a month.",
		"Ask your utility about switching to a renewable electricity tariff.",
	}
	foodTips = []string{
		"Plan meals ahead to reduce food waste.",
		"Try one or two plant-based days per week.",
	}
	wasteTips = []string{
		"Separate recyclables consistently; recycling cuts waste emissions by around 70%.",
		"Compost organic waste instead of sending it to landfill.",
	}
	encouragement = "Great job! Your carbon footprint is low for this period. Keep up the good habits."
)

// Recommend derives ordered reduction tips from category totals. Rules
// fire in a fixed order — transportation, electricity, food, waste — so
// identical totals always yield an identical sequence. When no rule
// triggers, a single encouragement message is returned; the sequence is
// never empty.
func Recommend(byCategory map[carbon.Category]float64) []string {
	var tips []string

	if byCategory[carbon.CategoryTransportation] > TransportThresholdKg {
		tips = append(tips, transportTips...)
	}
	if byCategory[carbon.CategoryElectricity] > ElectricityThresholdKg {
		tips = append(tips, electricityTips...)
	}
	if byCategory[carbon.CategoryFood] > FoodThresholdKg {
		tips = append(tips, foodTips...)
	}
	if byCategory[carbon.CategoryWaste] > WasteThresholdKg {
		tips = append(tips, wasteTips...)
	}

	if len(tips) == 0 {
		return []string{encouragement}
	}
	return tips
}
