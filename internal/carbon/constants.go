package carbon

// Fixed formula constants. These are part of the calculation contract,
// not emission factors: they apply regardless of which factor tier was
// resolved and are never overridden per institution.
const (
	// FoodWasteFactorKg is kg CO2e per kg of wasted food, added on top of
	// the per-meal diet factor.
	FoodWasteFactorKg = 0.3

	// RecycledWasteMultiplier is applied to waste emissions when the
	// material was recycled (a 70% reduction).
	RecycledWasteMultiplier = 0.3

	// GenericFactorKg is kg CO2e per unit of quantity for categories
	// without a factor-backed formula (heating, cooling, paper, events,
	// other).
	GenericFactorKg = 0.5

	// EmissionPrecision is the number of decimal places every per-activity
	// emission value is rounded to. Rounding happens per activity, before
	// aggregation; aggregate sums are not re-rounded.
	EmissionPrecision = 3
)
