// Package carbon defines the activity record model and the per-activity
// emission calculator.
//
// An ActivityRecord describes one carbon-emitting activity (a car trip, a
// month of electricity, a bag of waste). The calculator converts the
// record's raw quantity into kilograms of CO2e using a resolved emission
// factor and a category-specific formula, and stamps the record with
// provenance describing which factor produced the number.
package carbon

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies an activity for factor resolution, formula selection
// and scope accounting.
type Category string

// Activity categories.
const (
	CategoryTransportation Category = "transportation"
	CategoryElectricity    Category = "electricity"
	CategoryFood           Category = "food"
	CategoryWaste          Category = "waste"
	CategoryWater          Category = "water"
	CategoryHeating        Category = "heating"
	CategoryCooling        Category = "cooling"
	CategoryPaper          Category = "paper"
	CategoryEvents         Category = "events"
	CategoryOther          Category = "other"
)

// CategoryOrder is the canonical ordering used wherever category output
// must be deterministic (CSV rows, spreadsheet rows, report sections).
//
//nolint:gochecknoglobals // Fixed ordering table, never mutated.
var CategoryOrder = []Category{
	CategoryTransportation,
	CategoryElectricity,
	CategoryFood,
	CategoryWaste,
	CategoryWater,
	CategoryHeating,
	CategoryCooling,
	CategoryPaper,
	CategoryEvents,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTransportation, CategoryElectricity, CategoryFood,
		CategoryWaste, CategoryWater, CategoryHeating, CategoryCooling,
		CategoryPaper, CategoryEvents, CategoryOther:
		return true
	default:
		return false
	}
}

// DataSource records how an activity entered the system.
type DataSource string

// Recognized data sources.
const (
	SourceManual     DataSource = "manual"
	SourceFileUpload DataSource = "file_upload"
	SourceAPI        DataSource = "api"
	SourceEstimation DataSource = "estimation"
)

// ResolutionTier identifies which tier of the factor fallback chain
// produced a factor value.
type ResolutionTier string

// Resolution tiers, from most to least specific.
const (
	TierInstitution ResolutionTier = "institution"
	TierGlobal      ResolutionTier = "global"
	TierDefault     ResolutionTier = "default"
	TierFixed       ResolutionTier = "fixed"
)

// TransportationDetail describes a trip.
type TransportationDetail struct {
	Mode       string  `json:"mode"`
	DistanceKm float64 `json:"distanceKm"`
	FuelType   string  `json:"fuelType,omitempty"`
	Passengers int     `json:"passengers,omitempty"`
}

// ElectricityDetail describes electricity consumption.
type ElectricityDetail struct {
	ConsumptionKwh float64 `json:"consumptionKwh"`
	Source         string  `json:"source,omitempty"`
}

// FoodDetail describes meals and food waste.
type FoodDetail struct {
	DietType  string  `json:"dietType"`
	MealCount int     `json:"mealCount"`
	WasteKg   float64 `json:"wasteKg,omitempty"`
}

// WasteDetail describes disposed material.
type WasteDetail struct {
	Type       string  `json:"type"`
	QuantityKg float64 `json:"quantityKg"`
	Recycled   bool    `json:"recycled,omitempty"`
}

// WaterDetail describes water consumption.
type WaterDetail struct {
	ConsumptionLiters float64 `json:"consumptionLiters"`
	Usage             string  `json:"usage,omitempty"`
}

// GenericDetail covers categories without a dedicated variant
// (heating, cooling, paper, events, other).
type GenericDetail struct {
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// Details holds the category-specific variant of an activity. Exactly one
// field matching the record's Category must be set; the calculator rejects
// records where the variant is missing.
type Details struct {
	Transportation *TransportationDetail `json:"transportation,omitempty"`
	Electricity    *ElectricityDetail    `json:"electricity,omitempty"`
	Food           *FoodDetail           `json:"food,omitempty"`
	Waste          *WasteDetail          `json:"waste,omitempty"`
	Water          *WaterDetail          `json:"water,omitempty"`
	Generic        *GenericDetail        `json:"generic,omitempty"`
}

// Provenance records which emission factor produced a computed value.
// It is audit metadata: never authoritative input, and not exposed to
// non-privileged callers.
type Provenance struct {
	FactorValue float64        `json:"factorValue"`
	SourceID    string         `json:"sourceId,omitempty"`
	Version     string         `json:"version,omitempty"`
	Tier        ResolutionTier `json:"tier,omitempty"`
}

// ActivityRecord is one carbon-emitting activity. CarbonEmissionKg is
// derived by the calculator and recomputed only when a quantity-bearing
// field changes.
type ActivityRecord struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"userId"`
	InstitutionID    *uuid.UUID `json:"institutionId,omitempty"`
	Category         Category   `json:"category"`
	Details          Details    `json:"details"`
	ActivityDate     time.Time  `json:"activityDate"`
	CarbonEmissionKg float64    `json:"carbonEmissionKg"`
	Provenance       Provenance `json:"emissionFactorProvenance"`
	DataSource       DataSource `json:"dataSource"`
}

// SubcategoryKey derives the factor-lookup key for the record's detail
// variant: "car_petrol" for a petrol car trip, the grid source for
// electricity, the diet type for food, and so on. Categories without a
// factor-backed formula return the empty string.
func (r *ActivityRecord) SubcategoryKey() string {
	switch r.Category {
	case CategoryTransportation:
		if d := r.Details.Transportation; d != nil {
			if d.FuelType != "" {
				return d.Mode + "_" + d.FuelType
			}
			return d.Mode
		}
	case CategoryElectricity:
		if d := r.Details.Electricity; d != nil && d.Source != "" {
			return d.Source
		}
		return "grid"
	case CategoryFood:
		if d := r.Details.Food; d != nil {
			return d.DietType
		}
	case CategoryWaste:
		if d := r.Details.Waste; d != nil {
			return d.Type
		}
	case CategoryWater:
		if d := r.Details.Water; d != nil && d.Usage != "" {
			return d.Usage
		}
		return "domestic"
	case CategoryHeating, CategoryCooling, CategoryPaper, CategoryEvents, CategoryOther:
		return ""
	}
	return ""
}

// QuantityChanged reports whether the quantity-bearing fields differ
// between two detail sets. Create/update handlers use it to decide when
// CarbonEmissionKg must be recomputed; edits to descriptive fields alone
// keep the stored value.
func QuantityChanged(oldDetails, newDetails Details) bool {
	switch {
	case oldDetails.Transportation != nil || newDetails.Transportation != nil:
		o, n := oldDetails.Transportation, newDetails.Transportation
		if o == nil || n == nil {
			return true
		}
		return o.DistanceKm != n.DistanceKm || o.Passengers != n.Passengers ||
			o.Mode != n.Mode || o.FuelType != n.FuelType
	case oldDetails.Electricity != nil || newDetails.Electricity != nil:
		o, n := oldDetails.Electricity, newDetails.Electricity
		if o == nil || n == nil {
			return true
		}
		return o.ConsumptionKwh != n.ConsumptionKwh || o.Source != n.Source
	case oldDetails.Food != nil || newDetails.Food != nil:
		o, n := oldDetails.Food, newDetails.Food
		if o == nil || n == nil {
			return true
		}
		return o.MealCount != n.MealCount || o.WasteKg != n.WasteKg || o.DietType != n.DietType
	case oldDetails.Waste != nil || newDetails.Waste != nil:
		o, n := oldDetails.Waste, newDetails.Waste
		if o == nil || n == nil {
			return true
		}
		return o.QuantityKg != n.QuantityKg || o.Recycled != n.Recycled || o.Type != n.Type
	case oldDetails.Water != nil || newDetails.Water != nil:
		o, n := oldDetails.Water, newDetails.Water
		if o == nil || n == nil {
			return true
		}
		return o.ConsumptionLiters != n.ConsumptionLiters || o.Usage != n.Usage
	case oldDetails.Generic != nil || newDetails.Generic != nil:
		o, n := oldDetails.Generic, newDetails.Generic
		if o == nil || n == nil {
			return true
		}
		return o.Quantity != n.Quantity || o.Unit != n.Unit
	}
	return false
}
