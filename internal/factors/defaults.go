package factors

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

// DefaultTable is the last tier of factor resolution: a versioned,
// injectable table of per-category default factors. Tests and deployments
// substitute controlled tables instead of relying on globals; when no
// table is supplied, BuiltinDefaults is used.
type DefaultTable struct {
	// Version is a semantic version identifying the table edition. It is
	// recorded in provenance so a computed value can be traced back to
	// the defaults that produced it.
	Version string `yaml:"version"`

	// Source names where the values came from (e.g. the publication).
	Source string `yaml:"source"`

	// Factors maps category -> subcategory key -> kg CO2e per unit.
	Factors map[carbon.Category]map[string]float64 `yaml:"factors"`

	// CategoryFallback maps category -> factor used when the subcategory
	// key has no entry. A category present here never fails resolution.
	CategoryFallback map[carbon.Category]float64 `yaml:"category_fallback"`
}

// Validate checks the table version parses as semantic versioning.
func (t *DefaultTable) Validate() error {
	if _, err := semver.NewVersion(t.Version); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidTableVersion, t.Version, err)
	}
	return nil
}

// Lookup returns the default factor for (category, subcategory), falling
// back to the category-level default when the subcategory is unknown.
func (t *DefaultTable) Lookup(category carbon.Category, subcategoryKey string) (float64, bool) {
	if sub, ok := t.Factors[category]; ok {
		if v, ok := sub[subcategoryKey]; ok {
			return v, true
		}
	}
	v, ok := t.CategoryFallback[category]
	return v, ok
}

// LoadTable reads and validates a default-factor table from a YAML file.
func LoadTable(path string) (*DefaultTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factor table: %w", err)
	}

	var table DefaultTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse factor table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	return &table, nil
}

// BuiltinDefaults returns the compiled-in default-factor table.
//
// Values are kg CO2e per unit of activity (km travelled, kWh consumed,
// meal eaten, kg disposed, litre used), drawn from published grid and
// transport averages. They are deliberately conservative estimates: the
// default tier exists so estimation never blocks, not to be precise.
func BuiltinDefaults() *DefaultTable {
	return &DefaultTable{
		Version: "1.0.0",
		Source:  "builtin-defaults",
		Factors: map[carbon.Category]map[string]float64{
			carbon.CategoryTransportation: {
				"car_petrol":   0.171,
				"car_diesel":   0.160,
				"car_electric": 0.053,
				"bus":          0.089,
				"train":        0.041,
				"metro":        0.031,
				"plane":        0.255,
				"motorcycle":   0.113,
				"bicycle":      0,
				"walking":      0,
			},
			carbon.CategoryElectricity: {
				"grid":  0.82,
				"solar": 0.048,
				"wind":  0.011,
				"hydro": 0.024,
			},
			carbon.CategoryFood: {
				"omnivore":    2.5,
				"pescatarian": 1.9,
				"vegetarian":  1.7,
				"vegan":       1.5,
			},
			carbon.CategoryWaste: {
				"general":    0.587,
				"organic":    0.24,
				"plastic":    1.84,
				"paper":      1.29,
				"glass":      0.86,
				"metal":      1.37,
				"electronic": 19.7,
			},
			carbon.CategoryWater: {
				"domestic":   0.000344,
				"hot":        0.0106,
				"irrigation": 0.0003,
			},
		},
		CategoryFallback: map[carbon.Category]float64{
			carbon.CategoryTransportation: 0.171,
			carbon.CategoryElectricity:    0.82,
			carbon.CategoryFood:           2.0,
			carbon.CategoryWaste:          0.587,
			carbon.CategoryWater:          0.000344,
		},
	}
}
