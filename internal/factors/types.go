// Package factors owns the emission-factor model and its resolution
// rules: given (category, subcategory, institution, date), find the one
// factor that is authoritative. Resolution is deterministic and falls
// back through three tiers — institution-scoped factors, global factors,
// then a built-in default table — so that estimation never blocks on an
// empty factor store.
package factors

import (
	"time"

	"github.com/google/uuid"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

// Scope is the GHG accounting scope of a factor: 1 (direct), 2
// (energy-indirect) or 3 (other-indirect).
type Scope int

// GHG accounting scopes.
const (
	Scope1 Scope = 1
	Scope2 Scope = 2
	Scope3 Scope = 3
)

// EmissionFactor converts a raw activity quantity into kg CO2e. A nil
// InstitutionID makes the factor global; a set one scopes it to that
// institution. Factors with history are never hard-deleted, only
// deactivated.
type EmissionFactor struct {
	ID             uuid.UUID       `json:"id" yaml:"id"`
	Category       carbon.Category `json:"category" yaml:"category"`
	SubcategoryKey string          `json:"subcategoryKey" yaml:"subcategory_key"`
	FactorValue    float64         `json:"factorValue" yaml:"factor_value"`
	Unit           string          `json:"unit" yaml:"unit"`
	EmissionUnit   string          `json:"emissionUnit" yaml:"emission_unit"`
	Scope          Scope           `json:"scope" yaml:"scope"`
	Source         string          `json:"source" yaml:"source"`
	ValidFrom      time.Time       `json:"validFrom" yaml:"valid_from"`
	ValidUntil     *time.Time      `json:"validUntil,omitempty" yaml:"valid_until,omitempty"`
	InstitutionID  *uuid.UUID      `json:"institutionId,omitempty" yaml:"institution_id,omitempty"`
	IsActive       bool            `json:"isActive" yaml:"is_active"`
}

// CoversDate reports whether the factor's validity window contains t.
func (f *EmissionFactor) CoversDate(t time.Time) bool {
	if f.ValidFrom.After(t) {
		return false
	}
	if f.ValidUntil != nil && f.ValidUntil.Before(t) {
		return false
	}
	return true
}
