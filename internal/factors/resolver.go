package factors

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// Store is the factor-store collaborator. ListActive returns the active
// factors matching category and subcategory for the given institution
// scope (nil institutionID selects global factors only); window filtering
// and precedence belong to the resolver, not the store.
type Store interface {
	ListActive(
		ctx context.Context,
		category carbon.Category,
		subcategoryKey string,
		institutionID *uuid.UUID,
	) ([]EmissionFactor, error)
}

// Resolution is the outcome of a factor lookup. Factor is nil when the
// value came from the default table.
type Resolution struct {
	Factor   *EmissionFactor
	Value    float64
	Unit     string
	SourceID string
	Version  string
	Tier     carbon.ResolutionTier
}

// Resolver resolves effective emission factors through the three-tier
// fallback: institution-scoped, then global, then the default table. It
// is read-only and safe under unbounded concurrent callers.
type Resolver struct {
	store    Store
	defaults *DefaultTable
}

// NewResolver builds a Resolver over the given store. A nil defaults
// table falls back to BuiltinDefaults.
func NewResolver(store Store, defaults *DefaultTable) *Resolver {
	if defaults == nil {
		defaults = BuiltinDefaults()
	}
	return &Resolver{store: store, defaults: defaults}
}

// Resolve finds the authoritative factor for (category, subcategoryKey,
// institutionID, asOf).
//
// Precedence is fixed: an active institution-scoped factor whose validity
// window covers asOf beats any global factor; among multiple matches the
// latest ValidFrom wins. When neither tier matches, the default table
// supplies a value and the not-found condition is recorded only in the
// resolution tier, never surfaced. Store errors degrade to the next tier
// with a warning so an estimate is always produced; the warning is the
// operator's signal that institution overrides may have been bypassed.
func (r *Resolver) Resolve(
	ctx context.Context,
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
	asOf time.Time,
) (Resolution, error) {
	log := logging.FromContext(ctx)

	if institutionID != nil {
		factors, err := r.store.ListActive(ctx, category, subcategoryKey, institutionID)
		if err != nil {
			log.Warn().
				Ctx(ctx).
				Str("component", "factors").
				Str("category", string(category)).
				Str("subcategory", subcategoryKey).
				Str("institution_id", institutionID.String()).
				Err(err).
				Msg("institution factor lookup failed, degrading to global tier")
		} else if match := latestCovering(factors, asOf); match != nil {
			return resolutionOf(match, carbon.TierInstitution), nil
		}
	}

	factors, err := r.store.ListActive(ctx, category, subcategoryKey, nil)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "factors").
			Str("category", string(category)).
			Str("subcategory", subcategoryKey).
			Err(err).
			Msg("global factor lookup failed, degrading to default table")
	} else if match := latestCovering(factors, asOf); match != nil {
		return resolutionOf(match, carbon.TierGlobal), nil
	}

	if value, ok := r.defaults.Lookup(category, subcategoryKey); ok {
		log.Debug().
			Ctx(ctx).
			Str("component", "factors").
			Str("category", string(category)).
			Str("subcategory", subcategoryKey).
			Float64("factor", value).
			Msg("using default factor")

		return Resolution{
			Value:    value,
			SourceID: r.defaults.Source,
			Version:  r.defaults.Version,
			Tier:     carbon.TierDefault,
		}, nil
	}

	return Resolution{}, fmt.Errorf("%w: %s/%s", ErrFactorNotFound, category, subcategoryKey)
}

// ResolveValue adapts Resolve to the calculator's FactorSource interface.
func (r *Resolver) ResolveValue(
	ctx context.Context,
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
	asOf time.Time,
) (carbon.ResolvedFactor, error) {
	res, err := r.Resolve(ctx, category, subcategoryKey, institutionID, asOf)
	if err != nil {
		return carbon.ResolvedFactor{}, err
	}
	return carbon.ResolvedFactor{
		Value:    res.Value,
		Unit:     res.Unit,
		SourceID: res.SourceID,
		Version:  res.Version,
		Tier:     res.Tier,
	}, nil
}

// latestCovering picks the active factor with the latest ValidFrom whose
// validity window covers asOf. Equal ValidFrom values are broken by ID so
// repeated calls against an unchanged store stay deterministic.
func latestCovering(factors []EmissionFactor, asOf time.Time) *EmissionFactor {
	var best *EmissionFactor
	for i := range factors {
		f := &factors[i]
		if !f.IsActive || !f.CoversDate(asOf) {
			continue
		}
		if best == nil ||
			f.ValidFrom.After(best.ValidFrom) ||
			(f.ValidFrom.Equal(best.ValidFrom) && f.ID.String() < best.ID.String()) {
			best = f
		}
	}
	return best
}

func resolutionOf(f *EmissionFactor, tier carbon.ResolutionTier) Resolution {
	return Resolution{
		Factor:   f,
		Value:    f.FactorValue,
		Unit:     f.Unit,
		SourceID: f.Source,
		Version:  f.ValidFrom.Format("2006-01-02"),
		Tier:     tier,
	}
}
