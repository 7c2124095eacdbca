package carbon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/logging"
)

// batchConcurrency bounds the number of records computed in parallel by
// ComputeBatch. Factor resolution is read-only, so the only shared state
// is the skipped-record list.
const batchConcurrency = 8

// ResolvedFactor is the value a factor source hands back to the
// calculator, together with the provenance fields recorded on the record.
type ResolvedFactor struct {
	Value    float64
	Unit     string
	SourceID string
	Version  string
	Tier     ResolutionTier
}

// FactorSource resolves the effective emission factor for an activity.
// Implementations must be side-effect-free and safe for unbounded
// concurrent callers; factor-resolution failures are expected to degrade
// to a built-in default rather than error, so that every activity gets a
// number.
type FactorSource interface {
	ResolveValue(
		ctx context.Context,
		category Category,
		subcategoryKey string,
		institutionID *uuid.UUID,
		asOf time.Time,
	) (ResolvedFactor, error)
}

// Result is one computed emission total plus its provenance.
type Result struct {
	TotalKg    float64
	Provenance Provenance
}

// Calculator applies category-specific emission formulas. It is stateless
// apart from the injected factor source.
type Calculator struct {
	factors FactorSource
}

// NewCalculator returns a Calculator using the given factor source.
func NewCalculator(factors FactorSource) *Calculator {
	return &Calculator{factors: factors}
}

// Compute calculates the emission total for a single record, rounded to
// EmissionPrecision decimal places. The record is not modified; use Apply
// to stamp the computed value onto it.
//
// Quantities at or below zero yield a zero total with factor provenance
// intact. Records with an unknown category or a missing detail variant
// return ErrUnknownCategory or ErrMissingDetail.
func (c *Calculator) Compute(ctx context.Context, rec *ActivityRecord) (Result, error) {
	if rec == nil {
		return Result{}, ErrNilRecord
	}
	if !rec.Category.Valid() {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCategory, rec.Category)
	}

	switch rec.Category {
	case CategoryTransportation:
		return c.computeTransportation(ctx, rec)
	case CategoryElectricity:
		return c.computeElectricity(ctx, rec)
	case CategoryFood:
		return c.computeFood(ctx, rec)
	case CategoryWaste:
		return c.computeWaste(ctx, rec)
	case CategoryWater:
		return c.computeWater(ctx, rec)
	default:
		return computeGeneric(rec)
	}
}

// Apply computes the record's emission and stamps CarbonEmissionKg and
// Provenance. This is the pipeline stage invoked by create/update
// handlers; callers should gate it on QuantityChanged for updates.
func (c *Calculator) Apply(ctx context.Context, rec *ActivityRecord) error {
	res, err := c.Compute(ctx, rec)
	if err != nil {
		return err
	}
	rec.CarbonEmissionKg = res.TotalKg
	rec.Provenance = res.Provenance
	return nil
}

// SkippedRecord identifies a record dropped from a batch and why.
type SkippedRecord struct {
	ID  uuid.UUID
	Err string
}

// BatchResult summarizes a ComputeBatch run.
type BatchResult struct {
	Computed int
	Skipped  []SkippedRecord
}

// ComputeBatch computes and stamps emissions for every record, running up
// to batchConcurrency computations in parallel. Malformed records are
// skipped and reported in the result rather than aborting the batch; the
// only error return is context cancellation.
func (c *Calculator) ComputeBatch(ctx context.Context, records []*ActivityRecord) (BatchResult, error) {
	log := logging.FromContext(ctx)

	var (
		mu      sync.Mutex
		skipped []SkippedRecord
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(batchConcurrency)

	for _, rec := range records {
		rec := rec
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			if err := c.Apply(egCtx, rec); err != nil {
				var id uuid.UUID
				if rec != nil {
					id = rec.ID
				}
				log.Warn().
					Ctx(egCtx).
					Str("component", "calculator").
					Str("record_id", id.String()).
					Err(err).
					Msg("skipping malformed activity record")

				mu.Lock()
				skipped = append(skipped, SkippedRecord{ID: id, Err: err.Error()})
				mu.Unlock()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return BatchResult{}, err
	}

	return BatchResult{Computed: len(records) - len(skipped), Skipped: skipped}, nil
}

func (c *Calculator) computeTransportation(ctx context.Context, rec *ActivityRecord) (Result, error) {
	d := rec.Details.Transportation
	if d == nil {
		return Result{}, fmt.Errorf("%w: transportation", ErrMissingDetail)
	}

	factor, err := c.resolve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	if d.DistanceKm <= 0 {
		return Result{TotalKg: 0, Provenance: provenanceOf(factor)}, nil
	}

	total := decimal.NewFromFloat(d.DistanceKm).Mul(decimal.NewFromFloat(factor.Value))
	if d.Passengers > 1 {
		// Per-capita allocation for shared trips.
		total = total.Div(decimal.NewFromInt(int64(d.Passengers)))
	}

	return Result{TotalKg: roundKg(total), Provenance: provenanceOf(factor)}, nil
}

func (c *Calculator) computeElectricity(ctx context.Context, rec *ActivityRecord) (Result, error) {
	d := rec.Details.Electricity
	if d == nil {
		return Result{}, fmt.Errorf("%w: electricity", ErrMissingDetail)
	}

	factor, err := c.resolve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	if d.ConsumptionKwh <= 0 {
		return Result{TotalKg: 0, Provenance: provenanceOf(factor)}, nil
	}

	total := decimal.NewFromFloat(d.ConsumptionKwh).Mul(decimal.NewFromFloat(factor.Value))
	return Result{TotalKg: roundKg(total), Provenance: provenanceOf(factor)}, nil
}

func (c *Calculator) computeFood(ctx context.Context, rec *ActivityRecord) (Result, error) {
	d := rec.Details.Food
	if d == nil {
		return Result{}, fmt.Errorf("%w: food", ErrMissingDetail)
	}

	factor, err := c.resolve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	meals := d.MealCount
	if meals < 1 {
		meals = 1
	}

	total := decimal.NewFromFloat(factor.Value).Mul(decimal.NewFromInt(int64(meals)))
	if d.WasteKg > 0 {
		waste := decimal.NewFromFloat(d.WasteKg).Mul(decimal.NewFromFloat(FoodWasteFactorKg))
		total = total.Add(waste)
	}

	return Result{TotalKg: roundKg(total), Provenance: provenanceOf(factor)}, nil
}

func (c *Calculator) computeWaste(ctx context.Context, rec *ActivityRecord) (Result, error) {
	d := rec.Details.Waste
	if d == nil {
		return Result{}, fmt.Errorf("%w: waste", ErrMissingDetail)
	}

	factor, err := c.resolve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	if d.QuantityKg <= 0 {
		return Result{TotalKg: 0, Provenance: provenanceOf(factor)}, nil
	}

	total := decimal.NewFromFloat(d.QuantityKg).Mul(decimal.NewFromFloat(factor.Value))
	if d.Recycled {
		total = total.Mul(decimal.NewFromFloat(RecycledWasteMultiplier))
	}

	return Result{TotalKg: roundKg(total), Provenance: provenanceOf(factor)}, nil
}

func (c *Calculator) computeWater(ctx context.Context, rec *ActivityRecord) (Result, error) {
	d := rec.Details.Water
	if d == nil {
		return Result{}, fmt.Errorf("%w: water", ErrMissingDetail)
	}

	factor, err := c.resolve(ctx, rec)
	if err != nil {
		return Result{}, err
	}

	if d.ConsumptionLiters <= 0 {
		return Result{TotalKg: 0, Provenance: provenanceOf(factor)}, nil
	}

	total := decimal.NewFromFloat(d.ConsumptionLiters).Mul(decimal.NewFromFloat(factor.Value))
	return Result{TotalKg: roundKg(total), Provenance: provenanceOf(factor)}, nil
}

// computeGeneric handles heating, cooling, paper, events and other: a
// fixed constant per unit of quantity, no factor lookup.
func computeGeneric(rec *ActivityRecord) (Result, error) {
	d := rec.Details.Generic
	if d == nil {
		return Result{}, fmt.Errorf("%w: generic", ErrMissingDetail)
	}

	prov := Provenance{FactorValue: GenericFactorKg, SourceID: "fixed", Tier: TierFixed}
	if d.Quantity <= 0 {
		return Result{TotalKg: 0, Provenance: prov}, nil
	}

	total := decimal.NewFromFloat(d.Quantity).Mul(decimal.NewFromFloat(GenericFactorKg))
	return Result{TotalKg: roundKg(total), Provenance: prov}, nil
}

func (c *Calculator) resolve(ctx context.Context, rec *ActivityRecord) (ResolvedFactor, error) {
	factor, err := c.factors.ResolveValue(
		ctx, rec.Category, rec.SubcategoryKey(), rec.InstitutionID, rec.ActivityDate)
	if err != nil {
		return ResolvedFactor{}, fmt.Errorf("resolve factor for %s/%s: %w",
			rec.Category, rec.SubcategoryKey(), err)
	}
	return factor, nil
}

func provenanceOf(f ResolvedFactor) Provenance {
	return Provenance{
		FactorValue: f.Value,
		SourceID:    f.SourceID,
		Version:     f.Version,
		Tier:        f.Tier,
	}
}

func roundKg(d decimal.Decimal) float64 {
	return d.Round(EmissionPrecision).InexactFloat64()
}
