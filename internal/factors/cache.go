package factors

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

// DefaultCacheTTL bounds how long a resolved factor is served without
// consulting the store again. Factor tables change rarely; an hour keeps
// batch recomputation cheap while picking up edits within the day.
const DefaultCacheTTL = time.Hour

// cachedResolution is one memoized lookup with its expiry.
type cachedResolution struct {
	resolution Resolution
	expiresAt  time.Time
}

func (c cachedResolution) expired(now time.Time) bool {
	return now.After(c.expiresAt)
}

// CachedResolver memoizes Resolve results per (category, subcategory,
// institution, as-of date) with a TTL. Resolution is deterministic for an
// unchanged store, so serving a cached value never changes an estimate;
// the TTL only bounds how long a store edit takes to become visible.
//
// Safe for concurrent use.
type CachedResolver struct {
	inner *Resolver
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedResolution
}

// NewCachedResolver wraps a Resolver with a TTL cache. A non-positive ttl
// uses DefaultCacheTTL.
func NewCachedResolver(inner *Resolver, ttl time.Duration) *CachedResolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedResolver{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedResolution),
	}
}

// Resolve returns the cached resolution when fresh, otherwise delegates
// to the wrapped Resolver and memoizes the outcome. Lookup errors are
// never cached.
func (c *CachedResolver) Resolve(
	ctx context.Context,
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
	asOf time.Time,
) (Resolution, error) {
	key := cacheKey(category, subcategoryKey, institutionID, asOf)
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !entry.expired(now) {
		return entry.resolution, nil
	}

	res, err := c.inner.Resolve(ctx, category, subcategoryKey, institutionID, asOf)
	if err != nil {
		return Resolution{}, err
	}

	c.mu.Lock()
	c.entries[key] = cachedResolution{resolution: res, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()

	return res, nil
}

// ResolveValue adapts Resolve to the calculator's FactorSource interface.
func (c *CachedResolver) ResolveValue(
	ctx context.Context,
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
	asOf time.Time,
) (carbon.ResolvedFactor, error) {
	res, err := c.Resolve(ctx, category, subcategoryKey, institutionID, asOf)
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

// Invalidate drops every cached resolution. Callers invoke it after
// mutating the factor store so the next lookup sees the edit immediately.
func (c *CachedResolver) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedResolution)
	c.mu.Unlock()
}

// Len returns the number of live cache entries, expired ones included.
func (c *CachedResolver) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cacheKey flattens the lookup dimensions. The as-of instant is truncated
// to the calendar date since factor windows have day granularity.
func cacheKey(
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
	asOf time.Time,
) string {
	inst := "global"
	if institutionID != nil {
		inst = institutionID.String()
	}
	return fmt.Sprintf("%s|%s|%s|%s", category, subcategoryKey, inst, asOf.Format("2006-01-02"))
}
