package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/engine"
	"github.com/LEIBExAC/CarbonNet-sub000/internal/factors"
)

const dateFlagFormat = "2006-01-02"

// loadActivities reads an activity-record JSON file of the shape
// {"activities": [...]}.
func loadActivities(path string) ([]carbon.ActivityRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activities: %w", err)
	}

	var doc struct {
		Activities []carbon.ActivityRecord `json:"activities"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse activities: %w", err)
	}
	return doc.Activities, nil
}

// buildResolver assembles the factor resolver from the optional factor
// store file and default-table override. The resolver is wrapped in a TTL
// cache so batch recomputation resolves each distinct factor once.
func buildResolver(factorPath, defaultsPath string) (*factors.CachedResolver, error) {
	store := factors.NewMemoryStore()
	if factorPath != "" {
		loaded, err := factors.NewMemoryStoreFromFile(factorPath)
		if err != nil {
			return nil, err
		}
		store = loaded
	}

	var defaults *factors.DefaultTable
	if defaultsPath != "" {
		table, err := factors.LoadTable(defaultsPath)
		if err != nil {
			return nil, err
		}
		defaults = table
	}

	return factors.NewCachedResolver(factors.NewResolver(store, defaults), factors.DefaultCacheTTL), nil
}

// sliceActivityStore serves an already-loaded record slice through the
// ActivityStore collaborator interface, filtering by period and scope.
type sliceActivityStore struct {
	records []carbon.ActivityRecord
}

func (s sliceActivityStore) ListActivities(
	_ context.Context,
	ownerID, institutionID *uuid.UUID,
	period engine.Period,
) ([]carbon.ActivityRecord, error) {
	var out []carbon.ActivityRecord
	for _, rec := range s.records {
		if rec.ActivityDate.Before(period.Start) || rec.ActivityDate.After(period.End.Add(24*time.Hour-time.Nanosecond)) {
			continue
		}
		if ownerID != nil && rec.UserID != *ownerID {
			continue
		}
		if institutionID != nil && (rec.InstitutionID == nil || *rec.InstitutionID != *institutionID) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.Parse(dateFlagFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", name, value)
	}
	return t, nil
}
