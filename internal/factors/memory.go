package factors

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/LEIBExAC/CarbonNet-sub000/internal/carbon"
)

// MemoryStore is an in-memory Store used by the CLI and by tests. It
// honors the factor lifecycle rules: factors are deactivated, never
// removed.
type MemoryStore struct {
	mu      sync.RWMutex
	factors []EmissionFactor
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreFromFile loads a YAML list of emission factors.
func NewMemoryStoreFromFile(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factor file: %w", err)
	}

	var doc struct {
		Factors []EmissionFactor `yaml:"factors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse factor file: %w", err)
	}

	s := NewMemoryStore()
	for _, f := range doc.Factors {
		s.Add(f)
	}
	return s, nil
}

// Add stores a factor, assigning an ID when none is set.
func (s *MemoryStore) Add(f EmissionFactor) EmissionFactor {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	s.factors = append(s.factors, f)
	return f
}

// Deactivate marks the factor inactive. Factors with history are never
// hard-deleted.
func (s *MemoryStore) Deactivate(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.factors {
		if s.factors[i].ID == id {
			s.factors[i].IsActive = false
			return true
		}
	}
	return false
}

// ListActive implements Store. A nil institutionID matches global factors
// only; a set one matches factors scoped to exactly that institution.
func (s *MemoryStore) ListActive(
	_ context.Context,
	category carbon.Category,
	subcategoryKey string,
	institutionID *uuid.UUID,
) ([]EmissionFactor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []EmissionFactor
	for _, f := range s.factors {
		if !f.IsActive || f.Category != category || f.SubcategoryKey != subcategoryKey {
			continue
		}
		if institutionID == nil {
			if f.InstitutionID != nil {
				continue
			}
		} else if f.InstitutionID == nil || *f.InstitutionID != *institutionID {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}
