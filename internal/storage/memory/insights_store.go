// Package memory provides an in-memory Store implementation for
// development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopsight/shopsight/internal/insights"
)

// InsightsStore keeps extraction records in memory.
type InsightsStore struct {
	mu      sync.RWMutex
	records []insights.Record
}

// NewInsightsStore constructs an InsightsStore.
func NewInsightsStore() *InsightsStore {
	return &InsightsStore{records: []insights.Record{}}
}

// Save appends one record and returns its id.
func (s *InsightsStore) Save(_ context.Context, rec insights.Record) (string, error) {
	if rec.ID == "" {
		return "", errors.New("record id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// Latest returns the most recently captured record for a store URL.
func (s *InsightsStore) Latest(_ context.Context, storeURL string) (insights.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		latest insights.Record
		found  bool
	)
	for _, rec := range s.records {
		if rec.StoreURL != storeURL {
			continue
		}
		if !found || rec.CapturedAt.After(latest.CapturedAt) {
			latest = rec
			found = true
		}
	}
	return latest, found, nil
}

// List returns records newest first.
func (s *InsightsStore) List(_ context.Context, limit, offset int) ([]insights.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := append([]insights.Record(nil), s.records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CapturedAt.After(sorted[j].CapturedAt)
	})

	if offset >= len(sorted) {
		return []insights.Record{}, nil
	}
	sorted = sorted[offset:]
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Delete removes every record for a store URL and returns the count.
func (s *InsightsStore) Delete(_ context.Context, storeURL string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	var removed int64
	for _, rec := range s.records {
		if rec.StoreURL == storeURL {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return removed, nil
}
