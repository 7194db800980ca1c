package memstore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/dataset"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/store"
)

// Store is an in-memory run store for tests and one-off sessions.
type Store struct {
	mu      sync.RWMutex
	runs    map[string]store.Run
	records map[string][]dataset.Record
}

var _ store.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		runs:    make(map[string]store.Run),
		records: make(map[string][]dataset.Record),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) SaveRun(ctx context.Context, run store.Run, records []dataset.Record) (store.Run, error) {
	if err := ctx.Err(); err != nil {
		return store.Run{}, err
	}
	if run.ID == "" {
		run.ID = store.NewRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Records = len(records)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[run.ID]; ok {
		return store.Run{}, fmt.Errorf("%w: run %s already exists", internalerr.ErrInvalidInput, run.ID)
	}
	s.runs[run.ID] = run
	s.records[run.ID] = slices.Clone(records)
	return run, nil
}

func (s *Store) GetRun(_ context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return run, nil
}

func (s *Store) ListRuns(_ context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	s.mu.RUnlock()

	// IDs are ULIDs, so descending ID order is newest first.
	slices.SortFunc(runs, func(a, b store.Run) int { return strings.Compare(b.ID, a.ID) })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *Store) Records(_ context.Context, id string) ([]dataset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[id]; !ok {
		return nil, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return slices.Clone(s.records[id]), nil
}

func (s *Store) FlagCounts(_ context.Context, id string) (map[classify.Flag]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[id]; !ok {
		return nil, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	counts := make(map[classify.Flag]int)
	for _, r := range s.records[id] {
		counts[r.Flag]++
	}
	return counts, nil
}
