// Package store owns the canonical collection of observations: one entry
// per date, kept sorted by date, persisted wholesale after every write.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/idilsaglam/crms/internal/model"
)

// Backend is the persistence adapter for the single data slot.
// LoadAll on an absent slot returns an empty collection and no error.
type Backend interface {
	LoadAll() ([]model.Observation, error)
	SaveAll([]model.Observation) error
}

// LoadError means the slot could not be read as a whole, or some records
// in it were unusable. The store has started from what it could keep.
type LoadError struct {
	Err     error
	Skipped int
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cycle data unreadable, starting empty: %v", e.Err)
	}
	return fmt.Sprintf("skipped %d unusable observation(s) in cycle data", e.Skipped)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is the observation store. The mutex exists for the watcher and
// reminder goroutines; callers otherwise use it synchronously.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	log     *zap.Logger
	obs     []model.Observation
}

func New(backend Backend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, log: logger}
}

// Load reads the slot. It never leaves the store unusable: on failure the
// collection is empty (or partial) and a *LoadError is returned as a
// warning for the caller to show.
func (s *Store) Load() error {
	items, err := s.backend.LoadAll()
	decodeSkipped := 0
	var partial *model.SkippedRecordsError
	if errors.As(err, &partial) {
		s.log.Warn("skipping unreadable stored observations",
			zap.Int("skipped", partial.Skipped), zap.Error(partial.First))
		decodeSkipped, err = partial.Skipped, nil
	}
	if err != nil {
		s.log.Warn("load cycle data failed, starting empty", zap.Error(err))
		s.mu.Lock()
		s.obs = nil
		s.mu.Unlock()
		return &LoadError{Err: err}
	}

	kept, skipped := normalize(items, s.log)
	skipped += decodeSkipped
	s.mu.Lock()
	s.obs = kept
	s.mu.Unlock()
	s.log.Debug("cycle data loaded", zap.Int("observations", len(kept)), zap.Int("skipped", skipped))
	if skipped > 0 {
		return &LoadError{Skipped: skipped}
	}
	return nil
}

// Reload re-reads the slot after an outside change.
func (s *Store) Reload() error { return s.Load() }

// Upsert replaces any observation on o's date with o and persists the
// whole collection. Invalid input is rejected before anything changes.
// If the save fails the previous collection is restored.
func (s *Store) Upsert(o model.Observation) ([]model.Observation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.obs
	next := make([]model.Observation, 0, len(prev)+1)
	for _, existing := range prev {
		if !existing.Date.Equal(o.Date) {
			next = append(next, existing)
		}
	}
	next = append(next, o)
	sortByDate(next)

	if err := s.backend.SaveAll(next); err != nil {
		s.log.Error("save cycle data failed", zap.String("date", o.Date.String()), zap.Error(err))
		return nil, fmt.Errorf("save: %w", err)
	}
	s.obs = next
	s.log.Debug("observation saved",
		zap.String("date", o.Date.String()),
		zap.String("type", string(o.Type)),
		zap.Bool("peak", o.IsPeakDay))
	return cloneObs(next), nil
}

// All returns a copy of the collection in date order.
func (s *Store) All() []model.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneObs(s.obs)
}

// FindByDate returns the observation recorded for d, if any.
func (s *Store) FindByDate(d model.Date) (model.Observation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := sort.Search(len(s.obs), func(i int) bool { return !s.obs[i].Date.Before(d) })
	if i < len(s.obs) && s.obs[i].Date.Equal(d) {
		return s.obs[i], true
	}
	return model.Observation{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.obs)
}

// normalize drops invalid records and collapses duplicate dates, keeping
// the last one seen, then sorts.
func normalize(items []model.Observation, log *zap.Logger) ([]model.Observation, int) {
	byDate := make(map[string]int, len(items))
	out := make([]model.Observation, 0, len(items))
	skipped := 0
	for _, o := range items {
		if err := o.Validate(); err != nil {
			log.Warn("skipping stored observation", zap.String("date", o.Date.String()), zap.Error(err))
			skipped++
			continue
		}
		if i, dup := byDate[o.Date.String()]; dup {
			out[i] = o
			continue
		}
		byDate[o.Date.String()] = len(out)
		out = append(out, o)
	}
	sortByDate(out)
	return out, skipped
}

func sortByDate(obs []model.Observation) {
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
}

func cloneObs(obs []model.Observation) []model.Observation {
	out := make([]model.Observation, len(obs))
	copy(out, obs)
	return out
}

// IsLoadWarning reports whether err is the fail-soft load warning.
func IsLoadWarning(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
