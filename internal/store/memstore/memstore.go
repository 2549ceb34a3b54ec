// Package memstore is an in-process slot, used for throwaway sessions and
// tests. Errors can be primed to exercise the store's failure paths.
package memstore

import (
	"sync"

	"github.com/idilsaglam/crms/internal/model"
)

type Store struct {
	mu    sync.Mutex
	items []model.Observation
	saves int

	LoadErr error
	SaveErr error
}

func New(seed ...model.Observation) *Store {
	return &Store{items: append([]model.Observation(nil), seed...)}
}

func (s *Store) LoadAll() ([]model.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]model.Observation{}, s.items...), nil
}

func (s *Store) SaveAll(items []model.Observation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.items = append([]model.Observation{}, items...)
	s.saves++
	return nil
}

// Saves counts successful SaveAll calls.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *Store) Path() string { return "" }
func (s *Store) Close() error { return nil }
