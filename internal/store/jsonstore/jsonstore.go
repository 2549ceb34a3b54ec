package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/idilsaglam/crms/internal/model"
)

// JSON-backed slot. Single file, human-readable, portable.
// Writes go to a temp file that is renamed over the slot, so a crash
// mid-save leaves the previous collection intact.

const DefaultFileName = "crms-cycle-data.json"

type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

func (s *Store) LoadAll() ([]model.Observation, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Observation{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return []model.Observation{}, nil
	}
	items, err := model.DecodeObservations(b)
	var skipped *model.SkippedRecordsError
	if err != nil && !errors.As(err, &skipped) {
		return nil, s.quarantine(fmt.Errorf("json unmarshal: %w", err))
	}
	return items, err
}

// quarantine moves an undecodable slot file aside so the next save
// cannot overwrite it.
func (s *Store) quarantine(cause error) error {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().UTC().Format("20060102T150405.000Z"))
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("%w (could not move it aside: %v)", cause, err)
	}
	return fmt.Errorf("%w (moved to %s)", cause, aside)
}

func (s *Store) SaveAll(items []model.Observation) error {
	if items == nil {
		items = []model.Observation{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		cleanup()
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		cleanup()
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Close exists so every backend can be released the same way.
func (s *Store) Close() error { return nil }
