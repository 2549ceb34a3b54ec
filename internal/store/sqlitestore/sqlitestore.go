package sqlitestore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/idilsaglam/crms/internal/model"
)

// DefaultSlot is the slot name the observation array lives under.
const DefaultSlot = "crms-cycle-data"

// Store keeps the observation array as one JSON payload in a named row of
// a key-value table. Each save replaces the row inside a transaction.
type Store struct {
	db   *sql.DB
	path string
	slot string
}

// Open creates the database file and slot table if needed.
func Open(path, slot string) (*Store, error) {
	if path == "" {
		path = "crms.db"
	}
	if slot == "" {
		slot = DefaultSlot
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &Store{db: db, path: path, slot: slot}, nil
}

func (s *Store) Path() string { return s.path }
func (s *Store) Slot() string { return s.slot }

func (s *Store) LoadAll() ([]model.Observation, error) {
	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM slots WHERE name = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return []model.Observation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", s.slot, err)
	}
	items, err := model.DecodeObservations(payload)
	var skipped *model.SkippedRecordsError
	if err != nil && !errors.As(err, &skipped) {
		return nil, s.quarantine(fmt.Errorf("decode slot %s: %w", s.slot, err))
	}
	return items, err
}

// quarantine renames an undecodable slot row so the next save starts a
// fresh row instead of overwriting it.
func (s *Store) quarantine(cause error) error {
	aside := fmt.Sprintf("%s.corrupt-%s", s.slot, time.Now().UTC().Format("20060102T150405.000Z"))
	if _, err := s.db.Exec(`UPDATE slots SET name = ? WHERE name = ?`, aside, s.slot); err != nil {
		return fmt.Errorf("%w (could not move it aside: %v)", cause, err)
	}
	return fmt.Errorf("%w (moved to slot %s)", cause, aside)
}

func (s *Store) SaveAll(items []model.Observation) (retErr error) {
	if items == nil {
		items = []model.Observation{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", s.slot, err)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.Exec(`INSERT INTO slots(name, payload, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		s.slot, data, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("upsert slot %s: %w", s.slot, err)
	}
	return tx.Commit()
}

// Clear removes the slot row; the next load starts empty.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM slots WHERE name = ?`, s.slot); err != nil {
		return fmt.Errorf("delete slot %s: %w", s.slot, err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB { return s.db }
