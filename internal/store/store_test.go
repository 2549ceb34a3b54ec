package store

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/store/jsonstore"
	"github.com/idilsaglam/crms/internal/store/memstore"
)

func obs(date string, typ model.ObservationType) model.Observation {
	return model.Observation{Date: model.MustDate(date), Type: typ}
}

func newLoaded(t *testing.T, seed ...model.Observation) (*Store, *memstore.Store) {
	t.Helper()
	mem := memstore.New(seed...)
	s := New(mem, nil)
	require.NoError(t, s.Load())
	return s, mem
}

func TestUpsertReplacesSameDate(t *testing.T) {
	s, _ := newLoaded(t)

	_, err := s.Upsert(obs("2024-02-01", model.Dry))
	require.NoError(t, err)
	peak := obs("2024-02-01", model.Clear)
	peak.IsPeakDay = true
	_, err = s.Upsert(peak)
	require.NoError(t, err)

	got, ok := s.FindByDate(model.MustDate("2024-02-01"))
	require.True(t, ok)
	assert.Equal(t, model.Clear, got.Type)
	assert.True(t, got.IsPeakDay)
	assert.Equal(t, 1, s.Len())
}

func TestUpsertKeepsSortedAndUnique(t *testing.T) {
	s, _ := newLoaded(t)
	rng := rand.New(rand.NewSource(7))
	types := model.AllTypes()
	base := model.MustDate("2024-01-01")
	last := map[string]model.ObservationType{}

	for i := 0; i < 300; i++ {
		d := base.AddDays(rng.Intn(60))
		typ := types[rng.Intn(len(types))]
		_, err := s.Upsert(model.Observation{Date: d, Type: typ})
		require.NoError(t, err)
		last[d.String()] = typ
	}

	all := s.All()
	require.Len(t, all, len(last))
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].Date.Before(all[i].Date), "not strictly ascending at %d", i)
	}
	for _, o := range all {
		assert.Equal(t, last[o.Date.String()], o.Type, o.Date.String())
	}
}

func TestUpsertIdempotent(t *testing.T) {
	s, _ := newLoaded(t, obs("2024-01-03", model.Sticky))
	o := obs("2024-01-01", model.Menstruation)

	once, err := s.Upsert(o)
	require.NoError(t, err)
	twice, err := s.Upsert(o)
	require.NoError(t, err)

	if diff := cmp.Diff(once, twice, cmp.Comparer(func(a, b model.Date) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("second upsert changed the collection (-once +twice):\n%s", diff)
	}
}

func TestUpsertReturnsCopy(t *testing.T) {
	s, _ := newLoaded(t)
	out, err := s.Upsert(obs("2024-01-01", model.Dry))
	require.NoError(t, err)
	out[0].Type = model.Clear

	got, _ := s.FindByDate(model.MustDate("2024-01-01"))
	assert.Equal(t, model.Dry, got.Type)
}

func TestUpsertRejectsInvalid(t *testing.T) {
	s, mem := newLoaded(t, obs("2024-01-01", model.Dry))

	_, err := s.Upsert(model.Observation{Type: model.Dry})
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	_, err = s.Upsert(model.Observation{Date: model.MustDate("2024-01-01"), Type: "wet"})
	assert.ErrorIs(t, err, model.ErrInvalidObservationType)

	assert.Equal(t, 0, mem.Saves())
	got, _ := s.FindByDate(model.MustDate("2024-01-01"))
	assert.Equal(t, model.Dry, got.Type)
}

func TestUpsertSaveFailureRollsBack(t *testing.T) {
	s, mem := newLoaded(t, obs("2024-01-01", model.Dry))
	mem.SaveErr = errors.New("disk full")

	_, err := s.Upsert(obs("2024-01-01", model.Clear))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	got, ok := s.FindByDate(model.MustDate("2024-01-01"))
	require.True(t, ok)
	assert.Equal(t, model.Dry, got.Type)
}

func TestUpsertPersistsWholeCollection(t *testing.T) {
	s, mem := newLoaded(t)
	_, err := s.Upsert(obs("2024-01-05", model.Dry))
	require.NoError(t, err)
	_, err = s.Upsert(obs("2024-01-02", model.Menstruation))
	require.NoError(t, err)

	saved, err := mem.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, s.All(), saved)
	assert.Equal(t, 2, mem.Saves())
}

func TestLoadFailSoft(t *testing.T) {
	mem := memstore.New(obs("2024-01-01", model.Dry))
	mem.LoadErr = errors.New("corrupt")
	s := New(mem, nil)

	err := s.Load()
	require.Error(t, err)
	assert.True(t, IsLoadWarning(err))
	assert.Equal(t, 0, s.Len())

	// the store is still usable
	_, err = s.Upsert(obs("2024-01-02", model.Dry))
	assert.NoError(t, err)
}

func TestLoadNormalizes(t *testing.T) {
	mem := memstore.New(
		obs("2024-01-03", model.Dry),
		obs("2024-01-01", model.Menstruation),
		model.Observation{Date: model.MustDate("2024-01-02"), Type: "bogus"},
		obs("2024-01-03", model.Sticky),
	)
	s := New(mem, nil)
	err := s.Load()

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Skipped)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "2024-01-01", all[0].Date.String())
	assert.Equal(t, model.Sticky, all[1].Type)
}

func TestLoadKeepsGoodRecordsAroundBadDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), jsonstore.DefaultFileName)
	slot := `[
		{"date":"2024-01-01","type":"menstruation","notes":"","isPeakDay":false,"timestamp":"2024-01-01T08:00:00Z"},
		{"date":"2024-01-02","type":"dry","notes":"","isPeakDay":false,"timestamp":"2024-01-02T08:00:00Z"},
		{"date":"2024-13-40","type":"dry","notes":"","isPeakDay":false,"timestamp":"2024-01-03T08:00:00Z"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(slot), 0o600))

	s := New(jsonstore.New(path), nil)
	err := s.Load()
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.NoError(t, le.Err)
	assert.Equal(t, 1, le.Skipped)
	assert.Equal(t, 2, s.Len())

	_, err = s.Upsert(obs("2024-01-05", model.Dry))
	require.NoError(t, err)

	again := New(jsonstore.New(path), nil)
	require.NoError(t, again.Load())
	assert.Equal(t, 3, again.Len())
}

func TestLoadUndecodableSlotIsPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, jsonstore.DefaultFileName)
	garbage := []byte(`{"date":"2024-01-01"`)
	require.NoError(t, os.WriteFile(path, garbage, 0o600))

	s := New(jsonstore.New(path), nil)
	err := s.Load()
	var le *LoadError
	require.ErrorAs(t, err, &le)
	require.Error(t, le.Err)
	assert.Zero(t, s.Len())

	_, err = s.Upsert(obs("2024-01-05", model.Dry))
	require.NoError(t, err)

	aside, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.Len(t, aside, 1)
	kept, err := os.ReadFile(aside[0])
	require.NoError(t, err)
	assert.Equal(t, garbage, kept)
}

func TestFindByDateMissing(t *testing.T) {
	s, _ := newLoaded(t, obs("2024-01-01", model.Dry), obs("2024-01-03", model.Dry))
	_, ok := s.FindByDate(model.MustDate("2024-01-02"))
	assert.False(t, ok)
	_, ok = s.FindByDate(model.MustDate("2025-01-01"))
	assert.False(t, ok)
}

func TestOpenBackend(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{BackendJSON, BackendSQLite, BackendMemory} {
		t.Run(kind, func(t *testing.T) {
			h, err := OpenBackend(kind, filepath.Join(dir, kind, "slot"), "")
			require.NoError(t, err)
			defer h.Close()

			s := New(h, nil)
			require.NoError(t, s.Load())
			_, err = s.Upsert(obs("2024-01-01", model.Menstruation))
			require.NoError(t, err)

			again := New(h, nil)
			require.NoError(t, again.Load())
			assert.Equal(t, 1, again.Len())
		})
	}

	_, err := OpenBackend("redis", "", "")
	assert.Error(t, err)
}
