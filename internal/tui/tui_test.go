package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/store"
	"github.com/idilsaglam/crms/internal/store/memstore"
)

var fixedNow = time.Date(2024, time.March, 14, 9, 30, 0, 0, time.UTC)

func newApp(t *testing.T, seed ...model.Observation) (App, *store.Store, *memstore.Store) {
	t.Helper()
	mem := memstore.New(seed...)
	s := store.New(mem, nil)
	require.NoError(t, s.Load())
	a := New(s, Options{
		Now:           func() time.Time { return fixedNow },
		MarkdownStyle: education.StyleASCII,
	})
	return a, s, mem
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, m := range msgs {
		next, _ := a.Update(m)
		var ok bool
		a, ok = next.(App)
		require.True(t, ok)
	}
	return a
}

func TestQuickAddRecordsToday(t *testing.T) {
	a, s, mem := newApp(t)

	a = send(t, a, runes("4"))

	got, ok := s.FindByDate(model.MustDate("2024-03-14"))
	require.True(t, ok)
	assert.Equal(t, model.Clear, got.Type)
	assert.Empty(t, got.Notes)
	assert.False(t, got.IsPeakDay)
	assert.Equal(t, 1, mem.Saves())
	assert.Equal(t, viewDashboard, a.view)
	assert.Contains(t, a.flash, "saved")
}

func TestQuickAddIgnoredWhenTodayRecorded(t *testing.T) {
	a, s, mem := newApp(t, model.Observation{Date: model.MustDate("2024-03-14"), Type: model.Dry})

	send(t, a, runes("5"))

	got, _ := s.FindByDate(model.MustDate("2024-03-14"))
	assert.Equal(t, model.Dry, got.Type)
	assert.Zero(t, mem.Saves())
}

func TestEntryRequiresType(t *testing.T) {
	a, s, _ := newApp(t)

	a = send(t, a, runes("a"), keySave)

	assert.Equal(t, viewEntry, a.view)
	assert.Equal(t, "select an observation type", a.entry.err)
	assert.Zero(t, s.Len())
}

func TestEntrySavesPeakObservation(t *testing.T) {
	a, s, _ := newApp(t)

	a = send(t, a,
		runes("a"),
		keyTab,                              // type picker
		keyDown, keyDown, keyDown, keySpace, // clear
		keyTab, keySpace, // peak checkbox
		keyTab, runes("stretchy"),
		keySave,
	)

	assert.Equal(t, viewDashboard, a.view)
	got, ok := s.FindByDate(model.MustDate("2024-03-14"))
	require.True(t, ok)
	assert.Equal(t, model.Clear, got.Type)
	assert.True(t, got.IsPeakDay)
	assert.Equal(t, "stretchy", got.Notes)
}

func TestEntrySkipsPeakForIneligibleType(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, runes("a"), keyTab, keySpace, keyTab) // dry, then next field
	assert.False(t, a.entry.peakVisible())
	assert.Equal(t, fieldNotes, a.entry.focus)
	assert.NotContains(t, a.viewEntry(), "Peak Day")
}

func TestEntryRejectsFutureDate(t *testing.T) {
	a, s, _ := newApp(t)

	a = send(t, a, runes("a"))
	a.entry.date.SetValue("2024-03-15")
	a.entry.typ = model.Dry
	a = send(t, a, keySave)

	assert.Equal(t, viewEntry, a.view)
	assert.Contains(t, a.entry.err, "future")
	assert.Zero(t, s.Len())
}

func TestEntryRejectsMalformedDate(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, runes("a"))
	a.entry.date.SetValue("14/03/2024")
	a.entry.typ = model.Dry
	a = send(t, a, keySave)

	assert.Equal(t, "date must be YYYY-MM-DD", a.entry.err)
}

func TestEntryEditsExistingObservation(t *testing.T) {
	a, _, _ := newApp(t, model.Observation{Date: model.MustDate("2024-03-14"), Type: model.Creamy, Notes: "am"})

	a = send(t, a, runes("a"))

	assert.Equal(t, model.Creamy, a.entry.typ)
	assert.Equal(t, "am", a.entry.notes.Value())
	assert.Equal(t, 2, a.entry.cursor)
}

func TestEntryEscCancels(t *testing.T) {
	a, s, _ := newApp(t)

	a = send(t, a, runes("a"), keyTab, keySpace, keyEsc)

	assert.Equal(t, viewDashboard, a.view)
	assert.Zero(t, s.Len())
}

func TestSaveFailureKeepsForm(t *testing.T) {
	a, s, mem := newApp(t)
	mem.SaveErr = assert.AnError

	a = send(t, a, runes("a"), keyTab, keySpace, keySave)

	assert.Equal(t, viewEntry, a.view)
	assert.Contains(t, a.entry.err, "save failed")
	assert.Zero(t, s.Len())
}

func TestCalendarNavigation(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, runes("c"))
	require.Equal(t, viewCalendar, a.view)
	assert.Equal(t, "2024-03-01", a.cal.month.String())

	a = send(t, a, keyLeft, keyLeft)
	assert.Equal(t, "2024-01-01", a.cal.month.String())
	assert.Contains(t, a.viewCalendar(), "January 2024")

	a = send(t, a, keyRight, runes("l"), runes("l"))
	assert.Equal(t, "2024-04-01", a.cal.month.String())

	a = send(t, a, runes("t"))
	assert.Equal(t, "2024-03-01", a.cal.month.String())

	a = send(t, a, keyEsc)
	assert.Equal(t, viewDashboard, a.view)
}

func TestCalendarMarksPeak(t *testing.T) {
	a, _, _ := newApp(t, model.Observation{Date: model.MustDate("2024-03-10"), Type: model.Clear, IsPeakDay: true})

	a = send(t, a, runes("c"))
	out := a.viewCalendar()
	assert.Contains(t, out, "March 2024")
	assert.Contains(t, out, "Peak")
}

func TestLearnOpensTopic(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, runes("l"))
	require.Equal(t, viewLearn, a.view)

	a = send(t, a, keyEnter)
	assert.True(t, a.learn.reading)
	assert.Equal(t, education.Topics()[0].ID, a.learn.current)
	assert.NotEmpty(t, a.viewLearn())

	a = send(t, a, keyEsc)
	assert.False(t, a.learn.reading)
	assert.Equal(t, viewLearn, a.view)

	a = send(t, a, keyEsc)
	assert.Equal(t, viewDashboard, a.view)
}

func TestDashboardShowsPhase(t *testing.T) {
	a, _, _ := newApp(t,
		model.Observation{Date: model.MustDate("2024-03-01"), Type: model.Menstruation},
		model.Observation{Date: model.MustDate("2024-03-10"), Type: model.Clear, IsPeakDay: true},
	)

	out := a.View()
	assert.Contains(t, out, "Cycle day")
	assert.Contains(t, out, "14")
	assert.Contains(t, out, "Post-Peak (Infertile)")
	assert.Contains(t, out, "No observation yet")
}

func TestReloadPicksUpOutsideChanges(t *testing.T) {
	a, _, mem := newApp(t)

	other := store.New(mem, nil)
	require.NoError(t, other.Load())
	_, err := other.Upsert(model.Observation{Date: model.MustDate("2024-03-12"), Type: model.Sticky})
	require.NoError(t, err)

	a = send(t, a, reloadMsg{})
	assert.Equal(t, 1, a.store.Len())
	assert.Contains(t, a.flash, "reloaded")
}

func TestWindowResize(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, a.width)
	assert.Equal(t, 40, a.height)
}

func TestQuitKeys(t *testing.T) {
	a, _, _ := newApp(t)

	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReloadOfOwnSaveIsQuiet(t *testing.T) {
	a, _, _ := newApp(t)

	a = send(t, a, runes("2"))
	require.Contains(t, a.flash, "saved")

	a = send(t, a, reloadMsg{})
	assert.Contains(t, a.flash, "saved")
}
