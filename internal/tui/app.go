// Package tui is the interactive terminal front end: dashboard, entry
// form, calendar and education hub over one observation store.
package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/store"
)

type view int

const (
	viewDashboard view = iota
	viewEntry
	viewCalendar
	viewLearn
)

// Watcher reports outside changes to the data slot.
type Watcher interface {
	Start(ctx context.Context, onChange func()) error
	Stop()
}

// Options configure a session. Zero values pick sensible defaults.
type Options struct {
	Now           func() time.Time
	MarkdownStyle string // glamour style for the education hub
	Logger        *zap.Logger
	// LoadWarning is shown on the dashboard when the store started
	// from a damaged slot.
	LoadWarning string
}

// reloadMsg asks the app to re-read the store after an outside change.
type reloadMsg struct{}

// App is the root Bubble Tea model. All UI state lives here and is passed
// along by value; nothing is global.
type App struct {
	store *store.Store
	now   func() time.Time
	log   *zap.Logger
	style string

	view          view
	width, height int

	flash    string
	flashErr bool
	warning  string

	entry entryForm
	cal   calendarState
	learn learnState
}

func New(s *store.Store, opts Options) App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	a := App{
		store:   s,
		now:     opts.Now,
		log:     opts.Logger,
		style:   opts.MarkdownStyle,
		width:   80,
		height:  24,
		warning: opts.LoadWarning,
	}
	a.entry = newEntryForm(a.today())
	a.cal = calendarState{month: a.today().FirstOfMonth()}
	a.learn = newLearnState(a.width, a.height)
	return a
}

// Run starts the full-screen program and blocks until the user quits.
func Run(s *store.Store, opts Options, w Watcher) error {
	p := tea.NewProgram(New(s, opts), tea.WithAltScreen())

	if w != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := w.Start(ctx, func() { p.Send(reloadMsg{}) }); err != nil {
			opts.logger().Warn("file watch unavailable", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	_, err := p.Run()
	return err
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (a App) today() model.Date { return model.DateOf(a.now()) }

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.entry.resize(a.width)
		a.learn.resize(a.width, a.height)
		return a, nil

	case reloadMsg:
		// Our own saves trigger the watcher too; only announce real changes.
		before := a.store.All()
		if err := a.store.Reload(); err != nil {
			a.setFlash("reload: "+err.Error(), true)
		} else if !slices.EqualFunc(before, a.store.All(), sameObservation) {
			a.setFlash("data changed on disk, reloaded", false)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}

	switch a.view {
	case viewEntry:
		return a.updateEntry(msg)
	case viewCalendar:
		return a.updateCalendar(msg)
	case viewLearn:
		return a.updateLearn(msg)
	default:
		return a.updateDashboard(msg)
	}
}

func (a App) View() string {
	var content string
	switch a.view {
	case viewEntry:
		content = a.viewEntry()
	case viewCalendar:
		content = a.viewCalendar()
	case viewLearn:
		content = a.viewLearn()
	default:
		content = a.viewDashboard()
	}
	if a.flash != "" {
		style := successStyle
		if a.flashErr {
			style = errorStyle
		}
		content += "\n\n" + style.Render(a.flash)
	}
	return panelString(content)
}

func (a *App) setFlash(msg string, isErr bool) {
	a.flash, a.flashErr = msg, isErr
}

func (a App) goTo(v view) App {
	a.view = v
	a.flash = ""
	return a
}

// save validates and upserts; on success it returns to the dashboard.
func (a App) save(o model.Observation) (App, error) {
	if _, err := a.store.Upsert(o); err != nil {
		a.log.Warn("save observation", zap.String("date", o.Date.String()), zap.Error(err))
		return a, err
	}
	a = a.goTo(viewDashboard)
	a.setFlash(fmt.Sprintf("saved %s for %s", o.Type.Label(), o.Date.Format("Mon Jan 2")), false)
	return a, nil
}

func sameObservation(x, y model.Observation) bool {
	return x.Date.Equal(y.Date) && x.Type == y.Type && x.Notes == y.Notes &&
		x.IsPeakDay == y.IsPeakDay && x.Timestamp.Equal(y.Timestamp)
}

func helpLine(pairs ...string) string {
	var parts []string
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+" "+pairs[i+1])
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}

func userError(err error) string {
	var de *model.InvalidDateError
	switch {
	case errors.As(err, &de):
		return "date must be YYYY-MM-DD"
	case errors.Is(err, model.ErrInvalidObservationType):
		return "select an observation type"
	default:
		return err.Error()
	}
}
