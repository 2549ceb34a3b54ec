package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/model"
)

type entryField int

const (
	fieldDate entryField = iota
	fieldType
	fieldPeak
	fieldNotes
	fieldCount
)

// entryForm is the state of the add/edit screen.
type entryForm struct {
	date   textinput.Model
	notes  textarea.Model
	focus  entryField
	cursor int // index into model.AllTypes()
	typ    model.ObservationType
	peak   bool
	err    string
}

func newEntryForm(today model.Date) entryForm {
	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = 10
	di.Width = 12
	di.SetValue(today.String())
	di.Focus()

	ta := textarea.New()
	ta.Placeholder = "Optional notes"
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(50)
	ta.Blur()

	return entryForm{date: di, notes: ta}
}

// prefill loads an existing observation into the form for editing.
func (f *entryForm) prefill(o model.Observation) {
	f.date.SetValue(o.Date.String())
	f.typ = o.Type
	f.peak = o.IsPeakDay
	f.notes.SetValue(o.Notes)
	for i, t := range model.AllTypes() {
		if t == o.Type {
			f.cursor = i
		}
	}
}

func (f *entryForm) resize(width int) {
	if w := width - 8; w > 20 {
		f.notes.SetWidth(min(w, 70))
	}
}

func (f entryForm) focusCmd() tea.Cmd { return textinput.Blink }

// peakVisible reports whether the Peak checkbox applies to the chosen type.
func (f entryForm) peakVisible() bool { return f.typ.PeakEligible() }

func (f *entryForm) setFocus(to entryField) tea.Cmd {
	f.date.Blur()
	f.notes.Blur()
	f.focus = to
	switch to {
	case fieldDate:
		return f.date.Focus()
	case fieldNotes:
		return f.notes.Focus()
	}
	return nil
}

func (f *entryForm) step(dir int) tea.Cmd {
	next := f.focus
	for {
		next = (next + entryField(dir) + fieldCount) % fieldCount
		if next != fieldPeak || f.peakVisible() {
			break
		}
	}
	return f.setFocus(next)
}

func (a App) updateEntry(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &a.entry
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		switch f.focus {
		case fieldDate:
			f.date, cmd = f.date.Update(msg)
		case fieldNotes:
			f.notes, cmd = f.notes.Update(msg)
		}
		return a, cmd
	}

	switch km.String() {
	case "esc":
		return a.goTo(viewDashboard), nil
	case "ctrl+s":
		return a.submitEntry()
	case "tab":
		return a, f.step(1)
	case "shift+tab":
		return a, f.step(-1)
	}

	types := model.AllTypes()
	var cmd tea.Cmd
	switch f.focus {
	case fieldDate:
		if km.String() == "enter" {
			return a, f.step(1)
		}
		f.date, cmd = f.date.Update(msg)
	case fieldType:
		switch km.String() {
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
			}
		case "down", "j":
			if f.cursor < len(types)-1 {
				f.cursor++
			}
		case " ", "enter":
			f.typ = types[f.cursor]
			if !f.peakVisible() {
				f.peak = false
			}
			f.err = ""
		}
	case fieldPeak:
		if s := km.String(); s == " " || s == "enter" {
			f.peak = !f.peak
		}
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return a, cmd
}

func (a App) submitEntry() (tea.Model, tea.Cmd) {
	f := &a.entry
	if f.typ == "" {
		f.err = "select an observation type"
		return a, nil
	}
	d, err := model.ParseDate(strings.TrimSpace(f.date.Value()))
	if err != nil {
		f.err = userError(err)
		return a, nil
	}
	if d.After(a.today()) {
		f.err = "date cannot be in the future"
		return a, nil
	}
	o, err := model.NewObservation(d.String(), string(f.typ), f.notes.Value(), f.peak && f.peakVisible(), a.now())
	if err != nil {
		f.err = userError(err)
		return a, nil
	}
	next, err := a.save(o)
	if err != nil {
		a.entry.err = "save failed: " + err.Error()
		return a, nil
	}
	return next, nil
}

func (a App) viewEntry() string {
	f := a.entry
	var b strings.Builder
	b.WriteString(titleStyle.Render("Record observation"))
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Date", f.focus == fieldDate))
	b.WriteString("\n")
	b.WriteString(f.date.View())
	b.WriteString("\n\n")

	b.WriteString(fieldLabel("Type", f.focus == fieldType))
	b.WriteString("\n")
	for i, t := range model.AllTypes() {
		mark := radioOff
		if t == f.typ {
			mark = radioOn
		}
		line := mark + " " + badge(t) + "  " + mutedStyle.Render(t.Description())
		if f.focus == fieldType && i == f.cursor {
			line = selectedStyle.Render(">") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if f.typ != "" {
		b.WriteString("\n")
		b.WriteString(tipStyle.Render(sectionTitle("About this observation") + "\n" + education.ObservationInfo(f.typ)))
		b.WriteString("\n")
	}

	if f.peakVisible() {
		box := boxUnchecked
		if f.peak {
			box = boxChecked
		}
		b.WriteString("\n")
		b.WriteString(fieldLabel("Peak", f.focus == fieldPeak))
		b.WriteString("\n")
		b.WriteString(box + " This is my Peak Day (last day of clear, stretchy or lubricative mucus)")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fieldLabel("Notes", f.focus == fieldNotes))
	b.WriteString("\n")
	b.WriteString(f.notes.View())
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString("\n" + errorStyle.Render(f.err) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpLine("tab", "next field", "↑/↓", "choose", "space", "select", "ctrl+s", "save", "esc", "cancel"))
	return b.String()
}

func fieldLabel(name string, focused bool) string {
	if focused {
		return accentStyle.Bold(true).Render("› " + name)
	}
	return labelStyle.Render("  " + name)
}
