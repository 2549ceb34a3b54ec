package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/crms/internal/cycle"
	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/model"
)

// quickTypes maps the dashboard's number keys to observation types.
var quickTypes = map[string]model.ObservationType{
	"1": model.Dry,
	"2": model.Sticky,
	"3": model.Creamy,
	"4": model.Clear,
	"5": model.Menstruation,
}

func (a App) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch key := km.String(); key {
	case "q", "esc":
		return a, tea.Quit
	case "a":
		a.entry = newEntryForm(a.today())
		if o, exists := a.store.FindByDate(a.today()); exists {
			a.entry.prefill(o)
		}
		a.entry.resize(a.width)
		return a.goTo(viewEntry), a.entry.focusCmd()
	case "c":
		a.cal.month = a.today().FirstOfMonth()
		return a.goTo(viewCalendar), nil
	case "l":
		return a.goTo(viewLearn), nil
	case "r":
		if err := a.store.Reload(); err != nil {
			a.setFlash("reload: "+err.Error(), true)
		} else {
			a.setFlash(fmt.Sprintf("reloaded %d observations", a.store.Len()), false)
		}
	case "1", "2", "3", "4", "5":
		today := a.today()
		if _, exists := a.store.FindByDate(today); exists {
			return a, nil
		}
		o := model.Observation{Date: today, Type: quickTypes[key], Timestamp: a.now().UTC()}
		next, err := a.save(o)
		if err != nil {
			a.setFlash(userError(err), true)
			return a, nil
		}
		return next, nil
	}
	return a, nil
}

func (a App) viewDashboard() string {
	obs := a.store.All()
	today := a.today()
	sum := cycle.Summarize(obs, today)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Creighton Model Tracker"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(today.Format("Monday, January 2, 2006")))
	b.WriteString("\n\n")

	if a.warning != "" {
		b.WriteString(errorStyle.Render(a.warning))
		b.WriteString("\n\n")
	}

	b.WriteString(labelStyle.Render("Cycle day "))
	b.WriteString(bigStyle.Render(fmt.Sprint(sum.CycleDay)))
	b.WriteString("   ")
	b.WriteString(labelStyle.Render("Phase "))
	b.WriteString(accentStyle.Render(sum.Phase.String()))
	b.WriteString("\n")
	if sum.Peak != nil {
		b.WriteString(labelStyle.Render("Last Peak "))
		b.WriteString(peakStyle.Render(" " + sum.Peak.Date.Format("Jan 2") + " "))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionTitle("Today"))
	b.WriteString("\n")
	if sum.Today != nil {
		b.WriteString(badge(sum.Today.Type))
		if sum.Today.IsPeakDay {
			b.WriteString(" " + peakStyle.Render(" PEAK "))
		}
		if sum.Today.Notes != "" {
			b.WriteString("\n" + mutedStyle.Render(sum.Today.Notes))
		}
	} else {
		b.WriteString(mutedStyle.Render("No observation yet. Quick add:"))
		b.WriteString("\n")
		for _, k := range []string{"1", "2", "3", "4", "5"} {
			b.WriteString(accentStyle.Render(k) + " " + badge(quickTypes[k]) + "  ")
		}
	}
	b.WriteString("\n\n")

	b.WriteString(tipStyle.Render("Tip: " + education.TipFor(today)))
	b.WriteString("\n\n")

	st := cycle.ComputeStats(obs)
	b.WriteString(sectionTitle("Statistics"))
	b.WriteString("\n")
	b.WriteString(statsLine(st))
	b.WriteString("\n\n")

	b.WriteString(helpLine("a", "add", "c", "calendar", "l", "learn", "r", "reload", "q", "quit"))
	return b.String()
}

func statsLine(st cycle.Stats) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d  %s %d  %s %d  %s %d",
		labelStyle.Render("total"), st.Total,
		labelStyle.Render("menses"), st.Menstruation,
		labelStyle.Render("clear"), st.Clear,
		labelStyle.Render("fertile"), st.Fertile,
		labelStyle.Render("peak"), st.Peak,
		labelStyle.Render("dry"), st.Dry,
	)
}
