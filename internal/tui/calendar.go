package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/crms/internal/cycle"
	"github.com/idilsaglam/crms/internal/model"
)

type calendarState struct {
	month model.Date // first of the displayed month
}

const cellWidth = 5

func (a App) updateCalendar(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch km.String() {
	case "esc", "q":
		return a.goTo(viewDashboard), nil
	case "left", "h":
		a.cal.month = a.cal.month.AddMonths(-1)
	case "right", "l":
		a.cal.month = a.cal.month.AddMonths(1)
	case "t":
		a.cal.month = a.today().FirstOfMonth()
	case "a":
		a.entry = newEntryForm(a.today())
		a.entry.resize(a.width)
		return a.goTo(viewEntry), a.entry.focusCmd()
	}
	return a, nil
}

func (a App) viewCalendar() string {
	obs := a.store.All()
	grid := cycle.Month(a.cal.month, obs, a.today())

	var b strings.Builder
	b.WriteString(titleStyle.Render(grid.Title()))
	b.WriteString("\n\n")

	for _, wd := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		b.WriteString(labelStyle.Render(padCell(wd)))
	}
	b.WriteString("\n")
	for _, week := range grid.Weeks {
		for _, c := range week {
			b.WriteString(renderCell(c))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitle("Legend"))
	b.WriteString("\n")
	var legend []string
	for _, t := range model.AllTypes() {
		legend = append(legend, badge(t))
	}
	legend = append(legend, peakStyle.Render(" P ")+" Peak", todayStyle.Render("dd")+" today")
	b.WriteString(strings.Join(legend, "  "))
	b.WriteString("\n\n")

	b.WriteString(sectionTitle("This month"))
	b.WriteString("\n")
	b.WriteString(statsLine(cycle.ComputeStats(grid.InMonth())))
	b.WriteString("\n\n")
	b.WriteString(helpLine("←/→", "month", "t", "today", "a", "add", "esc", "back"))
	return b.String()
}

func padCell(s string) string {
	return lipgloss.NewStyle().Width(cellWidth).Render(s)
}

func renderCell(c cycle.Cell) string {
	day := fmt.Sprintf("%2d", c.Date.Day())
	if !c.InMonth {
		return padCell(outsideStyle.Render(day))
	}
	if c.IsToday {
		day = todayStyle.Render(day)
	}
	if c.Observation == nil {
		return padCell(day)
	}
	sym := typeStyle(c.Observation.Type).Render(c.Observation.Type.Symbol())
	if c.Observation.IsPeakDay {
		sym = peakStyle.Render("P")
	}
	return padCell(day + sym)
}
