package cli

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/crms/internal/cycle"
	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/ui"
)

// -------------- rendering helpers --------------

func peakMark(o model.Observation) string {
	if !o.IsPeakDay {
		return ""
	}
	th := ui.Current()
	return " " + ui.C(th.Peak, th.SymPeak+" Peak")
}

func observationLines(o model.Observation) []string {
	th := ui.Current()
	lines := []string{
		ui.C(th.Title, o.Date.Format("Monday, January 2, 2006")),
		ui.TypeBadge(o.Type) + peakMark(o),
		ui.C(th.Muted, o.Type.Description()),
	}
	if o.Notes != "" {
		lines = append(lines, "", "Notes: "+o.Notes)
	}
	return lines
}

func listLines(title string, obs []model.Observation) []string {
	th := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", ui.C(th.Title, title), ui.C(th.Accent, "Total"), len(obs)),
		"",
	}
	if len(obs) == 0 {
		return append(lines, ui.C(th.Muted, "no observations"),
			"", ui.C(th.Muted, "Tip: record with `crms add today <type>`"))
	}
	for _, o := range obs {
		line := fmt.Sprintf("%s %s%s", ui.C("\033[2m", o.Date.Format("2006-01-02 Mon")), ui.TypeBadge(o.Type), peakMark(o))
		if o.Notes != "" {
			line += "  " + ui.C(th.Muted, ui.Truncate(o.Notes, 40))
		}
		lines = append(lines, line)
	}
	return lines
}

func statusLines(sum cycle.Summary) []string {
	th := ui.Current()
	lines := []string{
		ui.C(th.Title, sum.Date.Format("Monday, January 2, 2006")),
		"",
		fmt.Sprintf("%s %d", ui.C(th.Muted, "Cycle day"), sum.CycleDay),
		fmt.Sprintf("%s %s", ui.C(th.Muted, "Phase    "), ui.C(th.Accent, sum.Phase.String())),
	}
	if sum.Peak != nil {
		lines = append(lines, fmt.Sprintf("%s %s", ui.C(th.Muted, "Last Peak"), ui.C(th.Peak, sum.Peak.Date.String())))
	}
	lines = append(lines, "")
	if sum.Today != nil {
		lines = append(lines, "Today: "+ui.TypeBadge(sum.Today.Type)+peakMark(*sum.Today))
		if sum.Today.Notes != "" {
			lines = append(lines, ui.C(th.Muted, sum.Today.Notes))
		}
	} else {
		lines = append(lines, ui.C(th.Warn, "No observation recorded today"))
	}
	lines = append(lines, "", ui.C(th.Muted, "Tip: "+education.TipFor(sum.Date)))
	return lines
}

func statsLines(st cycle.Stats) []string {
	th := ui.Current()
	row := func(label string, n int) string {
		return fmt.Sprintf("%-13s %4d  %s", label, n, ui.C(th.Muted, ui.ProgressBar(n, st.Total, 24)))
	}
	return []string{
		fmt.Sprintf("%s  %s %d", ui.C(th.Title, "Statistics"), ui.C(th.Accent, "Total"), st.Total),
		"",
		row("Menstruation", st.Menstruation),
		row("Fertile", st.Fertile),
		row("Clear", st.Clear),
		row("Peak days", st.Peak),
		row("Dry", st.Dry),
	}
}

func calendarLines(g cycle.MonthGrid) []string {
	th := ui.Current()
	lines := []string{ui.C(th.Title, g.Title()), "", " Su  Mo  Tu  We  Th  Fr  Sa"}
	for _, week := range g.Weeks {
		var b strings.Builder
		for _, c := range week {
			b.WriteString(calendarCell(c, th))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}

	var legend []string
	for _, t := range model.AllTypes() {
		legend = append(legend, ui.TypeBadge(t))
	}
	lines = append(lines, "", strings.Join(legend, "  "),
		ui.C(th.Peak, th.SymPeak)+" Peak  "+ui.C(th.Accent, "dd")+" today")

	st := cycle.ComputeStats(g.InMonth())
	lines = append(lines, "", fmt.Sprintf("%s %d  %s %d  %s %d",
		ui.C(th.Muted, "recorded"), st.Total,
		ui.C(th.Muted, "fertile"), st.Fertile,
		ui.C(th.Muted, "peak"), st.Peak))
	return lines
}

// calendarCell is always four visible columns: day, marker, gap.
func calendarCell(c cycle.Cell, th ui.Theme) string {
	if !c.InMonth {
		return "    "
	}
	day := fmt.Sprintf("%2d", c.Date.Day())
	if c.IsToday {
		day = ui.C(th.Accent, day)
	}
	mark := " "
	if o := c.Observation; o != nil {
		mark = ui.C(th.Color(o.Type), th.Symbol(o.Type))
		if o.IsPeakDay {
			mark = ui.C(th.Peak, th.SymPeak)
		}
	}
	return " " + day + mark
}
