package cycle

import (
	"time"

	"github.com/idilsaglam/crms/internal/model"
)

// Cell is one day in a month grid.
type Cell struct {
	Date        model.Date
	InMonth     bool
	IsToday     bool
	Observation *model.Observation
}

// MonthGrid is a calendar month laid out in Sunday-first weeks, padded
// with days of the neighbouring months.
type MonthGrid struct {
	Month model.Date // first of the month
	Weeks [][7]Cell
}

// Month builds the grid for the month containing month.
func Month(month model.Date, obs []model.Observation, today model.Date) MonthGrid {
	first := month.FirstOfMonth()
	last := first.AddMonths(1).AddDays(-1)
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))

	byDate := make(map[string]model.Observation, len(obs))
	for _, o := range obs {
		byDate[o.Date.String()] = o
	}

	g := MonthGrid{Month: first}
	for d := start; !d.After(end); d = d.AddDays(7) {
		var week [7]Cell
		for i := 0; i < 7; i++ {
			day := d.AddDays(i)
			c := Cell{
				Date:    day,
				InMonth: day.Month() == first.Month() && day.Year() == first.Year(),
				IsToday: day.Equal(today),
			}
			if o, ok := byDate[day.String()]; ok {
				c.Observation = &o
			}
			week[i] = c
		}
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

func (g MonthGrid) Prev() model.Date { return g.Month.AddMonths(-1) }
func (g MonthGrid) Next() model.Date { return g.Month.AddMonths(1) }

// Title is e.g. "January 2024".
func (g MonthGrid) Title() string { return g.Month.Format("January 2006") }

// InMonth returns the observations that fall inside the grid's month.
func (g MonthGrid) InMonth() []model.Observation {
	var out []model.Observation
	for _, w := range g.Weeks {
		for _, c := range w {
			if c.InMonth && c.Observation != nil {
				out = append(out, *c.Observation)
			}
		}
	}
	return out
}
