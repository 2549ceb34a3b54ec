// Package cycle derives display values from a snapshot of observations
// and a reference date: cycle day, phase, Peak Day, and counts. Nothing is
// cached; every call recomputes from the observations it is given.
package cycle

import "github.com/idilsaglam/crms/internal/model"

// Phase is a coarse label for where the reference date sits in the cycle.
type Phase string

const (
	MenstrualPostMenstrual Phase = "Menstrual/Post-Menstrual"
	PrePeak                Phase = "Pre-Peak (Variable)"
	PostPeak               Phase = "Post-Peak (Infertile)"
)

func (p Phase) String() string { return string(p) }

const (
	// Cycle days up to this one are labelled menstrual/post-menstrual.
	menstrualDays = 7
	// Days after Peak (inclusive) that read as post-Peak.
	postPeakDays = 3
)

// CurrentCycleDay is 1 + days since the latest menstruation on or before
// ref, never less than 1. With no menstruation recorded it is 1.
func CurrentCycleDay(obs []model.Observation, ref model.Date) int {
	var last *model.Observation
	for i := range obs {
		o := &obs[i]
		if o.Type != model.Menstruation || o.Date.After(ref) {
			continue
		}
		if last == nil || o.Date.After(last.Date) {
			last = o
		}
	}
	if last == nil {
		return 1
	}
	return max(1, model.DaysBetween(ref, last.Date)+1)
}

// PeakFor picks the Peak Day that governs ref: the most recent
// Peak-flagged observation on or before ref.
func PeakFor(obs []model.Observation, ref model.Date) (model.Observation, bool) {
	var peak model.Observation
	found := false
	for _, o := range obs {
		if !o.IsPeakDay || o.Date.After(ref) {
			continue
		}
		if !found || o.Date.After(peak.Date) {
			peak, found = o, true
		}
	}
	return peak, found
}

// CurrentPhase labels ref from the cycle day and Peak timing.
func CurrentPhase(obs []model.Observation, ref model.Date) Phase {
	if CurrentCycleDay(obs, ref) <= menstrualDays {
		return MenstrualPostMenstrual
	}
	peak, ok := PeakFor(obs, ref)
	if !ok {
		return PrePeak
	}
	since := model.DaysBetween(ref, peak.Date)
	if since >= 0 && since <= postPeakDays {
		return PostPeak
	}
	return PrePeak
}

// ObservationFor is the exact-date lookup used for "today's observation".
func ObservationFor(obs []model.Observation, d model.Date) (model.Observation, bool) {
	for _, o := range obs {
		if o.Date.Equal(d) {
			return o, true
		}
	}
	return model.Observation{}, false
}

// Summary bundles what the dashboard shows for one day.
type Summary struct {
	Date     model.Date
	CycleDay int
	Phase    Phase
	Today    *model.Observation
	Peak     *model.Observation
}

func Summarize(obs []model.Observation, ref model.Date) Summary {
	s := Summary{
		Date:     ref,
		CycleDay: CurrentCycleDay(obs, ref),
		Phase:    CurrentPhase(obs, ref),
	}
	if o, ok := ObservationFor(obs, ref); ok {
		s.Today = &o
	}
	if p, ok := PeakFor(obs, ref); ok {
		s.Peak = &p
	}
	return s
}
