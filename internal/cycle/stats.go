package cycle

import "github.com/idilsaglam/crms/internal/model"

// Stats are plain counts over the whole observation list.
type Stats struct {
	Total        int
	Menstruation int
	Clear        int // peak-type days
	Fertile      int // clear, creamy or sticky
	Peak         int
	Dry          int
}

func ComputeStats(obs []model.Observation) Stats {
	var s Stats
	s.Total = len(obs)
	for _, o := range obs {
		switch o.Type {
		case model.Menstruation:
			s.Menstruation++
		case model.Dry:
			s.Dry++
		case model.Clear:
			s.Clear++
		}
		switch o.Type {
		case model.Clear, model.Creamy, model.Sticky:
			s.Fertile++
		}
		if o.IsPeakDay {
			s.Peak++
		}
	}
	return s
}
