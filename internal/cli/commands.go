package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/crms/internal/cycle"
	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/remind"
	"github.com/idilsaglam/crms/internal/ui"
)

// ErrNotFound is returned by show when the day has no observation.
var ErrNotFound = errors.New("no observation")

func (s *session) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard",
		Args:  usageArgs(cobra.NoArgs),
		RunE:  s.runUI,
	}
}

func (s *session) addCmd() *cobra.Command {
	var (
		peak  bool
		notes string
	)
	cmd := &cobra.Command{
		Use:   "add <date|today> <type>",
		Short: "Record (or replace) the observation for a day",
		Long: `Record the observation for a day. An existing observation for the same
date is replaced.

Types: ` + typeList(),
		Example: `  crms add today clear --peak
  crms add 2024-03-01 menstruation --notes "day 1"`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.parseDay(args[0])
			if err != nil {
				return err
			}
			if d.After(s.today()) {
				return usagef("%s is in the future", d)
			}
			o, err := model.NewObservation(d.String(), args[1], notes, peak, s.opt.Now())
			if err != nil {
				return usageError{err}
			}
			st, err := s.open()
			if err != nil {
				return err
			}
			if _, err := st.Upsert(o); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			s.log.Info("observation recorded", zap.String("date", o.Date.String()), zap.String("type", o.Type.String()))

			msg := fmt.Sprintf("recorded %s for %s", o.Type.Label(), o.Date)
			if o.IsPeakDay {
				msg += " (Peak)"
			}
			ui.OK(msg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&peak, "peak", false, "mark as Peak Day (clear or creamy only)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	return cmd
}

func (s *session) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date|today>",
		Short: "Show the observation for one day",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := s.parseDay(args[0])
			if err != nil {
				return err
			}
			st, err := s.open()
			if err != nil {
				return err
			}
			o, ok := st.FindByDate(d)
			if !ok {
				return fmt.Errorf("%w for %s", ErrNotFound, d)
			}
			ui.Panel(observationLines(o))
			return nil
		},
	}
}

func (s *session) listCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List observations in date order",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, title, err := s.listed(month)
			if err != nil {
				return err
			}
			ui.Panel(listLines(title, obs))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func (s *session) listed(month string) ([]model.Observation, string, error) {
	st, err := s.open()
	if err != nil {
		return nil, "", err
	}
	if month == "" {
		return st.All(), "Observations", nil
	}
	m, err := s.parseMonth(month)
	if err != nil {
		return nil, "", err
	}
	grid := cycle.Month(m, st.All(), s.today())
	return grid.InMonth(), grid.Title(), nil
}

func (s *session) statusCmd() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show cycle day, phase and today's observation",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := s.today()
			if at != "" {
				d, err := s.parseDay(at)
				if err != nil {
					return err
				}
				ref = d
			}
			st, err := s.open()
			if err != nil {
				return err
			}
			ui.Panel(statusLines(cycle.Summarize(st.All(), ref)))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "reference date (YYYY-MM-DD, default today)")
	return cmd
}

func (s *session) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Aggregate counts over all observations",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := s.open()
			if err != nil {
				return err
			}
			ui.Panel(statsLines(cycle.ComputeStats(st.All())))
			return nil
		},
	}
}

func (s *session) calendarCmd() *cobra.Command {
	var month string
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Print a month grid",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := s.parseMonth(month)
			if err != nil {
				return err
			}
			st, err := s.open()
			if err != nil {
				return err
			}
			ui.Panel(calendarLines(cycle.Month(m, st.All(), s.today())))
			return nil
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM, default current)")
	return cmd
}

func (s *session) learnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learn [topic]",
		Short: "Read about the Creighton Model",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			style := markdownStyle(s.cfg.UI.Theme)
			md := education.IndexMarkdown()
			if len(args) == 1 {
				t, ok := education.FindTopic(args[0])
				if !ok {
					return usagef("unknown topic %q (want one of: %s)", args[0], topicIDs())
				}
				md = t.Markdown()
			}
			out, err := education.Render(md, 80, style)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func (s *session) remindCmd() *cobra.Command {
	var (
		schedule string
		once     bool
	)
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Remind to record today's observation on a cron schedule",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := s.open()
			if err != nil {
				return err
			}
			check := func() {
				if err := st.Reload(); err != nil {
					s.log.Warn("reload before reminder", zap.Error(err))
				}
				if r, due := remind.Check(st.All(), s.today()); due {
					ui.Warn(r.Message())
					return
				}
				ui.OK("today's observation is recorded")
			}
			if once {
				check()
				return nil
			}

			if schedule == "" {
				schedule = s.cfg.Remind.Schedule
			}
			sched, err := remind.New(schedule, check, s.log)
			if err != nil {
				return usageError{err}
			}
			sched.Start()
			defer sched.Stop()
			ui.OK(fmt.Sprintf("reminders on %q, next at %s (ctrl+c to stop)",
				schedule, sched.Next(s.opt.Now()).Format("Mon Jan 2 15:04")))
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron spec (default remind.schedule)")
	cmd.Flags().BoolVar(&once, "once", false, "check once and exit")
	return cmd
}

func typeList() string {
	var names []string
	for _, t := range model.AllTypes() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

func topicIDs() string {
	var ids []string
	for _, t := range education.Topics() {
		ids = append(ids, t.ID)
	}
	return strings.Join(ids, ", ")
}
