// Package cli is the crms command tree. Run is the only entry point.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/crms/internal/config"
	"github.com/idilsaglam/crms/internal/education"
	"github.com/idilsaglam/crms/internal/logging"
	"github.com/idilsaglam/crms/internal/model"
	"github.com/idilsaglam/crms/internal/store"
	"github.com/idilsaglam/crms/internal/tui"
	"github.com/idilsaglam/crms/internal/ui"
	"github.com/idilsaglam/crms/internal/watch"
)

// Options tune where output goes and what "now" is. Zero values use the
// process's stdio and the wall clock.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time
	// Context bounds long-running commands (ui, remind). Defaults to one
	// cancelled on interrupt.
	Context context.Context
	// RunTUI replaces the interactive session, mostly for tests.
	RunTUI func(*store.Store, tui.Options, tui.Watcher) error
}

// usageError marks bad invocations: exit code 2 instead of 1.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// session is the per-invocation state shared by every subcommand.
type session struct {
	opt Options

	cfgPath string
	data    string
	backend string
	theme   string
	verbose bool

	cfg    *config.Config
	log    *zap.Logger
	handle store.Handle
	store  *store.Store
	// warning is set when the slot loaded with problems.
	warning string
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.RunTUI == nil {
		opt.RunTUI = tui.Run
	}
	ctx := opt.Context
	if ctx == nil {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
	}
	ui.SetOutput(opt.Stdout, opt.Stderr)

	s := &session{opt: opt, log: zap.NewNop()}
	defer s.close()

	root := s.rootCmd()
	root.SetArgs(args)
	root.SetOut(opt.Stdout)
	root.SetErr(opt.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(opt.Stderr, ui.C(ui.Current().Muted, "Hint: run `crms --help` for usage"))
		return 2
	}
	return 1
}

func (s *session) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crms",
		Short: "crms - Creighton Model observation tracker",
		Long: `crms records one daily Creighton Model observation and infers the
current cycle day and phase from them.

Run without arguments to open the interactive dashboard.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: s.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = s.log.Sync() },
		RunE:              s.runUI,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	root.PersistentFlags().StringVar(&s.cfgPath, "config", "", "config file (default ~/.crms/config.yaml)")
	root.PersistentFlags().StringVar(&s.data, "data", "", "data slot path (overrides data.path)")
	root.PersistentFlags().StringVar(&s.backend, "backend", "", "storage backend: json, sqlite or memory")
	root.PersistentFlags().StringVar(&s.theme, "theme", "", "color theme: classic, neon or mono")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		s.uiCmd(),
		s.addCmd(),
		s.showCmd(),
		s.listCmd(),
		s.statusCmd(),
		s.statsCmd(),
		s.calendarCmd(),
		s.learnCmd(),
		s.remindCmd(),
	)
	return root
}

// usageArgs turns cobra's positional-arg errors into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// setup resolves config (flags > env > file > defaults), theme and logger.
func (s *session) setup(cmd *cobra.Command, _ []string) error {
	path := s.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(config.ExpandHome(path))
	if err != nil {
		return err
	}
	if s.data != "" {
		cfg.Data.Path = s.data
	}
	if s.backend != "" {
		cfg.Data.Backend = s.backend
	}
	if s.theme != "" {
		cfg.UI.Theme = s.theme
	}
	cfg.UI.Theme = strings.ToLower(strings.TrimSpace(cfg.UI.Theme))
	cfg.UI.Color = strings.ToLower(strings.TrimSpace(cfg.UI.Color))
	if err := cfg.Validate(); err != nil {
		return usagef("config: %v", err)
	}
	s.cfg = cfg

	ui.SetColorMode(cfg.UI.Color)
	ui.SetTheme(cfg.UI.Theme)

	interactive := cmd.Name() == "crms" || cmd.Name() == "ui"
	log, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.LogFile(),
		Verbose: s.verbose,
		Quiet:   interactive || !s.verbose,
	})
	if err != nil {
		return err
	}
	s.log = log
	return nil
}

// open loads the configured slot once per invocation. A damaged slot is
// reported but not fatal.
func (s *session) open() (*store.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	h, err := store.OpenBackend(s.cfg.Data.Backend, s.cfg.DataPath(), s.cfg.Data.Slot)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", s.cfg.Data.Backend, err)
	}
	st := store.New(h, s.log)
	if err := st.Load(); err != nil {
		if !store.IsLoadWarning(err) {
			_ = h.Close()
			return nil, err
		}
		s.warning = err.Error()
		ui.Warn(s.warning)
	}
	s.handle, s.store = h, st
	s.log.Debug("store opened",
		zap.String("backend", s.cfg.Data.Backend),
		zap.String("path", h.Path()),
		zap.Int("observations", st.Len()))
	return st, nil
}

func (s *session) close() {
	if s.handle != nil {
		if err := s.handle.Close(); err != nil {
			s.log.Warn("close backend", zap.Error(err))
		}
	}
}

func (s *session) today() model.Date { return model.DateOf(s.opt.Now()) }

// parseDay accepts YYYY-MM-DD or "today".
func (s *session) parseDay(arg string) (model.Date, error) {
	if arg == "today" {
		return s.today(), nil
	}
	d, err := model.ParseDate(arg)
	if err != nil {
		return model.Date{}, usageError{err}
	}
	return d, nil
}

// parseMonth accepts YYYY-MM; empty means the current month.
func (s *session) parseMonth(arg string) (model.Date, error) {
	if arg == "" {
		return s.today().FirstOfMonth(), nil
	}
	t, err := time.Parse("2006-01", arg)
	if err != nil {
		return model.Date{}, usagef("month must be YYYY-MM, got %q", arg)
	}
	return model.DateOf(t), nil
}

// markdownStyle picks the glamour style for a theme; mono stays plain.
func markdownStyle(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), "mono") {
		return education.StyleASCII
	}
	return education.StyleAuto
}

func (s *session) runUI(cmd *cobra.Command, _ []string) error {
	st, err := s.open()
	if err != nil {
		return err
	}
	opts := tui.Options{
		Now:         s.opt.Now,
		Logger:      s.log,
		LoadWarning: s.warning,
	}
	opts.MarkdownStyle = markdownStyle(s.cfg.UI.Theme)

	var w tui.Watcher
	if s.cfg.Watch.Enabled && s.handle.Path() != "" {
		fw, err := watch.New(s.handle.Path(), s.cfg.GetWatchDebounce(), s.log)
		if err != nil {
			s.log.Warn("file watch disabled", zap.Error(err))
		} else {
			w = fw
		}
	}
	return s.opt.RunTUI(st, opts, w)
}
