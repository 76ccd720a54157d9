package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/sketchcalc/internal/config"
	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/notify"
	"github.com/example/sketchcalc/internal/overlay"
	"github.com/example/sketchcalc/internal/palette"
	"github.com/example/sketchcalc/internal/recognize"
	"github.com/example/sketchcalc/internal/session"
	"github.com/example/sketchcalc/internal/solve"
	"github.com/example/sketchcalc/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	notifier    *notify.Notifier
	config      *config.Config
	resultAlert bool
	errorAlert  bool
	saveAlert   bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

// subcommand returns a copy of r whose program name includes name.
func (r *root) subcommand(name string) *root {
	if r == nil {
		return &root{program: "sketchcalc " + name}
	}
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:     program,
		notifier:    r.notifier,
		config:      r.config,
		resultAlert: r.resultAlert,
		errorAlert:  r.errorAlert,
		saveAlert:   r.saveAlert,
		themeName:   r.themeName,
		activeTheme: r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("sketchcalc", flag.ExitOnError),
		program:  "sketchcalc",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
	}
	r.fs.BoolVar(&r.resultAlert, "notify-result", cfg.Notify.Result, "show a desktop notification when a drawing is solved")
	r.fs.BoolVar(&r.errorAlert, "notify-error", cfg.Notify.Error, "show a desktop notification when solving fails")
	r.fs.BoolVar(&r.saveAlert, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.Names(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventResult, r.resultAlert)
		r.notifier.Enable(notify.EventError, r.errorAlert)
		r.notifier.Enable(notify.EventSave, r.saveAlert)
	}
	r.activeTheme = r.loadTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "canvas":
		cmd, err = parseCanvasCmd(subArgs, r)
	case "solve":
		cmd, err = parseSolveCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "widths":
		cmd, err = parseWidthsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) loadTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("SKETCHCALC_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	if r.config != nil {
		loader.Extra = r.config.Themes
	}
	t, err := loader.Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// resolveEndpoint resolves the recognition URL: flag, then SKETCHCALC_ENDPOINT,
// then the config file, then the built-in default.
func (r *root) resolveEndpoint(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("SKETCHCALC_ENDPOINT"); v != "" {
		return v
	}
	if r != nil && r.config != nil && r.config.Endpoint != "" {
		return r.config.Endpoint
	}
	return recognize.DefaultEndpoint
}

func (r *root) currentTheme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

// newSolver builds a solver for endpoint. Each solver tracks its own
// in-flight request, so concurrent callers need separate solvers.
func (r *root) newSolver(endpoint string) *solve.Solver {
	opts := []recognize.Option{
		recognize.WithEndpoint(r.resolveEndpoint(endpoint)),
		recognize.WithUserAgent("sketchcalc/" + version),
	}
	enc := encode.Encoder{}
	if r != nil && r.config != nil {
		if r.config.Timeout > 0 {
			opts = append(opts, recognize.WithTimeout(r.config.Timeout))
		}
		enc.MaxDimension = r.config.ExportMax
	}
	return solve.New(recognize.NewClient(opts...),
		solve.WithEncoder(enc),
		solve.WithStyle(overlay.StyleFromTheme(r.currentTheme())),
	)
}

// sessionOptions applies the configured initial color and width.
func (r *root) sessionOptions() ([]session.Option, error) {
	if r == nil || r.config == nil {
		return nil, nil
	}
	var opts []session.Option
	if r.config.Color != "" {
		col, err := palette.ParseColor(r.config.Color)
		if err != nil {
			return nil, fmt.Errorf("config color: %w", err)
		}
		opts = append(opts, session.WithColor(col))
	}
	if r.config.Width != 0 {
		opts = append(opts, session.WithWidth(r.config.Width))
	}
	return opts, nil
}

func (r *root) notifyResult(status string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Result(status)
}

func (r *root) notifyError(msg string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Error(msg)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
