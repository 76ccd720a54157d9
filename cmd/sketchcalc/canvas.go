package main

import (
	"flag"

	"github.com/example/sketchcalc/internal/appstate"
	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/session"
)

// canvasCmd opens the interactive drawing window.
type canvasCmd struct {
	*root
	fs       *flag.FlagSet
	width    int
	height   int
	endpoint string
	output   string
}

func parseCanvasCmd(args []string, r *root) (*canvasCmd, error) {
	fs := flag.NewFlagSet("canvas", flag.ExitOnError)
	cmd := &canvasCmd{root: r.subcommand("canvas"), fs: fs}
	fs.IntVar(&cmd.width, "width", 800, "drawing surface width in pixels")
	fs.IntVar(&cmd.height, "height", 600, "drawing surface height in pixels")
	fs.StringVar(&cmd.endpoint, "endpoint", "", "recognition endpoint URL")
	fs.StringVar(&cmd.output, "output", appstate.DefaultOutput, "file written by Ctrl+S")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || cmd.width <= 0 || cmd.height <= 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *canvasCmd) Run() error {
	opts, err := c.sessionOptions()
	if err != nil {
		return err
	}
	sess := session.New(canvas.New(c.width, c.height), opts...)
	st := appstate.New(
		appstate.WithSession(sess),
		appstate.WithSolver(c.newSolver(c.endpoint)),
		appstate.WithTheme(c.currentTheme()),
		appstate.WithOutput(c.output),
		appstate.WithNotifier(c.notifier),
	)
	st.Run()
	return nil
}

func (c *canvasCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *canvasCmd) Template() string {
	return "canvas.txt"
}
