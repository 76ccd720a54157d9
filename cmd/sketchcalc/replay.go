package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/sketchcalc/internal/script"
	"github.com/example/sketchcalc/internal/solve"
)

// replayCmd runs a gesture script without a window.
type replayCmd struct {
	*root
	fs       *flag.FlagSet
	script   string
	output   string
	endpoint string
	solve    bool
	stdout   io.Writer
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	cmd := &replayCmd{root: r.subcommand("replay"), fs: fs, stdout: os.Stdout}
	fs.StringVar(&cmd.script, "script", "", "gesture script (YAML)")
	fs.StringVar(&cmd.output, "output", "", "write the resulting surface as PNG")
	fs.StringVar(&cmd.endpoint, "endpoint", "", "recognition endpoint URL")
	fs.BoolVar(&cmd.solve, "solve", false, "submit the drawing and overlay the result")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || cmd.script == "" {
		return nil, &UsageError{of: cmd}
	}
	if cmd.output == "" && !cmd.solve {
		return nil, fmt.Errorf("replay needs -output, -solve or both")
	}
	return cmd, nil
}

func (c *replayCmd) Run() error {
	sc, err := script.Load(c.script)
	if err != nil {
		return err
	}
	opts, err := c.sessionOptions()
	if err != nil {
		return err
	}
	sess := sc.NewSession(opts...)
	if err := sc.Run(sess); err != nil {
		return fmt.Errorf("%s: %w", c.script, err)
	}

	if c.solve {
		out, err := c.newSolver(c.endpoint).Solve(context.Background(), sess.Surface())
		if err != nil {
			c.notifyError(solve.UserMessage(err))
			return fmt.Errorf("%s: %w", solve.UserMessage(err), err)
		}
		fmt.Fprintln(c.stdout, out.Status)
		c.notifyResult(out.Status)
	}
	if c.output != "" {
		if err := writePNG(c.output, sess.Surface()); err != nil {
			return err
		}
		c.notifySave(c.output)
	}
	return nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Template() string {
	return "replay.txt"
}
