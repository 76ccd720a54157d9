package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/sketchcalc/internal/appstate"
	"github.com/example/sketchcalc/internal/palette"
	"github.com/example/sketchcalc/internal/theme"
	"github.com/example/sketchcalc/internal/tool"
)

// listCmd prints one of the fixed option lists.
type listCmd struct {
	*root
	fs       *flag.FlagSet
	name     string
	template string
	print    func(w io.Writer)
	stdout   io.Writer
}

func parseListCmd(name string, args []string, r *root, print func(io.Writer)) (*listCmd, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	cmd := &listCmd{root: r.subcommand(name), fs: fs, name: name, template: name + ".txt", print: print, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func parseColorsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("colors", args, r, printColors)
}

func parseWidthsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("widths", args, r, printWidths)
}

func parseToolsCmd(args []string, r *root) (*listCmd, error) {
	return parseListCmd("tools", args, r, printTools)
}

func (c *listCmd) Run() error {
	c.print(c.stdout)
	return nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *listCmd) Template() string {
	return c.template
}

func printColors(w io.Writer) {
	colors := palette.Colors()
	fmt.Fprintln(w, "available palette colors (* marks the default color):")
	for idx, entry := range colors {
		marker := " "
		if idx == palette.DefaultColorIndex {
			marker = "*"
		}
		hex := theme.Hex(entry.Color)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(w, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
}

func printWidths(w io.Writer) {
	fmt.Fprintln(w, "available stroke widths (* marks the default width):")
	for _, width := range palette.Widths() {
		marker := " "
		if width == tool.DefaultWidth {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3dpx\n", marker, width)
	}
	fmt.Fprintf(w, "any width from %d to %d is accepted in config and scripts\n", tool.MinWidth, tool.MaxWidth)
}

func printTools(w io.Writer) {
	fmt.Fprintln(w, "available tools (* marks the default tool):")
	for _, k := range tool.All() {
		marker := " "
		if k == tool.FreeHand {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-10s key %c\n", marker, k, appstate.ToolKey(k))
	}
}
