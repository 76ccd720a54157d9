package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/clipboard"
	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/solve"
)

// Swapped in tests.
var (
	readClipboardImage = clipboard.ReadImage
	writeClipboardText = clipboard.WriteText
)

// solveCmd submits existing images for recognition.
type solveCmd struct {
	*root
	fs            *flag.FlagSet
	endpoint      string
	output        string
	batch         int
	copyResult    bool
	fromClipboard bool
	files         []string
	stdout        io.Writer
	stderr        io.Writer
}

type solveJob struct {
	name    string
	surface *canvas.Surface
	outcome solve.Outcome
	err     error
}

func parseSolveCmd(args []string, r *root) (*solveCmd, error) {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	cmd := &solveCmd{root: r.subcommand("solve"), fs: fs, stdout: os.Stdout, stderr: os.Stderr}
	fs.StringVar(&cmd.endpoint, "endpoint", "", "recognition endpoint URL")
	fs.StringVar(&cmd.output, "output", "", "write the overlaid image here (single input only)")
	fs.IntVar(&cmd.batch, "batch", 1, "number of images submitted concurrently")
	fs.BoolVar(&cmd.copyResult, "copy", false, "copy the result lines to the clipboard")
	fs.BoolVar(&cmd.fromClipboard, "clipboard", false, "solve the image currently on the clipboard")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cmd.files = fs.Args()
	if cmd.fromClipboard && len(cmd.files) > 0 {
		return nil, fmt.Errorf("-clipboard cannot be combined with input files")
	}
	if !cmd.fromClipboard && len(cmd.files) == 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.output != "" && len(cmd.files) > 1 {
		return nil, fmt.Errorf("-output requires a single input image")
	}
	if cmd.batch < 1 {
		return nil, fmt.Errorf("-batch must be at least 1, got %d", cmd.batch)
	}
	return cmd, nil
}

func (c *solveCmd) Run() error {
	jobs, err := c.load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	sem := semaphore.NewWeighted(int64(c.batch))
	var wg sync.WaitGroup
	for _, j := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return err
		}
		wg.Add(1)
		go func(j *solveJob) {
			defer wg.Done()
			defer sem.Release(1)
			j.outcome, j.err = c.newSolver(c.endpoint).Solve(ctx, j.surface)
		}(j)
	}
	wg.Wait()

	var lines []string
	failed := 0
	for _, j := range jobs {
		if j.err != nil {
			failed++
			msg := solve.UserMessage(j.err)
			fmt.Fprintf(c.stderr, "%s: %s\n", j.name, msg)
			c.notifyError(msg)
			continue
		}
		line := fmt.Sprintf("%s: %s", j.name, j.outcome.Status)
		fmt.Fprintln(c.stdout, line)
		lines = append(lines, j.outcome.Status)
		c.notifyResult(j.outcome.Status)
	}

	if c.output != "" && len(jobs) == 1 && jobs[0].err == nil {
		if err := writePNG(c.output, jobs[0].surface); err != nil {
			return err
		}
		c.notifySave(c.output)
	}
	if c.copyResult && len(lines) > 0 {
		if err := writeClipboardText(strings.Join(lines, "\n")); err != nil {
			return fmt.Errorf("copy results: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d submissions failed", failed, len(jobs))
	}
	return nil
}

func (c *solveCmd) load() ([]*solveJob, error) {
	if c.fromClipboard {
		img, err := readClipboardImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return []*solveJob{{name: "clipboard", surface: canvas.FromImage(img)}}, nil
	}
	var jobs []*solveJob
	for _, path := range c.files {
		img, err := readImage(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &solveJob{name: path, surface: canvas.FromImage(img)})
	}
	return jobs, nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, s *canvas.Surface) error {
	data, err := encode.Encoder{}.Encode(s.Image())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *solveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *solveCmd) Template() string {
	return "solve.txt"
}
