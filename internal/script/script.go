// Package script replays recorded pointer gestures against a drawing
// session without a window.
package script

import (
	"fmt"
	"image"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/palette"
	"github.com/example/sketchcalc/internal/session"
	"github.com/example/sketchcalc/internal/tool"
)

// Default surface size when a script does not set one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// MaxDimension bounds the surface width and height a script may request.
const MaxDimension = 4096

// Script is a surface size plus an ordered list of steps.
type Script struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Steps  []Step `yaml:"steps"`
}

// Step holds exactly one action.
type Step struct {
	Tool  string `yaml:"tool,omitempty"`
	Color string `yaml:"color,omitempty"`
	Width *int   `yaml:"width,omitempty"`
	Down  []int  `yaml:"down,omitempty"`
	Move  []int  `yaml:"move,omitempty"`
	Up    []int  `yaml:"up,omitempty"`
	Leave []int  `yaml:"leave,omitempty"`
	Reset bool   `yaml:"reset,omitempty"`
}

// Parse decodes a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Script
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return &s, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("step 0: %w", err)
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.Width > MaxDimension {
		return fmt.Errorf("width %d exceeds %d", s.Width, MaxDimension)
	}
	if s.Height > MaxDimension {
		return fmt.Errorf("height %d exceeds %d", s.Height, MaxDimension)
	}
	return nil
}

// Load reads a script from path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Size returns the surface size, using defaults for unset dimensions and
// capping each side at MaxDimension.
func (s *Script) Size() (int, int) {
	return dimension(s.Width, DefaultWidth), dimension(s.Height, DefaultHeight)
}

func dimension(v, def int) int {
	switch {
	case v <= 0:
		return def
	case v > MaxDimension:
		return MaxDimension
	}
	return v
}

// NewSession creates a surface of the script size and a session drawing on
// it with opts applied.
func (s *Script) NewSession(opts ...session.Option) *session.Session {
	w, h := s.Size()
	return session.New(canvas.New(w, h), opts...)
}

// Run applies every step to sess in order. It stops at the first invalid step.
func (s *Script) Run(sess *session.Session) error {
	for i, st := range s.Steps {
		if err := st.apply(sess); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) apply(sess *session.Session) error {
	if n := st.actions(); n != 1 {
		return fmt.Errorf("expected exactly one action, found %d", n)
	}
	switch {
	case st.Tool != "":
		k, err := tool.Parse(st.Tool)
		if err != nil {
			return err
		}
		sess.SelectTool(k)
	case st.Color != "":
		c, err := palette.ParseColor(st.Color)
		if err != nil {
			return err
		}
		sess.SetColor(c)
	case st.Width != nil:
		sess.SetWidth(*st.Width)
	case st.Down != nil:
		p, err := point(st.Down)
		if err != nil {
			return err
		}
		sess.PointerDown(p)
	case st.Move != nil:
		p, err := point(st.Move)
		if err != nil {
			return err
		}
		sess.PointerMove(p)
	case st.Up != nil:
		p, err := point(st.Up)
		if err != nil {
			return err
		}
		sess.PointerUp(p)
	case st.Leave != nil:
		p, err := point(st.Leave)
		if err != nil {
			return err
		}
		sess.PointerLeave(p)
	case st.Reset:
		sess.Reset()
	}
	return nil
}

func (st Step) actions() int {
	n := 0
	for _, set := range []bool{
		st.Tool != "", st.Color != "", st.Width != nil,
		st.Down != nil, st.Move != nil, st.Up != nil, st.Leave != nil,
		st.Reset,
	} {
		if set {
			n++
		}
	}
	return n
}

func point(v []int) (image.Point, error) {
	if len(v) != 2 {
		return image.Point{}, fmt.Errorf("point needs [x, y], got %v", v)
	}
	return image.Pt(v[0], v[1]), nil
}
