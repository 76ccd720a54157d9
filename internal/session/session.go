// Package session interprets pointer gestures according to the active tool
// and applies them to a single owned canvas surface.
package session

import (
	"image"
	"image/color"
	"log"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/shape"
	"github.com/example/sketchcalc/internal/tool"
)

// DefaultColor is the stroke color a new session starts with.
var DefaultColor = color.RGBA{255, 255, 255, 255}

// State is the gesture state of a session.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// Session holds the drawing tool configuration and the gesture in progress.
// It is not safe for concurrent use; pointer events are expected to arrive
// in order from a single event loop.
type Session struct {
	surface *canvas.Surface

	tool  tool.Kind
	color color.RGBA
	width int

	state  State
	anchor *image.Point
	last   image.Point
}

// Option configures a Session during creation.
type Option func(*Session)

// WithTool sets the initial tool.
func WithTool(k tool.Kind) Option { return func(s *Session) { s.tool = k } }

// WithColor sets the initial stroke color.
func WithColor(c color.RGBA) Option { return func(s *Session) { s.color = c } }

// WithWidth sets the initial stroke width.
func WithWidth(w int) Option { return func(s *Session) { s.width = w } }

// New creates a session that exclusively owns surface.
func New(surface *canvas.Surface, opts ...Option) *Session {
	s := &Session{
		surface: surface,
		tool:    tool.FreeHand,
		color:   DefaultColor,
		width:   tool.DefaultWidth,
	}
	for _, o := range opts {
		o(s)
	}
	s.width = tool.ClampWidth(s.width)
	return s
}

func (s *Session) Surface() *canvas.Surface { return s.surface }
func (s *Session) Tool() tool.Kind          { return s.tool }
func (s *Session) Color() color.RGBA        { return s.color }
func (s *Session) Width() int               { return s.width }
func (s *Session) State() State             { return s.state }
func (s *Session) Drawing() bool            { return s.state == Drawing }

// ColorEnabled reports whether color input currently has an effect.
func (s *Session) ColorEnabled() bool { return s.tool != tool.Eraser }

// Anchor returns the pending shape anchor, if any.
func (s *Session) Anchor() (image.Point, bool) {
	if s.anchor == nil {
		return image.Point{}, false
	}
	return *s.anchor, true
}

// SelectTool switches the active tool. It is valid in any state. A gesture
// already in progress is kept, but an anchor only survives while the tool
// remains a shape tool.
func (s *Session) SelectTool(k tool.Kind) {
	s.tool = k
	if !k.IsShape() {
		s.anchor = nil
	}
}

// SetColor records the stroke color. While the eraser is active the value is
// retained and takes effect once a drawing tool is selected again.
func (s *Session) SetColor(c color.RGBA) { s.color = c }

// SetWidth records the stroke width, clamped to the supported range.
func (s *Session) SetWidth(w int) { s.width = tool.ClampWidth(w) }

// PointerDown starts a gesture at p.
func (s *Session) PointerDown(p image.Point) {
	s.state = Drawing
	s.anchor = nil
	switch {
	case s.tool == tool.Eraser:
		size := s.width * 2
		min := p.Sub(image.Pt(size/2, size/2))
		s.surface.ClearRect(image.Rectangle{Min: min, Max: min.Add(image.Pt(size, size))})
	case s.tool == tool.FreeHand:
		s.last = p
	default:
		a := p
		s.anchor = &a
	}
}

// PointerMove continues the gesture. It is ignored while idle.
func (s *Session) PointerMove(p image.Point) {
	if s.state != Drawing {
		return
	}
	switch s.tool {
	case tool.Eraser:
		s.surface.ClearRect(image.Rect(p.X, p.Y, p.X+s.width, p.Y+s.width))
	case tool.FreeHand:
		s.surface.StrokeSegment(s.last, p, s.color, s.width)
		s.last = p
	}
}

// PointerUp ends the gesture at p, committing a pending shape.
func (s *Session) PointerUp(p image.Point) { s.end(p) }

// PointerLeave ends the gesture when the pointer exits the surface.
func (s *Session) PointerLeave(p image.Point) { s.end(p) }

func (s *Session) end(p image.Point) {
	if s.state != Drawing {
		return
	}
	s.state = Idle
	anchor := s.anchor
	s.anchor = nil
	if anchor == nil || !s.tool.IsShape() {
		return
	}
	g := shape.Gesture{Start: *anchor, End: p, Kind: s.tool}
	if err := shape.Render(s.surface, g, s.color, s.width); err != nil {
		log.Printf("commit %s: %v", s.tool, err)
	}
}

// Reset clears the whole surface. The tool configuration is left intact.
func (s *Session) Reset() {
	s.surface.Clear()
}
