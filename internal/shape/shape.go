// Package shape commits finalized shape gestures onto a canvas surface.
package shape

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/tool"
)

// Gesture is a completed shape interaction: the anchor recorded on
// pointer-down and the point where the pointer was released.
type Gesture struct {
	Start image.Point
	End   image.Point
	Kind  tool.Kind
}

// Bounds returns the box with corners start and end regardless of the
// direction the gesture was drawn in.
func Bounds(start, end image.Point) image.Rectangle {
	return image.Rectangle{Min: start, Max: end}.Canon()
}

// Radius is the Euclidean distance from start to end.
func Radius(start, end image.Point) float64 {
	return math.Hypot(float64(end.X-start.X), float64(end.Y-start.Y))
}

// Render draws the primitive described by g. Freehand and eraser gestures
// are not shapes and are rejected.
func Render(s *canvas.Surface, g Gesture, col color.Color, width int) error {
	switch g.Kind {
	case tool.Rectangle:
		s.StrokeRect(Bounds(g.Start, g.End), col, width)
	case tool.Circle:
		s.StrokeCircle(g.Start, Radius(g.Start, g.End), col, width)
	case tool.Line:
		s.StrokeSegment(g.Start, g.End, col, width)
	default:
		return fmt.Errorf("render %s: not a shape tool", g.Kind)
	}
	return nil
}
