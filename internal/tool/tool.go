// Package tool defines the drawing tools and stroke width bounds.
package tool

import (
	"fmt"
	"strings"
)

// Kind identifies the interaction mode used to interpret pointer input.
type Kind int

const (
	FreeHand Kind = iota
	Rectangle
	Circle
	Line
	Eraser
)

// Stroke width bounds accepted from the pointer input surface.
const (
	MinWidth     = 5
	MaxWidth     = 50
	DefaultWidth = MinWidth
)

var names = map[Kind]string{
	FreeHand:  "freehand",
	Rectangle: "rectangle",
	Circle:    "circle",
	Line:      "line",
	Eraser:    "eraser",
}

// aliases maps alternate spellings, including the labels used by the
// toolbar, onto tool kinds.
var aliases = map[string]Kind{
	"free":      FreeHand,
	"freehand":  FreeHand,
	"pen":       FreeHand,
	"draw":      FreeHand,
	"rect":      Rectangle,
	"rectangle": Rectangle,
	"circle":    Circle,
	"line":      Line,
	"eraser":    Eraser,
	"erase":     Eraser,
}

// All returns every tool kind in toolbar order.
func All() []Kind {
	return []Kind{FreeHand, Rectangle, Circle, Line, Eraser}
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsShape reports whether k anchors on pointer-down and commits a primitive
// on pointer-up.
func (k Kind) IsShape() bool {
	return k == Rectangle || k == Circle || k == Line
}

// Parse resolves a tool name such as "pen", "rect" or "eraser".
func Parse(s string) (Kind, error) {
	if k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return FreeHand, fmt.Errorf("unknown tool %q", s)
}

// ClampWidth forces w into [MinWidth, MaxWidth].
func ClampWidth(w int) int {
	if w < MinWidth {
		return MinWidth
	}
	if w > MaxWidth {
		return MaxWidth
	}
	return w
}
