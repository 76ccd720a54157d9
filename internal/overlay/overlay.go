// Package overlay paints a recognition result onto a drawing surface.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/recognize"
	"github.com/example/sketchcalc/internal/theme"
)

// FontSize is the overlay text height in pixels.
const FontSize = 24

// Style controls how a result is painted.
type Style struct {
	Background color.RGBA
	Foreground color.RGBA
	Face       font.Face
	// ExprDot and ResultDot are the text baselines of the two lines.
	ExprDot   image.Point
	ResultDot image.Point
}

var (
	boldOnce sync.Once
	boldFont *opentype.Font
	boldErr  error
)

// NewBoldFace returns a bold face for overlay text. Faces keep scratch
// buffers and are not safe for concurrent use, so each Style gets its own;
// only the parsed font is shared.
func NewBoldFace() (font.Face, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = opentype.Parse(gobold.TTF)
		if boldErr != nil {
			boldErr = fmt.Errorf("parse bold font: %w", boldErr)
		}
	})
	if boldErr != nil {
		return nil, boldErr
	}
	return opentype.NewFace(boldFont, &opentype.FaceOptions{
		Size:    FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// DefaultStyle is white bold text on black with a face of its own. Paint
// retries the font when Face is nil.
func DefaultStyle() Style {
	face, _ := NewBoldFace()
	return Style{
		Background: color.RGBA{0, 0, 0, 255},
		Foreground: color.RGBA{255, 255, 255, 255},
		Face:       face,
		ExprDot:    image.Pt(20, 50),
		ResultDot:  image.Pt(20, 100),
	}
}

// StyleFromTheme takes the overlay colors from t.
func StyleFromTheme(t *theme.Theme) Style {
	s := DefaultStyle()
	if t != nil {
		s.Background = t.OverlayBackground
		s.Foreground = t.OverlayText
	}
	return s
}

// Lines returns the two text lines painted for r.
func Lines(r recognize.Result) (string, string) {
	return "Expression: " + r.Expression, "Result: " + r.Result
}

// Paint discards everything on s, fills it with the style background and
// writes the expression and result lines.
func Paint(s *canvas.Surface, r recognize.Result, style Style) error {
	if style.Face == nil {
		face, err := NewBoldFace()
		if err != nil {
			return err
		}
		style.Face = face
	}
	expr, result := Lines(r)
	s.Clear()
	s.Fill(style.Background)
	s.DrawText(expr, style.ExprDot, style.Face, style.Foreground)
	s.DrawText(result, style.ResultDot, style.Face, style.Foreground)
	return nil
}
