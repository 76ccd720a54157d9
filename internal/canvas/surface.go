// Package canvas holds the RGBA drawing surface and its raster primitives.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface is the raster buffer a drawing session mutates. Coordinates are
// surface-local pixels with the origin at the top-left corner.
type Surface struct {
	img *image.RGBA
}

// New allocates a fully transparent surface of the given size.
func New(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies img into a new zero-based surface.
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Surface{img: rgba}
}

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }
func (s *Surface) Width() int              { return s.img.Bounds().Dx() }
func (s *Surface) Height() int             { return s.img.Bounds().Dy() }

// Image exposes the backing buffer for read-only use such as blitting to a
// window or encoding.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
}

// ClearRect makes the pixels inside r transparent. Parts of r outside the
// surface are ignored.
func (s *Surface) ClearRect(r image.Rectangle) {
	r = r.Canon().Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, image.Transparent, image.Point{}, draw.Src)
}

// Fill paints the whole surface with col.
func (s *Surface) Fill(col color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// StrokeSegment draws a straight segment from a to b with round caps.
// Consecutive segments sharing an endpoint therefore join smoothly.
func (s *Surface) StrokeSegment(a, b image.Point, col color.Color, width int) {
	r := brushRadius(width)
	x0, y0, x1, y1 := a.X, a.Y, b.X, b.Y
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		s.stamp(x0, y0, r, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// StrokeRect outlines the axis-aligned box whose corners are r.Min and
// r.Max. Both corners lie on the outline.
func (s *Surface) StrokeRect(r image.Rectangle, col color.Color, width int) {
	r = r.Canon()
	tl := r.Min
	tr := image.Pt(r.Max.X, r.Min.Y)
	br := r.Max
	bl := image.Pt(r.Min.X, r.Max.Y)
	s.StrokeSegment(tl, tr, col, width)
	s.StrokeSegment(tr, br, col, width)
	s.StrokeSegment(br, bl, col, width)
	s.StrokeSegment(bl, tl, col, width)
}

// StrokeCircle outlines a circle centred at c. The outline is traced as a
// closed polyline fine enough that neighbouring vertices touch.
func (s *Surface) StrokeCircle(c image.Point, radius float64, col color.Color, width int) {
	if radius < 0.5 {
		s.stamp(c.X, c.Y, brushRadius(width), col)
		return
	}
	steps := int(math.Ceil(2 * math.Pi * radius))
	if steps < 8 {
		steps = 8
	}
	prev := circlePoint(c, radius, 0)
	for i := 1; i <= steps; i++ {
		next := circlePoint(c, radius, 2*math.Pi*float64(i)/float64(steps))
		s.StrokeSegment(prev, next, col, width)
		prev = next
	}
}

// DrawText renders text with its baseline starting at dot.
func (s *Surface) DrawText(text string, dot image.Point, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(text)
}

func circlePoint(c image.Point, radius, angle float64) image.Point {
	return image.Pt(
		c.X+int(math.Round(math.Cos(angle)*radius)),
		c.Y+int(math.Round(math.Sin(angle)*radius)),
	)
}

// brushRadius is half the stroke width; a width of one or less paints a
// single pixel.
func brushRadius(width int) float64 {
	if width <= 1 {
		return 0.5
	}
	return float64(width) / 2
}

// stamp paints a filled disc of radius r centred on (cx, cy).
func (s *Surface) stamp(cx, cy int, r float64, col color.Color) {
	ri := int(math.Ceil(r))
	r2 := r * r
	b := s.img.Bounds()
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) > r2 {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(b) {
				s.img.Set(p.X, p.Y, col)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
