package overlay

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/recognize"
	"github.com/example/sketchcalc/internal/theme"
)

func TestLines(t *testing.T) {
	expr, result := Lines(recognize.Result{Expression: "2+2", Result: "4"})
	assert.Equal(t, "Expression: 2+2", expr)
	assert.Equal(t, "Result: 4", result)
}

func TestPaintDiscardsStrokes(t *testing.T) {
	r := recognize.Result{Expression: "2+2", Result: "4"}

	drawn := canvas.New(300, 150)
	drawn.StrokeSegment(image.Pt(0, 0), image.Pt(299, 149), color.RGBA{255, 0, 0, 255}, 10)
	require.NoError(t, Paint(drawn, r, DefaultStyle()))

	blank := canvas.New(300, 150)
	require.NoError(t, Paint(blank, r, DefaultStyle()))

	assert.Equal(t, blank.Image().Pix, drawn.Image().Pix)
}

func TestPaintFillsAndWrites(t *testing.T) {
	s := canvas.New(300, 150)
	require.NoError(t, Paint(s, recognize.Result{Expression: "1", Result: "1"}, DefaultStyle()))

	img := s.Image()
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, img.RGBAAt(299, 149), "background corner")

	var lit bool
	for y := 50 - FontSize; y <= 50 && !lit; y++ {
		for x := 20; x < 200; x++ {
			if img.RGBAAt(x, y).R > 128 {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "expected text pixels above the first baseline")
	for x := 0; x < 300; x++ {
		assert.Equal(t, uint8(0), img.RGBAAt(x, 140).R, "nothing drawn below the second line")
	}
}

func TestStyleFromTheme(t *testing.T) {
	th := theme.Default()
	th.OverlayBackground = color.RGBA{1, 2, 3, 255}
	th.OverlayText = color.RGBA{4, 5, 6, 255}
	s := StyleFromTheme(th)
	assert.Equal(t, th.OverlayBackground, s.Background)
	assert.Equal(t, th.OverlayText, s.Foreground)
	assert.Equal(t, image.Pt(20, 50), s.ExprDot)
	assert.Equal(t, image.Pt(20, 100), s.ResultDot)
	assert.NotNil(t, s.Face)
}

func TestStylesDoNotShareFaces(t *testing.T) {
	a, b := DefaultStyle(), DefaultStyle()
	require.NotNil(t, a.Face)
	assert.NotSame(t, a.Face, b.Face)
}

func TestConcurrentPaintWithSeparateStyles(t *testing.T) {
	r := recognize.Result{Expression: "12345+67890", Result: "80235"}
	want := canvas.New(400, 200)
	require.NoError(t, Paint(want, r, DefaultStyle()))

	var wg sync.WaitGroup
	surfaces := make([]*canvas.Surface, 8)
	errs := make([]error, len(surfaces))
	for i := range surfaces {
		surfaces[i] = canvas.New(400, 200)
		style := DefaultStyle()
		wg.Add(1)
		go func(i int, style Style) {
			defer wg.Done()
			for n := 0; n < 50 && errs[i] == nil; n++ {
				errs[i] = Paint(surfaces[i], r, style)
			}
		}(i, style)
	}
	wg.Wait()

	for i, s := range surfaces {
		require.NoError(t, errs[i])
		assert.Equal(t, want.Image().Pix, s.Image().Pix)
	}
}
