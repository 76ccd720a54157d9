package session

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/shape"
	"github.com/example/sketchcalc/internal/tool"
)

var green = color.RGBA{G: 255, A: 255}

func newSession(opts ...Option) *Session {
	return New(canvas.New(100, 100), opts...)
}

func alphaAt(s *Session, x, y int) uint8 {
	return s.Surface().Image().RGBAAt(x, y).A
}

func TestDefaults(t *testing.T) {
	s := newSession()
	assert.Equal(t, tool.FreeHand, s.Tool())
	assert.Equal(t, DefaultColor, s.Color())
	assert.Equal(t, tool.MinWidth, s.Width())
	assert.Equal(t, Idle, s.State())
	_, ok := s.Anchor()
	assert.False(t, ok)
}

func TestWidthIsClamped(t *testing.T) {
	s := newSession(WithWidth(1))
	assert.Equal(t, tool.MinWidth, s.Width())
	s.SetWidth(500)
	assert.Equal(t, tool.MaxWidth, s.Width())
	s.SetWidth(12)
	assert.Equal(t, 12, s.Width())
}

func TestFreeHandCommitsEachMove(t *testing.T) {
	s := newSession(WithColor(green))
	s.PointerDown(image.Pt(10, 10))
	assert.True(t, s.Drawing())
	assert.Zero(t, alphaAt(s, 10, 10), "pointer-down only starts the path")

	s.PointerMove(image.Pt(20, 10))
	assert.NotZero(t, alphaAt(s, 15, 10), "segment is rendered immediately")
	s.PointerMove(image.Pt(20, 30))
	assert.NotZero(t, alphaAt(s, 20, 25))

	s.PointerUp(image.Pt(20, 30))
	assert.Equal(t, Idle, s.State())
	assert.Equal(t, green, s.Surface().Image().RGBAAt(20, 20))
}

func TestMoveAndUpWhileIdleAreNoOps(t *testing.T) {
	s := newSession()
	before := s.Surface().Snapshot()
	s.PointerMove(image.Pt(5, 5))
	s.PointerUp(image.Pt(50, 50))
	s.PointerLeave(image.Pt(50, 50))
	assert.Equal(t, before.Pix, s.Surface().Image().Pix)
	assert.Equal(t, Idle, s.State())
}

func TestShapeAnchorsAndCommitsOnUp(t *testing.T) {
	s := newSession(WithTool(tool.Rectangle), WithColor(green))
	s.PointerDown(image.Pt(10, 10))
	a, ok := s.Anchor()
	require.True(t, ok)
	assert.Equal(t, image.Pt(10, 10), a)

	s.PointerMove(image.Pt(40, 40))
	for _, v := range s.Surface().Image().Pix {
		require.Zero(t, v, "shapes have no live preview")
	}

	s.PointerUp(image.Pt(50, 40))
	_, ok = s.Anchor()
	assert.False(t, ok)

	want := canvas.New(100, 100)
	require.NoError(t, shape.Render(want, shape.Gesture{Start: image.Pt(10, 10), End: image.Pt(50, 40), Kind: tool.Rectangle}, green, tool.MinWidth))
	assert.Equal(t, want.Image().Pix, s.Surface().Image().Pix)
}

func TestPointerLeaveCommitsShape(t *testing.T) {
	s := newSession(WithTool(tool.Line))
	s.PointerDown(image.Pt(0, 50))
	s.PointerLeave(image.Pt(99, 50))
	assert.Equal(t, Idle, s.State())
	assert.NotZero(t, alphaAt(s, 60, 50))
}

func TestEraserFootprints(t *testing.T) {
	s := newSession(WithWidth(5))
	s.Surface().Fill(green)
	s.SelectTool(tool.Eraser)
	assert.False(t, s.ColorEnabled())

	// Pointer-down clears a 10x10 square centred on the point.
	s.PointerDown(image.Pt(50, 50))
	_, ok := s.Anchor()
	assert.False(t, ok)
	assert.Zero(t, alphaAt(s, 45, 45))
	assert.Zero(t, alphaAt(s, 54, 54))
	assert.NotZero(t, alphaAt(s, 55, 55))
	assert.NotZero(t, alphaAt(s, 44, 44))

	// Pointer-move clears a 5x5 square anchored at the point.
	s.PointerMove(image.Pt(10, 10))
	assert.Zero(t, alphaAt(s, 10, 10))
	assert.Zero(t, alphaAt(s, 14, 14))
	assert.NotZero(t, alphaAt(s, 15, 15))
	assert.NotZero(t, alphaAt(s, 9, 9))

	s.PointerUp(image.Pt(10, 10))
	assert.Equal(t, Idle, s.State())
}

func TestEraserThenFreeHandRestoresColorAndWidth(t *testing.T) {
	s := newSession(WithColor(green), WithWidth(9))
	s.SelectTool(tool.Eraser)
	s.SelectTool(tool.FreeHand)
	assert.True(t, s.ColorEnabled())
	assert.Equal(t, green, s.Color())
	assert.Equal(t, 9, s.Width())

	s.PointerDown(image.Pt(20, 20))
	s.PointerMove(image.Pt(40, 20))
	s.PointerUp(image.Pt(40, 20))
	assert.Equal(t, green, s.Surface().Image().RGBAAt(30, 20))
	assert.Equal(t, green, s.Surface().Image().RGBAAt(30, 24), "width 9 reaches 4px either side")
	assert.Zero(t, alphaAt(s, 30, 25))
}

func TestSelectingNonShapeDropsAnchor(t *testing.T) {
	s := newSession(WithTool(tool.Circle))
	s.PointerDown(image.Pt(10, 10))
	s.SelectTool(tool.FreeHand)
	_, ok := s.Anchor()
	assert.False(t, ok)
	s.PointerUp(image.Pt(30, 30))
	for _, v := range s.Surface().Image().Pix {
		require.Zero(t, v)
	}
}

func TestResetKeepsTool(t *testing.T) {
	s := newSession(WithTool(tool.Line))
	s.Surface().Fill(green)
	s.Reset()
	assert.Equal(t, tool.Line, s.Tool())
	for _, v := range s.Surface().Image().Pix {
		require.Zero(t, v)
	}
}
