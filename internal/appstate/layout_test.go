package appstate

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testCounts = layoutCounts{tools: 5, colors: 12, widths: 7, actions: 5}

func TestWindowSizeFitsSurfaceAndToolbar(t *testing.T) {
	size := windowSize(80, image.Pt(800, 600), testCounts)
	assert.Equal(t, image.Pt(880, 600+statusHeight), size)

	small := windowSize(10, image.Pt(50, 20), testCounts)
	l := computeLayout(10, image.Pt(50, 20), small.X, small.Y, testCounts)
	assert.Equal(t, minToolbar, l.toolbarWidth)
	assert.Equal(t, l.toolbarBottom+statusHeight, small.Y)
}

func TestLayoutHit(t *testing.T) {
	l := computeLayout(80, image.Pt(800, 600), 880, 624, testCounts)

	kind, idx := l.hit(image.Pt(100, 100))
	assert.Equal(t, hitCanvas, kind)
	assert.Equal(t, 0, idx)

	kind, idx = l.hit(l.tools[2].Min.Add(image.Pt(1, 1)))
	assert.Equal(t, hitTool, kind)
	assert.Equal(t, 2, idx)

	kind, idx = l.hit(l.swatches[5].Min)
	assert.Equal(t, hitSwatch, kind)
	assert.Equal(t, 5, idx)

	kind, idx = l.hit(l.widths[6].Min)
	assert.Equal(t, hitWidth, kind)
	assert.Equal(t, 6, idx)

	kind, idx = l.hit(l.actions[0].Min)
	assert.Equal(t, hitAction, kind)
	assert.Equal(t, 0, idx)

	kind, _ = l.hit(image.Pt(10, 610))
	assert.Equal(t, hitStatus, kind)

	kind, idx = l.hit(image.Pt(10, l.toolbarBottom+10))
	assert.Equal(t, hitNone, kind)
	assert.Equal(t, -1, idx)
}

func TestLayoutLocalAndClamp(t *testing.T) {
	l := computeLayout(80, image.Pt(800, 600), 880, 624, testCounts)
	assert.Equal(t, image.Pt(20, 30), l.local(image.Pt(100, 30)))
	assert.Equal(t, image.Pt(0, 30), l.clampToCanvas(image.Pt(10, 30)))
	assert.Equal(t, image.Pt(799, 599), l.clampToCanvas(image.Pt(2000, 2000)))
	assert.Equal(t, image.Pt(5, 0), l.clampToCanvas(image.Pt(85, -7)))
}
