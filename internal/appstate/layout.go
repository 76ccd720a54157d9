package appstate

import "image"

const (
	statusHeight   = 24
	buttonHeight   = 22
	swatchSize     = 16
	swatchGap      = 2
	widthRowHeight = 16
	gap            = 4
	minToolbar     = 64
)

type hitKind int

const (
	hitNone hitKind = iota
	hitTool
	hitSwatch
	hitWidth
	hitAction
	hitCanvas
	hitStatus
)

// layout positions every toolbar element, the drawing area and the status
// line for one window size. The drawing area sits right of the toolbar and
// keeps the surface size; it is never scaled.
type layout struct {
	toolbarWidth  int
	toolbarBottom int
	canvas        image.Rectangle
	status        image.Rectangle
	tools         []image.Rectangle
	swatches      []image.Rectangle
	widths        []image.Rectangle
	actions       []image.Rectangle
}

type layoutCounts struct {
	tools, colors, widths, actions int
}

func computeLayout(toolbarWidth int, surface image.Point, winW, winH int, n layoutCounts) layout {
	if toolbarWidth < minToolbar {
		toolbarWidth = minToolbar
	}
	l := layout{toolbarWidth: toolbarWidth}
	y := 0
	for i := 0; i < n.tools; i++ {
		l.tools = append(l.tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}

	y += gap
	cols := (toolbarWidth - gap) / (swatchSize + swatchGap)
	if cols < 1 {
		cols = 1
	}
	for i := 0; i < n.colors; i++ {
		col, row := i%cols, i/cols
		x0 := gap + col*(swatchSize+swatchGap)
		y0 := y + row*(swatchSize+swatchGap)
		l.swatches = append(l.swatches, image.Rect(x0, y0, x0+swatchSize, y0+swatchSize))
	}
	if n.colors > 0 {
		rows := (n.colors + cols - 1) / cols
		y += rows * (swatchSize + swatchGap)
	}

	y += gap
	for i := 0; i < n.widths; i++ {
		l.widths = append(l.widths, image.Rect(0, y, toolbarWidth, y+widthRowHeight))
		y += widthRowHeight
	}

	y += gap
	for i := 0; i < n.actions; i++ {
		l.actions = append(l.actions, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}
	l.toolbarBottom = y

	l.canvas = image.Rectangle{Min: image.Pt(toolbarWidth, 0), Max: image.Pt(toolbarWidth, 0).Add(surface)}
	l.status = image.Rect(0, winH-statusHeight, winW, winH)
	return l
}

// windowSize is the initial window size that fits the toolbar, the whole
// surface and the status line.
func windowSize(toolbarWidth int, surface image.Point, n layoutCounts) image.Point {
	l := computeLayout(toolbarWidth, surface, 0, 0, n)
	h := surface.Y
	if l.toolbarBottom > h {
		h = l.toolbarBottom
	}
	return image.Pt(l.toolbarWidth+surface.X, h+statusHeight)
}

// hit reports which element p falls on and its index within its group.
func (l layout) hit(p image.Point) (hitKind, int) {
	if p.In(l.status) {
		return hitStatus, 0
	}
	if p.In(l.canvas) {
		return hitCanvas, 0
	}
	groups := []struct {
		kind  hitKind
		rects []image.Rectangle
	}{
		{hitTool, l.tools},
		{hitSwatch, l.swatches},
		{hitWidth, l.widths},
		{hitAction, l.actions},
	}
	for _, g := range groups {
		for i, r := range g.rects {
			if p.In(r) {
				return g.kind, i
			}
		}
	}
	return hitNone, -1
}

// local converts a window point to surface coordinates.
func (l layout) local(p image.Point) image.Point {
	return p.Sub(l.canvas.Min)
}

// clampToCanvas returns the surface point nearest to window point p.
func (l layout) clampToCanvas(p image.Point) image.Point {
	q := l.local(p)
	size := l.canvas.Size()
	if q.X < 0 {
		q.X = 0
	}
	if q.Y < 0 {
		q.Y = 0
	}
	if size.X > 0 && q.X >= size.X {
		q.X = size.X - 1
	}
	if size.Y > 0 && q.Y >= size.Y {
		q.Y = size.Y - 1
	}
	return q
}
