package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/sketchcalc/internal/clipboard"
	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/palette"
	"github.com/example/sketchcalc/internal/recognize"
	"github.com/example/sketchcalc/internal/solve"
	"github.com/example/sketchcalc/internal/tool"
)

// Swapped in tests.
var (
	writeText  = clipboard.WriteText
	writeImage = clipboard.WriteImage
	writeFile  = os.WriteFile
)

const idleStatus = "Draw an expression, then press Enter to solve."

var toolLabels = map[tool.Kind]string{
	tool.FreeHand:  "P:Pen",
	tool.Rectangle: "R:Rect",
	tool.Circle:    "C:Circle",
	tool.Line:      "L:Line",
	tool.Eraser:    "E:Eraser",
}

var toolKeys = map[rune]tool.Kind{
	'p': tool.FreeHand,
	'r': tool.Rectangle,
	'c': tool.Circle,
	'l': tool.Line,
	'e': tool.Eraser,
}

type action struct {
	name   string
	label  string
	keys   shortcutList
	button *CacheButton
	run    func()
}

// controller owns the UI state between events. Every method runs on the
// window event loop; only dispatch hands work to another goroutine.
type controller struct {
	ctx context.Context
	app *AppState

	colorIdx int
	widthIdx int

	status    string
	statusErr bool
	result    *recognize.Result
	pending   bool

	size   image.Point
	layout layout

	tools   []*CacheButton
	actions []action
	keymap  map[KeyShortcut]string

	hoverKind hitKind
	hoverIdx  int

	quit bool

	// dispatch runs a prepared submission off the event loop and delivers
	// its reply back through applyReply.
	dispatch func(*solve.Submission)
}

func newController(ctx context.Context, a *AppState) *controller {
	c := &controller{
		ctx:       ctx,
		app:       a,
		colorIdx:  palette.Ensure(a.Session.Color(), ""),
		widthIdx:  palette.EnsureWidth(a.Session.Width()),
		status:    idleStatus,
		keymap:    map[KeyShortcut]string{},
		hoverKind: hitNone,
		hoverIdx:  -1,
	}
	for _, k := range tool.All() {
		k := k
		c.tools = append(c.tools, &CacheButton{Button: &LabelButton{
			label:    toolLabels[k],
			theme:    a.Theme,
			activate: func() { c.selectTool(k) },
		}})
	}
	c.register("run", "Enter:Run", shortcutList{{Code: key.CodeReturnEnter}}, c.run)
	c.register("reset", "Del:Reset", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, c.reset)
	c.register("copy", "^C:Copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}, {Code: key.CodeC, Modifiers: key.ModControl}}, c.copy)
	c.register("save", "^S:Save", shortcutList{{Rune: 's', Modifiers: key.ModControl}, {Code: key.CodeS, Modifiers: key.ModControl}}, c.save)
	c.register("quit", "Q:Quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() { c.quit = true })
	return c
}

func (c *controller) register(name, label string, keys shortcutList, fn func()) {
	c.actions = append(c.actions, action{
		name:   name,
		label:  label,
		keys:   keys,
		button: &CacheButton{Button: &LabelButton{label: label, theme: c.app.Theme, activate: fn}},
		run:    fn,
	})
	for _, k := range keys.KeyboardShortcuts() {
		c.keymap[k] = name
	}
}

func (c *controller) trigger(name string) bool {
	for _, a := range c.actions {
		if a.name == name {
			a.run()
			return true
		}
	}
	return false
}

func (c *controller) counts() layoutCounts {
	return layoutCounts{
		tools:   len(c.tools),
		colors:  len(palette.Colors()),
		widths:  len(palette.Widths()),
		actions: len(c.actions),
	}
}

func (c *controller) toolbarWidth() int {
	w := labelWidth("sketchcalc")
	for _, k := range tool.All() {
		if lw := labelWidth(toolLabels[k]); lw > w {
			w = lw
		}
	}
	for _, a := range c.actions {
		if lw := labelWidth(a.label); lw > w {
			w = lw
		}
	}
	return w
}

func (c *controller) windowSize() image.Point {
	return windowSize(c.toolbarWidth(), c.app.Session.Surface().Bounds().Size(), c.counts())
}

func (c *controller) resize(w, h int) {
	c.size = image.Pt(w, h)
	c.layout = computeLayout(c.toolbarWidth(), c.app.Session.Surface().Bounds().Size(), w, h, c.counts())
	for i, b := range c.tools {
		b.SetRect(c.layout.tools[i])
	}
	for i, a := range c.actions {
		a.button.SetRect(c.layout.actions[i])
	}
}

func (c *controller) selectTool(k tool.Kind) {
	c.app.Session.SelectTool(k)
}

func (c *controller) selectColor(idx int) {
	if !c.app.Session.ColorEnabled() {
		return
	}
	c.colorIdx = idx
	c.app.Session.SetColor(palette.ColorAt(idx).Color)
}

func (c *controller) selectWidth(idx int) {
	c.widthIdx = idx
	c.app.Session.SetWidth(palette.WidthAt(idx))
}

func (c *controller) setStatus(msg string, isErr bool) {
	c.status = msg
	c.statusErr = isErr
}

// run validates and encodes the drawing, then hands the network call to
// dispatch. Validation failures are reported without any request.
func (c *controller) run() {
	sub, err := c.app.Solver.Prepare(c.ctx, c.app.Session.Surface())
	if err != nil {
		msg := solve.UserMessage(err)
		c.setStatus(msg, true)
		c.app.Notifier.Error(msg)
		return
	}
	c.pending = true
	c.setStatus("Solving...", false)
	if c.dispatch == nil {
		c.applyReply(sub.Run())
		return
	}
	c.dispatch(sub)
}

func (c *controller) applyReply(r solve.Reply) {
	out, err := c.app.Solver.Apply(c.app.Session.Surface(), r)
	if errors.Is(err, recognize.ErrStale) {
		return
	}
	c.pending = false
	if err != nil {
		c.setStatus(out.Status, true)
		c.app.Notifier.Error(out.Status)
		return
	}
	res := out.Result
	c.result = &res
	c.setStatus(out.Status, false)
	c.app.Notifier.Result(out.Status)
}

func (c *controller) reset() {
	c.app.Session.Reset()
	c.result = nil
	c.setStatus(idleStatus, false)
}

// copy puts the last result on the clipboard, or the drawing when nothing
// has been solved since the last reset.
func (c *controller) copy() {
	if c.result != nil {
		if err := writeText(c.result.String()); err != nil {
			log.Printf("copy: %v", err)
			c.setStatus(fmt.Sprintf("copy failed: %v", err), true)
			return
		}
		c.setStatus("result copied to clipboard", false)
		return
	}
	if err := writeImage(c.app.Session.Surface().Snapshot()); err != nil {
		log.Printf("copy: %v", err)
		c.setStatus(fmt.Sprintf("copy failed: %v", err), true)
		return
	}
	c.setStatus("drawing copied to clipboard", false)
}

func (c *controller) save() {
	data, err := encode.Encoder{}.Encode(c.app.Session.Surface().Image())
	if err == nil {
		err = writeFile(c.app.Output, data, 0o644)
	}
	if err != nil {
		log.Printf("save: %v", err)
		c.setStatus(fmt.Sprintf("save failed: %v", err), true)
		return
	}
	c.setStatus(fmt.Sprintf("saved %s", c.app.Output), false)
	c.app.Notifier.Save(c.app.Output)
}

// handleMouse routes a pointer event and reports whether a repaint is needed.
func (c *controller) handleMouse(p image.Point, btn mouse.Button, dir mouse.Direction) bool {
	sess := c.app.Session
	kind, idx := c.layout.hit(p)

	switch dir {
	case mouse.DirPress:
		if btn != mouse.ButtonLeft {
			return false
		}
		switch kind {
		case hitCanvas:
			sess.PointerDown(c.layout.local(p))
		case hitTool:
			c.tools[idx].Activate()
		case hitSwatch:
			c.selectColor(idx)
		case hitWidth:
			c.selectWidth(idx)
		case hitAction:
			c.actions[idx].button.Activate()
		default:
			return false
		}
		return true
	case mouse.DirRelease:
		if btn != mouse.ButtonLeft || !sess.Drawing() {
			return false
		}
		sess.PointerUp(c.layout.clampToCanvas(p))
		return true
	case mouse.DirNone:
		if sess.Drawing() {
			if kind == hitCanvas {
				sess.PointerMove(c.layout.local(p))
			} else {
				sess.PointerLeave(c.layout.clampToCanvas(p))
			}
			return true
		}
		if kind != c.hoverKind || idx != c.hoverIdx {
			c.hoverKind, c.hoverIdx = kind, idx
			return true
		}
	}
	return false
}

// handleKey runs the action bound to a key press and reports whether a
// repaint is needed. Bindings match either the rune or the key code so
// drivers that report control characters still trigger them.
func (c *controller) handleKey(e key.Event) bool {
	for _, ks := range []KeyShortcut{
		{Rune: unicode.ToLower(e.Rune), Modifiers: e.Modifiers},
		{Code: e.Code, Modifiers: e.Modifiers},
	} {
		if name, ok := c.keymap[ks]; ok {
			return c.trigger(name)
		}
	}
	if e.Modifiers == 0 {
		if k, ok := toolKeys[unicode.ToLower(e.Rune)]; ok {
			c.selectTool(k)
			return true
		}
	}
	return false
}

// frame renders the whole window into dst.
func (c *controller) frame(dst *image.RGBA) {
	th := c.app.Theme
	l := c.layout
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, l.toolbarWidth, l.status.Min.Y), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	current := c.app.Session.Tool()
	for i, k := range tool.All() {
		c.tools[i].Draw(dst, c.buttonState(hitTool, i, k == current))
	}
	c.drawSwatches(dst)
	c.drawWidths(dst)
	for i, a := range c.actions {
		st := c.buttonState(hitAction, i, false)
		if a.name == "run" && c.pending {
			st = StateDisabled
		}
		a.button.Draw(dst, st)
	}

	sr := c.app.Session.Surface().Image()
	draw.Draw(dst, l.canvas, &image.Uniform{th.CanvasBackground}, image.Point{}, draw.Src)
	draw.Draw(dst, l.canvas, sr, sr.Bounds().Min, draw.Over)

	c.drawStatus(dst)
}

func (c *controller) buttonState(kind hitKind, idx int, active bool) ButtonState {
	switch {
	case active:
		return StatePressed
	case c.hoverKind == kind && c.hoverIdx == idx:
		return StateHover
	}
	return StateDefault
}

func (c *controller) drawSwatches(dst *image.RGBA) {
	th := c.app.Theme
	enabled := c.app.Session.ColorEnabled()
	for i, e := range palette.Colors() {
		if i >= len(c.layout.swatches) {
			break
		}
		r := c.layout.swatches[i]
		draw.Draw(dst, r, &image.Uniform{e.Color}, image.Point{}, draw.Src)
		border := th.ButtonBorder
		if i == c.colorIdx {
			border = th.ButtonActive
		}
		outline(dst, r, border)
		if !enabled {
			tb := th.ToolbarBackground
			dim := color.NRGBA{R: tb.R, G: tb.G, B: tb.B, A: 0xc0}
			draw.Draw(dst, r, &image.Uniform{dim}, image.Point{}, draw.Over)
		}
	}
}

func (c *controller) drawWidths(dst *image.RGBA) {
	th := c.app.Theme
	for i, w := range palette.Widths() {
		if i >= len(c.layout.widths) {
			break
		}
		r := c.layout.widths[i]
		if i == c.widthIdx {
			draw.Draw(dst, r, &image.Uniform{th.ButtonActive}, image.Point{}, draw.Src)
		} else if c.hoverKind == hitWidth && c.hoverIdx == i {
			draw.Draw(dst, r, &image.Uniform{th.ButtonBackgroundHover}, image.Point{}, draw.Src)
		}
		bar := w / 5
		if bar < 1 {
			bar = 1
		}
		if limit := r.Dy() - 4; bar > limit {
			bar = limit
		}
		y0 := r.Min.Y + (r.Dy()-bar)/2
		draw.Draw(dst, image.Rect(r.Min.X+4, y0, r.Max.X-4, y0+bar), &image.Uniform{th.Foreground}, image.Point{}, draw.Src)
	}
}

func (c *controller) drawStatus(dst *image.RGBA) {
	th := c.app.Theme
	r := c.layout.status
	draw.Draw(dst, r, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	col := th.StatusText
	if c.statusErr {
		col = th.StatusError
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+gap, r.Min.Y+(r.Dy()+9)/2)}
	d.DrawString(c.status)
}

// ToolKey returns the key that selects k in the window.
func ToolKey(k tool.Kind) rune {
	for r, kind := range toolKeys {
		if kind == k {
			return r
		}
	}
	return 0
}
