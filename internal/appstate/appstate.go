// Package appstate runs the interactive drawing window: a toolbar with
// tools, palette, widths and actions, the drawing area, and a status line
// showing the last recognition result or error.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/notify"
	"github.com/example/sketchcalc/internal/recognize"
	"github.com/example/sketchcalc/internal/session"
	"github.com/example/sketchcalc/internal/solve"
	"github.com/example/sketchcalc/internal/theme"
)

// DefaultOutput is where Save writes when no output path is configured.
const DefaultOutput = "sketch.png"

// AppState holds what the window needs to run.
type AppState struct {
	Session  *session.Session
	Solver   *solve.Solver
	Theme    *theme.Theme
	Output   string
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the drawing session shown in the window.
func WithSession(s *session.Session) Option { return func(a *AppState) { a.Session = s } }

// WithSolver sets the solver used by Run.
func WithSolver(s *solve.Solver) Option { return func(a *AppState) { a.Solver = s } }

// WithTheme sets the UI colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file Save writes to.
func WithOutput(path string) Option { return func(a *AppState) { a.Output = path } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState. Missing pieces get defaults: an 800x600 surface,
// the default endpoint and the default theme.
func New(opts ...Option) *AppState {
	a := &AppState{}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = session.New(canvas.New(800, 600))
	}
	if a.Solver == nil {
		a.Solver = solve.New(recognize.NewClient())
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Output == "" {
		a.Output = DefaultOutput
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// replyEvent carries a finished submission back onto the window event queue
// so the surface is only touched by the event loop.
type replyEvent struct {
	reply solve.Reply
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newController(ctx, a)
	winSize := c.windowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: winSize.X, Height: winSize.Y, Title: "sketchcalc"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	c.dispatch = func(sub *solve.Submission) {
		go func() { w.Send(replyEvent{reply: sub.Run()}) }()
	}
	c.resize(winSize.X, winSize.Y)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			c.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			publish(s, w, c)
		case mouse.Event:
			if c.handleMouse(image.Pt(int(e.X), int(e.Y)), e.Button, e.Direction) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if c.handleKey(e) {
				w.Send(paint.Event{})
			}
			if c.quit {
				return
			}
		case replyEvent:
			c.applyReply(e.reply)
			w.Send(paint.Event{})
		case error:
			log.Print(e)
		}
	}
}

func publish(s screen.Screen, w screen.Window, c *controller) {
	b, err := s.NewBuffer(c.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	c.frame(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
