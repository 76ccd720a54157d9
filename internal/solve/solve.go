// Package solve runs the submit round trip for a drawing: validate and
// encode the surface, post it for recognition, and paint the first result
// back over the drawing.
//
// Prepare and Apply touch the surface and belong on the event loop that owns
// it. Submission.Run only does network I/O and may run on any goroutine.
package solve

import (
	"context"
	"log"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/overlay"
	"github.com/example/sketchcalc/internal/recognize"
)

// Recognizer submits an encoded drawing. *recognize.Client satisfies it.
type Recognizer interface {
	Submit(ctx context.Context, image string, vars map[string]any) ([]recognize.Result, error)
}

// Solver coordinates submissions for one surface.
type Solver struct {
	recognizer Recognizer
	encoder    encode.Encoder
	style      overlay.Style
	vars       map[string]any
	tracker    recognize.Tracker
}

// Option configures a Solver.
type Option func(*Solver)

// WithEncoder sets the encoder used for payloads.
func WithEncoder(e encode.Encoder) Option { return func(s *Solver) { s.encoder = e } }

// WithStyle sets the overlay style.
func WithStyle(st overlay.Style) Option { return func(s *Solver) { s.style = st } }

// WithVariables sets the symbol table sent with every submission.
func WithVariables(vars map[string]any) Option { return func(s *Solver) { s.vars = vars } }

// New creates a Solver backed by r.
func New(r Recognizer, opts ...Option) *Solver {
	s := &Solver{
		recognizer: r,
		style:      overlay.DefaultStyle(),
		vars:       map[string]any{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submission is a validated payload waiting to be sent.
type Submission struct {
	ID    uint64
	Image string

	ctx     context.Context
	release func()
	solver  *Solver
}

// Reply carries the outcome of a Submission back to the event loop.
type Reply struct {
	ID      uint64
	Results []recognize.Result
	Err     error
}

// Outcome is what the UI shows after a reply is applied.
type Outcome struct {
	Result recognize.Result
	// Status is "expr = result" on success or the user message on failure.
	Status string
}

// Prepare validates and encodes the surface. On success it starts a new
// request, cancelling any submission still in flight. Validation failures
// never reach the network.
func (s *Solver) Prepare(ctx context.Context, surface *canvas.Surface) (*Submission, error) {
	url, err := s.encoder.EncodeDataURL(surface.Image())
	if err != nil {
		return nil, classify(err)
	}
	id, rctx, release := s.tracker.Begin(ctx)
	return &Submission{ID: id, Image: url, ctx: rctx, release: release, solver: s}, nil
}

// Run performs the network round trip.
func (sub *Submission) Run() Reply {
	defer sub.release()
	results, err := sub.solver.recognizer.Submit(sub.ctx, sub.Image, sub.solver.vars)
	return Reply{ID: sub.ID, Results: results, Err: err}
}

// Apply paints the first result of r onto surface. Replies from superseded
// submissions return recognize.ErrStale and leave the surface alone, as do
// failed replies.
func (s *Solver) Apply(surface *canvas.Surface, r Reply) (Outcome, error) {
	if !s.tracker.Current(r.ID) {
		log.Printf("solve: dropping reply %d, newer request %d pending", r.ID, s.tracker.Latest())
		return Outcome{}, recognize.ErrStale
	}
	if r.Err == nil && len(r.Results) == 0 {
		r.Err = recognize.ErrMalformedResponse
	}
	if r.Err != nil {
		err := classify(r.Err)
		out := Outcome{Status: UserMessage(err)}
		log.Printf("solve: %v", err)
		return out, err
	}
	first := r.Results[0]
	if err := overlay.Paint(surface, first, s.style); err != nil {
		return Outcome{Status: msgInvalid}, err
	}
	out := Outcome{Result: first, Status: first.String()}
	log.Print(out.Status)
	return out, nil
}

// Solve runs Prepare, Run and Apply in sequence.
func (s *Solver) Solve(ctx context.Context, surface *canvas.Surface) (Outcome, error) {
	sub, err := s.Prepare(ctx, surface)
	if err != nil {
		return Outcome{Status: UserMessage(err)}, err
	}
	return s.Apply(surface, sub.Run())
}
