package solve

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/sketchcalc/internal/canvas"
	"github.com/example/sketchcalc/internal/encode"
	"github.com/example/sketchcalc/internal/overlay"
	"github.com/example/sketchcalc/internal/recognize"
)

type fakeRecognizer struct {
	calls   int
	images  []string
	results []recognize.Result
	err     error
}

func (f *fakeRecognizer) Submit(ctx context.Context, image string, vars map[string]any) ([]recognize.Result, error) {
	f.calls++
	f.images = append(f.images, image)
	return f.results, f.err
}

func drawn(t *testing.T) *canvas.Surface {
	t.Helper()
	s := canvas.New(120, 80)
	s.StrokeSegment(image.Pt(10, 10), image.Pt(100, 60), color.RGBA{255, 255, 255, 255}, 5)
	return s
}

func TestEmptySurfaceNeverSubmits(t *testing.T) {
	f := &fakeRecognizer{}
	out, err := New(f).Solve(context.Background(), canvas.New(50, 50))

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, KindValidation, se.Kind)
	assert.ErrorIs(t, err, encode.ErrEmptySurface)
	assert.Equal(t, "Error: Please draw something before running.", out.Status)
	assert.Equal(t, 0, f.calls)
}

func TestSuccessPaintsOverlay(t *testing.T) {
	f := &fakeRecognizer{results: []recognize.Result{{Expression: "2+2", Result: "4"}, {Expression: "ignored", Result: "0"}}}
	s := drawn(t)
	out, err := New(f).Solve(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "2+2 = 4", out.Status)
	assert.Equal(t, recognize.Result{Expression: "2+2", Result: "4"}, out.Result)
	require.Len(t, f.images, 1)
	assert.Contains(t, f.images[0], "data:image/png;base64,")

	want := canvas.New(120, 80)
	require.NoError(t, overlay.Paint(want, out.Result, overlay.DefaultStyle()))
	assert.Equal(t, want.Image().Pix, s.Image().Pix)
}

func TestFailuresLeaveSurfaceUntouched(t *testing.T) {
	cases := map[string]struct {
		rec  *fakeRecognizer
		kind Kind
		msg  string
	}{
		"empty data": {&fakeRecognizer{err: fmt.Errorf("%w: empty data list", recognize.ErrMalformedResponse)}, KindResponseFormat, "Error: Unexpected backend response."},
		"no results": {&fakeRecognizer{}, KindResponseFormat, "Error: Unexpected backend response."},
		"network":    {&fakeRecognizer{err: fmt.Errorf("%w: refused", recognize.ErrNetwork)}, KindNetwork, "Network error. Check backend server."},
		"unknown":    {&fakeRecognizer{err: errors.New("boom")}, KindNetwork, "Network error. Check backend server."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := drawn(t)
			before := s.Snapshot()
			out, err := New(tc.rec).Solve(context.Background(), s)
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.kind, se.Kind)
			assert.Equal(t, tc.msg, out.Status)
			assert.Equal(t, tc.msg, UserMessage(err))
			assert.Equal(t, before.Pix, s.Image().Pix)
		})
	}
}

func TestEmptyDataListOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	s := drawn(t)
	before := s.Snapshot()
	out, err := New(recognize.NewClient(recognize.WithEndpoint(srv.URL))).Solve(context.Background(), s)
	assert.ErrorIs(t, err, recognize.ErrMalformedResponse)
	assert.Equal(t, "Error: Unexpected backend response.", out.Status)
	assert.Equal(t, before.Pix, s.Image().Pix)
}

func TestSmallPayloadIsInvalid(t *testing.T) {
	f := &fakeRecognizer{}
	sv := New(f, WithEncoder(encode.Encoder{MinLength: 1 << 20}))
	out, err := sv.Solve(context.Background(), drawn(t))
	assert.ErrorIs(t, err, encode.ErrEncoding)
	assert.Equal(t, "Error: Image data is invalid.", out.Status)
	assert.Equal(t, 0, f.calls)
}

func TestStaleReplyDiscarded(t *testing.T) {
	f := &fakeRecognizer{results: []recognize.Result{{Expression: "1+1", Result: "2"}}}
	sv := New(f)
	s := drawn(t)

	first, err := sv.Prepare(context.Background(), s)
	require.NoError(t, err)
	second, err := sv.Prepare(context.Background(), s)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	before := s.Snapshot()
	_, err = sv.Apply(s, first.Run())
	assert.ErrorIs(t, err, recognize.ErrStale)
	assert.Empty(t, UserMessage(err))
	assert.Equal(t, before.Pix, s.Image().Pix)

	out, err := sv.Apply(s, second.Run())
	require.NoError(t, err)
	assert.Equal(t, "1+1 = 2", out.Status)
}

func TestPrepareCancelsPrevious(t *testing.T) {
	sv := New(&fakeRecognizer{})
	s := drawn(t)
	first, err := sv.Prepare(context.Background(), s)
	require.NoError(t, err)
	_, err = sv.Prepare(context.Background(), s)
	require.NoError(t, err)
	assert.ErrorIs(t, first.ctx.Err(), context.Canceled)
}

func TestVariablesForwarded(t *testing.T) {
	var got map[string]any
	rec := recognizerFunc(func(ctx context.Context, image string, vars map[string]any) ([]recognize.Result, error) {
		got = vars
		return []recognize.Result{{Expression: "x", Result: "5"}}, nil
	})
	_, err := New(rec, WithVariables(map[string]any{"x": 5})).Solve(context.Background(), drawn(t))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 5}, got)
}

type recognizerFunc func(ctx context.Context, image string, vars map[string]any) ([]recognize.Result, error)

func (f recognizerFunc) Submit(ctx context.Context, image string, vars map[string]any) ([]recognize.Result, error) {
	return f(ctx, image, vars)
}
