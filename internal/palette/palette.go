// Package palette lists the stroke colors and widths offered to the user and
// parses color names from configuration, scripts and flags.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"sync"

	"golang.org/x/image/colornames"

	"github.com/example/sketchcalc/internal/theme"
	"github.com/example/sketchcalc/internal/tool"
)

// Entry is a palette color with its display name.
type Entry struct {
	Name  string
	Color color.RGBA
}

// DefaultColorIndex points at White, the default ink on the dark canvas.
const DefaultColorIndex = 1

var (
	mu      sync.RWMutex
	entries = []Entry{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Orange", color.RGBA{255, 165, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
	widths = []int{5, 10, 15, 20, 30, 40, 50}
)

// Colors returns a copy of the palette.
func Colors() []Entry {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ColorAt returns the palette color at idx, clamped to the palette.
func ColorAt(idx int) Entry {
	mu.RLock()
	defer mu.RUnlock()
	return entries[clamp(idx, len(entries))]
}

// Ensure adds col to the palette if missing and returns its index.
func Ensure(col color.RGBA, name string) int {
	mu.Lock()
	defer mu.Unlock()
	for i, e := range entries {
		if e.Color == col {
			return i
		}
	}
	if name == "" {
		name = theme.Hex(col)
	}
	entries = append(entries, Entry{Name: name, Color: col})
	return len(entries) - 1
}

// Widths returns a copy of the offered stroke widths.
func Widths() []int {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// WidthAt returns the width at idx, clamped to the list.
func WidthAt(idx int) int {
	mu.RLock()
	defer mu.RUnlock()
	return widths[clamp(idx, len(widths))]
}

// EnsureWidth clamps w to the tool range, adds it to the list if missing and
// returns its index.
func EnsureWidth(w int) int {
	w = tool.ClampWidth(w)
	mu.Lock()
	defer mu.Unlock()
	for i, v := range widths {
		if v == w {
			return i
		}
	}
	widths = append(widths, w)
	sort.Ints(widths)
	for i, v := range widths {
		if v == w {
			return i
		}
	}
	return 0
}

// ParseColor accepts palette names, CSS color names and #RRGGBB[AA].
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(s, "#") {
		return theme.ParseColor(s)
	}
	mu.RLock()
	for _, e := range entries {
		if strings.EqualFold(e.Name, s) {
			mu.RUnlock()
			return e.Color, nil
		}
	}
	mu.RUnlock()
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// Name returns the palette name of col, or its hex form.
func Name(col color.RGBA) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, e := range entries {
		if e.Color == col {
			return e.Name
		}
	}
	return theme.Hex(col)
}

func clamp(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx >= n {
		return n - 1
	}
	return idx
}
