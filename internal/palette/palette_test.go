package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultColorIsWhite(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, ColorAt(DefaultColorIndex).Color)
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.RGBA{
		"white":          {255, 255, 255, 255},
		"Red":            {255, 0, 0, 255},
		"cornflowerblue": {100, 149, 237, 255},
		"#102030":        {0x10, 0x20, 0x30, 255},
		"#10203040":      {0x10, 0x20, 0x30, 0x40},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "notacolor", "#12"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestWidthsWithinToolRange(t *testing.T) {
	for _, w := range Widths() {
		assert.GreaterOrEqual(t, w, 5)
		assert.LessOrEqual(t, w, 50)
	}
	assert.Equal(t, 5, WidthAt(-3))
	assert.Equal(t, 50, WidthAt(1000))
}

func TestEnsureWidthClamps(t *testing.T) {
	idx := EnsureWidth(1)
	assert.Equal(t, 5, WidthAt(idx))
	idx = EnsureWidth(12)
	assert.Equal(t, 12, WidthAt(idx))
	idx = EnsureWidth(99)
	assert.Equal(t, 50, WidthAt(idx))
}

func TestEnsureAndName(t *testing.T) {
	col := color.RGBA{1, 2, 3, 255}
	idx := Ensure(col, "")
	assert.Equal(t, idx, Ensure(col, "ignored"))
	assert.Equal(t, "#010203", Name(col))
	assert.Equal(t, "White", Name(color.RGBA{255, 255, 255, 255}))
}
