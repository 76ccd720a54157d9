// Package theme holds the color palettes used by the canvas window and the
// result overlay.
package theme

import (
	"image/color"
)

// Theme defines the colors of the UI chrome, the drawing area and the
// result overlay.
type Theme struct {
	Name string

	// Window
	Background color.RGBA
	Foreground color.RGBA

	// Toolbar
	ToolbarBackground     color.RGBA
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // selected tool or width
	ButtonText            color.RGBA
	ButtonTextDisabled    color.RGBA
	ButtonBorder          color.RGBA

	// Status line
	StatusBackground color.RGBA
	StatusText       color.RGBA
	StatusError      color.RGBA

	// Drawing area, shown behind transparent pixels
	CanvasBackground color.RGBA

	// Result overlay
	OverlayBackground color.RGBA
	OverlayText       color.RGBA
}

// Default returns the built-in dark theme. The drawing area is black so the
// default white ink is visible.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{32, 32, 32, 255},
		Foreground:            color.RGBA{230, 230, 230, 255},
		ToolbarBackground:     color.RGBA{45, 45, 45, 255},
		ButtonBackground:      color.RGBA{70, 70, 70, 255},
		ButtonBackgroundHover: color.RGBA{90, 90, 90, 255},
		ButtonBackgroundPress: color.RGBA{110, 110, 110, 255},
		ButtonActive:          color.RGBA{30, 110, 200, 255},
		ButtonText:            color.RGBA{240, 240, 240, 255},
		ButtonTextDisabled:    color.RGBA{130, 130, 130, 255},
		ButtonBorder:          color.RGBA{20, 20, 20, 255},
		StatusBackground:      color.RGBA{45, 45, 45, 255},
		StatusText:            color.RGBA{230, 230, 230, 255},
		StatusError:           color.RGBA{240, 90, 90, 255},
		CanvasBackground:      color.RGBA{0, 0, 0, 255},
		OverlayBackground:     color.RGBA{0, 0, 0, 255},
		OverlayText:           color.RGBA{255, 255, 255, 255},
	}
}
