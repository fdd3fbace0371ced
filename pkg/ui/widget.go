// Package ui holds the small immediate-mode widgets drawn over the flock.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is anything the panel can stack vertically.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	MoveTo(x, y float64)
	// Position is the top-left corner of the interactive area.
	Position() (x, y float64)
}

var (
	_ Widget = (*Slider)(nil)
	_ Widget = (*Checkbox)(nil)
	_ Widget = (*Button)(nil)
)

var (
	trackColor  = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	fillColor   = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	borderColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	checkColor  = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)

// hovered reports whether the cursor is inside the rectangle.
func hovered(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return inside(float64(mx), float64(my), x, y, w, h)
}

func inside(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}
