package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button
type Button struct {
	Label   string
	X, Y    float64
	W, H    float64
	clicked bool
	OnClick func()

	BGColor    color.RGBA
	HoverColor color.RGBA
}

func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		W:          width,
		H:          height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

// Update fires OnClick once per press.
func (b *Button) Update() {
	b.press(hovered(b.X, b.Y, b.W, b.H) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (b *Button) press(down bool) {
	if !down {
		b.clicked = false
		return
	}
	if !b.clicked && b.OnClick != nil {
		b.OnClick()
	}
	b.clicked = true
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if hovered(b.X, b.Y, b.W, b.H) {
		bg = b.HoverColor
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, true)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, borderColor, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+8), int(b.Y+b.H/2-8))
}

func (b *Button) Height() float64 { return b.H + 8 }

func (b *Button) MoveTo(x, y float64) {
	b.X, b.Y = x, y
}

func (b *Button) Position() (float64, float64) { return b.X, b.Y }
