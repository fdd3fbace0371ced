package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a boolean on click.
type Checkbox struct {
	Label   string
	Value   bool
	X, Y    float64
	Size    float64
	clicked bool // debounce: one toggle per press

	OnToggle func(v bool)
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// Update checks for mouse interaction
func (c *Checkbox) Update() {
	c.press(hovered(c.X, c.Y, c.Size, c.Size) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (c *Checkbox) press(down bool) {
	if !down {
		c.clicked = false
		return
	}
	if c.clicked {
		return
	}
	c.clicked = true
	c.Value = !c.Value
	if c.OnToggle != nil {
		c.OnToggle(c.Value)
	}
}

// Draw renders the box, its check mark and the label on the right.
func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen, float32(c.X), float32(c.Y), float32(c.Size), float32(c.Size), 2, borderColor, true)
	if c.Value {
		vector.FillRect(screen, float32(c.X+2), float32(c.Y+2), float32(c.Size-4), float32(c.Size-4), checkColor, true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.Size+8), int(c.Y))
}

func (c *Checkbox) Height() float64 { return c.Size + 8 }

func (c *Checkbox) MoveTo(x, y float64) {
	c.X, c.Y = x, y
}

func (c *Checkbox) Position() (float64, float64) { return c.X, c.Y }
