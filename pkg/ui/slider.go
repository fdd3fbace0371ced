package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider edits a float value in [Min, Max] by clicking or dragging.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64

	// OnChange is called once per frame while the value changes.
	OnChange func(v float64)
}

func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	return &Slider{
		Label: label,
		Value: clamp(value, min, max),
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     12,
	}
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || !hovered(s.X, s.Y, s.W, s.H) {
		return
	}
	mx, _ := ebiten.CursorPosition()
	s.set(s.valueAt(float64(mx)))
}

func (s *Slider) valueAt(px float64) float64 {
	p := (px - s.X) / s.W
	return clamp(s.Min+p*(s.Max-s.Min), s.Min, s.Max)
}

func (s *Slider) set(v float64) {
	if v == s.Value {
		return
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// Draw renders the label, the track and the filled part.
func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %.2f", s.Label, s.Value), int(s.X), int(s.Y)-16)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), trackColor, true)

	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), fillColor, true)
}

func (s *Slider) Height() float64 { return s.H + 25 }

func (s *Slider) MoveTo(x, y float64) {
	s.X, s.Y = x, y+16
}

func (s *Slider) Position() (float64, float64) { return s.X, s.Y }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
