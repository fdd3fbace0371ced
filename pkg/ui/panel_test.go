package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

// stubWidget is a widget type the panel knows nothing about.
type stubWidget struct {
	x, y, h float64
}

func (s *stubWidget) Update()                      {}
func (s *stubWidget) Draw(*ebiten.Image)           {}
func (s *stubWidget) Height() float64              { return s.h }
func (s *stubWidget) MoveTo(x, y float64)          { s.x, s.y = x, y }
func (s *stubWidget) Position() (float64, float64) { return s.x, s.y }

func TestPanel_VisibleUsesWidgetPosition(t *testing.T) {
	p := NewPanel("test", 0, 0, 200, 100)
	top := &stubWidget{h: 20}
	below := &stubWidget{h: 20}
	p.Add(top)
	p.Add(&stubWidget{h: 200})
	p.Add(below)

	assert.Equal(t, titleHeight, top.y)
	assert.True(t, p.visible(top))
	assert.False(t, p.visible(below), "widget below the panel is hidden")

	p.ScrollOffset = 220
	p.layout()
	assert.False(t, p.visible(top), "widget scrolled above the panel is hidden")
	assert.True(t, p.visible(below))
}

func TestPanel_LayoutStacksSectionsAndWidgets(t *testing.T) {
	p := NewPanel("test", 10, 20, 200, 300)
	p.AddSection("first")
	c := p.AddCheckbox("check", false)
	s := p.AddSlider("value", 0, 1, 0.5)

	_, cy := c.Position()
	_, sy := s.Position()
	assert.Equal(t, 20+titleHeight+sectionHeight, cy)
	assert.Equal(t, cy+c.Height()+16, sy)
	assert.True(t, p.visible(c))
	assert.True(t, p.visible(s))
}
