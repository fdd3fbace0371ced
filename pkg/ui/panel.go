package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// Panel stacks widgets under section headers in a scrollable box.
type Panel struct {
	Title         string
	X, Y          float64
	Width, Height float64
	ScrollOffset  float64
	Hidden        bool

	BGColor     color.RGBA
	BorderColor color.RGBA

	rows []row
}

// row is either a section header (widget == nil) or a widget.
type row struct {
	title  string
	widget Widget
}

func NewPanel(title string, x, y, width, height float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new section; following widgets belong to it.
func (p *Panel) AddSection(title string) {
	p.rows = append(p.rows, row{title: title})
}

// AddSlider adds a slider sized to the panel width.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+margin, 0, p.Width-2*margin, label, min, max, value)
	p.Add(s)
	return s
}

// AddCheckbox adds a checkbox.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+margin, 0, label, value)
	p.Add(c)
	return c
}

// AddButton adds a full-width button.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+margin, 0, p.Width-2*margin, 24, label, onClick)
	p.Add(b)
	return b
}

// Add appends any widget and lays the panel out again.
func (p *Panel) Add(w Widget) {
	p.rows = append(p.rows, row{widget: w})
	p.layout()
}

// contentHeight is the height of everything below the title.
func (p *Panel) contentHeight() float64 {
	h := 0.0
	for _, r := range p.rows {
		if r.widget == nil {
			h += sectionHeight
		} else {
			h += r.widget.Height()
		}
	}
	return h
}

// layout positions every widget for the current scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, r := range p.rows {
		if r.widget == nil {
			y += sectionHeight
			continue
		}
		r.widget.MoveTo(p.X+margin, y)
		y += r.widget.Height()
	}
}

// Update scrolls the panel and forwards input to its widgets.
func (p *Panel) Update() {
	if p.Hidden {
		return
	}
	if _, dy := ebiten.Wheel(); dy != 0 && hovered(p.X, p.Y, p.Width, p.Height) {
		maxScroll := max(p.contentHeight()-p.Height+titleHeight+margin, 0)
		p.ScrollOffset = clamp(p.ScrollOffset-dy*20, 0, maxScroll)
		p.layout()
	}
	for _, r := range p.rows {
		if r.widget != nil && p.visible(r.widget) {
			r.widget.Update()
		}
	}
}

// visible reports whether w sits inside the scrolled content area.
func (p *Panel) visible(w Widget) bool {
	_, y := w.Position()
	return y >= p.Y+titleHeight-margin && y <= p.Y+p.Height-margin
}

// Draw renders the panel and all widgets
func (p *Panel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), p.BGColor, true)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.Width), float32(p.Height), 2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for _, r := range p.rows {
		if r.widget != nil {
			if p.visible(r.widget) {
				r.widget.Draw(screen)
			}
			y += r.widget.Height()
			continue
		}
		if y >= p.Y+titleHeight-margin && y <= p.Y+p.Height-sectionHeight {
			vector.FillRect(screen, float32(p.X+5), float32(y), float32(p.Width-10), 20, sectionBG, true)
			ebitenutil.DebugPrintAt(screen, r.title, int(p.X+margin), int(y+3))
		}
		y += sectionHeight
	}
}
