package render

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Projection is an orthographic view of the world combined with a translation.
// The visible area is [-HalfWidth, HalfWidth] x [-HalfHeight, HalfHeight] after
// translation, with y pointing up.
type Projection struct {
	HalfWidth   float64
	HalfHeight  float64
	Translation geometry.Vector2D
}

func NewProjection(halfWidth, halfHeight float64) *Projection {
	return &Projection{HalfWidth: halfWidth, HalfHeight: halfHeight}
}

// SetTranslation moves the world relative to the view.
func (p *Projection) SetTranslation(t geometry.Vector2D) {
	p.Translation = t
}

// Pan adds d to the current translation.
func (p *Projection) Pan(d geometry.Vector2D) {
	p.Translation = p.Translation.Add(d)
}

// ToScreen maps a world point to pixel coordinates on a width x height screen
// whose origin is the top-left corner.
func (p *Projection) ToScreen(v geometry.Vector2D, width, height int) geometry.Vector2D {
	v = v.Add(p.Translation)
	nx := v.X / p.HalfWidth
	ny := v.Y / p.HalfHeight
	return geometry.Vector2D{
		X: (nx + 1) / 2 * float64(width),
		Y: (1 - ny) / 2 * float64(height),
	}
}

// LengthToScreen converts a world distance to pixels along the x axis.
func (p *Projection) LengthToScreen(l float64, width int) float64 {
	return l / (2 * p.HalfWidth) * float64(width)
}

// Center returns the translation that puts c in the middle of the view.
func Center(c geometry.Vector2D) geometry.Vector2D {
	return c.Mul(-1)
}

// Centroid returns the mean of points, or the origin for no points.
func Centroid(points []geometry.Vector2D) geometry.Vector2D {
	if len(points) == 0 {
		return geometry.Zero
	}
	sum := geometry.Zero
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
