// Package render turns agent state into triangle geometry and screen coordinates.
// It has no graphics dependency; the ebiten game feeds its output to DrawTriangles32.
package render

import "github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"

// Proportions of a boid relative to its size.
const (
	BodyLength     = 1.0
	WingWidth      = 0.1
	TailLength     = 0.25
	WingMultiplier = 1.5 // exaggerates the wing spread for a caret look
)

// Vertex slots of one boid inside Mesh.Vertices.
const (
	FrontTip = iota
	FrontLeft
	FrontRight
	BackTip
	VerticesPerBoid
)

// IndicesPerBoid is two triangles: tip + wings, then wings + tail.
const IndicesPerBoid = 6

// Mesh holds world-space vertices and triangle indices for a whole flock.
// Buffers are reused between frames, call Reset before rebuilding.
type Mesh struct {
	Vertices []geometry.Vector2D
	Indices  []uint32
}

// Reset empties the mesh and keeps its capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Boids returns how many boids the mesh holds.
func (m *Mesh) Boids() int {
	return len(m.Vertices) / VerticesPerBoid
}

// AddBoid appends one boid drawn at pos, pointing along facing.
// A zero facing collapses the boid onto pos.
func (m *Mesh) AddBoid(pos, facing geometry.Vector2D, size float64) {
	f := facing.Normalize()
	perp := f.Perp()

	wingBack := f.Mul(-WingWidth * size)
	wingSide := perp.Mul(WingWidth * size * WingMultiplier)

	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		pos.Add(f.Mul(BodyLength*size)),
		pos.Add(wingBack).Add(wingSide),
		pos.Add(wingBack).Sub(wingSide),
		pos.Add(f.Mul(TailLength*size)),
	)
	m.Indices = append(m.Indices,
		base+FrontTip, base+FrontLeft, base+BackTip,
		base+FrontTip, base+FrontRight, base+BackTip,
	)
}
