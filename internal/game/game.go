// Package game is the ebiten front end: it drives the flock one tick per frame and
// draws the latest snapshot as triangles.
package game

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/render"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/ui"
)

const panSpeed = 8.0

var (
	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	influenceColor  = color.RGBA{R: 0, G: 255, B: 0, A: 255}

	// source texture for DrawTriangles32, vertices sample its centre pixel
	whiteImage = ebiten.NewImage(3, 3)
)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	ctx    context.Context
	sim    *simulation.Simulation
	cfg    *simulation.Config
	logger log.Logger

	lastState *simulation.Snapshot
	frame     uint64

	projection *render.Projection
	mesh       render.Mesh
	vertices   []ebiten.Vertex
	points     []geometry.Vector2D

	// UI Controls
	panel               *ui.Panel
	widgetSpeed         *ui.Slider
	widgetShowInfluence *ui.Checkbox
	widgetPaused        *ui.Checkbox
	widgetFollow        *ui.Checkbox

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// New builds the game around a running simulation.
func New(ctx context.Context, cfg *simulation.Config, sim *simulation.Simulation, logger log.Logger) *Game {
	g := &Game{
		ctx:        ctx,
		sim:        sim,
		cfg:        cfg,
		logger:     logger,
		lastState:  &simulation.Snapshot{}, // Avoid nil pointer
		projection: render.NewProjection(cfg.ViewHalfWidth, cfg.ViewHalfHeight),
	}

	g.panel = ui.NewPanel("Flock", 10, 10, 240, 260)

	g.panel.AddSection("Flocking")
	g.widgetSpeed = g.panel.AddSlider("Speed", 0.1, 5, cfg.Speed)
	g.widgetSpeed.OnChange = func(v float64) {
		if err := g.sim.SetSpeed(g.ctx, v); err != nil {
			g.logger.Errorf("failed to send speed update: %v", err)
		}
	}
	g.widgetPaused = g.panel.AddCheckbox("Paused (space)", false)
	g.widgetPaused.OnToggle = g.setPaused

	g.panel.AddSection("View")
	g.widgetShowInfluence = g.panel.AddCheckbox("Show influence radius", cfg.ShowInfluence)
	g.widgetFollow = g.panel.AddCheckbox("Follow flock", false)
	g.panel.AddButton("Center on flock", g.centerOnFlock)

	return g
}

func (g *Game) setPaused(paused bool) {
	if err := g.sim.SetPaused(g.ctx, paused); err != nil {
		g.logger.Errorf("failed to send pause: %v", err)
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// exponential moving average
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.handleKeys()

	// skip any backlog so a stall never leaves the view behind the flock
	g.lastState = simulation.Latest(g.sim.Snapshots(), g.lastState)

	if g.widgetFollow.Value {
		g.centerOnFlock()
	}

	g.frame++
	if err := g.sim.Tick(g.ctx, g.frame); err != nil {
		return fmt.Errorf("failed to send tick: %w", err)
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPaused.Value = !g.widgetPaused.Value
		g.setPaused(g.widgetPaused.Value)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.panel.Hidden = !g.panel.Hidden
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.centerOnFlock()
	}

	// arrows move the camera, the world slides the other way
	pan := geometry.Zero
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		pan.X += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		pan.X -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pan.Y -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pan.Y += panSpeed
	}
	if pan != geometry.Zero {
		g.widgetFollow.Value = false
		g.projection.Pan(pan)
	}
}

func (g *Game) centerOnFlock() {
	g.points = g.points[:0]
	for _, a := range g.lastState.Agents {
		g.points = append(g.points, a.Position)
	}
	g.projection.SetTranslation(render.Center(render.Centroid(g.points)))
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	if g.widgetShowInfluence.Value {
		for _, a := range g.lastState.Agents {
			c := g.projection.ToScreen(a.Position, w, h)
			r := g.projection.LengthToScreen(a.InfluenceRadius, w)
			vector.StrokeCircle(screen, float32(c.X), float32(c.Y), float32(r), 1, influenceColor, true)
		}
	}
	g.drawFlock(screen, w, h)

	g.panel.Draw(screen)
	g.drawStats(screen, w)
}

// drawFlock renders every agent as two triangles in a single batched call.
func (g *Game) drawFlock(screen *ebiten.Image, w, h int) {
	g.mesh.Reset()
	for _, a := range g.lastState.Agents {
		g.mesh.AddBoid(a.Position, a.Facing, a.Size)
	}
	if len(g.mesh.Indices) == 0 {
		return
	}

	g.vertices = g.vertices[:0]
	for _, v := range g.mesh.Vertices {
		p := g.projection.ToScreen(v, w, h)
		g.vertices = append(g.vertices, ebiten.Vertex{
			DstX: float32(p.X),
			DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: 0.4, ColorG: 0.8, ColorB: 1, ColorA: 1,
		})
	}
	screen.DrawTriangles32(g.vertices, g.mesh.Indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) drawStats(screen *ebiten.Image, w int) {
	s := g.lastState
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nTick:   %d\nAgents: %d\nSpeed:  %.2f\nStep:   %s\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		s.Tick,
		len(s.Agents),
		s.Speed,
		s.Duration.Round(time.Microsecond),
		g.updateAvg,
		g.drawAvg)
	if s.Paused {
		msg += "\n\nPAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, w-170, 10)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return int(2 * g.cfg.ViewHalfWidth), int(2 * g.cfg.ViewHalfHeight)
}
