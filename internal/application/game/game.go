// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/gridsim/internal/application/scene"
)

// MaxFrameTime caps the measured frame time handed to a scene, so a
// stalled window does not dump seconds of simulation into one frame.
const MaxFrameTime = 250 * time.Millisecond

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	now  func() time.Time
	last time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// SetClock replaces the wall clock used to measure frame time.
// Useful for testing or fixed-step playback.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
	g.last = time.Time{}
}

// frameTime returns the time since the previous Update. The first frame
// assumes one ebiten tick.
func (g *Game) frameTime() time.Duration {
	t := g.now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = t.Sub(g.last)
	}
	g.last = t
	return min(max(dt, 0), MaxFrameTime)
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameTime())
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
