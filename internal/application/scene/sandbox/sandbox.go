// Package sandbox provides the demo scene: a level with a controllable
// platform entity, a few scripted entities, a following camera and an
// intro cutscene.
package sandbox

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/gridsim/internal/application/driver"
	"github.com/younwookim/gridsim/internal/application/replay"
	"github.com/younwookim/gridsim/internal/application/scene"
	"github.com/younwookim/gridsim/internal/application/state"
	"github.com/younwookim/gridsim/internal/application/system"
	"github.com/younwookim/gridsim/internal/domain/action"
	"github.com/younwookim/gridsim/internal/domain/camera"
	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/domain/level"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
	"github.com/younwookim/gridsim/internal/infrastructure/render"
)

const (
	letterboxIn  = 300 * time.Millisecond
	letterboxOut = 400 * time.Millisecond

	// hardLanding is the fall speed, in cells per tick, that squashes the
	// player and shakes the camera on touchdown
	hardLanding = 0.3

	zoomStep     = 1.25
	jumpZoomBump = 0.02
	knockback    = 0.4
)

// InputSource yields the frame time and input for each frame. ok is false
// once the source has nothing more to play.
type InputSource interface {
	Next(dt time.Duration) (time.Duration, system.InputState, bool)
}

// LiveInput reads the keyboard and passes the measured frame time through
type LiveInput struct {
	sys *system.InputSystem
}

// NewLiveInput creates a keyboard input source
func NewLiveInput() *LiveInput {
	return &LiveInput{sys: system.NewInputSystem()}
}

func (l *LiveInput) Next(dt time.Duration) (time.Duration, system.InputState, bool) {
	return dt, l.sys.GetInput(), true
}

// ReplayInput plays a recording back, ignoring the measured frame time
type ReplayInput struct {
	*replay.Replayer
}

func (r ReplayInput) Next(time.Duration) (time.Duration, system.InputState, bool) {
	return r.Replayer.Next()
}

// Options configures a sandbox
type Options struct {
	Engine *config.EngineConfig
	Level  *config.LevelConfig
	Input  InputSource

	// RecordPath enables input recording, saved on exit
	RecordPath string
}

// Sandbox is the demo scene (implements scene.Scene)
type Sandbox struct {
	cfg      *config.EngineConfig
	levelCfg *config.LevelConfig
	grid     *level.Grid
	state    state.SceneState

	driver     *driver.Driver
	camera     *camera.EntityCamera2D
	player     *entity.Entity
	controller *system.PlayerController
	entities   []*entity.Entity
	renderer   *render.Renderer
	background color.Color

	input      InputSource
	recorder   *replay.Recorder
	recordPath string

	cutscene  *cutscene
	letterbox float64

	wasGrounded bool
	fallSpeed   float64
	respawns    int
}

// cutscene adapts an action.Creator to the driver's update phase
type cutscene struct {
	*action.Creator
}

func (c *cutscene) Update(dt time.Duration) { c.Execute(dt) }

// New builds the scene and registers everything with its driver
func New(opts Options) (*Sandbox, error) {
	if opts.Engine == nil || opts.Level == nil {
		return nil, errors.New("sandbox: engine and level config are required")
	}
	cfg := opts.Engine

	grid, err := system.LoadLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to load level: %w", err)
	}

	s := &Sandbox{
		cfg:        cfg,
		levelCfg:   opts.Level,
		grid:       grid,
		state:      state.StateLoading,
		driver:     driver.New(cfg.Simulation.TickRate, cfg.Simulation.TargetFPS),
		renderer:   render.New(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight),
		background: render.ColorBG,
		input:      opts.Input,
		recordPath: opts.RecordPath,
	}
	s.driver.MaxTicksPerStep = cfg.Simulation.MaxTicksPerStep
	if s.input == nil {
		s.input = NewLiveInput()
	}
	if bg, err := render.ParseHexColor(opts.Level.Background); err == nil {
		s.background = bg
	}
	if s.recordPath != "" {
		s.recorder = replay.NewRecorder(opts.Level.ID, cfg.Simulation.TickRate)
	}

	s.player = system.SpawnPlayer(grid, cfg.Entity)
	s.player.OnFixedUpdate = s.onPlayerTick
	s.controller = system.NewPlayerController(s.player, cfg.Player)
	s.controller.OnJump = func(*entity.Entity) { s.camera.BumpZoom(jumpZoomBump) }

	s.entities, err = system.SpawnEntities(opts.Level, grid, cfg.Entity)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn entities: %w", err)
	}
	for _, e := range s.entities {
		s.script(e)
	}

	s.camera = newCamera(cfg, grid)

	// the controller must land its velocity before the player integrates
	objects := []any{s.controller, s.player}
	for _, e := range s.entities {
		objects = append(objects, e)
	}
	for _, o := range objects {
		if err := s.driver.Register(o); err != nil {
			return nil, err
		}
	}
	if err := s.driver.RegisterCamera(s.camera); err != nil {
		return nil, err
	}
	if err := s.camera.Follow(s.player, true); err != nil {
		return nil, err
	}

	return s, nil
}

func newCamera(cfg *config.EngineConfig, grid *level.Grid) *camera.EntityCamera2D {
	cc := cfg.Camera
	c := camera.New(float64(cfg.Display.ScreenWidth), float64(cfg.Display.ScreenHeight))
	c.DeadZonePctX = cc.DeadZonePctX
	c.DeadZonePctY = cc.DeadZonePctY
	c.Friction = cc.Friction
	c.TrackingSpeed = cc.TrackingSpeed
	c.BrakeDistanceNearBounds = cc.BrakeDistanceNearBounds
	c.ClampToBounds = cc.ClampToBounds
	c.SnapToPixel = cc.SnapToPixel
	c.Offset = camera.Vec{Y: cc.OffsetY}
	c.SetZoomImmediately(cc.Zoom)
	c.SetBounds(0, 0, grid.PixelWidth(), grid.PixelHeight())
	return c
}

// script gives spawned entities their behaviour
func (s *Sandbox) script(e *entity.Entity) {
	switch col := e.Collision.(type) {
	case *entity.LevelCollision:
		// patrol: keep speed and turn around at walls
		speed := math.Abs(e.VelocityX)
		if speed == 0 {
			return
		}
		e.FrictionX = 1
		e.Dir = int(math.Copysign(1, e.VelocityX))
		col.OnLevelCollision = func(e *entity.Entity, xDir, _ int) {
			if xDir != 0 {
				e.VelocityX = -float64(xDir) * speed
				e.Dir = -xDir
			}
		}
	case entity.NoCollision:
		// hover and spin in place
		e.FrictionY = 1
		e.OnFixedUpdate = func(e *entity.Entity) {
			e.VelocityY = 0.04 * math.Sin(float64(s.driver.Ticks())*0.15)
			e.Rotation += 0.08
		}
	}
}

// onPlayerTick runs after the player integrates each tick
func (s *Sandbox) onPlayerTick(e *entity.Entity) {
	grounded := e.OnGround()
	if grounded && !s.wasGrounded && s.fallSpeed > hardLanding {
		e.SetStretchY(s.cfg.Cutscene.LandingSquash)
		s.camera.Shake(s.cfg.Cutscene.ShakeDuration(), s.cfg.Cutscene.ShakePower*0.5)
	}
	s.wasGrounded = grounded
	s.fallSpeed = e.VelocityY

	if _, hit := system.TouchingHazard(s.grid, e); hit {
		s.respawn()
		return
	}

	for _, o := range s.entities {
		s.touch(e, o)
	}
}

// touch resolves contact between the player and another entity
func (s *Sandbox) touch(p, o *entity.Entity) {
	switch o.Collision.(type) {
	case entity.NoCollision:
		if p.IsCollidingWithSAT(o) {
			s.camera.BumpAngle(p.AngleTo(o), 4)
			s.remove(o)
			log.Printf("sandbox: %s collected %s", p.Name, o.Name)
		}
	case *entity.LevelCollision:
		if p.IsCollidingWith(o) {
			p.VelocityX = knockback * float64(o.DirTo(p.CenterX()))
			p.VelocityY = -knockback
			s.camera.Bump(p.VelocityX*8, 0)
		}
	}
}

func (s *Sandbox) remove(e *entity.Entity) {
	s.driver.Unregister(e)
	s.entities = slices.DeleteFunc(slices.Clone(s.entities), func(o *entity.Entity) bool { return o == e })
}

func (s *Sandbox) respawn() {
	s.respawns++
	s.player.SetCell(s.grid.SpawnCX, s.grid.SpawnCY, 0.5, 1)
	s.player.VelocityX, s.player.VelocityY = 0, 0
	s.camera.Shake(s.cfg.Cutscene.ShakeDuration(), s.cfg.Cutscene.ShakePower)
	if err := s.camera.Follow(s.player, true); err != nil {
		log.Printf("sandbox: %v", err)
	}
}

// buildIntro scripts the opening: bars slide in, the camera zooms from the
// intro zoom to the configured one, the player drops onto the floor, the
// camera shakes and control is handed over.
func (s *Sandbox) buildIntro() *action.Creator {
	cs := s.cfg.Cutscene
	return action.New(func(c *action.Creator) {
		c.Run(func() {
			s.controller.Disabled = true
			s.camera.SetZoomImmediately(cs.IntroZoom)
		})
		c.Tween(letterboxIn, 0, 1, ease.OutQuad, func(v float64) { s.letterbox = v })
		c.Tween(cs.IntroDuration(), cs.IntroZoom, s.cfg.Camera.Zoom, ease.InOutQuad, s.camera.SetZoomImmediately)
		c.WaitFor(s.player.OnGround, nil)
		c.Sequence(func(c *action.Creator) {
			c.Run(func() { s.camera.Shake(cs.ShakeDuration(), cs.ShakePower) })
			c.Wait(cs.ShakeDuration(), nil)
		})
		c.Tween(letterboxOut, 1, 0, ease.InQuad, func(v float64) { s.letterbox = v })
		c.Run(s.endCutscene)
	})
}

func (s *Sandbox) startCutscene() {
	s.state = state.StateCutscene
	s.cutscene = &cutscene{Creator: s.buildIntro()}
	// registration cannot fail, cutscenes do not attach
	_ = s.driver.Register(s.cutscene)
}

func (s *Sandbox) endCutscene() {
	if s.cutscene != nil {
		s.driver.Unregister(s.cutscene)
		s.cutscene = nil
	}
	s.letterbox = 0
	s.controller.Disabled = false
	s.camera.SetTargetZoom(s.cfg.Camera.Zoom)
	s.state = state.StatePlaying
}

// OnEnter starts the level, with the intro when enabled
func (s *Sandbox) OnEnter() {
	log.Printf("sandbox: entering %s (%dx%d cells, %d entities)",
		s.levelCfg.Name, s.grid.Width, s.grid.Height, len(s.entities)+1)
	if s.cfg.Cutscene.Enabled {
		s.startCutscene()
		return
	}
	s.state = state.StatePlaying
}

// OnExit saves the recording, if any
func (s *Sandbox) OnExit() {
	s.SaveRecording()
}

// SaveRecording writes the input recording to the configured path
func (s *Sandbox) SaveRecording() {
	if s.recorder == nil || s.recorder.FrameCount() == 0 {
		return
	}
	if err := s.recorder.Save(s.recordPath); err != nil {
		log.Printf("Failed to save recording: %v", err)
		return
	}
	log.Printf("Recording saved: %s (%d frames)", s.recordPath, s.recorder.FrameCount())
}

// Update proceeds the scene by one frame (implements scene.Scene)
func (s *Sandbox) Update(dt time.Duration) (scene.Scene, error) {
	dt, in, ok := s.input.Next(dt)
	if !ok {
		log.Printf("sandbox: input exhausted after %d ticks", s.driver.Ticks())
		return nil, ebiten.Termination
	}
	if s.recorder != nil {
		s.recorder.RecordFrame(dt, in)
	}

	if in.Debug {
		s.renderer.Debug = !s.renderer.Debug
	}

	switch s.state {
	case state.StatePlaying:
		if in.Pause {
			s.state = state.StatePaused
			return nil, nil
		}
		if in.ZoomIn {
			s.camera.SetTargetZoom(s.camera.TargetZoom() / zoomStep)
		}
		if in.ZoomOut {
			s.camera.SetTargetZoom(s.camera.TargetZoom() * zoomStep)
		}
		s.controller.SetInput(in)
	case state.StatePaused:
		if in.Pause {
			s.state = state.StatePlaying
		}
		return nil, nil
	case state.StateCutscene:
		if in.Skip {
			s.camera.SetZoomImmediately(s.cfg.Camera.Zoom)
			s.endCutscene()
		}
	}

	if s.state.Simulating() {
		s.driver.Step(dt)
	}
	return nil, nil
}

// Draw renders the scene (implements scene.Scene)
func (s *Sandbox) Draw(screen *ebiten.Image) {
	screen.Fill(s.background)

	s.renderer.DrawLevel(screen, s.camera, s.grid)
	for _, e := range s.entities {
		s.renderer.DrawEntity(screen, s.camera, e, render.ColorEntity)
	}
	s.renderer.DrawEntity(screen, s.camera, s.player, render.ColorPlayer)
	s.renderer.DrawLetterbox(screen, s.letterbox)

	if s.state == state.StatePaused {
		s.renderer.DrawDim(screen, 0.5)
		s.renderer.DrawText(screen, "PAUSED")
	}
	if s.renderer.Debug {
		s.renderer.DrawStats(screen, render.Stats{
			State:  s.state.String(),
			Ticks:  s.driver.Ticks(),
			Ratio:  s.driver.FixedProgressionRatio(),
			TMod:   s.driver.TMod(),
			Zoom:   s.camera.Zoom(),
			Player: s.player,
		})
	}
}

// State returns what the scene is doing
func (s *Sandbox) State() state.SceneState { return s.state }

// Player returns the controllable entity
func (s *Sandbox) Player() *entity.Entity { return s.player }

// Camera returns the scene camera
func (s *Sandbox) Camera() *camera.EntityCamera2D { return s.camera }

// Driver returns the scene driver
func (s *Sandbox) Driver() *driver.Driver { return s.driver }

// Entities returns the non-player entities still in the scene
func (s *Sandbox) Entities() []*entity.Entity { return s.entities }

// Respawns returns how many times the player hit a hazard
func (s *Sandbox) Respawns() int { return s.respawns }

// Letterbox returns how far the cutscene bars are closed in
func (s *Sandbox) Letterbox() float64 { return s.letterbox }

// Recorder returns the input recorder, nil when not recording
func (s *Sandbox) Recorder() *replay.Recorder { return s.recorder }
