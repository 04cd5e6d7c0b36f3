package config

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLevel is returned for a level without collision rows
	ErrEmptyLevel = errors.New("level has no collision layer")
	// ErrInvalidConfig is wrapped by validation failures
	ErrInvalidConfig = errors.New("invalid config")
)

// DefaultEngine returns the engine config used when a field is left out
// of engine.json
func DefaultEngine() *EngineConfig {
	return &EngineConfig{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 180,
			Scale:        3,
			Title:        "gridsim",
		},
		Simulation: SimulationConfig{
			TickRate:        30,
			TargetFPS:       60,
			MaxTicksPerStep: 8,
		},
		Camera: CameraConfig{
			DeadZonePctX:            0.04,
			DeadZonePctY:            0.1,
			Friction:                0.89,
			TrackingSpeed:           1,
			BrakeDistanceNearBounds: 0.1,
			ClampToBounds:           true,
			SnapToPixel:             true,
			Zoom:                    1,
		},
		Entity: EntityConfig{
			Friction:               0.82,
			MaxGridMovementPercent: 0.33,
			Gravity:                0.075,
			RestoreSpeed:           12,
		},
		Player: PlayerConfig{
			Speed:     0.06,
			JumpForce: 0.9,
		},
		Cutscene: CutsceneConfig{
			Enabled:       true,
			IntroMs:       1500,
			IntroZoom:     0.75,
			ShakePower:    1,
			ShakeMs:       300,
			LandingSquash: 0.7,
		},
	}
}

// Validate checks values the engine cannot run with
func (c *EngineConfig) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("%w: tickRate %d", ErrInvalidConfig, c.Simulation.TickRate)
	case c.Simulation.TargetFPS <= 0:
		return fmt.Errorf("%w: targetFPS %d", ErrInvalidConfig, c.Simulation.TargetFPS)
	case c.Entity.MaxGridMovementPercent <= 0 || c.Entity.MaxGridMovementPercent > 1:
		return fmt.Errorf("%w: maxGridMovementPercent %v", ErrInvalidConfig, c.Entity.MaxGridMovementPercent)
	case c.Camera.Zoom <= 0:
		return fmt.Errorf("%w: camera zoom %v", ErrInvalidConfig, c.Camera.Zoom)
	}
	return nil
}
