package config

import "time"

// EngineConfig is the root config for engine.json
type EngineConfig struct {
	Display    DisplayConfig    `json:"display"`
	Simulation SimulationConfig `json:"simulation"`
	Camera     CameraConfig     `json:"camera"`
	Entity     EntityConfig     `json:"entity"`
	Player     PlayerConfig     `json:"player"`
	Cutscene   CutsceneConfig   `json:"cutscene"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Title        string `json:"title"`
}

// SimulationConfig sets up the scene driver
type SimulationConfig struct {
	TickRate        int `json:"tickRate"`        // fixed ticks per second
	TargetFPS       int `json:"targetFPS"`       // frame rate at which tmod is 1
	MaxTicksPerStep int `json:"maxTicksPerStep"` // 0 disables the limit
}

type CameraConfig struct {
	DeadZonePctX            float64 `json:"deadZonePctX"`
	DeadZonePctY            float64 `json:"deadZonePctY"`
	Friction                float64 `json:"friction"`
	TrackingSpeed           float64 `json:"trackingSpeed"`
	BrakeDistanceNearBounds float64 `json:"brakeDistanceNearBounds"`
	ClampToBounds           bool    `json:"clampToBounds"`
	SnapToPixel             bool    `json:"snapToPixel"`
	Zoom                    float64 `json:"zoom"`
	OffsetY                 float64 `json:"offsetY"`
}

// EntityConfig holds defaults applied to every spawned entity
type EntityConfig struct {
	Friction               float64 `json:"friction"`
	MaxGridMovementPercent float64 `json:"maxGridMovementPercent"`
	Gravity                float64 `json:"gravity"`
	RestoreSpeed           float64 `json:"restoreSpeed"`
}

// PlayerConfig tunes the controllable platform entity, in cells per tick
type PlayerConfig struct {
	Speed     float64 `json:"speed"`
	JumpForce float64 `json:"jumpForce"`
}

type CutsceneConfig struct {
	Enabled       bool    `json:"enabled"`
	IntroMs       int     `json:"introMs"`
	IntroZoom     float64 `json:"introZoom"`
	ShakePower    float64 `json:"shakePower"`
	ShakeMs       int     `json:"shakeMs"`
	LandingSquash float64 `json:"landingSquash"`
}

// IntroDuration returns the intro pan length
func (c CutsceneConfig) IntroDuration() time.Duration {
	return time.Duration(c.IntroMs) * time.Millisecond
}

// ShakeDuration returns the landing shake length
func (c CutsceneConfig) ShakeDuration() time.Duration {
	return time.Duration(c.ShakeMs) * time.Millisecond
}
