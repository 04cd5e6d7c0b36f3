package config

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadEngine(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.Equal(t, 180, cfg.Display.ScreenHeight)
	assert.Equal(t, 30, cfg.Simulation.TickRate)
	assert.Equal(t, 60, cfg.Simulation.TargetFPS)
	assert.Equal(t, 0.04, cfg.Camera.DeadZonePctX)
	assert.Equal(t, 0.82, cfg.Entity.Friction)
	assert.Equal(t, 0.33, cfg.Entity.MaxGridMovementPercent)
	assert.Equal(t, 1500*time.Millisecond, cfg.Cutscene.IntroDuration())
	assert.Equal(t, 300*time.Millisecond, cfg.Cutscene.ShakeDuration())
}

func TestLoader_LoadLevel(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadLevel("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 640, cfg.Size.Width)
	assert.Equal(t, 16, cfg.Size.TileSize)
	assert.Equal(t, 48, cfg.PlayerSpawn.X)
	assert.Equal(t, 208, cfg.PlayerSpawn.Y)
	assert.Len(t, cfg.Layers.Collision, 15)
	assert.NotEmpty(t, cfg.Entities)

	wall, ok := cfg.TileMapping["#"]
	require.True(t, ok)
	assert.True(t, wall.Solid)
	assert.Equal(t, "wall", wall.Type)
}

func TestLoader_DefaultsFillMissingFields(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/engine.json": {Data: []byte(`{"simulation": {"tickRate": 50}}`)},
	}
	loader := NewFSLoader(fsys, "configs")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Simulation.TickRate)
	assert.Equal(t, 60, cfg.Simulation.TargetFPS)
	assert.Equal(t, 320, cfg.Display.ScreenWidth)
	assert.True(t, cfg.Camera.ClampToBounds)
}

func TestLoader_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"engine.json":        {Data: []byte(`{"simulation": {"tickRate": 0}}`)},
		"levels/broken.json": {Data: []byte(`{"id": `)},
		"levels/empty.json":  {Data: []byte(`{"id": "empty"}`)},
	}
	loader := NewFSLoader(fsys, ".")

	_, err := loader.LoadEngine()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = loader.LoadLevel("missing")
	assert.ErrorContains(t, err, "failed to read levels/missing.json")

	_, err = loader.LoadLevel("broken")
	assert.ErrorContains(t, err, "failed to parse levels/broken.json")

	_, err = loader.LoadLevel("empty")
	assert.ErrorIs(t, err, ErrEmptyLevel)
}

func TestEngineConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *EngineConfig)
	}{
		{"screen", func(c *EngineConfig) { c.Display.ScreenWidth = 0 }},
		{"tick rate", func(c *EngineConfig) { c.Simulation.TickRate = -1 }},
		{"fps", func(c *EngineConfig) { c.Simulation.TargetFPS = 0 }},
		{"grid movement", func(c *EngineConfig) { c.Entity.MaxGridMovementPercent = 1.5 }},
		{"zoom", func(c *EngineConfig) { c.Camera.Zoom = 0 }},
	}

	require.NoError(t, DefaultEngine().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngine()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
