package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

func TestSpawnPlayer(t *testing.T) {
	g := groundLevel(t)
	g.SpawnCX, g.SpawnCY = 2, 4

	e := SpawnPlayer(g, config.EntityConfig{Friction: 0.9, Gravity: 0.1, MaxGridMovementPercent: 0.25, RestoreSpeed: 6})

	assert.Equal(t, 2, e.CX)
	assert.Equal(t, 4, e.CY)
	assert.Equal(t, 1.0, e.YR)
	assert.Equal(t, 0.9, e.FrictionX)
	assert.Equal(t, 0.9, e.FrictionY)
	assert.Equal(t, 0.1, e.GravityY)
	assert.Equal(t, 0.25, e.MaxGridMovementPercent)
	assert.Equal(t, 6.0, e.RestoreSpeed)
	assert.True(t, e.OnGround())
}

func TestApplyDefaults_ZeroKeepsEntityDefaults(t *testing.T) {
	e := entity.New("e", 16)
	ApplyDefaults(e, config.EntityConfig{Gravity: 0.5})

	assert.Equal(t, entity.DefaultFriction, e.FrictionX)
	assert.Equal(t, entity.DefaultMaxGridMovementPercent, e.MaxGridMovementPercent)
	assert.Equal(t, 0.0, e.GravityY, "gravity only applies to platform entities")
}

func TestSpawnEntities(t *testing.T) {
	g := groundLevel(t)
	lvl := &config.LevelConfig{
		Entities: []config.EntitySpawnConfig{
			{Name: "crate", Kind: KindPlatform, X: 40, Y: 48},
			{Kind: KindLevel, X: 100, Y: 60, VelocityX: 0.2, Width: 8, Height: 24},
			{Name: "bird", X: 8, Y: 8},
		},
	}

	got, err := SpawnEntities(lvl, g, config.EntityConfig{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	crate := got[0]
	assert.Equal(t, "crate", crate.Name)
	assert.IsType(t, &entity.PlatformCollision{}, crate.Collision)
	assert.Equal(t, 2, crate.CX)
	assert.Equal(t, 3, crate.CY)
	assert.InDelta(t, 0.5, crate.XR, 1e-12)

	guard := got[1]
	assert.Equal(t, "level-1", guard.Name)
	assert.IsType(t, &entity.LevelCollision{}, guard.Collision)
	assert.Equal(t, 0.2, guard.VelocityX)
	assert.Equal(t, 8.0, guard.Width)
	assert.Equal(t, 24.0, guard.Height)

	bird := got[2]
	assert.IsType(t, entity.NoCollision{}, bird.Collision)
}

func TestSpawnEntities_UnknownKind(t *testing.T) {
	g := groundLevel(t)
	lvl := &config.LevelConfig{
		Entities: []config.EntitySpawnConfig{{Name: "ghost", Kind: "ethereal"}},
	}

	_, err := SpawnEntities(lvl, g, config.EntityConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
