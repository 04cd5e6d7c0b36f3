package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/domain/level"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

// groundLevel is a 10x6 room with a floor on row 5
func groundLevel(t *testing.T) *level.Grid {
	t.Helper()
	g, err := LoadLevel(levelConfig(
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"##########",
	))
	require.NoError(t, err)
	return g
}

func grounded(t *testing.T) (*PlayerController, *entity.Entity) {
	t.Helper()
	g := groundLevel(t)
	e := entity.NewPlatform("player", 16, g)
	e.SetCell(4, 4, 0.5, 1)
	require.True(t, e.OnGround())
	return NewPlayerController(e, config.PlayerConfig{Speed: 0.06, JumpForce: 0.9}), e
}

func tickBoth(p *PlayerController, e *entity.Entity) {
	p.FixedUpdate()
	e.FixedUpdate()
}

func TestInputState_Merge(t *testing.T) {
	prev := InputState{JumpPressed: true, Left: true}
	next := prev.Merge(InputState{Right: true})

	assert.True(t, next.JumpPressed, "one-shot presses survive until consumed")
	assert.True(t, next.Right)
	assert.False(t, next.Left, "held keys follow the latest frame")
}

func TestPlayerController_Walk(t *testing.T) {
	p, e := grounded(t)

	p.SetInput(InputState{Right: true})
	for i := 0; i < 10; i++ {
		tickBoth(p, e)
	}
	assert.Greater(t, e.VelocityX, 0.0)
	assert.Equal(t, 1, e.Dir)
	assert.True(t, e.OnGround())

	p.SetInput(InputState{Left: true})
	for i := 0; i < 30; i++ {
		tickBoth(p, e)
	}
	assert.Less(t, e.VelocityX, 0.0)
	assert.Equal(t, -1, e.Dir)
}

func TestPlayerController_OpposingKeysCancel(t *testing.T) {
	p, e := grounded(t)

	p.SetInput(InputState{Left: true, Right: true})
	tickBoth(p, e)

	assert.Equal(t, 0.0, e.VelocityX)
}

func TestPlayerController_Jump(t *testing.T) {
	p, e := grounded(t)
	jumps := 0
	p.OnJump = func(*entity.Entity) { jumps++ }

	p.SetInput(InputState{JumpPressed: true})
	p.FixedUpdate()

	assert.Equal(t, -0.9, e.VelocityY)
	assert.Equal(t, 1.25, e.StretchY())
	assert.Equal(t, 1, jumps)
	assert.False(t, p.Input().JumpPressed, "press consumed by the tick")

	e.FixedUpdate()
	assert.False(t, e.OnGround())
	startCY := e.CY

	for i := 0; i < 60 && !e.OnGround(); i++ {
		tickBoth(p, e)
	}
	assert.True(t, e.OnGround())
	assert.Equal(t, startCY, e.CY)
	assert.Equal(t, 1, jumps, "no double jump without a new press")
}

func TestPlayerController_JumpBuffer(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		jumps   bool
	}{
		{"press just before landing jumps on touchdown", 0, true},
		{"stale press is dropped", JumpBuffer, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, e := grounded(t)
			e.SetCell(4, 3, 0.5, 0.5) // half a cell above the floor

			p.SetInput(InputState{JumpPressed: true})
			tickBoth(p, e)
			require.False(t, e.OnGround())
			assert.GreaterOrEqual(t, e.VelocityY, 0.0, "no jump while airborne")

			e.PreUpdate(tt.elapsed)
			for i := 0; i < 60 && !e.OnGround(); i++ {
				tickBoth(p, e)
			}
			require.True(t, e.OnGround())

			p.FixedUpdate()
			assert.Equal(t, tt.jumps, e.VelocityY < 0)
		})
	}
}

func TestPlayerController_VariableJump(t *testing.T) {
	p, e := grounded(t)

	p.SetInput(InputState{JumpPressed: true})
	p.FixedUpdate()
	p.SetInput(InputState{JumpReleased: true})
	p.FixedUpdate()

	assert.Equal(t, -0.45, e.VelocityY)
}

func TestPlayerController_Disabled(t *testing.T) {
	p, e := grounded(t)
	p.Disabled = true

	p.SetInput(InputState{Right: true, JumpPressed: true})
	p.FixedUpdate()

	assert.Equal(t, 0.0, e.VelocityX)
	assert.Equal(t, 0.0, e.VelocityY)
	assert.False(t, p.Input().JumpPressed)
}
