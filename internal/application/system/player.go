package system

import (
	"time"

	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/infrastructure/config"
)

// Timer names on the player's cooldown
const (
	coyoteTimer     = "coyote"
	jumpBufferTimer = "jumpBuffer"
)

const (
	// CoyoteTime is how long after leaving a ledge a jump still counts
	CoyoteTime = 100 * time.Millisecond
	// JumpBuffer is how long a jump press waits for the ground
	JumpBuffer = 100 * time.Millisecond

	variableJumpMultiplier = 0.5
	jumpStretch            = 1.25
	airControl             = 0.6
)

// PlayerController turns input into velocity on a platform entity. It is
// registered with the driver ahead of the entity it drives, so its fixed
// update lands before the entity integrates.
type PlayerController struct {
	Entity *entity.Entity
	cfg    config.PlayerConfig

	input    InputState
	Disabled bool

	// OnJump is called when a jump starts
	OnJump func(e *entity.Entity)
}

// NewPlayerController creates a controller for e
func NewPlayerController(e *entity.Entity, cfg config.PlayerConfig) *PlayerController {
	return &PlayerController{Entity: e, cfg: cfg}
}

// SetInput stores the frame's input for the next fixed tick
func (p *PlayerController) SetInput(in InputState) {
	p.input = p.input.Merge(in)
}

// Input returns the input pending for the next tick
func (p *PlayerController) Input() InputState {
	return p.input
}

// FixedUpdate applies the pending input for one tick
func (p *PlayerController) FixedUpdate() {
	in := p.input
	p.input = InputState{Left: in.Left, Right: in.Right, Jump: in.Jump}
	if p.Disabled {
		return
	}

	e := p.Entity
	grounded := e.OnGround()
	if grounded {
		e.Cooldown.Timeout(coyoteTimer, CoyoteTime, nil)
	}

	speed := p.cfg.Speed
	if !grounded {
		speed *= airControl
	}
	switch {
	case in.Left && !in.Right:
		e.VelocityX -= speed
		e.Dir = -1
	case in.Right && !in.Left:
		e.VelocityX += speed
		e.Dir = 1
	}

	if in.JumpPressed {
		e.Cooldown.Timeout(jumpBufferTimer, JumpBuffer, nil)
	}
	if e.Cooldown.Has(jumpBufferTimer) && (grounded || e.Cooldown.Has(coyoteTimer)) {
		e.VelocityY = -p.cfg.JumpForce
		e.SetStretchY(jumpStretch)
		e.Cooldown.Remove(jumpBufferTimer)
		e.Cooldown.Remove(coyoteTimer)
		if p.OnJump != nil {
			p.OnJump(e)
		}
	}

	if in.JumpReleased && e.VelocityY < 0 {
		e.VelocityY *= variableJumpMultiplier
	}
}
