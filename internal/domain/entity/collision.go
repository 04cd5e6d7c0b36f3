package entity

import "math"

// Default collision thresholds, in sub-cell ratio
const (
	DefaultRightCollisionRatio  = 0.7
	DefaultLeftCollisionRatio   = 0.3
	DefaultBottomCollisionRatio = 1.0
	DefaultTopCollisionRatio    = 1.0

	// DefaultPlatformGravity is added to VelocityY every tick while airborne
	DefaultPlatformGravity = 0.075
)

// Level is the collision surface an entity moves against
type Level interface {
	HasCollision(cx, cy int) bool
}

// CollisionPolicy supplies gravity and collision response to the integrator.
// Pre hooks run right after the ratio advances on an axis and before the
// matching Check hook.
type CollisionPolicy interface {
	GravityX(e *Entity) float64
	GravityY(e *Entity) float64
	PreX(e *Entity)
	CheckX(e *Entity)
	PreY(e *Entity)
	CheckY(e *Entity)
}

// NoCollision moves freely with no gravity
type NoCollision struct{}

func (NoCollision) GravityX(*Entity) float64 { return 0 }
func (NoCollision) GravityY(*Entity) float64 { return 0 }
func (NoCollision) PreX(*Entity)             {}
func (NoCollision) CheckX(*Entity)           {}
func (NoCollision) PreY(*Entity)             {}
func (NoCollision) CheckY(*Entity)           {}

// LevelCollision blocks movement into solid cells. An entity is stopped once
// its ratio crosses the threshold for that side, so the collision box can
// be tighter than the cell.
type LevelCollision struct {
	Level Level

	RightRatio  float64
	LeftRatio   float64
	BottomRatio float64
	TopRatio    float64
	// UseTopRatio selects TopRatio for ceilings. Otherwise the threshold is
	// the entity height in whole cells.
	UseTopRatio bool

	// OnLevelCollision is called with the direction of each impact
	OnLevelCollision func(e *Entity, xDir, yDir int)
}

// NewLevelCollision creates a level policy with the default thresholds
func NewLevelCollision(lvl Level) *LevelCollision {
	return &LevelCollision{
		Level:       lvl,
		RightRatio:  DefaultRightCollisionRatio,
		LeftRatio:   DefaultLeftCollisionRatio,
		BottomRatio: DefaultBottomCollisionRatio,
		TopRatio:    DefaultTopCollisionRatio,
	}
}

func (c *LevelCollision) GravityX(*Entity) float64 { return 0 }
func (c *LevelCollision) GravityY(*Entity) float64 { return 0 }
func (c *LevelCollision) PreX(*Entity)             {}
func (c *LevelCollision) PreY(*Entity)             {}

// CheckX pins the ratio against a solid neighbour and halves the velocity
func (c *LevelCollision) CheckX(e *Entity) {
	if c.Level.HasCollision(e.CX+1, e.CY) && e.XR >= c.RightRatio {
		e.PinX(c.RightRatio)
		e.VelocityX *= 0.5
		c.collided(e, 1, 0)
	}
	if c.Level.HasCollision(e.CX-1, e.CY) && e.XR <= c.LeftRatio {
		e.PinX(c.LeftRatio)
		e.VelocityX *= 0.5
		c.collided(e, -1, 0)
	}
}

// CheckY pins the ratio against a solid ceiling or floor and stops the entity
func (c *LevelCollision) CheckY(e *Entity) {
	top := c.TopRatio
	if !c.UseTopRatio {
		top = math.Floor(e.Height / e.GridCellSize)
	}
	if c.Level.HasCollision(e.CX, e.CY-1) && e.YR <= top {
		e.PinY(top)
		e.VelocityY = 0
		c.collided(e, 0, -1)
	}
	if c.Level.HasCollision(e.CX, e.CY+1) && e.YR >= c.BottomRatio {
		e.PinY(c.BottomRatio)
		e.VelocityY = 0
		c.collided(e, 0, 1)
	}
}

func (c *LevelCollision) collided(e *Entity, xDir, yDir int) {
	if c.OnLevelCollision != nil {
		c.OnLevelCollision(e, xDir, yDir)
	}
}

// PlatformCollision is a level policy with downward gravity while airborne
type PlatformCollision struct {
	*LevelCollision
}

// NewPlatformCollision creates a platform policy with the default thresholds
func NewPlatformCollision(lvl Level) *PlatformCollision {
	return &PlatformCollision{LevelCollision: NewLevelCollision(lvl)}
}

// OnGround reports whether e stands on a solid cell: no vertical speed, a
// solid cell below and the ratio resting on the bottom threshold.
func (c *PlatformCollision) OnGround(e *Entity) bool {
	return e.VelocityY == 0 &&
		c.Level.HasCollision(e.CX, e.CY+1) &&
		e.YR == c.BottomRatio
}

// GravityY pulls the entity down unless it is on the ground
func (c *PlatformCollision) GravityY(e *Entity) float64 {
	if !e.HasGravity || c.OnGround(e) {
		return 0
	}
	return e.GravityMultiplier * e.GravityY
}

// NewPlatform creates an entity that walks on lvl under gravity
func NewPlatform(name string, gridCellSize float64, lvl Level) *Entity {
	e := New(name, gridCellSize)
	e.GravityY = DefaultPlatformGravity
	e.Collision = NewPlatformCollision(lvl)
	return e
}

// NewLevelEntity creates an entity that collides with lvl without gravity
func NewLevelEntity(name string, gridCellSize float64, lvl Level) *Entity {
	e := New(name, gridCellSize)
	e.Collision = NewLevelCollision(lvl)
	return e
}

// OnGround reports whether e is grounded under a platform policy.
// Entities with any other policy are never on the ground.
func (e *Entity) OnGround() bool {
	p, ok := e.Collision.(*PlatformCollision)
	return ok && p.OnGround(e)
}
