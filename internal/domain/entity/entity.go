// Package entity implements grid entities: actors whose position is an
// integer cell plus a sub-cell ratio, integrated once per fixed tick.
package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/younwookim/gridsim/internal/domain/cooldown"
	"github.com/younwookim/gridsim/internal/domain/tick"
)

// Defaults for a freshly created entity
const (
	DefaultFriction               = 0.82
	DefaultMaxGridMovementPercent = 0.33
	DefaultRestoreSpeed           = 12.0

	// velocityEpsilon is the speed under which velocity snaps to zero
	velocityEpsilon = 0.0005
)

// Entity is a simulated actor on a uniform grid.
// Position is (CX+XR, CY+YR) in cells; velocities are in cells per tick.
type Entity struct {
	Name         string
	GridCellSize float64

	CX, CY int
	XR, YR float64

	VelocityX, VelocityY float64
	FrictionX, FrictionY float64

	GravityX, GravityY float64
	GravityMultiplier  float64
	HasGravity         bool

	// MaxGridMovementPercent is the largest fraction of a cell a single
	// sub-step may cross.
	MaxGridMovementPercent float64

	Width, Height    float64 // pixels
	AnchorX, AnchorY float64
	Rotation         float64 // radians, used by the separating axis test

	InterpolatePixelPosition bool
	LastPx, LastPy           float64

	// Dir is the facing, 1 for right and -1 for left
	Dir          int
	ScaleX       float64
	ScaleY       float64
	RestoreSpeed float64

	Collision CollisionPolicy
	Cooldown  *cooldown.Cooldown

	OnFixedUpdate func(e *Entity)
	OnPostUpdate  func(e *Entity, dt time.Duration)

	stretchX, stretchY float64
	pinnedX, pinnedY   bool
	progressor         tick.Progressor
}

// New creates an entity resting at the bottom center of cell (0, 0),
// one cell wide and tall, without collision.
func New(name string, gridCellSize float64) *Entity {
	return &Entity{
		Name:                     name,
		GridCellSize:             gridCellSize,
		XR:                       0.5,
		YR:                       1,
		FrictionX:                DefaultFriction,
		FrictionY:                DefaultFriction,
		GravityMultiplier:        1,
		HasGravity:               true,
		MaxGridMovementPercent:   DefaultMaxGridMovementPercent,
		Width:                    gridCellSize,
		Height:                   gridCellSize,
		AnchorX:                  0.5,
		AnchorY:                  1,
		InterpolatePixelPosition: true,
		Dir:                      1,
		ScaleX:                   1,
		ScaleY:                   1,
		RestoreSpeed:             DefaultRestoreSpeed,
		Collision:                NoCollision{},
		Cooldown:                 cooldown.New(),
		stretchX:                 1,
		stretchY:                 1,
	}
}

// Attach binds the entity to the driver that supplies its interpolation
// ratio and runs a first integration step.
func (e *Entity) Attach(p tick.Progressor) error {
	if p == nil {
		return fmt.Errorf("entity %q: %w", e.Name, tick.ErrNoFixedUpdater)
	}
	e.progressor = p
	e.UpdateGridPosition()
	return nil
}

// FixedProgressionRatio returns the ratio used to interpolate the draw
// position, 1 when the entity is not attached.
func (e *Entity) FixedProgressionRatio() float64 {
	return tick.Ratio(e.progressor)
}

// AttachX is the anchor point in pixels at the latest tick
func (e *Entity) AttachX() float64 { return (float64(e.CX) + e.XR) * e.GridCellSize }

// AttachY is the anchor point in pixels at the latest tick
func (e *Entity) AttachY() float64 { return (float64(e.CY) + e.YR) * e.GridCellSize }

// Px returns the draw position, interpolated between the last two ticks
func (e *Entity) Px() float64 {
	if !e.InterpolatePixelPosition {
		return e.AttachX()
	}
	return tick.Lerp(e.FixedProgressionRatio(), e.LastPx, e.AttachX())
}

// Py returns the draw position, interpolated between the last two ticks
func (e *Entity) Py() float64 {
	if !e.InterpolatePixelPosition {
		return e.AttachY()
	}
	return tick.Lerp(e.FixedProgressionRatio(), e.LastPy, e.AttachY())
}

// StretchX returns the horizontal squash factor
func (e *Entity) StretchX() float64 { return e.stretchX }

// StretchY returns the vertical squash factor
func (e *Entity) StretchY() float64 { return e.stretchY }

// SetStretchX squashes the entity horizontally, preserving area
func (e *Entity) SetStretchX(v float64) {
	e.stretchX = v
	e.stretchY = 2 - v
}

// SetStretchY squashes the entity vertically, preserving area
func (e *Entity) SetStretchY(v float64) {
	e.stretchX = 2 - v
	e.stretchY = v
}

// SetPosition teleports the entity to a pixel position
func (e *Entity) SetPosition(px, py float64) {
	fx := px / e.GridCellSize
	fy := py / e.GridCellSize
	e.CX = int(math.Floor(fx))
	e.CY = int(math.Floor(fy))
	e.XR = fx - float64(e.CX)
	e.YR = fy - float64(e.CY)
	e.pinnedX, e.pinnedY = false, false
	e.OnPositionManuallyChanged()
}

// SetCell teleports the entity to a cell and sub-cell ratio
func (e *Entity) SetCell(cx, cy int, xr, yr float64) {
	e.CX, e.CY = cx, cy
	e.XR, e.YR = xr, yr
	e.pinnedX, e.pinnedY = false, false
	e.OnPositionManuallyChanged()
}

// OnPositionManuallyChanged drops interpolation after a teleport
func (e *Entity) OnPositionManuallyChanged() {
	e.LastPx = e.AttachX()
	e.LastPy = e.AttachY()
}

// PinX clamps XR to ratio and keeps it there through normalisation for the
// current sub-step. Collision policies use it when blocked.
func (e *Entity) PinX(ratio float64) {
	e.XR = ratio
	e.pinnedX = true
}

// PinY is PinX for the vertical axis
func (e *Entity) PinY(ratio float64) {
	e.YR = ratio
	e.pinnedY = true
}

// FixedUpdate integrates one tick
func (e *Entity) FixedUpdate() {
	e.UpdateGridPosition()
	if e.OnFixedUpdate != nil {
		e.OnFixedUpdate(e)
	}
}

// PreUpdate advances the entity's own timers
func (e *Entity) PreUpdate(dt time.Duration) {
	e.Cooldown.Update(dt)
}

// PostUpdate computes the render scale and eases the stretch back to 1
func (e *Entity) PostUpdate(dt time.Duration) {
	e.ScaleX = float64(e.Dir) * e.stretchX
	e.ScaleY = e.stretchY

	k := math.Min(1, e.RestoreSpeed*dt.Seconds())
	e.stretchX += (1 - e.stretchX) * k
	e.stretchY += (1 - e.stretchY) * k

	if e.OnPostUpdate != nil {
		e.OnPostUpdate(e, dt)
	}
}

// Steps returns how many sub-steps the current velocity needs so that no
// single sub-step crosses more than MaxGridMovementPercent of a cell.
func (e *Entity) Steps() int {
	return int(math.Ceil((math.Abs(e.VelocityX) + math.Abs(e.VelocityY)) / e.MaxGridMovementPercent))
}

// UpdateGridPosition runs one fixed tick of the integrator
func (e *Entity) UpdateGridPosition() {
	e.LastPx = e.AttachX()
	e.LastPy = e.AttachY()

	e.VelocityX += e.Collision.GravityX(e)
	e.VelocityY += e.Collision.GravityY(e)

	steps := e.Steps()
	if steps > 0 {
		n := float64(steps)
		for i := 0; i < steps; i++ {
			if e.VelocityX != 0 {
				e.pinnedX = false
				e.XR += e.VelocityX / n
				e.Collision.PreX(e)
				e.Collision.CheckX(e)
				e.normalizeX()
			}
			if e.VelocityY != 0 {
				e.pinnedY = false
				e.YR += e.VelocityY / n
				e.Collision.PreY(e)
				e.Collision.CheckY(e)
				e.normalizeY()
			}
		}
	}

	e.VelocityX *= e.FrictionX
	if math.Abs(e.VelocityX) <= velocityEpsilon {
		e.VelocityX = 0
	}
	e.VelocityY *= e.FrictionY
	if math.Abs(e.VelocityY) <= velocityEpsilon {
		e.VelocityY = 0
	}
}

// normalizeX carries XR into CX. A ratio pinned exactly at 1 stays there so
// an entity resting against a threshold of 1 keeps its cell.
func (e *Entity) normalizeX() {
	for e.XR > 1 || (e.XR == 1 && !e.pinnedX) {
		e.XR--
		e.CX++
	}
	for e.XR < 0 {
		e.XR++
		e.CX--
	}
}

func (e *Entity) normalizeY() {
	for e.YR > 1 || (e.YR == 1 && !e.pinnedY) {
		e.YR--
		e.CY++
	}
	for e.YR < 0 {
		e.YR++
		e.CY--
	}
}
