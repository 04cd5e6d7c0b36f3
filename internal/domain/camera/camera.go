// Package camera implements a spring camera that follows an entity inside
// world bounds, with dead zones, edge braking, zoom easing, bumps and shake.
//
// FixedUpdate advances the spring once per simulation tick. Update runs once
// per rendered frame and produces the final position, quantised to the pixel
// grid, with the fractional remainder exposed for sub-pixel correction.
package camera

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/younwookim/gridsim/internal/domain/cooldown"
	"github.com/younwookim/gridsim/internal/domain/tick"
)

// ErrNoTarget is returned when snapping to a target that is not set
var ErrNoTarget = errors.New("camera: target entity not set")

const shakeKey = "shake"

// Defaults for a new camera
const (
	DefaultDeadZonePctX            = 0.04
	DefaultDeadZonePctY            = 0.1
	DefaultFriction                = 0.89
	DefaultBrakeDistanceNearBounds = 0.1
	DefaultBumpFriction            = 0.75
	DefaultZoomSpeed               = 0.0014
	DefaultZoomFriction            = 0.9

	speedX = 0.06
	speedY = 0.09

	zoomFrictionFactor = 0.054
	brakeStrength      = 0.9
	zoomTolerance      = 0.0005
	minZoom            = 0.01
	zoomBumpFriction   = 0.9
	targetFPS          = 60
)

// Target is what the camera can follow
type Target interface {
	CenterX() float64
	CenterY() float64
	Px() float64
	Py() float64
}

// Rect is an axis-aligned rectangle in world units
type Rect struct {
	X, Y, W, H float64
}

// Vec is a 2D point
type Vec struct {
	X, Y float64
}

// EntityCamera2D follows a Target. The zero value is not usable; use New.
type EntityCamera2D struct {
	ViewBounds    Rect
	ClampToBounds bool
	SnapToPixel   bool
	PixelsPerUnit float64
	// Offset shrinks the visible extent used for clamping, in world units.
	// A HUD strip that covers part of the view is the usual case.
	Offset Vec

	DeadZonePctX            float64
	DeadZonePctY            float64
	Friction                float64
	TrackingSpeed           float64
	BrakeDistanceNearBounds float64
	BumpFriction            float64
	ZoomSpeed               float64
	ZoomFriction            float64

	viewportW, viewportH float64

	following Target

	rawFocus     Vec
	clampedFocus Vec
	lastFocus    Vec
	dx, dy       float64
	bumpX, bumpY float64

	zoom, targetZoom, zoomStep float64
	bumpZoom                   float64

	shakePower  float64
	shakeFrames int
	cd          *cooldown.Cooldown

	x, y                     float64
	scaledDistX, scaledDistY float64

	progressor tick.Progressor
}

// New creates a camera for a viewport of the given size in world units
func New(viewportW, viewportH float64) *EntityCamera2D {
	return &EntityCamera2D{
		ClampToBounds:           true,
		SnapToPixel:             true,
		PixelsPerUnit:           1,
		DeadZonePctX:            DefaultDeadZonePctX,
		DeadZonePctY:            DefaultDeadZonePctY,
		Friction:                DefaultFriction,
		TrackingSpeed:           1,
		BrakeDistanceNearBounds: DefaultBrakeDistanceNearBounds,
		BumpFriction:            DefaultBumpFriction,
		ZoomSpeed:               DefaultZoomSpeed,
		ZoomFriction:            DefaultZoomFriction,
		viewportW:               viewportW,
		viewportH:               viewportH,
		zoom:                    1,
		targetZoom:              1,
		shakePower:              1,
		cd:                      cooldown.New(),
	}
}

// Attach binds the camera to the driver that supplies its interpolation ratio
func (c *EntityCamera2D) Attach(p tick.Progressor) error {
	if p == nil {
		return fmt.Errorf("camera: %w", tick.ErrNoFixedUpdater)
	}
	c.progressor = p
	return nil
}

// SetViewport resizes the visible area
func (c *EntityCamera2D) SetViewport(w, h float64) {
	c.viewportW, c.viewportH = w, h
}

// SetBounds sets the world area the camera is kept inside
func (c *EntityCamera2D) SetBounds(x, y, w, h float64) {
	c.ViewBounds = Rect{X: x, Y: y, W: w, H: h}
}

// Following returns the current target, or nil
func (c *EntityCamera2D) Following() Target { return c.following }

// Follow tracks target. With immediate set the camera jumps to the target
// instead of easing, which requires a non-nil target.
func (c *EntityCamera2D) Follow(target Target, immediate bool) error {
	c.following = target
	if !immediate {
		return nil
	}
	if target == nil {
		return ErrNoTarget
	}
	c.rawFocus = Vec{X: target.CenterX(), Y: target.CenterY()}
	c.dx, c.dy = 0, 0
	c.clampedFocus = c.clamp(c.rawFocus)
	c.lastFocus = c.clampedFocus
	c.sync()
	return nil
}

// Unfollow stops tracking; the camera keeps its current focus
func (c *EntityCamera2D) Unfollow() {
	c.following = nil
}

// Shake starts a decaying shake of the given power
func (c *EntityCamera2D) Shake(d time.Duration, power float64) {
	c.cd.Timeout(shakeKey, d, nil)
	c.shakePower = power
}

// Shaking reports whether a shake is in progress
func (c *EntityCamera2D) Shaking() bool { return c.cd.Has(shakeKey) }

// Bump pushes the focus by a one-shot impulse that decays every tick
func (c *EntityCamera2D) Bump(x, y float64) {
	c.bumpX += x
	c.bumpY += y
}

// BumpAngle bumps by dist in the direction of angle, in radians
func (c *EntityCamera2D) BumpAngle(angle, dist float64) {
	sin, cos := math.Sincos(angle)
	c.Bump(cos*dist, sin*dist)
}

// SetTargetZoom eases the zoom toward z
func (c *EntityCamera2D) SetTargetZoom(z float64) {
	c.targetZoom = math.Max(z, minZoom)
}

// SetZoomImmediately jumps to z without easing
func (c *EntityCamera2D) SetZoomImmediately(z float64) {
	z = math.Max(z, minZoom)
	c.zoom, c.targetZoom, c.zoomStep = z, z, 0
}

// BumpZoom adds a transient zoom punch that decays every tick
func (c *EntityCamera2D) BumpZoom(f float64) {
	c.bumpZoom += f
}

// Zoom returns the effective zoom including any bump. Below 1 the camera
// shows less of the world.
func (c *EntityCamera2D) Zoom() float64 {
	return math.Max(c.zoom+c.bumpZoom, minZoom)
}

// TargetZoom returns the zoom being eased toward
func (c *EntityCamera2D) TargetZoom() float64 { return c.targetZoom }

// Position returns the final camera center
func (c *EntityCamera2D) Position() (x, y float64) { return c.x, c.y }

// X returns the final camera center on the horizontal axis
func (c *EntityCamera2D) X() float64 { return c.x }

// Y returns the final camera center on the vertical axis
func (c *EntityCamera2D) Y() float64 { return c.y }

// ScaledDistX is the sub-pixel remainder dropped by pixel snapping, in
// pixels. It is in [0, 1) unless the bounds pushed the snapped position
// back inside, in which case it is in (-1, 0).
func (c *EntityCamera2D) ScaledDistX() float64 { return c.scaledDistX }

// ScaledDistY is ScaledDistX for the vertical axis
func (c *EntityCamera2D) ScaledDistY() float64 { return c.scaledDistY }

// RawFocus returns the unclamped spring position
func (c *EntityCamera2D) RawFocus() Vec { return c.rawFocus }

// ClampedFocus returns the spring position constrained to the bounds
func (c *EntityCamera2D) ClampedFocus() Vec { return c.clampedFocus }

// VisibleWidth is the world width shown at the current zoom
func (c *EntityCamera2D) VisibleWidth() float64 { return c.viewportW * c.Zoom() }

// VisibleHeight is the world height shown at the current zoom
func (c *EntityCamera2D) VisibleHeight() float64 { return c.viewportH * c.Zoom() }

// WorldToScreen converts a world position to viewport coordinates
func (c *EntityCamera2D) WorldToScreen(wx, wy float64) (sx, sy float64) {
	z := c.Zoom()
	sx = (wx-c.x)/z + c.viewportW*0.5
	sy = (wy-c.y)/z + c.viewportH*0.5
	return sx, sy
}

// FixedUpdate advances the spring by one simulation tick
func (c *EntityCamera2D) FixedUpdate() {
	c.lastFocus = c.clampedFocus
	w, h := c.VisibleWidth(), c.VisibleHeight()
	z := c.Zoom()

	if t := c.following; t != nil {
		tx, ty := t.CenterX(), t.CenterY()
		angle := math.Atan2(ty-c.rawFocus.Y, tx-c.rawFocus.X)
		sin, cos := math.Sincos(angle)

		distX := math.Abs(tx - c.rawFocus.X)
		if distX >= c.DeadZonePctX*w {
			c.dx += cos * (0.8*distX - c.DeadZonePctX*w) * speedX / z * c.TrackingSpeed
		}
		distY := math.Abs(ty - c.rawFocus.Y)
		if distY >= c.DeadZonePctY*h {
			c.dy += sin * (0.8*distY - c.DeadZonePctY*h) * speedY / z * c.TrackingSpeed
		}
	}

	frictX := c.Friction - z*zoomFrictionFactor*c.Friction
	frictY := frictX
	if c.ClampToBounds {
		frictX *= c.brake(c.dx, c.rawFocus.X, c.ViewBounds.X, c.ViewBounds.W, w)
		frictY *= c.brake(c.dy, c.rawFocus.Y, c.ViewBounds.Y, c.ViewBounds.H, h)
	}

	c.rawFocus.X += c.dx
	c.rawFocus.Y += c.dy
	c.dx *= frictX * frictX
	c.dy *= frictY * frictY

	c.bumpX *= c.BumpFriction
	c.bumpY *= c.BumpFriction
	c.bumpZoom *= zoomBumpFriction

	c.clampedFocus = c.clamp(Vec{X: c.rawFocus.X + c.bumpX, Y: c.rawFocus.Y + c.bumpY})
}

// brake returns the friction factor for one axis as the focus nears the
// bound it is moving toward.
func (c *EntityCamera2D) brake(d, focus, origin, extent, visible float64) float64 {
	dist := c.BrakeDistanceNearBounds * visible
	if dist <= 0 {
		return 1
	}
	var room float64
	if d <= 0 {
		room = focus - (origin + visible*0.5)
	} else {
		room = (origin + extent - visible*0.5) - focus
	}
	ratio := 1 - clamp01(room/dist)
	return 1 - brakeStrength*ratio
}

// Update advances shake timers and zoom easing by dt and recomputes the
// final position.
func (c *EntityCamera2D) Update(dt time.Duration) {
	c.cd.Update(dt)
	c.updateZoom(dt.Seconds() * targetFPS)
	c.sync()
}

func (c *EntityCamera2D) updateZoom(tmod float64) {
	if c.zoom == c.targetZoom {
		c.zoomStep = 0
		return
	}
	before := c.zoom - c.targetZoom
	if c.zoom < c.targetZoom {
		c.zoomStep += c.ZoomSpeed * tmod
	} else {
		c.zoomStep -= c.ZoomSpeed * tmod
	}
	c.zoom += c.zoomStep * tmod
	c.zoomStep *= math.Pow(c.ZoomFriction, tmod)

	after := c.zoom - c.targetZoom
	if math.Abs(after) <= zoomTolerance || (before > 0) != (after > 0) {
		c.zoom = c.targetZoom
		c.zoomStep = 0
	}
}

func (c *EntityCamera2D) sync() {
	ratio := tick.Ratio(c.progressor)
	target := Vec{
		X: tick.Lerp(ratio, c.lastFocus.X, c.clampedFocus.X),
		Y: tick.Lerp(ratio, c.lastFocus.Y, c.clampedFocus.Y),
	}

	if c.cd.Has(shakeKey) {
		amp := 2.5 * c.shakePower * c.cd.Ratio(shakeKey)
		f := float64(c.shakeFrames)
		target.X += math.Cos(f*1.1) * amp
		target.Y += math.Sin(0.3+f*1.7) * amp
		target = c.clamp(target)
		c.shakeFrames++
	} else {
		c.shakeFrames = 0
	}

	c.scaledDistX, c.scaledDistY = 0, 0
	if !c.SnapToPixel {
		c.x, c.y = target.X, target.Y
		return
	}
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	c.x = math.Floor(target.X*ppu) / ppu
	c.y = math.Floor(target.Y*ppu) / ppu
	if c.ClampToBounds {
		c.x = snapAxis(c.x, target.X, c.ViewBounds.X, c.ViewBounds.W, c.VisibleWidth()-c.Offset.X, ppu)
		c.y = snapAxis(c.y, target.Y, c.ViewBounds.Y, c.ViewBounds.H, c.VisibleHeight()-c.Offset.Y, ppu)
	}
	c.scaledDistX = (target.X - c.x) * ppu
	c.scaledDistY = (target.Y - c.y) * ppu
}

// SubPixelOffset is the screen translation that puts what is drawn
// relative to the snapped position back where the unsnapped camera sees it
func (c *EntityCamera2D) SubPixelOffset() (dx, dy float64) {
	ppu := c.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	z := c.Zoom()
	return -c.scaledDistX / ppu / z, -c.scaledDistY / ppu / z
}

// clamp keeps the view inside the bounds, centering on any axis where the
// world is smaller than the view.
func (c *EntityCamera2D) clamp(v Vec) Vec {
	if !c.ClampToBounds {
		return v
	}
	return Vec{
		X: clampAxis(v.X, c.ViewBounds.X, c.ViewBounds.W, c.VisibleWidth()-c.Offset.X),
		Y: clampAxis(v.Y, c.ViewBounds.Y, c.ViewBounds.H, c.VisibleHeight()-c.Offset.Y),
	}
}

func clampAxis(v, origin, extent, visible float64) float64 {
	if extent < visible {
		return origin + extent*0.5
	}
	half := visible * 0.5
	return math.Max(origin+half, math.Min(v, origin+extent-half))
}

// snapAxis keeps a snapped position inside the bounds shrunk to whole
// pixels. A centered axis keeps the exact center; when no pixel fits between
// the bounds the unsnapped target is used.
func snapAxis(snapped, target, origin, extent, visible, ppu float64) float64 {
	if extent < visible {
		return origin + extent*0.5
	}
	half := visible * 0.5
	lo := math.Ceil((origin+half)*ppu) / ppu
	hi := math.Floor((origin+extent-half)*ppu) / ppu
	if lo > hi {
		return target
	}
	return math.Max(lo, math.Min(snapped, hi))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
