package entity

import "math"

// Rect is an axis-aligned rectangle in pixels
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Vec is a 2D point or direction
type Vec struct {
	X, Y float64
}

func (v Vec) dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }

// CenterX is the horizontal center of the bounding box
func (e *Entity) CenterX() float64 { return e.AttachX() + (0.5-e.AnchorX)*e.Width }

// CenterY is the vertical center of the bounding box
func (e *Entity) CenterY() float64 { return e.AttachY() + (0.5-e.AnchorY)*e.Height }

func (e *Entity) Left() float64   { return e.AttachX() - e.AnchorX*e.Width }
func (e *Entity) Right() float64  { return e.AttachX() + (1-e.AnchorX)*e.Width }
func (e *Entity) Top() float64    { return e.AttachY() - e.AnchorY*e.Height }
func (e *Entity) Bottom() float64 { return e.AttachY() + (1-e.AnchorY)*e.Height }

// Bounds returns the unrotated bounding box
func (e *Entity) Bounds() Rect {
	return Rect{X: e.Left(), Y: e.Top(), W: e.Width, H: e.Height}
}

// InnerRadius is half the smaller side
func (e *Entity) InnerRadius() float64 { return math.Min(e.Width, e.Height) * 0.5 }

// OuterRadius is half the larger side
func (e *Entity) OuterRadius() float64 { return math.Max(e.Width, e.Height) * 0.5 }

// IsCollidingWith is a strict AABB overlap test; touching edges do not collide
func (e *Entity) IsCollidingWith(o *Entity) bool {
	if e.Left() >= o.Right() || o.Left() >= e.Right() {
		return false
	}
	if e.Top() >= o.Bottom() || o.Top() >= e.Bottom() {
		return false
	}
	return true
}

// IsCollidingWithInnerCircle tests the inscribed circles of both entities
func (e *Entity) IsCollidingWithInnerCircle(o *Entity) bool {
	r := e.InnerRadius() + o.InnerRadius()
	return e.distSqr(o) <= r*r
}

// IsCollidingWithOuterCircle tests the bounding circles of both entities
func (e *Entity) IsCollidingWithOuterCircle(o *Entity) bool {
	r := e.OuterRadius() + o.OuterRadius()
	return e.distSqr(o) <= r*r
}

// IsCollidingWithSAT runs a separating axis test on the rotated boxes.
// Unrotated pairs fall back to IsCollidingWith.
func (e *Entity) IsCollidingWithSAT(o *Entity) bool {
	if e.Rotation == 0 && o.Rotation == 0 {
		return e.IsCollidingWith(o)
	}
	r := e.circumRadius() + o.circumRadius()
	if e.distSqr(o) > r*r {
		return false
	}

	a := e.Vertices()
	b := o.Vertices()
	for _, poly := range [2][4]Vec{a, b} {
		for i := range poly {
			next := poly[(i+1)%len(poly)]
			axis := Vec{X: next.Y - poly[i].Y, Y: -(next.X - poly[i].X)}
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA < minB || maxB < minA {
				return false
			}
		}
	}
	return true
}

// Vertices returns the bounding box corners rotated about the center, in
// top-left, bottom-left, bottom-right, top-right order.
func (e *Entity) Vertices() [4]Vec {
	cx, cy := e.CenterX(), e.CenterY()
	sin, cos := math.Sincos(e.Rotation)
	rotate := func(x, y float64) Vec {
		dx, dy := x-cx, y-cy
		return Vec{X: cx + dx*cos - dy*sin, Y: cy + dx*sin + dy*cos}
	}
	l, t, r, b := e.Left(), e.Top(), e.Right(), e.Bottom()
	return [4]Vec{rotate(l, t), rotate(l, b), rotate(r, b), rotate(r, t)}
}

func project(poly [4]Vec, axis Vec) (lo, hi float64) {
	lo = poly[0].dot(axis)
	hi = lo
	for _, v := range poly[1:] {
		p := v.dot(axis)
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi
}

// DistPxTo returns the distance between both centers in pixels
func (e *Entity) DistPxTo(o *Entity) float64 {
	return math.Sqrt(e.distSqr(o))
}

// DistCellsTo returns the distance between both anchors in cells
func (e *Entity) DistCellsTo(o *Entity) float64 {
	dx := float64(e.CX-o.CX) + e.XR - o.XR
	dy := float64(e.CY-o.CY) + e.YR - o.YR
	return math.Hypot(dx, dy)
}

// DirTo returns 1 when x is at or right of the center, -1 otherwise
func (e *Entity) DirTo(x float64) int {
	if x >= e.CenterX() {
		return 1
	}
	return -1
}

// AngleTo returns the angle in radians from this center to the other
func (e *Entity) AngleTo(o *Entity) float64 {
	return math.Atan2(o.CenterY()-e.CenterY(), o.CenterX()-e.CenterX())
}

// circumRadius bounds the box at any rotation
func (e *Entity) circumRadius() float64 { return math.Hypot(e.Width, e.Height) * 0.5 }

func (e *Entity) distSqr(o *Entity) float64 {
	dx := o.CenterX() - e.CenterX()
	dy := o.CenterY() - e.CenterY()
	return dx*dx + dy*dy
}
