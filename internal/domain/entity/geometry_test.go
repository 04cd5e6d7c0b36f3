package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// centered returns a cell sized entity whose center is at (x, y)
func centered(x, y, rotation float64) *Entity {
	e := New("box", cell)
	e.AnchorX, e.AnchorY = 0.5, 0.5
	e.SetPosition(x, y)
	e.Rotation = rotation
	return e
}

func TestEntity_Bounds(t *testing.T) {
	e := New("e", cell)
	e.SetCell(2, 3, 0.5, 1)

	assert.Equal(t, 40.0, e.AttachX())
	assert.Equal(t, 64.0, e.AttachY())
	assert.Equal(t, 32.0, e.Left())
	assert.Equal(t, 48.0, e.Right())
	assert.Equal(t, 48.0, e.Top())
	assert.Equal(t, 64.0, e.Bottom())
	assert.Equal(t, 40.0, e.CenterX())
	assert.Equal(t, 56.0, e.CenterY())
	assert.Equal(t, Rect{X: 32, Y: 48, W: 16, H: 16}, e.Bounds())
	assert.Equal(t, 48.0, e.Bounds().Right())
	assert.Equal(t, 64.0, e.Bounds().Bottom())
}

func TestEntity_IsCollidingWith(t *testing.T) {
	tests := []struct {
		name   string
		bx, by float64
		want   bool
	}{
		{"same spot", 0, 0, true},
		{"overlap", 10, 5, true},
		{"touching edge", 16, 0, false},
		{"apart", 40, 0, false},
		{"below", 0, 16, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := centered(0, 0, 0)
			b := centered(tt.bx, tt.by, 0)
			assert.Equal(t, tt.want, a.IsCollidingWith(b))
			assert.Equal(t, tt.want, b.IsCollidingWith(a))
		})
	}
}

func TestEntity_CircleTests(t *testing.T) {
	a := centered(0, 0, 0)
	a.Width = 32 // inner radius 8, outer radius 16

	b := centered(20, 0, 0) // inner and outer radius 8

	assert.False(t, a.IsCollidingWithInnerCircle(b), "8+8 < 20")
	assert.True(t, a.IsCollidingWithOuterCircle(b), "16+8 >= 20")
	assert.InDelta(t, 20.0, a.DistPxTo(b), 1e-12)
}

func TestEntity_IsCollidingWithSAT(t *testing.T) {
	quarter := math.Pi / 4
	tests := []struct {
		name   string
		a, b   *Entity
		want   bool
		aabbOK bool
	}{
		{"unrotated falls back to AABB", centered(0, 0, 0), centered(10, 0, 0), true, true},
		{"diamond corner reaches box", centered(0, 0, quarter), centered(18, 0, 0), true, false},
		{"diamond corner short of box", centered(0, 0, quarter), centered(20, 0, 0), false, false},
		{"diamonds side by side diagonally", centered(0, 0, quarter), centered(12, 12, quarter), false, true},
		{"far apart", centered(0, 0, quarter), centered(100, 100, 0), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.IsCollidingWithSAT(tt.b))
			assert.Equal(t, tt.want, tt.b.IsCollidingWithSAT(tt.a))
			assert.Equal(t, tt.aabbOK, tt.a.IsCollidingWith(tt.b))
		})
	}
}

func TestEntity_Vertices(t *testing.T) {
	v := centered(0, 0, math.Pi/2).Vertices()

	// top-left rotates a quarter turn clockwise onto top-right in screen space
	assert.InDelta(t, 8.0, v[0].X, 1e-9)
	assert.InDelta(t, -8.0, v[0].Y, 1e-9)
}

func TestEntity_DirAndAngle(t *testing.T) {
	a := centered(0, 0, 0)
	b := centered(10, 10, 0)

	assert.Equal(t, 1, a.DirTo(5))
	assert.Equal(t, 1, a.DirTo(0))
	assert.Equal(t, -1, a.DirTo(-1))
	assert.InDelta(t, math.Pi/4, a.AngleTo(b), 1e-12)
	assert.InDelta(t, -3*math.Pi/4, b.AngleTo(a), 1e-12)
}

func TestEntity_DistCellsTo(t *testing.T) {
	a := New("a", cell)
	a.SetCell(0, 0, 0.5, 0.5)
	b := New("b", cell)
	b.SetCell(3, 4, 0.5, 0.5)

	assert.InDelta(t, 5.0, a.DistCellsTo(b), 1e-12)
}
