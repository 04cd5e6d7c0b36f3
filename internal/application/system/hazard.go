package system

import (
	"math"

	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/domain/level"
)

// TouchingHazard returns the first damaging cell overlapped by e's bounds
func TouchingHazard(g *level.Grid, e *entity.Entity) (level.Cell, bool) {
	size := float64(g.CellSize)
	b := e.Bounds()

	x0 := int(math.Floor(b.X / size))
	y0 := int(math.Floor(b.Y / size))
	// bounds are half-open, a box ending on a cell edge does not touch the next cell
	x1 := int(math.Ceil(b.Right()/size)) - 1
	y1 := int(math.Ceil(b.Bottom()/size)) - 1

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			if !g.IsValid(cx, cy) {
				continue
			}
			if c := g.Cell(cx, cy); c.Type == level.CellSpike {
				return c, true
			}
		}
	}
	return level.Cell{}, false
}
