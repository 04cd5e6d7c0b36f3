// Package level holds the tile grid entities collide against.
package level

import "math"

// CellType represents the type of a cell
type CellType int

const (
	CellEmpty CellType = iota
	CellWall
	CellSpike
)

// String returns the config name of the cell type
func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellSpike:
		return "spike"
	default:
		return "unknown"
	}
}

// ParseCellType maps a config name to a CellType. Unknown names are empty.
func ParseCellType(name string) CellType {
	switch name {
	case "wall":
		return CellWall
	case "spike":
		return CellSpike
	default:
		return CellEmpty
	}
}

// Cell represents a single grid cell
type Cell struct {
	Type   CellType
	Solid  bool
	Damage int
}

// Mark tags a cell with gameplay meaning derived from the layout
type Mark uint8

const (
	// MarkPlatformEnd flags the last walkable cell before a drop.
	// Direction is -1 when the drop is on the left, 1 on the right. A cell
	// holds one direction per mark, so a one-cell ledge with drops on both
	// sides keeps -1 only; use HasMark to find it regardless of side.
	MarkPlatformEnd Mark = iota
	// MarkSmallStep flags a walkable cell next to a one-cell rise.
	MarkSmallStep
)

// Grid is a rectangular cell map. Cells outside the map are solid.
type Grid struct {
	Width    int // cells
	Height   int // cells
	CellSize int // pixels per cell
	Cells    [][]Cell
	SpawnCX  int
	SpawnCY  int

	marks map[Mark]map[int]int
}

// New creates an empty grid of the given size
func New(width, height, cellSize int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &Grid{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Cells:    cells,
	}
}

// IsValid reports whether the coordinates are inside the grid
func (g *Grid) IsValid(cx, cy int) bool {
	return cx >= 0 && cx < g.Width && cy >= 0 && cy < g.Height
}

// CoordID returns a unique id for a cell coordinate
func (g *Grid) CoordID(cx, cy int) int {
	return cx + cy*g.Width
}

// Cell returns the cell at the given coordinates
func (g *Grid) Cell(cx, cy int) Cell {
	if !g.IsValid(cx, cy) {
		return Cell{Type: CellWall, Solid: true}
	}
	return g.Cells[cy][cx]
}

// SetCell replaces the cell at the given coordinates
func (g *Grid) SetCell(cx, cy int, c Cell) {
	if g.IsValid(cx, cy) {
		g.Cells[cy][cx] = c
	}
}

// HasCollision reports whether the cell blocks movement
func (g *Grid) HasCollision(cx, cy int) bool {
	return g.Cell(cx, cy).Solid
}

// CellAtPixel returns the cell containing the given pixel coordinates
func (g *Grid) CellAtPixel(px, py float64) Cell {
	return g.Cell(floorDiv(px, g.CellSize), floorDiv(py, g.CellSize))
}

// PixelWidth returns the grid width in pixels
func (g *Grid) PixelWidth() float64 {
	return float64(g.Width * g.CellSize)
}

// PixelHeight returns the grid height in pixels
func (g *Grid) PixelHeight() float64 {
	return float64(g.Height * g.CellSize)
}

// HasMark reports whether a cell carries a mark in any direction
func (g *Grid) HasMark(cx, cy int, mark Mark) bool {
	if !g.IsValid(cx, cy) {
		return false
	}
	_, ok := g.marks[mark][g.CoordID(cx, cy)]
	return ok
}

// HasMarkDir reports whether a cell carries a mark in the given direction
func (g *Grid) HasMarkDir(cx, cy int, mark Mark, dir int) bool {
	if !g.IsValid(cx, cy) {
		return false
	}
	d, ok := g.marks[mark][g.CoordID(cx, cy)]
	return ok && d == clampDir(dir)
}

// SetMark tags a cell. The direction is clamped to -1..1. Invalid or already
// marked cells are left untouched.
func (g *Grid) SetMark(cx, cy int, mark Mark, dir int) {
	if !g.IsValid(cx, cy) || g.HasMark(cx, cy, mark) {
		return
	}
	if g.marks == nil {
		g.marks = make(map[Mark]map[int]int)
	}
	m, ok := g.marks[mark]
	if !ok {
		m = make(map[int]int)
		g.marks[mark] = m
	}
	m[g.CoordID(cx, cy)] = clampDir(dir)
}

// SetMarks tags a cell with several marks, all without direction
func (g *Grid) SetMarks(cx, cy int, marks ...Mark) {
	for _, m := range marks {
		g.SetMark(cx, cy, m, 0)
	}
}

// ClearMark removes a mark from a cell
func (g *Grid) ClearMark(cx, cy int, mark Mark) {
	if m, ok := g.marks[mark]; ok {
		delete(m, g.CoordID(cx, cy))
	}
}

// BuildMarks derives platform marks from the current layout. It is called
// once after the cells are loaded.
func (g *Grid) BuildMarks() {
	for cy := 0; cy < g.Height; cy++ {
		for cx := 0; cx < g.Width; cx++ {
			if g.HasCollision(cx, cy) || !g.HasCollision(cx, cy+1) {
				continue
			}
			if !g.HasCollision(cx-1, cy) && !g.HasCollision(cx-1, cy+1) {
				g.SetMark(cx, cy, MarkPlatformEnd, -1)
			}
			if !g.HasCollision(cx+1, cy) && !g.HasCollision(cx+1, cy+1) {
				g.SetMark(cx, cy, MarkPlatformEnd, 1)
			}
			if g.HasCollision(cx-1, cy) && !g.HasCollision(cx-1, cy-1) {
				g.SetMark(cx, cy, MarkSmallStep, -1)
			}
			if g.HasCollision(cx+1, cy) && !g.HasCollision(cx+1, cy-1) {
				g.SetMark(cx, cy, MarkSmallStep, 1)
			}
		}
	}
}

func clampDir(dir int) int {
	switch {
	case dir < -1:
		return -1
	case dir > 1:
		return 1
	default:
		return dir
	}
}

func floorDiv(v float64, size int) int {
	return int(math.Floor(v / float64(size)))
}
