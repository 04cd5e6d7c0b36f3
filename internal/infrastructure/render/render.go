// Package render draws a level and its entities through an
// EntityCamera2D with ebiten.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/younwookim/gridsim/internal/domain/camera"
	"github.com/younwookim/gridsim/internal/domain/entity"
	"github.com/younwookim/gridsim/internal/domain/level"
)

// Colors for rendering
var (
	ColorBG       = color.RGBA{26, 26, 46, 255}
	ColorWall     = color.RGBA{80, 80, 100, 255}
	ColorSpike    = color.RGBA{200, 50, 50, 255}
	ColorPlayer   = color.RGBA{100, 200, 100, 255}
	ColorEntity   = color.RGBA{200, 160, 90, 255}
	ColorBounds   = color.RGBA{255, 255, 255, 160}
	ColorMarkEnd  = color.RGBA{255, 215, 0, 200}
	ColorMarkStep = color.RGBA{90, 200, 255, 200}
)

// ParseHexColor parses "#rrggbb" into an opaque color
func ParseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid color %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid color %q: %w", s, err)
	}
	c.A = 0xff
	return c, nil
}

// Viewport is the part of the world a camera shows
type Viewport interface {
	WorldToScreen(wx, wy float64) (sx, sy float64)
	Zoom() float64
	Position() (x, y float64)
	VisibleWidth() float64
	VisibleHeight() float64
	// SubPixelOffset is the final translation undoing pixel snapping
	SubPixelOffset() (dx, dy float64)
}

var _ Viewport = (*camera.EntityCamera2D)(nil)

// Renderer draws world objects in screen space
type Renderer struct {
	screenW int
	screenH int
	pixel   *ebiten.Image

	// Debug draws entity bounds and level marks
	Debug bool
}

// New creates a renderer for a logical screen size
func New(screenW, screenH int) *Renderer {
	return &Renderer{
		screenW: screenW,
		screenH: screenH,
	}
}

// quad returns the white pixel entities are drawn from, created on first
// use so a renderer can be built before ebiten runs.
func (r *Renderer) quad() *ebiten.Image {
	if r.pixel == nil {
		r.pixel = ebiten.NewImage(1, 1)
		r.pixel.Fill(color.White)
	}
	return r.pixel
}

// Rect is a screen space rectangle
type Rect struct {
	X, Y, W, H float64
}

// ToScreen maps a world position to the screen, including the sub-pixel
// correction of a snapped camera
func ToScreen(v Viewport, wx, wy float64) (sx, sy float64) {
	sx, sy = v.WorldToScreen(wx, wy)
	dx, dy := v.SubPixelOffset()
	return sx + dx, sy + dy
}

// ScreenRect maps a world rectangle to the screen
func ScreenRect(v Viewport, x, y, w, h float64) Rect {
	sx, sy := ToScreen(v, x, y)
	z := v.Zoom()
	return Rect{X: sx, Y: sy, W: w / z, H: h / z}
}

// VisibleCells returns the inclusive cell range the viewport overlaps,
// clipped to the grid.
func VisibleCells(v Viewport, g *level.Grid) (x0, y0, x1, y1 int) {
	cx, cy := v.Position()
	hw, hh := v.VisibleWidth()*0.5, v.VisibleHeight()*0.5
	size := float64(g.CellSize)

	x0 = max(0, int(math.Floor((cx-hw)/size)))
	y0 = max(0, int(math.Floor((cy-hh)/size)))
	x1 = min(g.Width-1, int(math.Floor((cx+hw)/size)))
	y1 = min(g.Height-1, int(math.Floor((cy+hh)/size)))
	return x0, y0, x1, y1
}

// DrawLevel fills the visible non-empty cells
func (r *Renderer) DrawLevel(screen *ebiten.Image, v Viewport, g *level.Grid) {
	size := float64(g.CellSize)
	x0, y0, x1, y1 := VisibleCells(v, g)

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			var c color.Color
			switch g.Cell(cx, cy).Type {
			case level.CellWall:
				c = ColorWall
			case level.CellSpike:
				c = ColorSpike
			default:
				if r.Debug {
					r.drawMarks(screen, v, g, cx, cy)
				}
				continue
			}
			rc := ScreenRect(v, float64(cx)*size, float64(cy)*size, size, size)
			vector.FillRect(screen, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), c, false)
		}
	}
}

func (r *Renderer) drawMarks(screen *ebiten.Image, v Viewport, g *level.Grid, cx, cy int) {
	size := float64(g.CellSize)
	for _, m := range []struct {
		mark level.Mark
		c    color.Color
		y    float64
	}{
		{level.MarkPlatformEnd, ColorMarkEnd, 0.9},
		{level.MarkSmallStep, ColorMarkStep, 0.8},
	} {
		for _, dir := range []int{-1, 1} {
			if !g.HasMarkDir(cx, cy, m.mark, dir) {
				continue
			}
			x := (float64(cx) + 0.5 + 0.4*float64(dir)) * size
			sx0, sy := ToScreen(v, (float64(cx)+0.5)*size, (float64(cy)+m.y)*size)
			sx1, _ := ToScreen(v, x, (float64(cy)+m.y)*size)
			vector.StrokeLine(screen, float32(sx0), float32(sy), float32(sx1), float32(sy), 1, m.c, false)
		}
	}
}

// entityGeoM maps the unit quad onto e: sized by its facing and stretch,
// kept on its anchor and rotated about its center like its collision shape.
func entityGeoM(v Viewport, e *entity.Entity) ebiten.GeoM {
	z := v.Zoom()
	w, h := e.Width*math.Abs(e.ScaleX), e.Height*e.ScaleY
	cx := e.Px() + (0.5-e.AnchorX)*w
	cy := e.Py() + (0.5-e.AnchorY)*h
	sx, sy := ToScreen(v, cx, cy)

	var m ebiten.GeoM
	m.Translate(-0.5, -0.5)
	m.Scale(w/z, h/z)
	m.Rotate(e.Rotation)
	m.Translate(sx, sy)
	return m
}

// DrawEntity draws e as a quad at its interpolated position
func (r *Renderer) DrawEntity(screen *ebiten.Image, v Viewport, e *entity.Entity, c color.Color) {
	z := v.Zoom()
	sx, sy := ToScreen(v, e.Px(), e.Py())

	op := &ebiten.DrawImageOptions{}
	op.GeoM = entityGeoM(v, e)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(r.quad(), op)

	if r.Debug {
		b := e.Bounds()
		rc := ScreenRect(v, b.X, b.Y, b.W, b.H)
		vector.StrokeRect(screen, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), 1, ColorBounds, false)
		eye := float32(sx + float64(e.Dir)*e.Width*0.25/z)
		vector.StrokeLine(screen, float32(sx), float32(sy)-2, eye, float32(sy)-2, 1, ColorBounds, false)
	}
}

// DrawDim darkens the whole screen, used behind pause and cutscene text
func (r *Renderer) DrawDim(screen *ebiten.Image, alpha float64) {
	a := uint8(math.Round(255 * min(max(alpha, 0), 1)))
	vector.FillRect(screen, 0, 0, float32(r.screenW), float32(r.screenH), color.RGBA{0, 0, 0, a}, false)
}

// letterboxHeight is the height of each cinematic bar, relative to the screen
const letterboxHeight = 0.12

// DrawLetterbox draws cinematic bars, ratio 1 being fully closed in
func (r *Renderer) DrawLetterbox(screen *ebiten.Image, ratio float64) {
	h := float32(float64(r.screenH) * letterboxHeight * min(max(ratio, 0), 1))
	if h <= 0 {
		return
	}
	vector.FillRect(screen, 0, 0, float32(r.screenW), h, color.Black, false)
	vector.FillRect(screen, 0, float32(r.screenH)-h, float32(r.screenW), h, color.Black, false)
}

// DrawText prints text centered on the screen
func (r *Renderer) DrawText(screen *ebiten.Image, text string) {
	ebitenutil.DebugPrintAt(screen, text, r.screenW/2-len(text)*3, r.screenH/2-8)
}

// Stats is what the debug overlay shows
type Stats struct {
	State  string
	Ticks  uint64
	Ratio  float64
	TMod   float64
	Zoom   float64
	Player *entity.Entity
}

// DrawStats prints the debug overlay in the top-left corner
func (r *Renderer) DrawStats(screen *ebiten.Image, s Stats) {
	msg := fmt.Sprintf("%s  TPS %.0f  FPS %.0f\nticks %d ratio %.2f tmod %.2f zoom %.2f",
		s.State, ebiten.ActualTPS(), ebiten.ActualFPS(), s.Ticks, s.Ratio, s.TMod, s.Zoom)
	if e := s.Player; e != nil {
		msg += fmt.Sprintf("\ncell %d,%d ratio %.2f,%.2f v %.3f,%.3f ground %t",
			e.CX, e.CY, e.XR, e.YR, e.VelocityX, e.VelocityY, e.OnGround())
	}
	ebitenutil.DebugPrint(screen, msg)
}
