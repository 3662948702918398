// Package layout maps the puzzle board and tray onto screen coordinates.
package layout

import (
	"math"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

// Point is a screen position in pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p shifted by the offset
func (p Point) Add(off puzzle.Offset) Point {
	return Point{X: p.X + off.X, Y: p.Y + off.Y}
}

// Rect is an axis aligned rectangle with a top-left origin
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the midpoint of r
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// RectAround returns a w x h rectangle centered on c
func RectAround(c Point, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Geometry derives cell and tray positions from a puzzle configuration.
// The board bounds are split into an N x N grid with equal margins.
type Geometry struct {
	board    Rect
	tray     puzzle.TrayGeometry
	gridSize int
}

// New creates the geometry for the given configuration
func New(config *puzzle.Config) *Geometry {
	return &Geometry{
		board: Rect{
			X: config.Board.X,
			Y: config.Board.Y,
			W: config.Board.Width,
			H: config.Board.Height,
		},
		tray:     config.Tray,
		gridSize: config.GridSize,
	}
}

// GridSize returns the board dimension
func (g *Geometry) GridSize() int {
	return g.gridSize
}

// Board returns the board bounds
func (g *Geometry) Board() Rect {
	return g.board
}

// CellSize returns the pixel size of one cell
func (g *Geometry) CellSize() float64 {
	return g.board.W / float64(g.gridSize)
}

// CellCenter returns the on-screen center of cell (row, col)
func (g *Geometry) CellCenter(row, col int) Point {
	size := g.CellSize()
	n := float64(g.gridSize)
	marginX := (g.board.W - size*n) / 2
	marginY := (g.board.H - size*n) / 2

	return Point{
		X: g.board.X + marginX + float64(col)*size + size/2,
		Y: g.board.Y + marginY + float64(row)*size + size/2,
	}
}

// CellRect returns the bounds of cell (row, col)
func (g *Geometry) CellRect(row, col int) Rect {
	size := g.CellSize()
	return RectAround(g.CellCenter(row, col), size, size)
}

// TrayPosition returns the resting position of tray slot index
func (g *Geometry) TrayPosition(index int) Point {
	return Point{
		X: g.tray.StartX + float64(index)*g.tray.Gap,
		Y: g.tray.Y,
	}
}

// Tolerance is the per-axis distance under which a drop matches a cell
func (g *Geometry) Tolerance() float64 {
	return g.CellSize() / 2
}

// CellAt returns the first cell in row-major order whose center is strictly
// within tolerance of p on both axes.
func (g *Geometry) CellAt(p Point) (row, col int, ok bool) {
	return FindCell(g, g.gridSize, p)
}

// Mapper is the subset of Geometry needed to resolve a drop position
type Mapper interface {
	CellSize() float64
	CellCenter(row, col int) Point
}

// FindCell scans an n x n grid row-major and returns the first cell whose
// center is strictly closer than CellSize()/2 to p on both axes. With several
// candidates the first in scan order wins, not the closest.
func FindCell(m Mapper, n int, p Point) (row, col int, ok bool) {
	tolerance := m.CellSize() / 2
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			center := m.CellCenter(r, c)
			if math.Abs(p.X-center.X) < tolerance && math.Abs(p.Y-center.Y) < tolerance {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
