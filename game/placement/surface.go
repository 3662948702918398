package placement

import (
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

const (
	// IdleScale is the resting scale of a piece sprite
	IdleScale = 0.5
	// DragScale is applied while a piece follows the pointer
	DragScale = 0.6
)

// Layout maps board cells and tray slots to screen coordinates
type Layout interface {
	CellCenter(row, col int) layout.Point
	CellSize() float64
	TrayPosition(index int) layout.Point
}

// Sprite is the visual handle of a piece
type Sprite interface {
	SetPosition(p layout.Point)
	SetScale(scale float64)
	Depth() int
	SetDepth(depth int)
	SetInteractive(enabled bool)
}

// Listener receives the outcome of placement decisions
type Listener interface {
	SessionStarted(model *puzzle.Model)
	PieceSnapped(piece *puzzle.Piece, target layout.Point)
	PieceRejected(piece *puzzle.Piece, tray layout.Point)
	PieceReturned(piece *puzzle.Piece, tray layout.Point)
	PuzzleCompleted()
}

// Guide is the tutorial hint shown at session start
type Guide interface {
	Show(from, to layout.Point)
	Hide()
}
