package main

import (
	"image/color"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wricardo/mcp-training/jigsawgame/desktop/anim"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

var white = anim.White

// cellColor is the artwork color of a board cell
func cellColor(row, col, n int) color.RGBA {
	step := 160 / n
	return color.RGBA{
		R: uint8(70 + step*col),
		G: uint8(90 + step*row),
		B: uint8(200 - step*(row+col)/2),
		A: 0xff,
	}
}

// newTile renders a piece tile. Tiles are twice the cell size so that they
// cover exactly one cell at the idle scale.
func newTile(piece puzzle.PieceConfig, cellSize float64, n int) *ebiten.Image {
	size := int(cellSize * 2)
	img := ebiten.NewImage(size, size)
	img.Fill(cellColor(piece.Home.Row, piece.Home.Col, n))
	strokeRect(img, layout.Rect{X: 3, Y: 3, W: float64(size - 6), H: float64(size - 6)}, 6, white)
	drawText(img, strconv.Itoa(piece.ID), float64(size)/2, float64(size)/2, 8, white, 1)
	return img
}

// newPicture renders the finished picture at board size
func newPicture(geo *layout.Geometry) *ebiten.Image {
	board := geo.Board()
	img := ebiten.NewImage(int(board.W), int(board.H))
	n := geo.GridSize()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			r := geo.CellRect(row, col)
			r.X -= board.X
			r.Y -= board.Y
			fillRect(img, r, cellColor(row, col, n))
		}
	}
	return img
}

// pieceSprite is the on-screen piece driven by the placement controller
type pieceSprite struct {
	anim.Body

	id    int
	image *ebiten.Image
}

var _ placement.Sprite = (*pieceSprite)(nil)

func (s *pieceSprite) bounds() layout.Rect {
	w := float64(s.image.Bounds().Dx()) * s.Scale
	h := float64(s.image.Bounds().Dy()) * s.Scale
	return layout.RectAround(s.Pos, w, h)
}

func (s *pieceSprite) draw(dst *ebiten.Image, alpha float64) {
	drawImageAt(dst, s.image, s.Pos, s.Scale, s.Tint, alpha)
}

// byDepth returns the sprites ordered bottom to top
func byDepth(sprites []*pieceSprite) []*pieceSprite {
	sorted := append([]*pieceSprite(nil), sprites...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Depth() < sorted[j].Depth()
	})
	return sorted
}

// spriteAt returns the topmost interactive sprite under p
func spriteAt(sprites []*pieceSprite, p layout.Point) *pieceSprite {
	sorted := byDepth(sprites)
	for i := len(sorted) - 1; i >= 0; i-- {
		s := sorted[i]
		if s.Interactive() && s.bounds().Contains(p) {
			return s
		}
	}
	return nil
}
