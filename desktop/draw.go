package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

var (
	face = text.NewGoXFace(basicfont.Face7x13)

	backgroundColor = color.RGBA{24, 28, 40, 255}
	fieldColor      = color.RGBA{44, 52, 72, 255}
	gridColor       = color.RGBA{90, 104, 140, 255}
	trayColor       = color.RGBA{36, 42, 58, 255}
	buttonColor     = color.RGBA{46, 160, 90, 255}
	textColor       = color.RGBA{235, 235, 245, 255}
	dimTextColor    = color.RGBA{150, 155, 175, 255}
)

// drawText draws s centered on (x, y)
func drawText(dst *ebiten.Image, s string, x, y, scale float64, clr color.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, face, op)
}

// drawTextLeft draws s with its top-left corner at (x, y)
func drawTextLeft(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func fillRect(dst *ebiten.Image, r layout.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(dst *ebiten.Image, r layout.Rect, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), width, clr, false)
}

// withAlpha scales the alpha channel of c
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// drawImageAt draws img centered on p
func drawImageAt(dst, img *ebiten.Image, p layout.Point, scale float64, tint color.Color, alpha float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.ScaleWithColor(tint)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// button is a clickable label drawn around a center point
type button struct {
	label  string
	center layout.Point
	w, h   float64
	scale  float64
	alpha  float64
}

func (b *button) bounds() layout.Rect {
	return layout.RectAround(b.center, b.w*b.scale, b.h*b.scale)
}

func (b *button) contains(p layout.Point) bool {
	return b.bounds().Contains(p)
}

func (b *button) draw(dst *ebiten.Image) {
	fillRect(dst, b.bounds(), withAlpha(buttonColor, b.alpha))
	strokeRect(dst, b.bounds(), 2, withAlpha(textColor, b.alpha))
	drawText(dst, b.label, b.center.X, b.center.Y, 3*b.scale, textColor, b.alpha)
}
