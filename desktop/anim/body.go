package anim

import (
	"image/color"
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
)

const (
	ScaleDuration  = 200 * time.Millisecond
	ReturnDuration = 450 * time.Millisecond
)

// Body is the animated state of a piece: position, scale, depth and tint,
// plus the tweens moving them. It implements placement.Sprite.
type Body struct {
	Pos   layout.Point
	Scale float64
	Tint  color.RGBA

	depth       int
	interactive bool

	move       *Move
	scaleTween *Float
	fade       *TintFade
	fadeAfter  bool // start the tint fade once move finishes
}

var _ placement.Sprite = (*Body)(nil)

// SetPosition jumps to p and cancels a running move. A pending rejection
// fade starts right away so the tint never sticks.
func (b *Body) SetPosition(p layout.Point) {
	if b.move != nil {
		b.move.Stop()
		b.move = nil
	}
	if b.fadeAfter {
		b.fadeAfter = false
		b.fade = FadeTint(b.Tint)
	}
	b.Pos = p
}

func (b *Body) SetScale(scale float64) {
	b.scaleTween = FloatTo(b.Scale, scale, ScaleDuration)
}

func (b *Body) Depth() int             { return b.depth }
func (b *Body) SetDepth(depth int)     { b.depth = depth }
func (b *Body) Interactive() bool      { return b.interactive }
func (b *Body) SetInteractive(ok bool) { b.interactive = ok }
func (b *Body) Moving() bool           { return b.move != nil }
func (b *Body) Fading() bool           { return b.fade != nil || b.fadeAfter }

// Reset puts the body back into its tray slot without animation
func (b *Body) Reset(tray layout.Point, depth int) {
	b.fadeAfter = false
	b.SetPosition(tray)
	b.Scale = placement.IdleScale
	b.scaleTween = nil
	b.depth = depth
	b.interactive = true
	b.Tint = White
	b.fade = nil
}

// ReturnTo tweens the body back to the tray
func (b *Body) ReturnTo(tray layout.Point) {
	b.move = MoveTo(b.Pos, tray, ReturnDuration)
}

// Reject tints the body red and sends it home; the tint fades after the move
func (b *Body) Reject(tray layout.Point) {
	if b.fade != nil {
		b.fade.Stop()
		b.fade = nil
	}
	b.Tint = RejectTint
	b.fadeAfter = true
	b.ReturnTo(tray)
}

// Update advances every running tween by dt
func (b *Body) Update(dt time.Duration) {
	if b.move != nil {
		p, done := b.move.Step(dt)
		b.Pos = p
		if done {
			b.move = nil
			if b.fadeAfter {
				b.fadeAfter = false
				b.fade = FadeTint(b.Tint)
			}
		}
	}
	if b.scaleTween != nil {
		v, done := b.scaleTween.Step(dt)
		b.Scale = v
		if done {
			b.scaleTween = nil
		}
	}
	if b.fade != nil {
		c, done := b.fade.Step()
		b.Tint = c
		if done {
			b.fade = nil
		}
	}
}
