// Package anim holds the per-frame animations of the desktop client.
//
// Every animation is advanced explicitly by the caller, once per frame, and
// can be cancelled through a Handle. Nothing here runs on its own goroutine.
package anim

import (
	"image/color"
	"math"
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
)

// Handle cancels a running animation. A nil Handle counts as stopped.
type Handle struct {
	stopped bool
}

// Stop cancels the animation owning h
func (h *Handle) Stop() {
	if h != nil {
		h.stopped = true
	}
}

// Stopped reports whether the animation was cancelled
func (h *Handle) Stopped() bool {
	return h == nil || h.stopped
}

// OutQuad decelerates towards the end, t in [0, 1]
func OutQuad(t float64) float64 {
	return t * (2 - t)
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

func progress(elapsed, d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(d))
}

// Float eases a scalar from From to To
type Float struct {
	From, To float64
	Duration time.Duration

	elapsed time.Duration
	handle  Handle
}

// FloatTo starts an outQuad tween
func FloatTo(from, to float64, d time.Duration) *Float {
	return &Float{From: from, To: to, Duration: d}
}

// Step advances the tween by dt and returns the current value and whether it finished
func (f *Float) Step(dt time.Duration) (float64, bool) {
	if f.handle.Stopped() {
		return f.value(), true
	}
	f.elapsed += dt
	v := f.value()
	if f.elapsed >= f.Duration {
		f.handle.Stop()
		return f.To, true
	}
	return v, false
}

// Stop freezes the tween where it is
func (f *Float) Stop() {
	f.handle.Stop()
}

func (f *Float) value() float64 {
	return f.From + (f.To-f.From)*OutQuad(progress(f.elapsed, f.Duration))
}

// Move eases a point from From to To
type Move struct {
	From, To layout.Point
	Duration time.Duration

	elapsed time.Duration
	handle  Handle
}

// MoveTo starts an outQuad position tween
func MoveTo(from, to layout.Point, d time.Duration) *Move {
	return &Move{From: from, To: to, Duration: d}
}

// Step advances the tween by dt and returns the current position and whether it finished
func (m *Move) Step(dt time.Duration) (layout.Point, bool) {
	if m.handle.Stopped() {
		return m.at(), true
	}
	m.elapsed += dt
	if m.elapsed >= m.Duration {
		m.handle.Stop()
		return m.To, true
	}
	return m.at(), false
}

// Stop freezes the tween where it is
func (m *Move) Stop() {
	m.handle.Stop()
}

func (m *Move) at() layout.Point {
	k := OutQuad(progress(m.elapsed, m.Duration))
	return layout.Point{
		X: m.From.X + (m.To.X-m.From.X)*k,
		Y: m.From.Y + (m.To.Y-m.From.Y)*k,
	}
}

// White is the neutral tint
var White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// RejectTint colors a piece that was dropped in the wrong place
var RejectTint = color.RGBA{R: 0xff, G: 0x44, B: 0x44, A: 0xff}

// TintStep is the per-frame progress of a TintFade
const TintStep = 0.08

// TintFade blends a tint back to white a fixed step per frame
type TintFade struct {
	From color.RGBA

	t      float64
	handle Handle
}

// FadeTint starts a fade from c to white
func FadeTint(c color.RGBA) *TintFade {
	return &TintFade{From: c}
}

// Step advances one frame and returns the tint and whether the fade finished
func (f *TintFade) Step() (color.RGBA, bool) {
	if f.handle.Stopped() {
		return White, true
	}
	f.t += TintStep
	if f.t >= 1 {
		f.handle.Stop()
		return White, true
	}
	return color.RGBA{
		R: lerpByte(f.From.R, 0xff, f.t),
		G: lerpByte(f.From.G, 0xff, f.t),
		B: lerpByte(f.From.B, 0xff, f.t),
		A: 0xff,
	}, false
}

// Stop jumps to white
func (f *TintFade) Stop() {
	f.handle.Stop()
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a)*(1-t) + float64(b)*t))
}
