package anim

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
)

func TestHandle(t *testing.T) {
	var nilHandle *Handle
	assert.True(t, nilHandle.Stopped())
	nilHandle.Stop() // must not panic

	h := &Handle{}
	assert.False(t, h.Stopped())
	h.Stop()
	assert.True(t, h.Stopped())
}

func TestOutQuad(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.5, 0.75},
		{1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, OutQuad(tt.in), 1e-9)
	}
}

func TestFloat(t *testing.T) {
	f := FloatTo(0.5, 0.6, 200*time.Millisecond)

	v, done := f.Step(100 * time.Millisecond)
	assert.False(t, done)
	assert.InDelta(t, 0.575, v, 1e-9)

	v, done = f.Step(100 * time.Millisecond)
	assert.True(t, done)
	assert.Equal(t, 0.6, v)

	v, done = f.Step(100 * time.Millisecond)
	assert.True(t, done)
	assert.InDelta(t, 0.6, v, 1e-9)
}

func TestFloat_Stop(t *testing.T) {
	f := FloatTo(0, 1, time.Second)
	f.Step(500 * time.Millisecond)
	f.Stop()

	v, done := f.Step(time.Second)
	assert.True(t, done)
	assert.InDelta(t, 0.75, v, 1e-9, "a stopped tween keeps its value")
}

func TestMove(t *testing.T) {
	from := layout.Point{X: 0, Y: 100}
	to := layout.Point{X: 100, Y: 0}
	m := MoveTo(from, to, 450*time.Millisecond)

	p, done := m.Step(225 * time.Millisecond)
	require.False(t, done)
	assert.InDelta(t, 75, p.X, 1e-9)
	assert.InDelta(t, 25, p.Y, 1e-9)

	p, done = m.Step(time.Second)
	assert.True(t, done)
	assert.Equal(t, to, p)
}

func TestMove_ZeroDuration(t *testing.T) {
	to := layout.Point{X: 5, Y: 5}
	p, done := MoveTo(layout.Point{}, to, 0).Step(0)
	assert.True(t, done)
	assert.Equal(t, to, p)
}

func TestTintFade(t *testing.T) {
	f := FadeTint(RejectTint)

	c, done := f.Step()
	require.False(t, done)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(83), c.G)
	assert.Equal(t, c.G, c.B)

	steps := 1
	for !done {
		c, done = f.Step()
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 13, steps)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)
}

func TestTintFade_Stop(t *testing.T) {
	f := FadeTint(RejectTint)
	f.Step()
	f.Stop()

	c, done := f.Step()
	assert.True(t, done)
	assert.Equal(t, uint8(0xff), c.G)
}

func TestPulse(t *testing.T) {
	p := IntroPulse
	assert.False(t, p.Running())
	assert.Equal(t, 1.0, p.Step(1.0), "an idle pulse keeps the base scale")

	h := p.Start()
	require.True(t, p.Running())

	lo, hi := 1.0, 1.0
	for i := 0; i < 200; i++ {
		s := p.Step(1.0)
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	assert.InDelta(t, 1.08, hi, 0.001)
	assert.InDelta(t, 0.92, lo, 0.001)

	h.Stop()
	assert.False(t, p.Running())
	assert.Equal(t, 2.0, p.Step(2.0))
}

func TestPulse_RestartStopsPreviousHandle(t *testing.T) {
	p := CompletePulse
	first := p.Start()
	second := p.Start()

	assert.True(t, first.Stopped())
	assert.False(t, second.Stopped())

	p.Stop()
	assert.True(t, second.Stopped())
}

func TestHandSequence(t *testing.T) {
	from := layout.Point{X: 290, Y: 423.15}
	to := layout.Point{X: 830, Y: 180}
	s := NewHandSequence(from, to)
	frame := 16 * time.Millisecond

	start := s.Frame()
	assert.Equal(t, from, start.Position)
	assert.Equal(t, HandScale, start.Scale)
	assert.Equal(t, 1.0, start.Alpha)

	steps := 0
	for s.Phase() == HandPress {
		f, ok := s.Step(frame)
		require.True(t, ok)
		assert.Equal(t, from, f.Position)
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 7, steps)
	assert.Equal(t, HandPressedScale, s.Frame().Scale)

	steps = 0
	for s.Phase() == HandMove {
		s.Step(frame)
		steps++
		require.Less(t, steps, 200)
	}
	assert.InDelta(t, 100, steps, 1)
	assert.Equal(t, to, s.Frame().Position)

	steps = 0
	for s.Phase() == HandRelease {
		s.Step(frame)
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 9, steps)
	assert.Equal(t, HandScale, s.Frame().Scale)
	assert.Equal(t, 0.0, s.Frame().Alpha)

	require.Equal(t, HandWaiting, s.Phase())
	s.Step(300 * time.Millisecond)
	assert.Equal(t, HandWaiting, s.Phase())
	f, _ := s.Step(100 * time.Millisecond)
	assert.Equal(t, HandPress, s.Phase())
	assert.Equal(t, from, f.Position)
	assert.Equal(t, 1.0, f.Alpha)
}

func TestHandSequence_Stop(t *testing.T) {
	s := NewHandSequence(layout.Point{}, layout.Point{X: 10})
	s.Step(time.Millisecond)
	before := s.Frame()

	s.Stop()
	assert.False(t, s.Running())
	assert.True(t, s.Handle().Stopped())

	f, ok := s.Step(time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, before, f)
}

func TestHandPhase_String(t *testing.T) {
	assert.Equal(t, "press", HandPress.String())
	assert.Equal(t, "wait", HandWaiting.String())
	assert.Equal(t, "HandPhase(9)", HandPhase(9).String())
}
