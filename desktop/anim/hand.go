package anim

import (
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
)

// Tutorial hand timing
const (
	HandPressStep   = 0.15
	HandMoveStep    = 0.01
	HandReleaseStep = 0.12
	HandWait        = 400 * time.Millisecond

	HandScale        = 0.5
	HandPressedScale = 0.4
)

// HandPhase is the current step of the tutorial hand
type HandPhase int

const (
	HandPress HandPhase = iota
	HandMove
	HandRelease
	HandWaiting
)

func (p HandPhase) String() string {
	switch p {
	case HandPress:
		return "press"
	case HandMove:
		return "move"
	case HandRelease:
		return "release"
	case HandWaiting:
		return "wait"
	default:
		return fmt.Sprintf("HandPhase(%d)", int(p))
	}
}

// HandFrame is what to draw for one frame
type HandFrame struct {
	Position layout.Point
	Scale    float64
	Alpha    float64
}

// HandSequence loops press, move, release and a pause, showing a drag from
// a tray slot to a cell. Every Step checks the handle first.
type HandSequence struct {
	from, to layout.Point

	phase  HandPhase
	t      float64
	waited time.Duration
	frame  HandFrame
	handle *Handle
}

// NewHandSequence starts the loop at the press of from
func NewHandSequence(from, to layout.Point) *HandSequence {
	s := &HandSequence{from: from, to: to, handle: &Handle{}}
	s.restart()
	return s
}

// Handle returns the cancellation handle of the sequence
func (s *HandSequence) Handle() *Handle {
	return s.handle
}

// Stop cancels the loop
func (s *HandSequence) Stop() {
	s.handle.Stop()
}

// Running reports whether the loop is still going
func (s *HandSequence) Running() bool {
	return !s.handle.Stopped()
}

// Phase returns the current step
func (s *HandSequence) Phase() HandPhase {
	return s.phase
}

// Frame returns the last computed frame
func (s *HandSequence) Frame() HandFrame {
	return s.frame
}

// Step advances one frame. dt only matters for the pause between loops.
// It returns false once the sequence was stopped.
func (s *HandSequence) Step(dt time.Duration) (HandFrame, bool) {
	if s.handle.Stopped() {
		return s.frame, false
	}

	switch s.phase {
	case HandPress:
		s.t += HandPressStep
		if s.t >= 1 {
			s.frame.Scale = HandPressedScale
			s.enter(HandMove)
			break
		}
		s.frame.Scale = HandScale - (HandScale-HandPressedScale)*s.t

	case HandMove:
		s.t += HandMoveStep
		if s.t >= 1 {
			s.frame.Position = s.to
			s.enter(HandRelease)
			break
		}
		s.frame.Position = layout.Point{
			X: s.from.X + (s.to.X-s.from.X)*s.t,
			Y: s.from.Y + (s.to.Y-s.from.Y)*s.t,
		}

	case HandRelease:
		s.t += HandReleaseStep
		if s.t >= 1 {
			s.frame.Scale = HandScale
			s.frame.Alpha = 0
			s.enter(HandWaiting)
			break
		}
		s.frame.Scale = HandPressedScale + (HandScale-HandPressedScale)*s.t

	case HandWaiting:
		s.waited += dt
		if s.waited >= HandWait {
			s.restart()
		}
	}

	return s.frame, true
}

func (s *HandSequence) enter(phase HandPhase) {
	s.phase = phase
	s.t = 0
	s.waited = 0
}

func (s *HandSequence) restart() {
	s.enter(HandPress)
	s.frame = HandFrame{Position: s.from, Scale: HandScale, Alpha: 1}
}
