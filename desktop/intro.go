package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wricardo/mcp-training/jigsawgame/desktop/anim"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
)

const introFade = 400 * time.Millisecond

// introScene shows the title and a pulsing start button
type introScene struct {
	game     *Game
	next     func() (Scene, error)
	title    string
	subtitle string

	start button
	pulse anim.Pulse
	fade  *anim.Float
	alpha float64
	err   error
}

func newIntroScene(g *Game, title, subtitle string, next func() (Scene, error)) *introScene {
	s := &introScene{
		game:     g,
		next:     next,
		title:    title,
		subtitle: subtitle,
		start: button{
			label:  "START",
			center: layout.Point{X: screenWidth / 2, Y: screenHeight/2 + 120},
			w:      240,
			h:      80,
			scale:  1,
			alpha:  1,
		},
		pulse: anim.IntroPulse,
		alpha: 1,
	}
	s.pulse.Start()
	return s
}

func (s *introScene) Update(dt time.Duration) error {
	s.start.scale = s.pulse.Step(1)

	if s.fade != nil {
		v, done := s.fade.Step(dt)
		s.alpha = v
		if done {
			s.fade = nil
			next, err := s.next()
			if err != nil {
				log.Error("failed to start game", "err", err)
				s.err = err
				s.alpha = 1
				s.pulse.Start()
				return nil
			}
			s.game.SwitchTo(next)
		}
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.start.contains(layout.Point{X: float64(x), Y: float64(y)}) {
			s.pulse.Stop()
			s.err = nil
			s.fade = anim.FloatTo(1, 0, introFade)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && s.fade == nil {
		s.pulse.Stop()
		s.fade = anim.FloatTo(1, 0, introFade)
	}
	return nil
}

func (s *introScene) Draw(screen *ebiten.Image) {
	drawText(screen, s.title, screenWidth/2, screenHeight/2-120, 6, textColor, s.alpha)
	drawText(screen, s.subtitle, screenWidth/2, screenHeight/2-40, 2, dimTextColor, s.alpha)

	s.start.alpha = s.alpha
	s.start.draw(screen)

	if s.err != nil {
		drawText(screen, s.err.Error(), screenWidth/2, screenHeight-60, 1.5, anim.RejectTint, 1)
	}
}
