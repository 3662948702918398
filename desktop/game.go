package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is one screen of the desktop client
type Scene interface {
	Update(dt time.Duration) error
	Draw(screen *ebiten.Image)
}

// Closer is implemented by scenes holding background resources
type Closer interface {
	Close()
}

// Game hosts the active scene
type Game struct {
	scene Scene
}

// NewGame creates the client starting at the given scene
func NewGame(first Scene) *Game {
	return &Game{scene: first}
}

// SwitchTo replaces the active scene
func (g *Game) SwitchTo(next Scene) {
	if c, ok := g.scene.(Closer); ok {
		c.Close()
	}
	log.Debug("scene switched", "from", sceneName(g.scene), "to", sceneName(next))
	g.scene = next
}

// Update advances the active scene by one tick
func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	return g.scene.Update(dt)
}

// Draw renders the active scene
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.scene.Draw(screen)
}

// Layout returns the game screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func sceneName(s Scene) string {
	switch s.(type) {
	case *introScene:
		return "intro"
	case *playScene:
		return "play"
	case *watchScene:
		return "watch"
	default:
		return "none"
	}
}
