package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wricardo/mcp-training/jigsawgame/desktop/anim"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

const (
	pictureMove = 800 * time.Millisecond
	fadeOut     = 600 * time.Millisecond
	buttonMove  = 800 * time.Millisecond

	previewAlpha = 0.3
)

// completion holds the end screen animations
type completion struct {
	picture    *anim.Move
	picturePos layout.Point
	fade       *anim.Float
	alpha      float64 // tray and hint opacity
	buttonMove *anim.Move
	play       button
	pulse      anim.Pulse
}

// playScene runs a local puzzle session through the placement controller
type playScene struct {
	config     *puzzle.Config
	geo        *layout.Geometry
	controller *placement.Controller

	sprites []*pieceSprite
	byID    map[int]*pieceSprite
	picture *ebiten.Image

	hand    *anim.HandSequence
	message string
	done    *completion
	openURL func(string) error
}

var (
	_ placement.Listener = (*playScene)(nil)
	_ placement.Guide    = (*playScene)(nil)
)

func newPlayScene(config *puzzle.Config) (*playScene, error) {
	geo := layout.New(config)
	s := &playScene{
		config:  config,
		geo:     geo,
		byID:    make(map[int]*pieceSprite),
		picture: newPicture(geo),
		openURL: openBrowser,
	}

	for _, pc := range config.Pieces {
		sp := &pieceSprite{id: pc.ID, image: newTile(pc, geo.CellSize(), geo.GridSize())}
		s.sprites = append(s.sprites, sp)
		s.byID[pc.ID] = sp
	}

	controller, err := placement.New(config, geo, s, placement.WithGuide(s))
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	s.controller = controller
	s.controller.StartSession()
	return s, nil
}

// SessionStarted puts every piece back in its tray slot
func (s *playScene) SessionStarted(model *puzzle.Model) {
	for i, piece := range model.Pieces() {
		if sp, ok := s.byID[piece.ID]; ok {
			sp.Reset(s.geo.TrayPosition(i), i)
		}
	}
	s.done = nil
	s.message = s.config.Messages.Welcome
}

func (s *playScene) PieceSnapped(piece *puzzle.Piece, target layout.Point) {
	s.message = fmt.Sprintf(s.config.Messages.Snapped, piece.ID)
}

func (s *playScene) PieceRejected(piece *puzzle.Piece, tray layout.Point) {
	if sp, ok := s.byID[piece.ID]; ok {
		sp.Reject(tray)
	}
	s.message = fmt.Sprintf(s.config.Messages.Rejected, piece.ID)
}

func (s *playScene) PieceReturned(piece *puzzle.Piece, tray layout.Point) {
	if sp, ok := s.byID[piece.ID]; ok {
		sp.ReturnTo(tray)
	}
	s.message = fmt.Sprintf("Piece %d is back in the tray", piece.ID)
}

func (s *playScene) PuzzleCompleted() {
	s.message = s.config.Messages.Complete

	board := s.geo.Board()
	from := board.Center()
	to := layout.Point{X: screenWidth / 2, Y: screenHeight/2 - 60}

	s.done = &completion{
		picture:    anim.MoveTo(from, to, pictureMove),
		picturePos: from,
		fade:       anim.FloatTo(1, 0, fadeOut),
		alpha:      1,
		buttonMove: anim.MoveTo(
			layout.Point{X: screenWidth / 2, Y: screenHeight + 60},
			layout.Point{X: screenWidth / 2, Y: screenHeight - 110},
			buttonMove,
		),
		play: button{
			label:  "PLAY NOW",
			center: layout.Point{X: screenWidth / 2, Y: screenHeight + 60},
			w:      260,
			h:      70,
			scale:  1,
			alpha:  1,
		},
		pulse: anim.CompletePulse,
	}
}

// Show starts the tutorial hand
func (s *playScene) Show(from, to layout.Point) {
	s.Hide()
	s.hand = anim.NewHandSequence(from, to)
}

// Hide cancels the tutorial hand
func (s *playScene) Hide() {
	if s.hand != nil {
		s.hand.Stop()
		s.hand = nil
	}
}

func (s *playScene) Update(dt time.Duration) error {
	for _, sp := range s.sprites {
		sp.Update(dt)
	}
	if s.hand != nil {
		s.hand.Step(dt)
	}
	if s.done != nil {
		s.updateCompletion(dt)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.controller.StartSession()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.controller.Undo()
	}

	x, y := ebiten.CursorPosition()
	at := layout.Point{X: float64(x), Y: float64(y)}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if s.done != nil {
			s.clickPlay(at)
			return nil
		}
		if sp := spriteAt(s.sprites, at); sp != nil {
			s.controller.PieceDown(sp.id, sp)
		}
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		if s.controller.State() == placement.Dragging {
			drop := s.controller.PointerUp(at)
			log.Debug("piece dropped", "piece", drop.PieceID, "placed", drop.Placed, "complete", drop.Complete)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		s.controller.PointerMove(at)
	}
	return nil
}

func (s *playScene) updateCompletion(dt time.Duration) {
	d := s.done
	if d.picture != nil {
		p, done := d.picture.Step(dt)
		d.picturePos = p
		if done {
			d.picture = nil
		}
	}
	if d.fade != nil {
		v, done := d.fade.Step(dt)
		d.alpha = v
		if done {
			d.fade = nil
		}
	}
	if d.buttonMove != nil {
		p, done := d.buttonMove.Step(dt)
		d.play.center = p
		if done {
			d.buttonMove = nil
			d.pulse.Start()
		}
	}
	d.play.scale = d.pulse.Step(1)
}

func (s *playScene) clickPlay(at layout.Point) {
	if s.done.buttonMove != nil || !s.done.play.contains(at) {
		return
	}
	url := s.config.StoreURL
	if url == "" {
		return
	}
	log.Info("opening store page", "url", url)
	if err := s.openURL(url); err != nil {
		log.Error("failed to open store page", "url", url, "err", err)
	}
}

func (s *playScene) Draw(screen *ebiten.Image) {
	if s.done != nil {
		s.drawCompletion(screen)
		return
	}

	drawBoard(screen, s.geo, s.picture)
	s.drawTray(screen, 1)
	for _, sp := range byDepth(s.sprites) {
		sp.draw(screen, 1)
	}

	if s.hand != nil && s.hand.Running() {
		drawHand(screen, s.hand.Frame())
	}

	drawText(screen, s.message, screenWidth/2, 60, 2, textColor, 1)
	drawTextLeft(screen, fmt.Sprintf("%d/%d placed | drag pieces onto the board | U: undo | R: restart",
		s.controller.Model().PlacedCount(), len(s.sprites)), 20, screenHeight-30, dimTextColor)
}

// drawBoard draws the field with a faint preview of the picture
func drawBoard(screen *ebiten.Image, geo *layout.Geometry, picture *ebiten.Image) {
	board := geo.Board()
	fillRect(screen, board, fieldColor)
	drawImageAt(screen, picture, board.Center(), 1, white, previewAlpha)

	n := geo.GridSize()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			strokeRect(screen, geo.CellRect(row, col), 1, gridColor)
		}
	}
	strokeRect(screen, board, 2, textColor)
}

func (s *playScene) drawTray(screen *ebiten.Image, alpha float64) {
	size := s.geo.CellSize() + 10
	for i := range s.sprites {
		slot := layout.RectAround(s.geo.TrayPosition(i), size, size)
		fillRect(screen, slot, withAlpha(trayColor, alpha))
		strokeRect(screen, slot, 1, withAlpha(gridColor, alpha))
	}
}

func (s *playScene) drawCompletion(screen *ebiten.Image) {
	d := s.done
	if d.alpha > 0 {
		s.drawTray(screen, d.alpha)
		drawText(screen, s.message, screenWidth/2, 60, 2, textColor, d.alpha)
	}

	drawImageAt(screen, s.picture, d.picturePos, 1, white, 1)
	strokeRect(screen, layout.RectAround(d.picturePos, s.geo.Board().W, s.geo.Board().H), 3, textColor)
	d.play.draw(screen)
}

// drawHand draws the tutorial pointer
func drawHand(screen *ebiten.Image, f anim.HandFrame) {
	if f.Alpha <= 0 {
		return
	}
	size := 120 * f.Scale
	r := layout.RectAround(f.Position, size, size)
	fillRect(screen, r, withAlpha(textColor, 0.6*f.Alpha))
	strokeRect(screen, r, 3, withAlpha(buttonColor, f.Alpha))
}
