package placement

import (
	"fmt"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

var log = log15.New("module", "placement")

// DragDepth is the draw depth of the piece following the pointer
const DragDepth = 1000

// State is the drag state of the controller
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Drop describes how a drag ended
type Drop struct {
	PieceID  int          `json:"piece_id"`
	At       layout.Point `json:"at"`
	Matched  bool         `json:"matched"` // a cell was within tolerance
	Cell     puzzle.Slot  `json:"cell"`    // valid when Matched
	Placed   bool         `json:"placed"`
	Target   layout.Point `json:"target"` // snap target or tray position
	Complete bool         `json:"complete"`
}

// drag is the single in-flight drag
type drag struct {
	piece     *puzzle.Piece
	sprite    Sprite
	origDepth int
}

// Controller runs the drag lifecycle of a puzzle session
type Controller struct {
	model    *puzzle.Model
	layout   Layout
	listener Listener
	guide    Guide
	offsets  OffsetTable

	current      *drag
	sprites      map[int]Sprite // last known sprite per piece id
	placedOrder  []int
	active       bool
	guideVisible bool
}

// Option configures a Controller
type Option func(*Controller)

// WithGuide attaches a tutorial guide
func WithGuide(g Guide) Option {
	return func(c *Controller) {
		c.guide = g
	}
}

// WithOffsets overrides the artwork offset table
func WithOffsets(t OffsetTable) Option {
	return func(c *Controller) {
		c.offsets = t
	}
}

// New creates a controller for the given configuration. The session is
// inactive until StartSession is called.
func New(config *puzzle.Config, l Layout, listener Listener, opts ...Option) (*Controller, error) {
	model, err := puzzle.NewModel(config)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("placement: layout is required")
	}
	if listener == nil {
		return nil, fmt.Errorf("placement: listener is required")
	}

	c := &Controller{
		model:    model,
		layout:   l,
		listener: listener,
		offsets:  OffsetsFromConfig(config),
		sprites:  make(map[int]Sprite),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// StartSession resets the model and enables interaction
func (c *Controller) StartSession() {
	if c.current != nil {
		c.releaseSprite(c.current)
		c.current = nil
	}
	c.hideGuide()

	c.model.Reset()
	c.sprites = make(map[int]Sprite)
	c.placedOrder = nil
	c.active = true

	log.Debug("session started", "config", c.model.Config().Name)
	c.listener.SessionStarted(c.model)
	c.showGuide()
}

// PieceDown begins dragging the piece. It returns false when the drag is ignored.
func (c *Controller) PieceDown(pieceID int, sprite Sprite) bool {
	if !c.active || c.current != nil || sprite == nil {
		return false
	}
	piece := c.model.Piece(pieceID)
	if piece == nil || piece.Placed {
		return false
	}

	c.hideGuide()

	c.current = &drag{
		piece:     piece,
		sprite:    sprite,
		origDepth: sprite.Depth(),
	}
	c.sprites[piece.ID] = sprite

	sprite.SetDepth(DragDepth)
	sprite.SetScale(DragScale)

	log.Debug("drag started", "piece", piece.ID)
	return true
}

// PointerMove makes the dragged piece follow the pointer
func (c *Controller) PointerMove(at layout.Point) {
	if c.current == nil {
		return
	}
	c.current.sprite.SetPosition(at)
}

// PointerUp ends the drag at the given position
func (c *Controller) PointerUp(at layout.Point) Drop {
	d := c.current
	if d == nil {
		return Drop{}
	}
	c.current = nil

	piece := d.piece
	d.sprite.SetPosition(at)
	drop := Drop{PieceID: piece.ID, At: at}

	row, col, ok := layout.FindCell(c.layout, c.model.GridSize(), at)
	if ok {
		drop.Matched = true
		drop.Cell = puzzle.Slot{Row: row, Col: col}
	}

	if ok && c.model.Place(piece, row, col) {
		target := c.layout.CellCenter(row, col).Add(c.offsets.For(piece.ID))
		d.sprite.SetPosition(target)
		d.sprite.SetInteractive(false)
		c.placedOrder = append(c.placedOrder, piece.ID)

		drop.Placed = true
		drop.Target = target
		log.Debug("piece placed", "piece", piece.ID, "row", row, "col", col)
		c.listener.PieceSnapped(piece, target)
	} else {
		tray := c.layout.TrayPosition(c.model.PieceIndex(piece.ID))
		drop.Target = tray
		log.Debug("piece rejected", "piece", piece.ID, "matched", ok)
		c.listener.PieceRejected(piece, tray)
	}

	c.releaseSprite(d)

	if drop.Placed && c.model.IsComplete() {
		drop.Complete = true
		c.complete()
	}

	return drop
}

// Undo takes the most recently placed piece back to the tray
func (c *Controller) Undo() (*puzzle.Piece, bool) {
	if !c.active || c.current != nil || len(c.placedOrder) == 0 {
		return nil, false
	}

	last := len(c.placedOrder) - 1
	piece := c.model.Piece(c.placedOrder[last])
	c.placedOrder = c.placedOrder[:last]
	if piece == nil {
		return nil, false
	}

	c.model.Remove(piece)

	tray := c.layout.TrayPosition(c.model.PieceIndex(piece.ID))
	if sprite, ok := c.sprites[piece.ID]; ok {
		sprite.SetInteractive(true)
	}

	log.Debug("piece returned", "piece", piece.ID)
	c.listener.PieceReturned(piece, tray)
	return piece, true
}

// State returns the drag state
func (c *Controller) State() State {
	if c.current != nil {
		return Dragging
	}
	return Idle
}

// Active reports whether pieces can be dragged
func (c *Controller) Active() bool {
	return c.active
}

// Dragging returns the piece being dragged, or nil
func (c *Controller) Dragging() *puzzle.Piece {
	if c.current == nil {
		return nil
	}
	return c.current.piece
}

// Model returns the puzzle model
func (c *Controller) Model() *puzzle.Model {
	return c.model
}

// Layout returns the coordinate mapping in use
func (c *Controller) Layout() Layout {
	return c.layout
}

// releaseSprite restores the idle scale and the pre-drag depth
func (c *Controller) releaseSprite(d *drag) {
	d.sprite.SetScale(IdleScale)
	d.sprite.SetDepth(d.origDepth)
}

func (c *Controller) complete() {
	c.active = false
	c.hideGuide()

	log.Info("puzzle completed", "config", c.model.Config().Name)
	c.listener.PuzzleCompleted()
}

func (c *Controller) showGuide() {
	if c.guide == nil {
		return
	}
	piece := c.model.FirstUnplaced()
	if piece == nil {
		return
	}

	from := c.layout.TrayPosition(c.model.PieceIndex(piece.ID))
	to := c.layout.CellCenter(piece.Home.Row, piece.Home.Col)
	c.guide.Show(from, to)
	c.guideVisible = true
}

func (c *Controller) hideGuide() {
	if c.guide == nil || !c.guideVisible {
		return
	}
	c.guideVisible = false
	c.guide.Hide()
}
