// Package table runs a placement controller without a screen.
//
// A Table keeps one headless sprite per piece, records what the controller
// reports and exposes the result as a JSON friendly State. The game service
// owns one Table per session.
package table

import (
	"fmt"
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

// Event types recorded by a Table
const (
	EventSessionStarted = "session_started"
	EventDragStarted    = "drag_started"
	EventSnapped        = "snapped"
	EventRejected       = "rejected"
	EventReturned       = "returned"
	EventComplete       = "complete"
	EventIgnored        = "ignored"
)

// Event is something that happened on the table
type Event struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	PieceID  int           `json:"piece_id,omitempty"`
	Position *layout.Point `json:"position,omitempty"`
	Time     time.Time     `json:"time"`
}

// HistoryEntry is a single drop in the table history
type HistoryEntry struct {
	Number    int          `json:"number"`
	PieceID   int          `json:"piece_id"`
	Action    string       `json:"action"` // "drop" or "undo"
	At        layout.Point `json:"at"`
	Cell      *puzzle.Slot `json:"cell,omitempty"`
	Placed    bool         `json:"placed"`
	Timestamp int64        `json:"timestamp"`
}

// GuideView is the tutorial hint as seen by clients
type GuideView struct {
	Visible bool         `json:"visible"`
	From    layout.Point `json:"from"`
	To      layout.Point `json:"to"`
}

// SpriteView is a piece sprite as seen by clients
type SpriteView struct {
	PieceID     int          `json:"piece_id"`
	Image       string       `json:"image"`
	Position    layout.Point `json:"position"`
	Scale       float64      `json:"scale"`
	Depth       int          `json:"depth"`
	Interactive bool         `json:"interactive"`
	Placed      bool         `json:"placed"`
}

// State is the full observable state of a table
type State struct {
	Puzzle   *puzzle.State `json:"puzzle"`
	Sprites  []SpriteView  `json:"sprites"`
	Guide    GuideView     `json:"guide"`
	Active   bool          `json:"active"`
	Dragging int           `json:"dragging,omitempty"`
	Message  string        `json:"message"`
	Drops    int           `json:"drops"`   // drops since the last reset
	Session  int           `json:"session"` // number of sessions started
}

// sprite is a headless placement.Sprite
type sprite struct {
	pieceID     int
	image       string
	pos         layout.Point
	scale       float64
	depth       int
	interactive bool
}

func (s *sprite) SetPosition(p layout.Point)  { s.pos = p }
func (s *sprite) SetScale(scale float64)      { s.scale = scale }
func (s *sprite) Depth() int                  { return s.depth }
func (s *sprite) SetDepth(depth int)          { s.depth = depth }
func (s *sprite) SetInteractive(enabled bool) { s.interactive = enabled }

// Table couples a controller with headless sprites
type Table struct {
	config     *puzzle.Config
	geometry   *layout.Geometry
	controller *placement.Controller

	sprites  []*sprite
	guide    GuideView
	message  string
	pending  []Event
	history  []HistoryEntry
	drops    int
	sessions int

	now func() time.Time
}

// New creates a table and starts its first session
func New(config *puzzle.Config) (*Table, error) {
	t := &Table{
		config:   config,
		geometry: layout.New(config),
		now:      time.Now,
	}

	ctrl, err := placement.New(config, t.geometry, t, placement.WithGuide(t))
	if err != nil {
		return nil, fmt.Errorf("failed to create controller: %w", err)
	}
	t.controller = ctrl
	ctrl.StartSession()
	t.Drain()

	return t, nil
}

// Config returns the puzzle configuration
func (t *Table) Config() *puzzle.Config {
	return t.config
}

// Geometry returns the coordinate mapping of the table
func (t *Table) Geometry() *layout.Geometry {
	return t.geometry
}

// Controller returns the underlying placement controller
func (t *Table) Controller() *placement.Controller {
	return t.controller
}

// Drag performs a complete drag: pointer down on the piece, one move per
// path point, pointer up at drop. It returns the drop outcome and whether
// the drag was accepted at all.
func (t *Table) Drag(pieceID int, path []layout.Point, drop layout.Point) (placement.Drop, bool) {
	s := t.spriteFor(pieceID)
	if s == nil || !t.controller.PieceDown(pieceID, s) {
		t.emit(Event{
			Type:    EventIgnored,
			Message: fmt.Sprintf("Piece %d cannot be dragged right now", pieceID),
			PieceID: pieceID,
		})
		return placement.Drop{}, false
	}
	t.emit(Event{
		Type:    EventDragStarted,
		Message: fmt.Sprintf("Picked up piece %d", pieceID),
		PieceID: pieceID,
	})

	for _, p := range path {
		t.controller.PointerMove(p)
	}

	result := t.controller.PointerUp(drop)
	t.drops++

	entry := HistoryEntry{
		Number:    len(t.history) + 1,
		PieceID:   pieceID,
		Action:    "drop",
		At:        drop,
		Placed:    result.Placed,
		Timestamp: t.now().Unix(),
	}
	if result.Matched {
		cell := result.Cell
		entry.Cell = &cell
	}
	t.history = append(t.history, entry)

	return result, true
}

// PlaceAt drags the piece from its tray slot straight to the center of (row, col)
func (t *Table) PlaceAt(pieceID, row, col int) (placement.Drop, bool) {
	from := t.geometry.TrayPosition(t.controller.Model().PieceIndex(pieceID))
	to := t.geometry.CellCenter(row, col)
	return t.Drag(pieceID, []layout.Point{from}, to)
}

// Undo returns the most recently placed piece to the tray
func (t *Table) Undo() (*puzzle.Piece, bool) {
	piece, ok := t.controller.Undo()
	if !ok {
		return nil, false
	}

	t.history = append(t.history, HistoryEntry{
		Number:    len(t.history) + 1,
		PieceID:   piece.ID,
		Action:    "undo",
		At:        t.spriteFor(piece.ID).pos,
		Timestamp: t.now().Unix(),
	})
	return piece, true
}

// Reset starts a new session. History is kept.
func (t *Table) Reset() {
	t.controller.StartSession()
}

// Drain returns and clears the events recorded since the last call
func (t *Table) Drain() []Event {
	events := t.pending
	t.pending = nil
	if events == nil {
		events = []Event{}
	}
	return events
}

// History returns every drop and undo since the table was created
func (t *Table) History() []HistoryEntry {
	return t.history
}

// State returns a snapshot of the table
func (t *Table) State() *State {
	model := t.controller.Model()
	state := &State{
		Puzzle:  model.Snapshot(),
		Sprites: make([]SpriteView, 0, len(t.sprites)),
		Guide:   t.guide,
		Active:  t.controller.Active(),
		Message: t.message,
		Drops:   t.drops,
		Session: t.sessions,
	}
	if p := t.controller.Dragging(); p != nil {
		state.Dragging = p.ID
	}

	for _, s := range t.sprites {
		view := SpriteView{
			PieceID:     s.pieceID,
			Image:       s.image,
			Position:    s.pos,
			Scale:       s.scale,
			Depth:       s.depth,
			Interactive: s.interactive,
		}
		if p := model.Piece(s.pieceID); p != nil {
			view.Placed = p.Placed
		}
		state.Sprites = append(state.Sprites, view)
	}

	return state
}

// SessionStarted lays every piece back out in the tray
func (t *Table) SessionStarted(model *puzzle.Model) {
	t.sessions++
	t.drops = 0
	t.sprites = make([]*sprite, 0, len(model.Pieces()))
	for i, p := range model.Pieces() {
		t.sprites = append(t.sprites, &sprite{
			pieceID:     p.ID,
			image:       p.Image,
			pos:         t.geometry.TrayPosition(i),
			scale:       placement.IdleScale,
			depth:       i,
			interactive: true,
		})
	}

	t.message = t.config.Messages.Welcome
	t.emit(Event{Type: EventSessionStarted, Message: t.message})
}

// PieceSnapped records a successful placement
func (t *Table) PieceSnapped(piece *puzzle.Piece, target layout.Point) {
	t.message = fmt.Sprintf(t.config.Messages.Snapped, piece.ID)
	t.emit(Event{Type: EventSnapped, Message: t.message, PieceID: piece.ID, Position: &target})
}

// PieceRejected sends the piece back to its tray slot
func (t *Table) PieceRejected(piece *puzzle.Piece, tray layout.Point) {
	if s := t.spriteFor(piece.ID); s != nil {
		s.pos = tray
	}
	t.message = fmt.Sprintf(t.config.Messages.Rejected, piece.ID)
	t.emit(Event{Type: EventRejected, Message: t.message, PieceID: piece.ID, Position: &tray})
}

// PieceReturned moves an undone piece back to its tray slot
func (t *Table) PieceReturned(piece *puzzle.Piece, tray layout.Point) {
	if s := t.spriteFor(piece.ID); s != nil {
		s.pos = tray
	}
	t.message = fmt.Sprintf("Piece %d is back in the tray", piece.ID)
	t.emit(Event{Type: EventReturned, Message: t.message, PieceID: piece.ID, Position: &tray})
}

// PuzzleCompleted records the end of the session
func (t *Table) PuzzleCompleted() {
	t.message = t.config.Messages.Complete
	t.emit(Event{Type: EventComplete, Message: t.message})
}

// Show makes the tutorial hint visible
func (t *Table) Show(from, to layout.Point) {
	t.guide = GuideView{Visible: true, From: from, To: to}
}

// Hide hides the tutorial hint
func (t *Table) Hide() {
	t.guide.Visible = false
}

func (t *Table) spriteFor(pieceID int) *sprite {
	for _, s := range t.sprites {
		if s.pieceID == pieceID {
			return s
		}
	}
	return nil
}

func (t *Table) emit(e Event) {
	e.Time = t.now()
	t.pending = append(t.pending, e)
}
