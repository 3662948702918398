package placement

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
)

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

type fakeSprite struct {
	pos         layout.Point
	scale       float64
	depth       int
	interactive bool
	scales      []float64
}

func newFakeSprite(depth int) *fakeSprite {
	return &fakeSprite{scale: IdleScale, depth: depth, interactive: true}
}

func (s *fakeSprite) SetPosition(p layout.Point) { s.pos = p }
func (s *fakeSprite) SetScale(scale float64) {
	s.scale = scale
	s.scales = append(s.scales, scale)
}
func (s *fakeSprite) Depth() int                  { return s.depth }
func (s *fakeSprite) SetDepth(depth int)          { s.depth = depth }
func (s *fakeSprite) SetInteractive(enabled bool) { s.interactive = enabled }

type recordedEvent struct {
	kind    string
	pieceID int
	at      layout.Point
}

type fakeListener struct {
	events []recordedEvent
}

func (l *fakeListener) SessionStarted(model *puzzle.Model) {
	l.events = append(l.events, recordedEvent{kind: "started"})
}

func (l *fakeListener) PieceSnapped(piece *puzzle.Piece, target layout.Point) {
	l.events = append(l.events, recordedEvent{kind: "snapped", pieceID: piece.ID, at: target})
}

func (l *fakeListener) PieceRejected(piece *puzzle.Piece, tray layout.Point) {
	l.events = append(l.events, recordedEvent{kind: "rejected", pieceID: piece.ID, at: tray})
}

func (l *fakeListener) PieceReturned(piece *puzzle.Piece, tray layout.Point) {
	l.events = append(l.events, recordedEvent{kind: "returned", pieceID: piece.ID, at: tray})
}

func (l *fakeListener) PuzzleCompleted() {
	l.events = append(l.events, recordedEvent{kind: "completed"})
}

func (l *fakeListener) count(kind string) int {
	n := 0
	for _, e := range l.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (l *fakeListener) last() recordedEvent {
	return l.events[len(l.events)-1]
}

type fakeGuide struct {
	shown    int
	hidden   int
	from, to layout.Point
}

func (g *fakeGuide) Show(from, to layout.Point) {
	g.shown++
	g.from, g.to = from, to
}

func (g *fakeGuide) Hide() { g.hidden++ }

type fixture struct {
	ctrl     *Controller
	geo      *layout.Geometry
	listener *fakeListener
	guide    *fakeGuide
	sprites  map[int]*fakeSprite
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := puzzle.DefaultConfig()
	f := &fixture{
		geo:      layout.New(cfg),
		listener: &fakeListener{},
		guide:    &fakeGuide{},
		sprites:  map[int]*fakeSprite{},
	}

	ctrl, err := New(cfg, f.geo, f.listener, WithGuide(f.guide))
	require.NoError(t, err)
	f.ctrl = ctrl
	f.ctrl.StartSession()

	for i, p := range cfg.Pieces {
		f.sprites[p.ID] = newFakeSprite(i)
	}
	return f
}

// dragTo performs a full drag of the piece and drops it at the point
func (f *fixture) dragTo(id int, at layout.Point) Drop {
	f.ctrl.PieceDown(id, f.sprites[id])
	f.ctrl.PointerMove(layout.Point{X: at.X - 3, Y: at.Y - 3})
	return f.ctrl.PointerUp(at)
}

// dropHome drags the piece onto its home cell center
func (f *fixture) dropHome(id int) Drop {
	p := f.ctrl.Model().Piece(id)
	return f.dragTo(id, f.geo.CellCenter(p.Home.Row, p.Home.Col))
}

func TestNew_Validation(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	geo := layout.New(cfg)

	_, err := New(cfg, nil, &fakeListener{})
	assert.Error(t, err)

	_, err = New(cfg, geo, nil)
	assert.Error(t, err)

	bad := puzzle.DefaultConfig()
	bad.GridSize = 0
	_, err = New(bad, geo, &fakeListener{})
	assert.Error(t, err)
}

func TestController_InactiveUntilStarted(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	ctrl, err := New(cfg, layout.New(cfg), &fakeListener{})
	require.NoError(t, err)

	assert.False(t, ctrl.Active())
	assert.False(t, ctrl.PieceDown(1, newFakeSprite(0)))
	assert.Equal(t, Idle, ctrl.State())
}

func TestController_PlaceOnHome(t *testing.T) {
	f := newFixture(t)
	sprite := f.sprites[1]

	require.True(t, f.ctrl.PieceDown(1, sprite))
	assert.Equal(t, Dragging, f.ctrl.State())
	assert.Equal(t, DragScale, sprite.scale)
	assert.Equal(t, DragDepth, sprite.depth)

	f.ctrl.PointerMove(layout.Point{X: 500, Y: 300})
	assert.Equal(t, layout.Point{X: 500, Y: 300}, sprite.pos)
	assert.False(t, f.ctrl.Model().Piece(1).Placed, "tracking must not touch the model")

	drop := f.ctrl.PointerUp(layout.Point{X: 840, Y: 170})

	// Cell (0,0) center (830,180) plus the (+5,+17) artwork offset
	want := layout.Point{X: 835, Y: 197}
	assert.True(t, drop.Placed)
	assert.Equal(t, puzzle.Slot{Row: 0, Col: 0}, drop.Cell)
	assert.Equal(t, want, drop.Target)
	assert.Equal(t, want, sprite.pos)
	assert.False(t, sprite.interactive)
	assert.Equal(t, IdleScale, sprite.scale)
	assert.Equal(t, 0, sprite.depth)
	assert.Equal(t, Idle, f.ctrl.State())
	assert.Equal(t, recordedEvent{kind: "snapped", pieceID: 1, at: want}, f.listener.last())
}

func TestController_OffsetTable(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		id   int
		want layout.Point
	}{
		{2, layout.Point{X: 932, Y: 280}},
		{3, layout.Point{X: 1125, Y: 280}},
		{4, layout.Point{X: 1028, Y: 377}},
	}

	for _, tt := range tests {
		drop := f.dropHome(tt.id)
		require.True(t, drop.Placed)
		assert.Equal(t, tt.want, f.sprites[tt.id].pos, "piece %d", tt.id)
	}
}

func TestController_WrongCellRejected(t *testing.T) {
	f := newFixture(t)
	before := f.ctrl.Model().Snapshot()

	// Piece 4 belongs at (2,2); drop it near (1,1)
	drop := f.dragTo(4, layout.Point{X: 940, Y: 290})

	assert.True(t, drop.Matched)
	assert.Equal(t, puzzle.Slot{Row: 1, Col: 1}, drop.Cell)
	assert.False(t, drop.Placed)
	tray := f.geo.TrayPosition(3)
	assert.Equal(t, tray, drop.Target)
	assert.Equal(t, recordedEvent{kind: "rejected", pieceID: 4, at: tray}, f.listener.last())
	assert.Equal(t, before, f.ctrl.Model().Snapshot())

	sprite := f.sprites[4]
	assert.True(t, sprite.interactive)
	assert.Equal(t, IdleScale, sprite.scale)
	assert.Equal(t, 3, sprite.depth)
}

func TestController_DropOutsideBoard(t *testing.T) {
	f := newFixture(t)

	drop := f.dragTo(2, layout.Point{X: 10, Y: 10})

	assert.False(t, drop.Matched)
	assert.False(t, drop.Placed)
	assert.Equal(t, f.geo.TrayPosition(1), drop.Target)
	assert.Equal(t, 1, f.listener.count("rejected"))
}

func TestController_BoundaryIsExclusive(t *testing.T) {
	f := newFixture(t)
	center := f.geo.CellCenter(0, 0)
	tolerance := f.geo.CellSize() / 2

	// Exactly tolerance away on x: no match for (0,0), and (0,1) is also exactly tolerance away
	drop := f.dragTo(1, layout.Point{X: center.X + tolerance, Y: center.Y})
	assert.False(t, drop.Matched)
	assert.False(t, drop.Placed)

	// Exactly tolerance away on y only
	drop = f.dragTo(1, layout.Point{X: center.X, Y: center.Y - tolerance})
	assert.False(t, drop.Matched)

	// Just inside on both axes
	drop = f.dragTo(1, layout.Point{X: center.X + tolerance - 0.01, Y: center.Y - tolerance + 0.01})
	assert.True(t, drop.Placed)
}

func TestController_FirstMatchOnlyIsAttempted(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	listener := &fakeListener{}
	ctrl, err := New(cfg, overlapLayout{}, listener)
	require.NoError(t, err)
	ctrl.StartSession()

	// Every cell matches; (0,0) is tried first and rejects piece 2
	require.True(t, ctrl.PieceDown(2, newFakeSprite(0)))
	drop := ctrl.PointerUp(layout.Point{X: 0, Y: 0})

	assert.True(t, drop.Matched)
	assert.Equal(t, puzzle.Slot{Row: 0, Col: 0}, drop.Cell)
	assert.False(t, drop.Placed)
	assert.Equal(t, 0, ctrl.Model().PlacedCount())
}

type overlapLayout struct{}

func (overlapLayout) CellCenter(row, col int) layout.Point { return layout.Point{} }
func (overlapLayout) CellSize() float64                    { return 100 }
func (overlapLayout) TrayPosition(index int) layout.Point {
	return layout.Point{X: float64(index) * 10, Y: 500}
}

func TestController_IgnoredPieceDown(t *testing.T) {
	f := newFixture(t)

	// Unknown piece
	assert.False(t, f.ctrl.PieceDown(99, newFakeSprite(0)))

	// Second piece while dragging
	require.True(t, f.ctrl.PieceDown(1, f.sprites[1]))
	assert.False(t, f.ctrl.PieceDown(2, f.sprites[2]))
	assert.Equal(t, 1, f.ctrl.Dragging().ID)
	assert.Equal(t, 1, f.sprites[2].depth, "ignored sprite keeps its depth")
	f.ctrl.PointerUp(f.geo.CellCenter(0, 0))

	// Already placed piece
	assert.False(t, f.ctrl.PieceDown(1, f.sprites[1]))
	assert.Equal(t, Idle, f.ctrl.State())
}

func TestController_EventsWithoutDragAreIgnored(t *testing.T) {
	f := newFixture(t)
	events := len(f.listener.events)

	f.ctrl.PointerMove(layout.Point{X: 1, Y: 1})
	drop := f.ctrl.PointerUp(f.geo.CellCenter(0, 0))

	assert.Equal(t, Drop{}, drop)
	assert.Len(t, f.listener.events, events)
	assert.Equal(t, 0, f.ctrl.Model().PlacedCount())
}

func TestController_CompletionFiresOnce(t *testing.T) {
	f := newFixture(t)

	for _, id := range []int{3, 1, 4} {
		drop := f.dropHome(id)
		require.True(t, drop.Placed)
		assert.False(t, drop.Complete)
		assert.True(t, f.ctrl.Active())
	}
	assert.Equal(t, 0, f.listener.count("completed"))

	drop := f.dropHome(2)
	require.True(t, drop.Placed)
	assert.True(t, drop.Complete)
	assert.True(t, f.ctrl.Model().IsComplete())
	assert.Equal(t, 1, f.listener.count("completed"))
	assert.False(t, f.ctrl.Active())

	// No further drags, no duplicate completion
	assert.False(t, f.ctrl.PieceDown(2, f.sprites[2]))
	f.ctrl.PointerUp(f.geo.CellCenter(1, 1))
	assert.Equal(t, 1, f.listener.count("completed"))
	assert.True(t, f.ctrl.Model().IsComplete())
}

func TestController_RestartMidGame(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.dropHome(1).Placed)
	require.True(t, f.dropHome(2).Placed)

	// Restart while a drag is in flight
	require.True(t, f.ctrl.PieceDown(3, f.sprites[3]))
	f.ctrl.StartSession()

	assert.Equal(t, Idle, f.ctrl.State())
	assert.True(t, f.ctrl.Active())
	assert.Equal(t, 0, f.ctrl.Model().PlacedCount())
	assert.Equal(t, IdleScale, f.sprites[3].scale)
	assert.Equal(t, 2, f.sprites[3].depth)
	assert.Equal(t, 2, f.listener.count("started"))

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.Nil(t, f.ctrl.Model().OccupantAt(row, col))
		}
	}

	// Completion can fire again in the new session
	for _, id := range []int{1, 2, 3, 4} {
		require.True(t, f.dropHome(id).Placed)
	}
	assert.Equal(t, 1, f.listener.count("completed"))
}

func TestController_Guide(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, 1, f.guide.shown)
	assert.Equal(t, f.geo.TrayPosition(0), f.guide.from)
	assert.Equal(t, f.geo.CellCenter(0, 0), f.guide.to)

	f.ctrl.PieceDown(2, f.sprites[2])
	f.ctrl.PointerUp(layout.Point{})
	f.ctrl.PieceDown(2, f.sprites[2])
	f.ctrl.PointerUp(layout.Point{})

	assert.Equal(t, 1, f.guide.hidden, "guide is hidden once")
}

func TestController_GuideSkippedWithoutUnplacedPiece(t *testing.T) {
	f := newFixture(t)
	for _, id := range []int{1, 2, 3, 4} {
		f.dropHome(id)
	}

	f.guide.shown = 0
	f.ctrl.model.Reset()
	for _, p := range f.ctrl.model.Pieces() {
		f.ctrl.model.Place(p, p.Home.Row, p.Home.Col)
	}
	f.ctrl.showGuide()

	assert.Equal(t, 0, f.guide.shown)
}

func TestController_Undo(t *testing.T) {
	f := newFixture(t)

	_, ok := f.ctrl.Undo()
	assert.False(t, ok, "nothing to undo")

	require.True(t, f.dropHome(2).Placed)
	require.True(t, f.dropHome(4).Placed)

	piece, ok := f.ctrl.Undo()
	require.True(t, ok)
	assert.Equal(t, 4, piece.ID)
	assert.False(t, piece.Placed)
	assert.Nil(t, f.ctrl.Model().OccupantAt(2, 2))
	assert.True(t, f.sprites[4].interactive)
	assert.Equal(t, recordedEvent{kind: "returned", pieceID: 4, at: f.geo.TrayPosition(3)}, f.listener.last())

	// The piece can be dragged again
	assert.True(t, f.dropHome(4).Placed)
}

func TestController_UndoAfterCompletionIsIgnored(t *testing.T) {
	f := newFixture(t)
	for _, id := range []int{1, 2, 3, 4} {
		f.dropHome(id)
	}

	_, ok := f.ctrl.Undo()
	assert.False(t, ok)
	assert.True(t, f.ctrl.Model().IsComplete())
}

func TestController_WithOffsets(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	geo := layout.New(cfg)
	ctrl, err := New(cfg, geo, &fakeListener{}, WithOffsets(OffsetTable{}))
	require.NoError(t, err)
	ctrl.StartSession()

	sprite := newFakeSprite(0)
	ctrl.PieceDown(1, sprite)
	drop := ctrl.PointerUp(geo.CellCenter(0, 0))

	assert.Equal(t, geo.CellCenter(0, 0), drop.Target)
}

func TestDefaultOffsetsMatchDefaultConfig(t *testing.T) {
	assert.Equal(t, DefaultOffsets(), OffsetsFromConfig(puzzle.DefaultConfig()))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "dragging", Dragging.String())
	assert.Equal(t, "State(7)", State(7).String())
}
