package main

import (
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/jigsawgame/api"
	"github.com/wricardo/mcp-training/jigsawgame/game/config"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
	"github.com/wricardo/mcp-training/jigsawgame/game/session"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
)

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

func newTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(puzzle.DefaultConfig())
	require.NoError(t, err)
	return tbl
}

func TestSweepStrategy_SolvesLocally(t *testing.T) {
	tbl := newTable(t)
	state := tbl.State()
	strategy := NewSweepStrategy(state)

	for !state.Puzzle.Complete {
		move, ok := strategy.NextMove(state)
		require.True(t, ok, "strategy ran out of moves")

		drop, accepted := tbl.PlaceAt(move.PieceID, move.Cell.Row, move.Cell.Col)
		require.True(t, accepted)
		strategy.Record(move, drop.Placed)
		state = tbl.State()
		require.Less(t, strategy.Drops(), 64)
	}

	// 1 + 5 + 6 + 8 drops sweeping row-major past occupied cells
	assert.Equal(t, 20, strategy.Drops())
	assert.Equal(t, map[int]puzzle.Slot{
		1: {Row: 0, Col: 0},
		2: {Row: 1, Col: 1},
		3: {Row: 1, Col: 3},
		4: {Row: 2, Col: 2},
	}, strategy.Homes())

	_, ok := strategy.NextMove(state)
	assert.False(t, ok, "a complete puzzle has no moves")
}

func TestSweepStrategy_UsesLearnedHomes(t *testing.T) {
	tbl := newTable(t)
	strategy := NewSweepStrategy(tbl.State())
	strategy.Record(Move{PieceID: 2, Cell: puzzle.Slot{Row: 1, Col: 1}}, true)
	strategy.Reset()

	// Piece 2's home jumps the queue
	move, ok := strategy.NextMove(tbl.State())
	require.True(t, ok)
	assert.Equal(t, Move{PieceID: 2, Cell: puzzle.Slot{Row: 1, Col: 1}}, move)
	assert.Equal(t, 0, strategy.Drops())
}

func TestSweepStrategy_SkipsRuledOutAndClaimedCells(t *testing.T) {
	tbl := newTable(t)
	strategy := NewSweepStrategy(tbl.State())

	strategy.Record(Move{PieceID: 1, Cell: puzzle.Slot{Row: 0, Col: 0}}, false)
	strategy.Record(Move{PieceID: 3, Cell: puzzle.Slot{Row: 0, Col: 1}}, true)

	// Piece 3 is not placed on this table, so its learned home comes first
	move, ok := strategy.NextMove(tbl.State())
	require.True(t, ok)
	assert.Equal(t, 3, move.PieceID)

	// Once the home is occupied piece 1 skips (0,0) and the claimed (0,1)
	state := tbl.State()
	state.Puzzle.Cells[0][1] = 3

	move, ok = strategy.NextMove(state)
	require.True(t, ok)
	assert.Equal(t, Move{PieceID: 1, Cell: puzzle.Slot{Row: 0, Col: 2}}, move)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	require.NoError(t, err)

	gameService := service.NewGameService(session.NewManager(), configs)
	server := httptest.NewServer(api.NewServer(gameService, nil))
	t.Cleanup(server.Close)
	return server
}

func TestSolve_AgainstServer(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)

	state, err := client.CreateSession("")
	require.NoError(t, err)
	require.NotEmpty(t, client.sessionID)
	require.Equal(t, "classic", state.Puzzle.ConfigName)

	strategy := NewSweepStrategy(state)
	state, err = solve(client, strategy, state, 200, 0)
	require.NoError(t, err)
	assert.True(t, state.Puzzle.Complete)
	assert.Equal(t, 20, strategy.Drops())

	state, err = client.Reset()
	require.NoError(t, err)
	assert.Equal(t, 0, state.Puzzle.Placed)

	state, err = solve(client, strategy, state, 200, 0)
	require.NoError(t, err)
	assert.True(t, state.Puzzle.Complete)
	assert.Equal(t, 4, strategy.Drops(), "second attempt only drops on known homes")
}

func TestSolve_DropLimit(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)

	state, err := client.CreateSession("")
	require.NoError(t, err)

	strategy := NewSweepStrategy(state)
	state, err = solve(client, strategy, state, 3, 0)
	require.NoError(t, err)
	assert.False(t, state.Puzzle.Complete)
	assert.Equal(t, 3, strategy.Drops())
}

func TestClient_Errors(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL)

	t.Run("unknown session", func(t *testing.T) {
		client.sessionID = "missing"
		_, err := client.GetSession()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("unknown config", func(t *testing.T) {
		_, err := client.CreateSession("nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "create session")
	})

	t.Run("drop without session", func(t *testing.T) {
		_, err := NewClient(server.URL).Drop(&table.State{}, Move{PieceID: 1})
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:1").CreateSession("")
		assert.Error(t, err)
	})
}
