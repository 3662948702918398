package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

func TestAnalyze_DefaultConfig(t *testing.T) {
	r := analyze(puzzle.DefaultConfig())

	assert.Equal(t, "classic", r.Name)
	assert.Equal(t, 100.0, r.CellSize)
	assert.Equal(t, 50.0, r.Tolerance)
	require.Len(t, r.Pieces, 4)

	first := r.Pieces[0]
	assert.Equal(t, layout.Point{X: 290, Y: 423.15}, first.Tray)
	assert.Equal(t, layout.Point{X: 835, Y: 197}, first.Target)
	assert.InDelta(t, 590.06, first.Distance, 0.01)

	assert.Equal(t, 1, r.Tutorial.ID)
	assert.Equal(t, 3, r.Longest().ID)
	assert.Empty(t, r.ShortDrags())

	assert.Len(t, r.DecoyCells, 12)
	assert.NotContains(t, r.DecoyCells, puzzle.Slot{Row: 2, Col: 2})
	assert.Contains(t, r.DecoyCells, puzzle.Slot{Row: 0, Col: 1})
}

func TestAnalyze_ShortDrag(t *testing.T) {
	cfg := puzzle.DefaultConfig()
	// Tray slot 3 right under cell (2,2)
	cfg.Tray = puzzle.TrayGeometry{StartX: 700, Y: 480, Gap: 110}

	r := analyze(cfg)
	short := r.ShortDrags()
	require.Len(t, short, 1)
	assert.Equal(t, 4, short[0].ID)
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, analyze(puzzle.DefaultConfig()))
	out := buf.String()

	assert.Contains(t, out, "Name: classic")
	assert.Contains(t, out, "Cell Size: 100.0 px (snap tolerance 50.0 px)")
	assert.Contains(t, out, "Piece 4: tray (650, 423) -> cell (2,2) at (1028, 377)")
	assert.Contains(t, out, "Tutorial: piece 1")
	assert.Contains(t, out, "Longest Drag: piece 3")
	assert.Contains(t, out, "Decoy Cells: 12 of 16 always reject")
	assert.Contains(t, out, "✅ Every piece needs a real drag")
}

func TestAnalyzeConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "diag.yaml")
		content := `name: diag
grid_size: 4
pieces:
  - {id: 1, image: a.webp, home: {row: 0, col: 0}}
  - {id: 2, image: b.webp, home: {row: 1, col: 1}}
  - {id: 3, image: c.webp, home: {row: 2, col: 2}}
  - {id: 4, image: d.webp, home: {row: 3, col: 3}}
board: {x: 780, y: 130, width: 400, height: 400}
tray: {start_x: 290, y: 423.15, gap: 120}
messages: {welcome: Hi, snapped: "In %d", rejected: "Out %d", complete: Done}
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		var buf bytes.Buffer
		require.NoError(t, analyzeConfig(path, &buf))
		assert.Contains(t, buf.String(), "Name: diag")
		assert.Contains(t, buf.String(), "Piece 4: tray (650, 423) -> cell (3,3) at (1130, 480)")
	})

	t.Run("missing file", func(t *testing.T) {
		err := analyzeConfig(filepath.Join(dir, "missing.json"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading file")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "test", invalid json}`), 0644))
		assert.Error(t, analyzeConfig(path, &bytes.Buffer{}))
	})

	t.Run("unsupported type", func(t *testing.T) {
		err := analyzeConfig(filepath.Join(dir, "notes.txt"), &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file type .txt")
	})
}
