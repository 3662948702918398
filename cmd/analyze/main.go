// Command analyze prints quick, human-readable heuristics about puzzle
// configuration files in the project's configs directory. It summarizes the
// board geometry, the drag distance of every piece from its tray slot to its
// snap target, the tutorial path and the cells that can only ever reject.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/mcp-training/jigsawgame/game/config"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

// shortDrag is the drag length, in cells, under which a piece is flagged
const shortDrag = 2.0

// PieceReport is the analysis of a single piece
type PieceReport struct {
	ID       int
	Tray     layout.Point
	Home     puzzle.Slot
	Target   layout.Point // home cell center plus art offset
	Distance float64      // tray to target, pixels
}

// Report is the analysis of a configuration
type Report struct {
	Name       string
	GridSize   int
	CellSize   float64
	Tolerance  float64
	Pieces     []PieceReport
	Tutorial   PieceReport   // the piece the guide demonstrates
	DecoyCells []puzzle.Slot // cells no piece calls home
}

// analyze derives the report from a parsed configuration
func analyze(cfg *puzzle.Config) Report {
	geo := layout.New(cfg)
	offsets := placement.OffsetsFromConfig(cfg)

	r := Report{
		Name:      cfg.Name,
		GridSize:  cfg.GridSize,
		CellSize:  geo.CellSize(),
		Tolerance: geo.Tolerance(),
	}

	homes := make(map[puzzle.Slot]bool, len(cfg.Pieces))
	for i, p := range cfg.Pieces {
		tray := geo.TrayPosition(i)
		target := geo.CellCenter(p.Home.Row, p.Home.Col).Add(offsets.For(p.ID))
		r.Pieces = append(r.Pieces, PieceReport{
			ID:       p.ID,
			Tray:     tray,
			Home:     p.Home,
			Target:   target,
			Distance: math.Hypot(target.X-tray.X, target.Y-tray.Y),
		})
		homes[p.Home] = true
	}
	if len(r.Pieces) > 0 {
		// The guide always starts with the first piece in tray order
		r.Tutorial = r.Pieces[0]
	}

	for row := 0; row < cfg.GridSize; row++ {
		for col := 0; col < cfg.GridSize; col++ {
			if !homes[puzzle.Slot{Row: row, Col: col}] {
				r.DecoyCells = append(r.DecoyCells, puzzle.Slot{Row: row, Col: col})
			}
		}
	}
	return r
}

// Longest returns the piece with the longest drag
func (r Report) Longest() PieceReport {
	var best PieceReport
	for _, p := range r.Pieces {
		if p.Distance > best.Distance {
			best = p
		}
	}
	return best
}

// ShortDrags returns the pieces whose drag is under shortDrag cells
func (r Report) ShortDrags() []PieceReport {
	var short []PieceReport
	for _, p := range r.Pieces {
		if p.Distance < shortDrag*r.CellSize {
			short = append(short, p)
		}
	}
	return short
}

func printReport(w io.Writer, r Report) {
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", r.GridSize, r.GridSize)
	fmt.Fprintf(w, "Cell Size: %.1f px (snap tolerance %.1f px)\n", r.CellSize, r.Tolerance)

	for _, p := range r.Pieces {
		fmt.Fprintf(w, "Piece %d: tray (%.0f, %.0f) -> cell (%d,%d) at (%.0f, %.0f), drag %.0f px\n",
			p.ID, p.Tray.X, p.Tray.Y, p.Home.Row, p.Home.Col, p.Target.X, p.Target.Y, p.Distance)
	}

	fmt.Fprintf(w, "Tutorial: piece %d, %.0f px\n", r.Tutorial.ID, r.Tutorial.Distance)
	if longest := r.Longest(); longest.ID != 0 {
		fmt.Fprintf(w, "Longest Drag: piece %d (%.1f cells)\n", longest.ID, longest.Distance/r.CellSize)
	}
	fmt.Fprintf(w, "Decoy Cells: %d of %d always reject\n", len(r.DecoyCells), r.GridSize*r.GridSize)

	if short := r.ShortDrags(); len(short) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d pieces sit less than %.0f cells from their target\n", len(short), shortDrag)
		for _, p := range short {
			fmt.Fprintf(w, "   Short drag: piece %d (%.0f px)\n", p.ID, p.Distance)
		}
	} else {
		fmt.Fprintf(w, "✅ Every piece needs a real drag to reach its cell\n")
	}
}

// analyzeConfig parses one file and prints its report
func analyzeConfig(path string, w io.Writer) error {
	format, ok := config.FormatOf(path)
	if !ok {
		return fmt.Errorf("unsupported file type %s", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	cfg, err := config.Parse(data, format)
	if err != nil {
		return err
	}

	printReport(w, analyze(cfg))
	return nil
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzeConfig(file, os.Stdout); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}
