// Command validate provides a small CLI that validates puzzle configuration
// files (.json, .yaml, .yml) in a configs directory. It checks:
//   - Schema conformance and the puzzle rules (4x4 board, four pieces, unique homes)
//   - Board and tray placement inside the 1280x720 screen
//   - Tray slots far enough from every cell that an untouched piece never snaps
//   - Tray spacing wide enough that resting pieces do not overlap
//   - Art offsets small enough to keep the snapped piece inside its cell
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/jigsawgame/game/config"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

// Screen bounds of the desktop client
const (
	screenWidth  = 1280
	screenHeight = 720
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	format, ok := config.FormatOf(filePath)
	if !ok {
		result.fail("Unsupported file type: %s", filepath.Ext(filePath))
		return result
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := config.Parse(data, format)
	if err != nil {
		result.fail("Invalid config: %v", err)
		return result
	}

	validateLayout(cfg, &result)

	// Add informational data
	if result.Valid {
		geo := layout.New(cfg)
		board := geo.Board()
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", cfg.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", cfg.GridSize, cfg.GridSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %gx%g at (%g, %g)", board.W, board.H, board.X, board.Y))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Cell size: %g (tolerance %g)", geo.CellSize(), geo.Tolerance()))
		for _, p := range cfg.Pieces {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Piece %d: home (%d,%d)", p.ID, p.Home.Row, p.Home.Col))
		}
	}

	return result
}

// validateLayout checks the on-screen geometry of a parsed config
func validateLayout(cfg *puzzle.Config, result *ValidationResult) {
	geo := layout.New(cfg)
	board := geo.Board()
	screen := layout.Rect{X: 0, Y: 0, W: screenWidth, H: screenHeight}

	if !insideScreen(screen, board) {
		result.fail("Board (%g, %g, %gx%g) is outside the %dx%d screen",
			board.X, board.Y, board.W, board.H, screenWidth, screenHeight)
	}

	// A resting piece covers one cell at the idle scale
	size := geo.CellSize()
	if cfg.Tray.Gap < size {
		result.fail("tray.gap %g is smaller than the cell size %g; resting pieces overlap", cfg.Tray.Gap, size)
	}

	for i, p := range cfg.Pieces {
		tray := geo.TrayPosition(i)
		slot := layout.RectAround(tray, size, size)
		if !insideScreen(screen, slot) {
			result.fail("Tray slot %d for piece %d at (%g, %g) is outside the screen", i, p.ID, tray.X, tray.Y)
		}
		if row, col, ok := geo.CellAt(tray); ok {
			result.fail("Tray slot %d for piece %d at (%g, %g) snaps to cell (%d,%d) without moving",
				i, p.ID, tray.X, tray.Y, row, col)
		}
	}

	offsets := placement.OffsetsFromConfig(cfg)
	ids := make([]int, 0, len(offsets))
	for id := range offsets {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		off := offsets.For(id)
		if math.Abs(off.X) >= geo.Tolerance() || math.Abs(off.Y) >= geo.Tolerance() {
			result.fail("Art offset of piece %d (%g, %g) moves it out of its cell (tolerance %g)",
				id, off.X, off.Y, geo.Tolerance())
		}
	}
}

func insideScreen(screen, r layout.Rect) bool {
	return r.X >= screen.X && r.Y >= screen.Y &&
		r.X+r.W <= screen.X+screen.W && r.Y+r.H <= screen.Y+screen.H
}

// configFiles lists the config files of a directory in name order
func configFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := config.FormatOf(e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// main validates every config in the directory given as the first argument
// (../configs by default), printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := configFiles(configDir)
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
