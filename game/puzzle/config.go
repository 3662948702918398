package puzzle

import (
	"fmt"
	"strings"
)

// ValidateConfig validates a puzzle configuration for correctness and playability
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	if config.GridSize != GridSize {
		return fmt.Errorf("config validation: grid_size must be %d, got %d", GridSize, config.GridSize)
	}
	if len(config.Pieces) != PieceCount {
		return fmt.Errorf("config validation: exactly %d pieces are required, got %d", PieceCount, len(config.Pieces))
	}

	// Validate pieces: ids and homes must be unique
	ids := make(map[int]bool, len(config.Pieces))
	homes := make(map[Slot]int, len(config.Pieces))
	for i, p := range config.Pieces {
		if p.ID <= 0 {
			return fmt.Errorf("config validation: pieces[%d].id must be positive, got %d", i, p.ID)
		}
		if ids[p.ID] {
			return fmt.Errorf("config validation: duplicate piece id %d", p.ID)
		}
		ids[p.ID] = true

		if p.Image == "" {
			return fmt.Errorf("config validation: pieces[%d].image is required", i)
		}

		if p.Home.Row < 0 || p.Home.Row >= config.GridSize || p.Home.Col < 0 || p.Home.Col >= config.GridSize {
			return fmt.Errorf("config validation: piece %d home (%d,%d) is outside the %dx%d board",
				p.ID, p.Home.Row, p.Home.Col, config.GridSize, config.GridSize)
		}
		if other, taken := homes[p.Home]; taken {
			return fmt.Errorf("config validation: pieces %d and %d share home (%d,%d)",
				other, p.ID, p.Home.Row, p.Home.Col)
		}
		homes[p.Home] = p.ID
	}

	for id := range config.ArtOffsets {
		if !ids[id] {
			return fmt.Errorf("config validation: art_offsets references unknown piece %d", id)
		}
	}

	// Validate geometry
	if config.Board.Width < MinBoardSize || config.Board.Width > MaxBoardSize ||
		config.Board.Height < MinBoardSize || config.Board.Height > MaxBoardSize {
		return fmt.Errorf("config validation: board size must be between %d and %d, got %gx%g",
			MinBoardSize, MaxBoardSize, config.Board.Width, config.Board.Height)
	}
	if config.Tray.Gap <= 0 {
		return fmt.Errorf("config validation: tray.gap must be positive, got %g", config.Tray.Gap)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Complete == "" {
		return fmt.Errorf("config validation: messages.complete is required")
	}
	if !strings.Contains(config.Messages.Snapped, "%d") {
		return fmt.Errorf("config validation: messages.snapped must contain %%d for the piece id")
	}
	if !strings.Contains(config.Messages.Rejected, "%d") {
		return fmt.Errorf("config validation: messages.rejected must contain %%d for the piece id")
	}

	return nil
}

// DefaultConfig returns the shipped puzzle
func DefaultConfig() *Config {
	return &Config{
		Name:        "classic",
		Description: "Four pieces, four slots",
		GridSize:    GridSize,
		Pieces: []PieceConfig{
			{ID: 1, Image: "puzzle-1.webp", Home: Slot{Row: 0, Col: 0}},
			{ID: 2, Image: "puzzle-6.webp", Home: Slot{Row: 1, Col: 1}},
			{ID: 3, Image: "puzzle-8.webp", Home: Slot{Row: 1, Col: 3}},
			{ID: 4, Image: "puzzle-11.webp", Home: Slot{Row: 2, Col: 2}},
		},
		// Artwork alignment per piece, in pixels
		ArtOffsets: map[int]Offset{
			1: {X: 5, Y: 17},
			2: {X: 2, Y: 0},
			3: {X: -5, Y: 0},
			4: {X: -2, Y: -3},
		},
		Board: BoardGeometry{X: 780, Y: 130, Width: 400, Height: 400},
		Tray:  TrayGeometry{StartX: 290, Y: 423.15, Gap: 120},
		Messages: Messages{
			Welcome:  "Drag the pieces onto the picture",
			Snapped:  "Piece %d is in place!",
			Rejected: "Piece %d doesn't fit there",
			Complete: "Puzzle complete!",
		},
		StoreURL: "https://play.google.com/store/games",
	}
}

// Clone returns a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.Pieces = append([]PieceConfig(nil), c.Pieces...)
	if c.ArtOffsets != nil {
		clone.ArtOffsets = make(map[int]Offset, len(c.ArtOffsets))
		for id, off := range c.ArtOffsets {
			clone.ArtOffsets[id] = off
		}
	}
	return &clone
}
