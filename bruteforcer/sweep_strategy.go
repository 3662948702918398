package main

import (
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
)

// Move is a single drop the strategy wants to try
type Move struct {
	PieceID int
	Cell    puzzle.Slot
}

// SweepStrategy finds every piece's home by trial drops. A rejected drop on
// an empty cell proves that cell is not the piece's home, so each piece
// needs at most one drop per cell.
type SweepStrategy struct {
	gridSize int
	order    []int // piece ids in tray order

	homes    map[int]puzzle.Slot          // learned homes
	ruledOut map[int]map[puzzle.Slot]bool // cells known to reject a piece
	drops    int                          // drops in the current attempt
}

// NewSweepStrategy creates a strategy for the puzzle in state
func NewSweepStrategy(state *table.State) *SweepStrategy {
	s := &SweepStrategy{
		gridSize: state.Puzzle.GridSize,
		homes:    make(map[int]puzzle.Slot),
		ruledOut: make(map[int]map[puzzle.Slot]bool),
	}
	for _, p := range state.Puzzle.Pieces {
		s.order = append(s.order, p.ID)
		s.ruledOut[p.ID] = make(map[puzzle.Slot]bool)
	}

	log.Info("sweep strategy ready", "pieces", len(s.order), "grid", s.gridSize)
	return s
}

// Reset starts a new attempt. Learned homes and rejections stay valid
// because homes never change within a config.
func (s *SweepStrategy) Reset() {
	s.drops = 0
}

// NextMove picks the next drop for the current state. It returns false when
// nothing is left to try.
func (s *SweepStrategy) NextMove(state *table.State) (Move, bool) {
	p := state.Puzzle
	if p == nil || p.Complete {
		return Move{}, false
	}

	placed := make(map[int]bool, len(p.Pieces))
	for _, piece := range p.Pieces {
		placed[piece.ID] = piece.Placed
	}

	// Known homes first, they cannot miss
	for _, id := range s.order {
		if home, ok := s.homes[id]; ok && !placed[id] && p.Cells[home.Row][home.Col] == 0 {
			return Move{PieceID: id, Cell: home}, true
		}
	}

	claimed := make(map[puzzle.Slot]bool, len(s.homes))
	for _, home := range s.homes {
		claimed[home] = true
	}

	for _, id := range s.order {
		if placed[id] {
			continue
		}
		if _, known := s.homes[id]; known {
			continue
		}
		for row := 0; row < s.gridSize; row++ {
			for col := 0; col < s.gridSize; col++ {
				cell := puzzle.Slot{Row: row, Col: col}
				if p.Cells[row][col] != 0 || claimed[cell] || s.ruledOut[id][cell] {
					continue
				}
				return Move{PieceID: id, Cell: cell}, true
			}
		}
	}
	return Move{}, false
}

// Record feeds the outcome of a drop back into the strategy
func (s *SweepStrategy) Record(m Move, placed bool) {
	s.drops++
	if placed {
		s.homes[m.PieceID] = m.Cell
		return
	}
	if s.ruledOut[m.PieceID] == nil {
		s.ruledOut[m.PieceID] = make(map[puzzle.Slot]bool)
	}
	s.ruledOut[m.PieceID][m.Cell] = true
}

// Drops returns the number of drops in the current attempt
func (s *SweepStrategy) Drops() int {
	return s.drops
}

// Homes returns the homes learned so far
func (s *SweepStrategy) Homes() map[int]puzzle.Slot {
	homes := make(map[int]puzzle.Slot, len(s.homes))
	for id, slot := range s.homes {
		homes[id] = slot
	}
	return homes
}
