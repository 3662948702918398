package placement

import (
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
)

// OffsetTable holds the per-piece artwork correction applied on snap
type OffsetTable map[int]puzzle.Offset

// DefaultOffsets returns the corrections for the shipped artwork
func DefaultOffsets() OffsetTable {
	return OffsetTable{
		1: {X: 5, Y: 17},
		2: {X: 2, Y: 0},
		3: {X: -5, Y: 0},
		4: {X: -2, Y: -3},
	}
}

// OffsetsFromConfig builds the table from a config's art offsets
func OffsetsFromConfig(config *puzzle.Config) OffsetTable {
	table := make(OffsetTable, len(config.ArtOffsets))
	for id, off := range config.ArtOffsets {
		table[id] = off
	}
	return table
}

// For returns the offset of the piece, zero when none is registered
func (t OffsetTable) For(id int) puzzle.Offset {
	return t[id]
}
