// Package puzzle provides the placement model for the jigsaw game.
//
// The puzzle package implements:
//   - Piece and slot bookkeeping for an N x N board
//   - Placement validation (a piece only ever fits its home slot)
//   - Completion detection
//   - Configuration validation and the shipped default puzzle
//
// Core Types:
//
// Model is the authoritative record of grid occupancy. Piece carries the
// fixed home slot plus the placed flag and current slot. Config describes
// the pieces, their artwork offsets and the on-screen geometry used by the
// layout package.
//
// Usage:
//
//	model, err := puzzle.NewModel(puzzle.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	piece := model.Piece(1)
//	if model.Place(piece, 0, 0) {
//		fmt.Println(model.IsComplete())
//	}
//
// Illegal placements are expected during play and are reported as false
// return values, never as errors.
package puzzle
