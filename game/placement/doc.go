// Package placement implements the drag and drop rules of the jigsaw game.
//
// A Controller owns a puzzle.Model and reacts to pointer events reported by
// the presentation layer: PieceDown starts a drag, PointerMove tracks it and
// PointerUp resolves the drop against the board. At most one drag is in
// flight. Drops are matched to the first cell, in row-major order, whose
// center is strictly within half a cell on both axes; only a piece's home
// cell accepts it.
//
// The controller never draws. It moves Sprites, toggles their input and
// reports outcomes to a Listener, which decides how snapping, rejection and
// completion look on screen.
package placement
