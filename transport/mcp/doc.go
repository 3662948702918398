// Package mcp exposes the jigsaw game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// the api package, so agents and the desktop watcher see the same sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - puzzle_state: board grid, tray positions and current message
//   - drag_piece: full drag released at a pixel position
//   - place_piece: release a piece on the center of a cell
//   - undo_move, reset_puzzle: take back a placement, start over
//   - move_history: paginated drop history
//   - list_configs: available puzzle configurations
//   - game_instructions: the rules
//   - describe_cell: pixel bounds, home piece and occupant of one cell
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
