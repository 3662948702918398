// Package api provides HTTP REST API handlers for the jigsaw game.
//
// The api package implements:
//   - Session management endpoints
//   - Drag, place, undo and reset for a session's table
//   - Drop history with pagination
//   - Configuration listing, loading and saving
//   - WebSocket upgrade handling for session watchers
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Puzzle Operations:
//   - GET /api/sessions/{id}/state - Current table state
//   - POST /api/sessions/{id}/drag - Full drag: {"piece_id": 3, "path": [{"x":..,"y":..}], "drop": {"x":..,"y":..}}
//   - POST /api/sessions/{id}/place - Drop a piece on a cell center: {"piece_id": 3, "row": 1, "col": 3}
//   - POST /api/sessions/{id}/undo - Take back the last placement
//   - POST /api/sessions/{id}/reset - Start a fresh round
//   - GET /api/sessions/{id}/history - Drop history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration
//   - POST /api/configs - Save a configuration
//
// WebSocket:
//   - GET /ws?session={id} - Receive state_update, drop and session_deleted events
//
// A rejected drop is not an HTTP error: the response is 200 with
// "success": false and the rejection message. Errors are returned as JSON:
//
//	{
//	  "error": "session not found: ..."
//	}
package api
