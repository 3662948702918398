package service

import (
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
)

// SessionInfo provides information about a puzzle session
type SessionInfo struct {
	ID             string         `json:"id"`
	ConfigName     string         `json:"config_name"`
	CreatedAt      time.Time      `json:"created_at"`
	LastAccessedAt time.Time      `json:"last_accessed_at"`
	GameState      *table.State   `json:"game_state"`
	GameConfig     *puzzle.Config `json:"game_config"`
}

// DragRequest describes a full drag: the pointer path and the release point
type DragRequest struct {
	PieceID int            `json:"piece_id"`
	Path    []layout.Point `json:"path,omitempty"`
	Drop    layout.Point   `json:"drop"`
}

// MoveResult contains the result of a drag, place or undo
type MoveResult struct {
	Success   bool            `json:"success"`
	GameState *table.State    `json:"game_state"`
	Message   string          `json:"message"`
	Events    []GameEvent     `json:"events,omitempty"`
	Drop      *placement.Drop `json:"drop,omitempty"`
	Undone    int             `json:"undone,omitempty"` // piece id taken back by an undo
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"` // "drag_started", "snapped", "rejected", "returned", "complete", "ignored", "session_started"
	Message   string        `json:"message"`
	PieceID   int           `json:"piece_id,omitempty"`
	Position  *layout.Point `json:"position,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// HistoryOptions configures drop history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated drop history
type HistoryResponse struct {
	Moves       []table.HistoryEntry `json:"moves"`
	TotalMoves  int                  `json:"total_moves"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
	TotalPages  int                  `json:"total_pages"`
	HasNext     bool                 `json:"has_next"`
	HasPrevious bool                 `json:"has_previous"`
}

// ConfigInfo provides information about a puzzle configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Format      string `json:"format"` // "json" or "yaml"
	GridSize    int    `json:"grid_size"`
	Pieces      int    `json:"pieces"`
}
