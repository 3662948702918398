package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
)

// GameService defines all puzzle operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Puzzle Operations
	Drag(ctx context.Context, sessionID string, req DragRequest) (*MoveResult, error)
	Place(ctx context.Context, sessionID string, pieceID, row, col int) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*table.State, error)

	// Puzzle State
	GetGameState(ctx context.Context, sessionID string) (*table.State, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*puzzle.Config, error)
	SaveConfig(ctx context.Context, configName string, config *puzzle.Config) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *puzzle.Config) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *puzzle.Config) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles puzzle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*puzzle.Config, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *puzzle.Config
	SaveConfig(name string, config *puzzle.Config) error
}

// Session represents an active puzzle session
type Session struct {
	ID             string
	Table          *table.Table
	Config         *puzzle.Config
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
