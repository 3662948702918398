package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
)

var log = log15.New("module", "service")

// ErrConfigUnavailable is returned when a session asks for an unknown configuration
var ErrConfigUnavailable = errors.New("config not available")

// History page limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.Mutex // guards session access, including LastAccessedAt
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a display name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	return configName
}

// CreateSession creates a new puzzle session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *puzzle.Config
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			availableConfigs, listErr := s.configs.ListConfigs()
			if listErr == nil && len(availableConfigs) > 0 {
				var configIDs []string
				for _, cfg := range availableConfigs {
					configIDs = append(configIDs, cfg.ConfigID)
				}
				return nil, fmt.Errorf("%w: '%s' (%v). Available configs: %v", ErrConfigUnavailable, configName, err, configIDs)
			}
			return nil, fmt.Errorf("%w: '%s' (%v). Use /api/configs to list available configurations", ErrConfigUnavailable, configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info("session created", "session", sess.ID, "config", configID)
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Table.State(),
		GameConfig:     sess.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	log.Info("session deleted", "session", sessionID)
	return nil
}

// Drag runs a complete drag for a session
func (s *gameServiceImpl) Drag(ctx context.Context, sessionID string, req DragRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	drop, ok := sess.Table.Drag(req.PieceID, req.Path, req.Drop)
	result := s.moveResult(sess.Table, ok && drop.Placed)
	if ok {
		result.Drop = &drop
	}

	log.Debug("drag", "session", sessionID, "piece", req.PieceID, "x", req.Drop.X, "y", req.Drop.Y, "placed", result.Success)
	return result, nil
}

// Place drags a piece from its tray slot to the center of a cell
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, pieceID, row, col int) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	drop, ok := sess.Table.PlaceAt(pieceID, row, col)
	result := s.moveResult(sess.Table, ok && drop.Placed)
	if ok {
		result.Drop = &drop
	}

	log.Debug("place", "session", sessionID, "piece", pieceID, "row", row, "col", col, "placed", result.Success)
	return result, nil
}

// Undo takes back the most recent placement
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	piece, ok := sess.Table.Undo()
	result := s.moveResult(sess.Table, ok)
	if ok {
		result.Undone = piece.ID
	} else {
		result.Message = "Nothing to undo"
	}
	return result, nil
}

// Reset starts a fresh round on the session's table
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*table.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Table.Reset()
	sess.Table.Drain()

	log.Info("session reset", "session", sessionID)
	return sess.Table.State(), nil
}

// GetGameState retrieves the current table state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*table.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Table.State(), nil
}

// GetHistory returns paginated drop history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Table.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultHistoryLimit
	}
	if opts.Limit > MaxHistoryLimit {
		opts.Limit = MaxHistoryLimit
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []table.HistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available puzzle configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific puzzle configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*puzzle.Config, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a puzzle configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *puzzle.Config) error {
	return s.configs.SaveConfig(configName, config)
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Table.State(),
		GameConfig:     sess.Config,
	}
}

// moveResult drains the table events into a result
func (s *gameServiceImpl) moveResult(t *table.Table, success bool) *MoveResult {
	state := t.State()
	events := t.Drain()

	message := state.Message
	if len(events) > 0 {
		message = events[len(events)-1].Message
	}

	return &MoveResult{
		Success:   success,
		GameState: state,
		Message:   message,
		Events:    gameEvents(events),
	}
}

func gameEvents(events []table.Event) []GameEvent {
	out := make([]GameEvent, 0, len(events))
	for _, e := range events {
		out = append(out, GameEvent{
			ID:        uuid.NewString(),
			Type:      e.Type,
			Message:   e.Message,
			PieceID:   e.PieceID,
			Position:  e.Position,
			Timestamp: e.Time,
		})
	}
	return out
}
