// Command bruteforcer solves a puzzle session through the REST API without
// knowing where the pieces belong. It drags pieces onto cells and learns from
// every rejection until the puzzle is complete.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/inconshreveable/log15/v3"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
)

var log = log15.New("module", "bruteforcer")

const sessionFile = ".session"

// Client talks to the puzzle server for a single session
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
	geo       *layout.Geometry
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*table.State, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	var info service.SessionInfo
	if err := c.do(http.MethodPost, "/api/sessions", reqBody, &info); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return c.adopt(&info)
}

func (c *Client) GetSession() (*table.State, error) {
	var info service.SessionInfo
	if err := c.do(http.MethodGet, "/api/sessions/"+c.sessionID, nil, &info); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return c.adopt(&info)
}

// adopt switches the client to the session and its geometry
func (c *Client) adopt(info *service.SessionInfo) (*table.State, error) {
	if info.GameConfig == nil || info.GameState == nil {
		return nil, fmt.Errorf("session %s is missing its config or state", info.ID)
	}
	c.sessionID = info.ID
	c.geo = layout.New(info.GameConfig)
	return info.GameState, nil
}

type ResetResponse struct {
	Message string       `json:"message"`
	State   *table.State `json:"state"`
}

func (c *Client) Reset() (*table.State, error) {
	var resp ResetResponse
	if err := c.do(http.MethodPost, "/api/sessions/"+c.sessionID+"/reset", nil, &resp); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	return resp.State, nil
}

// Drop drags the piece from where it rests to the center of the move's cell
func (c *Client) Drop(state *table.State, m Move) (*service.MoveResult, error) {
	if c.geo == nil {
		return nil, fmt.Errorf("no session loaded")
	}

	target := c.geo.CellCenter(m.Cell.Row, m.Cell.Col)
	req := service.DragRequest{PieceID: m.PieceID, Drop: target}
	for _, sp := range state.Sprites {
		if sp.PieceID == m.PieceID {
			req.Path = []layout.Point{sp.Position, target}
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal drag: %w", err)
	}

	var result service.MoveResult
	if err := c.do(http.MethodPost, "/api/sessions/"+c.sessionID+"/drag", body, &result); err != nil {
		return nil, fmt.Errorf("drag: %w", err)
	}
	return &result, nil
}

func (c *Client) do(method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s - %s", resp.Status, bytes.TrimSpace(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// solve runs one attempt and returns the final state
func solve(client *Client, strategy *SweepStrategy, state *table.State, maxDrops int, delay time.Duration) (*table.State, error) {
	strategy.Reset()

	for !state.Puzzle.Complete && strategy.Drops() < maxDrops {
		move, ok := strategy.NextMove(state)
		if !ok {
			return state, fmt.Errorf("no moves left with %d/%d placed", state.Puzzle.Placed, state.Puzzle.Total)
		}

		result, err := client.Drop(state, move)
		if err != nil {
			return state, err
		}
		placed := result.Drop != nil && result.Drop.Placed
		strategy.Record(move, placed)
		if result.GameState != nil {
			state = result.GameState
		}

		log.Debug("drop", "piece", move.PieceID, "row", move.Cell.Row, "col", move.Cell.Col, "placed", placed)

		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return state, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Puzzle configuration (classic, diagonal, compact)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxDrops := flag.Int("max-drops", 200, "Maximum drops per attempt")
	maxAttempts := flag.Int("max-attempts", 3, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between drops in milliseconds (0 = no delay)")
	flag.Parse()

	logging.Setup(*verbose)

	log.Info("connecting to game server", "url", *serverURL)
	client := NewClient(*serverURL)

	var state *table.State
	var err error

	savedSessionID := *continueSession
	if savedSessionID == "" {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Info("resuming session", "session", client.sessionID)
		state, err = client.GetSession()
		if err != nil {
			log.Warn("failed to resume session, creating a new one", "err", err)
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*configID)
		if err != nil {
			log.Crit("failed to create session", "err", err)
			os.Exit(1)
		}
		log.Info("session created", "session", client.sessionID, "config", state.Puzzle.ConfigName)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Warn("failed to save session ID", "err", err)
		}
	}

	strategy := NewSweepStrategy(state)
	delay := time.Duration(*delayMs) * time.Millisecond

	for attempt := 1; attempt <= *maxAttempts; attempt++ {
		state, err = client.Reset()
		if err != nil {
			log.Crit("failed to reset", "err", err)
			os.Exit(1)
		}

		log.Info("attempt started", "attempt", attempt, "max", *maxAttempts)
		state, err = solve(client, strategy, state, *maxDrops, delay)
		if err != nil {
			log.Error("attempt failed", "attempt", attempt, "err", err)
			continue
		}

		log.Info("attempt finished", "attempt", attempt, "drops", strategy.Drops(),
			"placed", state.Puzzle.Placed, "total", state.Puzzle.Total)

		if state.Puzzle.Complete {
			for id, home := range strategy.Homes() {
				log.Info("home found", "piece", id, "row", home.Row, "col", home.Col)
			}
			log.Info("puzzle solved", "attempt", attempt, "drops", strategy.Drops(), "session", client.sessionID)
			os.Exit(0)
		}
	}

	log.Error("failed to solve", "attempts", *maxAttempts, "session", client.sessionID)
	os.Exit(1)
}
