package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inconshreveable/log15/v3"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
)

var log = log15.New("module", "mcp")

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Jigsaw Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Jigsaw Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Drag each of the four tray pieces onto its home cell of the 4x4 board.

AVAILABLE TOOLS:
- create_session: Create new puzzle session
- list_sessions: List all active sessions
- get_session: Get session details
- puzzle_state: Board, tray and message for a session
- drag_piece: Drag a piece and release it at a pixel position
- place_piece: Drop a piece on the center of a board cell
- undo_move: Take back the last placement
- reset_puzzle: Start a fresh round
- move_history: View past drops
- list_configs: List available configurations
- game_instructions: Rules of the puzzle
- describe_cell: Pixel bounds, home piece and occupant of a cell`),
	)

	c.registerTools()
}

// sessionProperty is shared by every session scoped tool
var sessionProperty = map[string]interface{}{
	"type":        "string",
	"description": "Session ID",
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new puzzle session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active puzzle sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleGetSession)

	// Puzzle operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "puzzle_state",
		Description: "Get the board, the tray and the current message",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty},
			Required:   []string{"session_id"},
		},
	}, c.handlePuzzleState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "drag_piece",
		Description: "Pick up a tray piece, move it along an optional path and release it at (x, y) in screen pixels. The piece snaps when released within half a cell of its home cell center.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty,
				"piece_id":   intProperty("Piece to drag (1-4)"),
				"x":          map[string]interface{}{"type": "number", "description": "Release X in pixels"},
				"y":          map[string]interface{}{"type": "number", "description": "Release Y in pixels"},
				"path": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x": map[string]interface{}{"type": "number"},
							"y": map[string]interface{}{"type": "number"},
						},
					},
					"description": "Pointer positions visited before the release (optional)",
				},
			},
			Required: []string{"session_id", "piece_id", "x", "y"},
		},
	}, c.handleDragPiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_piece",
		Description: "Drag a piece from the tray and release it on the center of a board cell",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty,
				"piece_id":   intProperty("Piece to place (1-4)"),
				"row":        intProperty("Board row (0-based)"),
				"col":        intProperty("Board column (0-based)"),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of why this piece belongs there",
				},
			},
			Required: []string{"session_id", "piece_id", "row", "col"},
		},
	}, c.handlePlacePiece)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo_move",
		Description: "Take back the most recent placement; the piece returns to its tray slot",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_puzzle",
		Description: "Return every piece to the tray and start a fresh round",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"session_id": sessionProperty},
			Required:   []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get drop history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty,
				"page":       intProperty("Page number"),
				"limit":      intProperty("Items per page"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available puzzle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of the puzzle",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe a board cell: its pixel center and bounds, the piece whose home it is and the piece currently on it. Pass row/col, or x/y pixels to find the cell under a point.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty,
				"row":        intProperty("Board row (0-based)"),
				"col":        intProperty("Board column (0-based)"),
				"x":          map[string]interface{}{"type": "number", "description": "Pixel X, instead of row/col"},
				"y":          map[string]interface{}{"type": "number", "description": "Pixel Y, instead of row/col"},
			},
			Required: []string{"session_id"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool call arguments as a map
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// number reads a JSON number argument
func number(args map[string]interface{}, key string) (float64, bool) {
	switch v := args[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		progress := ""
		if s.GameState != nil && s.GameState.Puzzle != nil {
			progress = fmt.Sprintf(", Placed: %d/%d", s.GameState.Puzzle.Placed, s.GameState.Puzzle.Total)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), progress)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handlePuzzleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state table.State
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatState(&state)), nil
}

func (c *Client) handleDragPiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	pieceID, _ := number(args, "piece_id")
	x, okX := number(args, "x")
	y, okY := number(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	req := service.DragRequest{
		PieceID: int(pieceID),
		Drop:    layout.Point{X: x, Y: y},
	}
	if rawPath, ok := args["path"].([]interface{}); ok {
		for _, raw := range rawPath {
			p, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			px, _ := number(p, "x")
			py, _ := number(p, "y")
			req.Path = append(req.Path, layout.Point{X: px, Y: py})
		}
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/drag"), req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handlePlacePiece(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	pieceID, _ := number(args, "piece_id")
	row, okRow := number(args, "row")
	col, okCol := number(args, "col")
	if !okRow || !okCol {
		return mcp.NewToolResultError("row and col are required"), nil
	}

	// intent is only there for the caller's benefit
	if intent, _ := args["intent"].(string); intent != "" {
		log.Debug("place intent", "session", sessionID, "piece", int(pieceID), "intent", intent)
	}

	body := map[string]int{
		"piece_id": int(pieceID),
		"row":      int(row),
		"col":      int(col),
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/place"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/undo"), nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string       `json:"message"`
		State   *table.State `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", response.Message, formatState(response.State))), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := number(args, "page"); ok {
		params.Set("page", fmt.Sprintf("%d", int(page)))
	}
	if limit, ok := number(args, "limit"); ok {
		params.Set("limit", fmt.Sprintf("%d", int(limit)))
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Configs []service.ConfigInfo `json:"configs"`
	}
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range response.Configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Grid: %dx%d, Pieces: %d\n\n",
			cfg.ConfigID, cfg.Format, cfg.Description, cfg.GridSize, cfg.GridSize, cfg.Pieces)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Jigsaw Game - Instructions

GAME OBJECTIVE:
Four pieces wait in the tray below the board. Each piece has exactly one home
cell on the 4x4 board. Put all four pieces home to finish the puzzle.

HOW A DROP IS JUDGED:
• The board is a square; each cell is board width / 4 pixels wide
• A release counts for a cell when it is strictly closer than half a cell to
  the cell center on both axes
• Only the first matching cell, scanning rows then columns, is considered
• The piece snaps only if that cell is its home cell and the cell is empty
• Any other release sends the piece back to its tray slot

RULES:
• One piece can be dragged at a time
• Placed pieces are locked; use undo_move to take one back
• After the last piece snaps the puzzle is complete and input stops until reset

TOOLS:
• place_piece drops a piece on a cell center, the quickest way to test a guess
• drag_piece releases at any pixel position
• describe_cell shows a cell's pixel bounds, home piece and occupant

TIP: Piece ids run 1 to 4. get_session includes the configuration with every
piece's home cell.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if session.GameConfig == nil {
		return mcp.NewToolResultError("session has no configuration"), nil
	}

	geo := layout.New(session.GameConfig)
	n := geo.GridSize()

	var row, col int
	if x, okX := number(args, "x"); okX {
		y, okY := number(args, "y")
		if !okY {
			return mcp.NewToolResultError("y is required with x"), nil
		}
		var ok bool
		row, col, ok = geo.CellAt(layout.Point{X: x, Y: y})
		if !ok {
			return mcp.NewToolResultText(fmt.Sprintf("(%.1f, %.1f) is not within %.1f px of any cell center; a drop there returns the piece to the tray.",
				x, y, geo.Tolerance())), nil
		}
	} else {
		r, okRow := number(args, "row")
		cl, okCol := number(args, "col")
		if !okRow || !okCol {
			return mcp.NewToolResultError("pass row and col, or x and y"), nil
		}
		row, col = int(r), int(cl)
	}

	if row < 0 || row >= n || col < 0 || col >= n {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d, %d) is out of bounds. Grid size is %dx%d (0-%d for both row and col)",
			row, col, n, n, n-1)), nil
	}

	center := geo.CellCenter(row, col)
	rect := geo.CellRect(row, col)

	home := 0
	for _, p := range session.GameConfig.Pieces {
		if p.Home.Row == row && p.Home.Col == col {
			home = p.ID
		}
	}
	occupant := 0
	if st := session.GameState; st != nil && st.Puzzle != nil && row < len(st.Puzzle.Cells) && col < len(st.Puzzle.Cells[row]) {
		occupant = st.Puzzle.Cells[row][col]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d, %d):\n", row, col)
	fmt.Fprintf(&b, "  Center: (%.1f, %.1f)\n", center.X, center.Y)
	fmt.Fprintf(&b, "  Bounds: x %.1f-%.1f, y %.1f-%.1f\n", rect.X, rect.X+rect.W, rect.Y, rect.Y+rect.H)
	fmt.Fprintf(&b, "  Snap tolerance: %.1f px\n", geo.Tolerance())
	if home > 0 {
		fmt.Fprintf(&b, "  Home of: piece %d\n", home)
	} else {
		b.WriteString("  Home of: no piece (every drop here is rejected)\n")
	}
	if occupant > 0 {
		fmt.Fprintf(&b, "  Occupied by: piece %d\n", occupant)
	} else {
		b.WriteString("  Occupied by: nothing\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatSessionInfo(s *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", s.ID)
	fmt.Fprintf(&b, "Config: %s\n", s.ConfigName)
	fmt.Fprintf(&b, "Created: %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Last accessed: %s\n", s.LastAccessedAt.Format(time.RFC3339))
	if s.GameConfig != nil {
		b.WriteString("Pieces:\n")
		for _, p := range s.GameConfig.Pieces {
			fmt.Fprintf(&b, "  - piece %d (%s) home (%d, %d)\n", p.ID, p.Image, p.Home.Row, p.Home.Col)
		}
	}
	if s.GameState != nil {
		b.WriteString("\n" + formatState(s.GameState))
	}
	return b.String()
}

func formatState(state *table.State) string {
	if state == nil {
		return "No state"
	}

	var b strings.Builder
	if p := state.Puzzle; p != nil {
		fmt.Fprintf(&b, "Board (%d/%d placed):\n", p.Placed, p.Total)
		for _, row := range p.Cells {
			b.WriteString(" ")
			for _, id := range row {
				if id == 0 {
					b.WriteString(" .")
				} else {
					fmt.Fprintf(&b, " %d", id)
				}
			}
			b.WriteString("\n")
		}
		if p.Complete {
			b.WriteString("Puzzle complete!\n")
		}
	}

	tray := []string{}
	for _, s := range state.Sprites {
		if !s.Placed {
			tray = append(tray, fmt.Sprintf("piece %d at (%.0f, %.0f)", s.PieceID, s.Position.X, s.Position.Y))
		}
	}
	if len(tray) > 0 {
		fmt.Fprintf(&b, "Tray: %s\n", strings.Join(tray, ", "))
	}

	if state.Dragging != 0 {
		fmt.Fprintf(&b, "Dragging: piece %d\n", state.Dragging)
	}
	if !state.Active {
		b.WriteString("Input: locked (reset to play again)\n")
	}
	fmt.Fprintf(&b, "Drops: %d\n", state.Drops)
	if state.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", state.Message)
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	b.WriteString(result.Message)
	b.WriteString("\n")

	if d := result.Drop; d != nil {
		if d.Matched {
			fmt.Fprintf(&b, "Released piece %d at (%.1f, %.1f), nearest cell (%d, %d)\n", d.PieceID, d.At.X, d.At.Y, d.Cell.Row, d.Cell.Col)
		} else {
			fmt.Fprintf(&b, "Released piece %d at (%.1f, %.1f), not over any cell\n", d.PieceID, d.At.X, d.At.Y)
		}
	}
	if result.Undone != 0 {
		fmt.Fprintf(&b, "Piece %d returned to the tray\n", result.Undone)
	}

	b.WriteString("\n")
	b.WriteString(formatState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Drop History (page %d/%d, %d total):\n\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, m := range history.Moves {
		outcome := "returned"
		if m.Placed {
			outcome = "placed"
		}
		if m.Action == "undo" {
			outcome = "undone"
		}
		cell := "no cell"
		if m.Cell != nil {
			cell = fmt.Sprintf("cell (%d, %d)", m.Cell.Row, m.Cell.Col)
		}
		fmt.Fprintf(&b, "%d. piece %d %s at (%.0f, %.0f), %s\n", m.Number, m.PieceID, outcome, m.At.X, m.At.Y, cell)
	}
	if history.HasNext {
		fmt.Fprintf(&b, "\nMore on page %d\n", history.Page+1)
	}
	return b.String()
}
