package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wricardo/mcp-training/jigsawgame/desktop/anim"
	"github.com/wricardo/mcp-training/jigsawgame/game/layout"
	"github.com/wricardo/mcp-training/jigsawgame/game/placement"
	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/service"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
	"github.com/wricardo/mcp-training/jigsawgame/transport/websocket"
)

const (
	followDuration = 150 * time.Millisecond
	retryDelay     = 2 * time.Second
)

// fetchSession gets a session and its configuration from the server
func fetchSession(ctx context.Context, baseURL, sessionID string) (*service.SessionInfo, error) {
	endpoint := fmt.Sprintf("%s/api/sessions/%s", strings.TrimSuffix(baseURL, "/"), url.PathEscape(sessionID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("session %s: %s", sessionID, apiErr.Error)
		}
		return nil, fmt.Errorf("session %s: status %d", sessionID, resp.StatusCode)
	}

	var info service.SessionInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("invalid session response: %w", err)
	}
	if info.GameConfig == nil {
		return nil, fmt.Errorf("session %s has no config", sessionID)
	}
	return &info, nil
}

// watchedSprite follows the server position of one piece
type watchedSprite struct {
	image *ebiten.Image
	view  table.SpriteView
	pos   layout.Point
	move  *anim.Move
	fade  *anim.TintFade
	tint  color.RGBA
}

// watchScene renders a server session pushed through the websocket hub
type watchScene struct {
	sessionID string
	config    *puzzle.Config
	geo       *layout.Geometry
	picture   *ebiten.Image

	cancel context.CancelFunc

	mu        sync.Mutex
	latest    *table.State
	drops     []placement.Drop
	connected bool
	deleted   bool
	lastErr   error

	sprites map[int]*watchedSprite
	state   *table.State
	hand    *anim.HandSequence
	guide   table.GuideView
}

func newWatchScene(ctx context.Context, baseURL, sessionID string) (*watchScene, error) {
	info, err := fetchSession(ctx, baseURL, sessionID)
	if err != nil {
		return nil, err
	}

	geo := layout.New(info.GameConfig)
	s := &watchScene{
		sessionID: info.ID,
		config:    info.GameConfig,
		geo:       geo,
		picture:   newPicture(geo),
		latest:    info.GameState,
		sprites:   make(map[int]*watchedSprite),
	}
	for _, pc := range info.GameConfig.Pieces {
		s.sprites[pc.ID] = &watchedSprite{
			image: newTile(pc, geo.CellSize(), geo.GridSize()),
			tint:  white,
		}
	}

	wsURL, err := websocket.SessionURL(baseURL, info.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.listen(ctx, wsURL)
	return s, nil
}

// listen keeps a subscription open until ctx is done
func (s *watchScene) listen(ctx context.Context, wsURL string) {
	for ctx.Err() == nil {
		s.setConnected(true, nil)
		err := websocket.Subscribe(ctx, wsURL, s.handle)
		s.setConnected(false, err)
		if err != nil {
			log.Warn("watch connection lost", "session", s.sessionID, "err", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func (s *watchScene) setConnected(connected bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
	if err != nil {
		s.lastErr = err
	}
}

func (s *watchScene) handle(msg *websocket.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Event {
	case websocket.EventDeleted:
		s.deleted = true
		return
	case websocket.EventDrop:
		// Data arrives as a generic map; round-trip it into a Drop
		raw, err := json.Marshal(msg.Data)
		if err != nil {
			return
		}
		var drop placement.Drop
		if err := json.Unmarshal(raw, &drop); err == nil {
			s.drops = append(s.drops, drop)
		}
	}
	if msg.GameState != nil {
		s.latest = msg.GameState
	}
}

// Close stops the subscription
func (s *watchScene) Close() {
	s.cancel()
}

func (s *watchScene) Update(dt time.Duration) error {
	s.mu.Lock()
	latest := s.latest
	drops := s.drops
	s.drops = nil
	s.mu.Unlock()

	if latest != nil && latest != s.state {
		s.apply(latest)
	}
	for _, drop := range drops {
		if sp, ok := s.sprites[drop.PieceID]; ok && !drop.Placed {
			sp.fade = anim.FadeTint(anim.RejectTint)
			sp.tint = anim.RejectTint
		}
	}

	for _, sp := range s.sprites {
		if sp.move != nil {
			p, done := sp.move.Step(dt)
			sp.pos = p
			if done {
				sp.move = nil
			}
		}
		if sp.fade != nil {
			c, done := sp.fade.Step()
			sp.tint = c
			if done {
				sp.fade = nil
			}
		}
	}
	if s.hand != nil {
		s.hand.Step(dt)
	}
	return nil
}

// apply takes a new server state and starts the follow tweens
func (s *watchScene) apply(state *table.State) {
	first := s.state == nil
	s.state = state

	for _, view := range state.Sprites {
		sp, ok := s.sprites[view.PieceID]
		if !ok {
			continue
		}
		if first {
			sp.pos = view.Position
		} else if view.Position != sp.view.Position {
			sp.move = anim.MoveTo(sp.pos, view.Position, followDuration)
		}
		sp.view = view
		if sp.fade == nil {
			sp.tint = white
		}
	}

	if state.Guide != s.guide {
		s.guide = state.Guide
		if s.hand != nil {
			s.hand.Stop()
			s.hand = nil
		}
		if state.Guide.Visible {
			s.hand = anim.NewHandSequence(state.Guide.From, state.Guide.To)
		}
	}
}

func (s *watchScene) Draw(screen *ebiten.Image) {
	drawBoard(screen, s.geo, s.picture)

	ordered := make([]*watchedSprite, 0, len(s.sprites))
	for _, sp := range s.sprites {
		ordered = append(ordered, sp)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i].view, ordered[j].view
		if a.Depth != b.Depth {
			return a.Depth < b.Depth
		}
		return a.PieceID < b.PieceID
	})
	for _, sp := range ordered {
		scale := sp.view.Scale
		if scale == 0 {
			scale = placement.IdleScale
		}
		drawImageAt(screen, sp.image, sp.pos, scale, sp.tint, 1)
	}

	if s.hand != nil && s.hand.Running() {
		drawHand(screen, s.hand.Frame())
	}

	s.mu.Lock()
	connected, deleted, lastErr := s.connected, s.deleted, s.lastErr
	s.mu.Unlock()

	status := "live"
	switch {
	case deleted:
		status = "session deleted"
	case !connected && lastErr != nil:
		status = "reconnecting: " + lastErr.Error()
	case !connected:
		status = "connecting"
	}
	drawTextLeft(screen, fmt.Sprintf("Watching %s (%s) [%s]", s.sessionID, s.config.Name, status), 20, 20, dimTextColor)

	if s.state != nil {
		drawText(screen, s.state.Message, screenWidth/2, 60, 2, textColor, 1)
		if p := s.state.Puzzle; p != nil {
			drawTextLeft(screen, fmt.Sprintf("%d/%d placed | %d drops", p.Placed, p.Total, s.state.Drops),
				20, screenHeight-30, dimTextColor)
		}
	}
}
