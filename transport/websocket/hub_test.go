package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/jigsawgame/game/puzzle"
	"github.com/wricardo/mcp-training/jigsawgame/game/table"
	"github.com/wricardo/mcp-training/jigsawgame/logging"
)

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

func testState(t *testing.T) *table.State {
	t.Helper()
	tbl, err := table.New(puzzle.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	tbl.PlaceAt(1, 0, 0)
	return tbl.State()
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func newTestServer(t *testing.T, hub *Hub, initial *table.State) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"), initial)
	}))
	t.Cleanup(server.Close)
	return server
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(sessionID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients in session %s, got %d", want, sessionID, hub.ClientCount(sessionID))
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil || hub.register == nil || hub.unregister == nil || hub.queries == nil {
		t.Error("Hub channels not initialized")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("Expected send channel to be closed")
	}

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}
	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
	other := &Client{hub: hub, sessionID: "other", send: make(chan []byte, 256)}
	hub.registerClient(client)
	hub.registerClient(other)

	// Session ids are matched case-insensitively
	hub.BroadcastToSession("Broadcast-Test", testState(t))
	hub.broadcastMessage(<-hub.broadcast)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != EventStateUpdate {
			t.Errorf("Expected event %s, got %s", EventStateUpdate, message.Event)
		}
		if message.GameState == nil || message.GameState.Puzzle.Cells[0][0] != 1 {
			t.Error("GameState not correctly transmitted")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Client of another session received the broadcast")
	default:
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", EventDrop, "test-data")

	select {
	case message := <-hub.broadcast:
		if message.SessionID != "event-test" {
			t.Errorf("Expected sessionID 'event-test', got %s", message.SessionID)
		}
		if message.Event != EventDrop {
			t.Errorf("Expected event %s, got %s", EventDrop, message.Event)
		}
		if message.Data != "test-data" {
			t.Errorf("Expected data 'test-data', got %v", message.Data)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message received within timeout")
	}
}

func TestHubSlowClientIsDropped(t *testing.T) {
	hub := NewHub()

	slow := &Client{hub: hub, sessionID: "slow", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: EventDrop})

	if _, exists := hub.sessions["slow"]; exists {
		t.Error("Expected unbuffered client to be dropped")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := startHub(t)
	server := newTestServer(t, hub, nil)

	wsURL, err := SessionURL(server.URL, "ws-test")
	if err != nil {
		t.Fatalf("SessionURL() error = %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitForClients(t, hub, "ws-test", 1)

	conn.Close()

	waitForClients(t, hub, "ws-test", 0)
}

func TestWebSocketInitialStateAndUpdates(t *testing.T) {
	hub := startHub(t)
	server := newTestServer(t, hub, testState(t))

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?session=msg-test"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read initial message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.GameState == nil || message.GameState.Puzzle.Placed != 1 {
		t.Fatalf("Expected initial state with one placed piece, got %+v", message.GameState)
	}

	waitForClients(t, hub, "msg-test", 1)
	hub.BroadcastEvent("msg-test", EventDeleted, nil)

	_, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal event: %v", err)
	}
	if message.Event != EventDeleted {
		t.Errorf("Expected %s, got %s", EventDeleted, message.Event)
	}
}

func TestSubscribe(t *testing.T) {
	hub := startHub(t)
	server := newTestServer(t, hub, nil)

	wsURL, _ := SessionURL(server.URL, "sub-test")
	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var received []*Message
	done := make(chan error, 1)
	go func() {
		done <- Subscribe(ctx, wsURL, func(m *Message) {
			mu.Lock()
			received = append(received, m)
			mu.Unlock()
		})
	}()

	waitForClients(t, hub, "sub-test", 1)
	state := testState(t)
	hub.BroadcastToSession("sub-test", state)
	hub.BroadcastEvent("sub-test", EventDrop, map[string]int{"piece_id": 1})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(received)
		mu.Unlock()
		if n == 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Subscribe() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Subscribe did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(received))
	}
	if received[0].Event != EventStateUpdate || received[1].Event != EventDrop {
		t.Errorf("Unexpected events: %s, %s", received[0].Event, received[1].Event)
	}
}

func TestSessionURL(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{"http://localhost:8080", "ws://localhost:8080/ws?session=abc", false},
		{"https://example.ngrok.app/", "wss://example.ngrok.app/ws?session=abc", false},
		{"ftp://host", "", true},
	}

	for _, tt := range tests {
		got, err := SessionURL(tt.base, "abc")
		if (err != nil) != tt.wantErr {
			t.Errorf("SessionURL(%q) error = %v", tt.base, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SessionURL(%q) = %q, want %q", tt.base, got, tt.want)
		}
	}
}

func TestHubStopsOnCancel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Calls after shutdown must not block
	hub.BroadcastEvent("x", EventDrop, nil)
	if hub.ClientCount("x") != 0 {
		t.Error("Expected no clients after shutdown")
	}
}
