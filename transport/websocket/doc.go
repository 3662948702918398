// Package websocket pushes puzzle state to watchers.
//
// A Hub keeps one set of clients per session. Every access to that set
// happens on the Run goroutine; broadcasts, registrations and count queries
// are sent to it over channels. Clients connect to /ws?session=<id> and
// receive a state_update message after every mutation of that session.
// Incoming client messages are read only to keep the connection alive.
//
// Subscribe is the client side used by the desktop watch mode.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
