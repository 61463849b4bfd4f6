// Package websocket pushes game snapshots to browsers watching a session.
//
// A central Hub owns the per-session client sets. Registration, removal and
// broadcasts are handled on the Run goroutine; each connection gets a read
// pump (pongs and close frames only) and a write pump (queued messages and
// pings).
//
// Clients connect with ?session=<id> and first receive the current state.
// Every later change arrives as
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// Usage:
//
//	hub := websocket.NewHub(websocket.WithLogger(logger))
//	go hub.Run(ctx)
//
//	svc := service.NewGameService(sessions, configs,
//		service.WithOnChange(hub.BroadcastToSession))
//
// Broadcasting never blocks the caller. When the queue is full the message is
// dropped and logged; slow clients are disconnected.
package websocket
