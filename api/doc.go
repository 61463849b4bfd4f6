// Package api provides the HTTP REST API for the Ludo server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "duel"}); the game starts immediately
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session and its timers
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current snapshot
//   - POST /api/sessions/{id}/configure - {"player_count": 3, "player_names": ["Ana"]}
//   - POST /api/sessions/{id}/start - Seat the configured players
//   - POST /api/sessions/{id}/roll - Roll for the current player
//   - POST /api/sessions/{id}/select - {"token_id": 2}
//   - POST /api/sessions/{id}/acknowledge - Leave the finished-player pause
//   - POST /api/sessions/{id}/clear-message - Dismiss the advisory message
//   - POST /api/sessions/{id}/reset - Restart with the same players
//   - GET /api/sessions/{id}/history - Paginated action history (?page&limit&order)
//
// Configuration:
//   - GET /api/configs - List presets
//   - GET /api/configs/{name} - Get a preset
//   - POST /api/configs - Save a preset
//
// WebSocket:
//   - GET /ws?session={id} - Live state updates
//
// Commands answer with an ActionResult. A command that is illegal in the
// current state is not an error: the response is 200 with "applied": false.
//
// Errors are returned as {"error": "..."}: 400 for invalid arguments or
// presets, 404 for unknown sessions or presets, 409 for duplicate ids.
package api
