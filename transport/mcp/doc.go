// Package mcp exposes the Ludo REST API as Model Context Protocol tools.
//
// The Client proxies every tool call to the REST server, so the MCP surface
// and the browser always see the same sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - configure_game, start_game, reset_game
//   - roll_dice, select_token, acknowledge_finish
//   - game_state, move_history, list_configs, game_instructions
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: server.NewStreamableHTTPServer(client.GetMCPServer()) mounted at /mcp
//
// Tool results are plain text meant for an agent to read: the current turn,
// each player's tokens with their board location, tokens at risk of capture
// and the events produced by the last command.
package mcp
