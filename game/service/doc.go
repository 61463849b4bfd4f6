// Package service provides the business logic layer for the Ludo server.
//
// The service package implements:
//   - Multi-session game management
//   - Preset loading through the ConfigManager
//   - Turn commands with per-command event lists
//   - Presentation timers for advisory messages and finish pauses
//   - Paginated action history
//
// Core Interfaces:
//
// GameService is the main service interface used by every transport.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages preset loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and
// the rules engine. The engine has no clock; the Scheduler owns every timer
// and all engine calls, timer callbacks included, run under one service lock.
// WithOnChange lets a transport push snapshots after any change.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr,
//		service.WithLogger(logger))
//
//	info, err := gameService.CreateSession(ctx, "duel")
//	if err != nil {
//		return err
//	}
//
//	res, err := gameService.RollDice(ctx, info.ID)
//	if res.Applied && res.GameState.State == "select_token" {
//		res, err = gameService.SelectToken(ctx, info.ID, res.GameState.MovableTokens[0])
//	}
package service
