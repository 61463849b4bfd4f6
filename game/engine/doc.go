// Package engine provides the rules of Ludo for two to four players.
//
// The engine package implements the game mechanics including:
//   - Ring and home-stretch geometry with per-player start cells
//   - Token entry, movement, captures and safe cells
//   - Streak rules for consecutive 1s and 6s
//   - The turn state machine and finishing order
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Board holds the geometry for a player count
// together with ring occupancy. GameState is the detached snapshot a user
// interface renders from, and GameConfig is the preset a game is started with.
//
// Positions are logical integers: -1 is base, 0..51 are ring cells, and
// 52..57 are the player's private home stretch, 57 being home.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultGameConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameEngine.Start()
//
//	if gameEngine.RollDice() && gameEngine.State() == engine.SelectToken {
//		gameEngine.SelectToken(gameEngine.MovableTokens()[0])
//	}
//	state := gameEngine.GetState()
//
// Game Rules:
//
// A token leaves base only on a 1. Rolling a 1 or a 6 grants another roll.
// Three 1s in a row send the farthest ring token back to base, and seven in a
// row win the game outright. Three 6s in a row move a base token onto the
// start cell when nothing else can move. Landing on an opponent outside a
// safe cell sends it back to base. A player finishes when all four tokens are
// home; the game is over once a single player remains.
package engine
