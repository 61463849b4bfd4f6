package main

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/wricardo/mcp-training/ludo/game/engine"
)

// Strategy picks one of the movable tokens for the current player.
type Strategy interface {
	Name() string
	Choose(e *engine.GameEngine) int
}

func newStrategy(name string, seed uint64) (Strategy, error) {
	switch name {
	case "random":
		return &RandomStrategy{rng: rand.New(rand.NewPCG(seed, seed+1))}, nil
	case "first":
		return FirstStrategy{}, nil
	case "greedy":
		return GreedyStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (random, first, greedy)", name)
	}
}

// RandomStrategy picks uniformly among the movable tokens.
type RandomStrategy struct {
	rng *rand.Rand
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Choose(e *engine.GameEngine) int {
	movable := e.MovableTokens()
	return movable[s.rng.IntN(len(movable))]
}

// FirstStrategy always moves the lowest movable token id.
type FirstStrategy struct{}

func (FirstStrategy) Name() string { return "first" }

func (FirstStrategy) Choose(e *engine.GameEngine) int {
	return slices.Min(e.MovableTokens())
}

// Move scores used by GreedyStrategy.
const (
	scoreHome       = 1000
	scoreCapture    = 800
	scoreEscape     = 400
	scoreEnter      = 300
	scoreSafeLand   = 100
	scoreStretch    = 150
	scoreIntoDanger = -250
)

// GreedyStrategy scores each candidate move: reaching home, capturing,
// escaping a threat, entering a token, then plain progress.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (g GreedyStrategy) Choose(e *engine.GameEngine) int {
	movable := e.MovableTokens()
	best, bestScore := movable[0], -1<<31
	for _, id := range movable {
		if s := g.score(e, id); s > bestScore {
			best, bestScore = id, s
		}
	}
	return best
}

func (GreedyStrategy) score(e *engine.GameEngine, tokenID int) int {
	player, ok := e.CurrentPlayer()
	if !ok {
		return 0
	}
	board := e.Board()
	token := player.Tokens[tokenID]

	var dest int
	if token.InBase() {
		start, err := board.StartPosition(player.ID)
		if err != nil {
			return 0
		}
		dest = start
	} else {
		next, err := board.NextPosition(token.Position, e.DiceValue(), player.ID)
		if err != nil {
			return 0
		}
		dest = next
	}

	score := 0
	switch {
	case dest == engine.FinalSlot:
		score += scoreHome
	case dest >= engine.HomeStretchStart:
		score += scoreStretch
	}
	if token.InBase() {
		score += scoreEnter
	}

	if dest < engine.TrackSize {
		if engine.IsSafe(dest) {
			score += scoreSafeLand
		} else if occ, ok := board.Occupant(dest); ok && occ.PlayerID != player.ID {
			score += scoreCapture
		}
	}

	state := e.GetState()
	if slices.Contains(engine.ThreatenedTokens(state, player.ID), tokenID) {
		score += scoreEscape
	}

	// Landing somewhere an opponent can reach next roll.
	if dest < engine.TrackSize && !engine.IsSafe(dest) {
		moved := *state
		moved.Players = slices.Clone(state.Players)
		moved.Players[player.ID].Tokens[tokenID].Position = dest
		if slices.Contains(engine.ThreatenedTokens(&moved, player.ID), tokenID) {
			score += scoreIntoDanger
		}
	}

	// Prefer advancing the token closest to home.
	if remaining, err := engine.RemainingSteps(board, token.Position, player.ID); err == nil {
		score += 100 - remaining
	}
	return score
}
