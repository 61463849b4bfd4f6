package engine

// RemainingSteps returns how many pips a token still needs to reach the final
// slot. Tokens in base report the full journey plus the entering roll.
func RemainingSteps(board *Board, position, playerID int) (int, error) {
	switch {
	case position == BasePosition:
		return lastTrackProgress + HomeStretchSize + 1, nil
	case position >= HomeStretchStart:
		return max(FinalSlot-position, 0), nil
	}
	progress, err := board.Progress(position, playerID)
	if err != nil {
		return 0, err
	}
	return lastTrackProgress - progress + HomeStretchSize, nil
}

// CountTokensInZone counts a player's tokens in the given zone
func CountTokensInZone(p Player, zone Zone) int {
	count := 0
	for _, t := range p.Tokens {
		if Locate(t.Position).Zone == zone {
			count++
		}
	}
	return count
}

// ThreatenedTokens lists the player's ring tokens that an opponent could
// capture with a single roll.
func ThreatenedTokens(state *GameState, playerID int) []int {
	if playerID < 0 || playerID >= len(state.Players) {
		return nil
	}
	board, err := NewBoard(state.PlayerCount)
	if err != nil {
		return nil
	}

	var out []int
	for _, t := range state.Players[playerID].Tokens {
		if !t.OnTrack() || IsSafe(t.Position) {
			continue
		}
		if threatened(board, state, playerID, t.Position) {
			out = append(out, t.ID)
		}
	}
	return out
}

func threatened(board *Board, state *GameState, playerID, cell int) bool {
	for _, opp := range state.Players {
		if opp.ID == playerID || opp.HasFinished {
			continue
		}
		for _, ot := range opp.Tokens {
			if !ot.OnTrack() {
				continue
			}
			for roll := 1; roll <= DiceSides; roll++ {
				dest, err := board.NextPosition(ot.Position, roll, opp.ID)
				if err == nil && dest == cell {
					return true
				}
			}
		}
	}
	return false
}

// DescribeTurn summarises the current turn for text clients.
func DescribeTurn(state *GameState) string {
	if !state.Started || len(state.Players) == 0 {
		return "Game not started"
	}
	if state.CurrentPlayerIndex < 0 || state.CurrentPlayerIndex >= len(state.Players) {
		return state.State
	}
	p := state.Players[state.CurrentPlayerIndex]
	switch state.State {
	case SelectToken.String():
		return p.Name + " must select a token"
	case PlayerFinished.String():
		return p.Name + " finished; waiting for acknowledgement"
	case GameOver.String():
		return "Game over"
	default:
		return p.Name + " to roll"
	}
}
