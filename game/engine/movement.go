package engine

import "fmt"

// canMove applies the movement rule for the rolled value.
func (e *GameEngine) canMove(t *Token) bool {
	switch {
	case t.IsHome:
		return false
	case t.InBase():
		return e.diceValue == EnterRoll
	case t.InHomeStretch():
		return t.Position+e.diceValue <= FinalSlot
	default:
		return true
	}
}

func (e *GameEngine) computeMovable(p *Player) []int {
	var ids []int
	for i := range p.Tokens {
		if e.canMove(&p.Tokens[i]) {
			ids = append(ids, p.Tokens[i].ID)
		}
	}
	return ids
}

// sendBackFarthest returns the player's most advanced ring token to base.
func (e *GameEngine) sendBackFarthest(p *Player) {
	var farthest *Token
	best := -1
	for i := range p.Tokens {
		t := &p.Tokens[i]
		if !t.OnTrack() {
			continue
		}
		progress, err := e.board.Progress(t.Position, p.ID)
		if err != nil {
			continue
		}
		if progress > best {
			best, farthest = progress, t
		}
	}

	if farthest == nil {
		e.message = e.messages.ThreeOnesNoToken
		return
	}

	from := farthest.Position
	e.vacate(from, TokenRef{PlayerID: p.ID, TokenID: farthest.ID})
	farthest.Position = BasePosition
	e.message = e.messages.ThreeOnes
	e.record(HistoryEntry{Kind: KindPenalty, PlayerID: p.ID, Dice: e.diceValue, TokenID: farthest.ID, From: from, To: BasePosition})
}

// autoEnter places a base token on the start cell when nothing else can move.
func (e *GameEngine) autoEnter(p *Player) bool {
	var candidate *Token
	for i := range p.Tokens {
		t := &p.Tokens[i]
		if t.InBase() {
			if candidate == nil {
				candidate = t
			}
			continue
		}
		if e.canMove(t) {
			return false
		}
	}
	if candidate == nil {
		return false
	}

	start, err := e.board.StartPosition(p.ID)
	if err != nil {
		return false
	}
	e.moveToken(p, candidate, start)
	e.message = e.messages.ThreeSixes
	e.record(HistoryEntry{Kind: KindAutoEnter, PlayerID: p.ID, Dice: e.diceValue, TokenID: candidate.ID, From: BasePosition, To: start})
	return true
}

// moveToken relocates a token, resolving captures and occupancy.
func (e *GameEngine) moveToken(p *Player, t *Token, dest int) {
	ref := TokenRef{PlayerID: p.ID, TokenID: t.ID}
	from := t.Position

	if dest < TrackSize && !IsSafe(dest) {
		if occ, ok := e.board.Occupant(dest); ok && occ.PlayerID != p.ID {
			e.capture(occ.PlayerID, dest, p.ID)
		}
	}

	if from >= 0 && from < TrackSize {
		e.vacate(from, ref)
	}
	t.Position = dest
	if dest < TrackSize {
		e.board.setOccupant(dest, ref)
	}

	kind := KindMove
	if from == BasePosition {
		kind = KindEnter
	}
	e.record(HistoryEntry{Kind: kind, PlayerID: p.ID, Dice: e.diceValue, TokenID: t.ID, From: from, To: dest})

	if dest == FinalSlot {
		t.IsHome = true
		e.message = e.messages.TokenHome
		e.record(HistoryEntry{Kind: KindHome, PlayerID: p.ID, TokenID: t.ID, From: from, To: dest})
	}
}

// capture sends every token of victim on cell back to base.
func (e *GameEngine) capture(victim, cell, by int) {
	if victim < 0 || victim >= len(e.players) {
		return
	}
	vp := e.players[victim]
	for i := range vp.Tokens {
		t := &vp.Tokens[i]
		if t.Position != cell {
			continue
		}
		t.Position = BasePosition
		e.record(HistoryEntry{
			Kind: KindCapture, PlayerID: by, TokenID: t.ID, From: cell, To: BasePosition,
			Detail: fmt.Sprintf("captured %s token %d", vp.Name, t.ID),
		})
	}
	e.board.clearCell(cell)
}

// vacate updates occupancy for a token leaving cell. When other tokens still
// share the cell (safe cells or own stacks) one of them takes over the record.
func (e *GameEngine) vacate(cell int, leaving TokenRef) {
	occ, ok := e.board.Occupant(cell)
	if !ok || occ != leaving {
		return
	}
	e.board.clearCell(cell)
	for _, p := range e.players {
		for i := range p.Tokens {
			ref := TokenRef{PlayerID: p.ID, TokenID: p.Tokens[i].ID}
			if ref != leaving && p.Tokens[i].Position == cell {
				e.board.setOccupant(cell, ref)
				return
			}
		}
	}
}
