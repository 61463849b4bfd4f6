package engine

import "fmt"

var (
	// start cell per canonical slot (green, red, blue, yellow)
	slotStarts = [MaxSlots]int{0, 13, 26, 39}
	// entrance cell per canonical slot
	slotEntrances = [MaxSlots]int{50, 12, 25, 38}
)

// SlotFor maps a player id to its canonical board slot. In a two-player game
// the second player takes the opposite slot (blue) instead of red.
func SlotFor(playerID, playerCount int) (int, error) {
	if playerID < 0 || playerID >= MaxSlots {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPlayer, playerID)
	}
	if playerCount == 2 && playerID == 1 {
		return 2, nil
	}
	return playerID, nil
}

// ColorFor returns the colour of the slot a player occupies.
func ColorFor(playerID, playerCount int) (Color, error) {
	slot, err := SlotFor(playerID, playerCount)
	if err != nil {
		return "", err
	}
	return slotColors[slot], nil
}

// IsSafe reports whether cell is one of the star cells.
func IsSafe(cell int) bool {
	for _, c := range SafeCells {
		if c == cell {
			return true
		}
	}
	return false
}

// Locate classifies a logical position for rendering.
func Locate(position int) Location {
	switch {
	case position == BasePosition:
		return Location{Zone: ZoneBase, Index: 0}
	case position >= FinalSlot:
		return Location{Zone: ZoneHome, Index: HomeStretchSize - 1}
	case position >= HomeStretchStart:
		return Location{Zone: ZoneHomeStretch, Index: position - HomeStretchStart}
	default:
		return Location{Zone: ZoneTrack, Index: position}
	}
}

// Board holds the ring geometry for a given player count and the occupancy of
// the 52 ring cells. Home stretch cells are private and never tracked.
type Board struct {
	playerCount int
	occupancy   [TrackSize]*TokenRef
}

// NewBoard creates an empty board for playerCount players.
func NewBoard(playerCount int) (*Board, error) {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, playerCount)
	}
	return &Board{playerCount: playerCount}, nil
}

// PlayerCount returns the number of players the board was laid out for.
func (b *Board) PlayerCount() int {
	return b.playerCount
}

// StartPosition returns the ring cell a token enters on.
func (b *Board) StartPosition(playerID int) (int, error) {
	slot, err := SlotFor(playerID, b.playerCount)
	if err != nil {
		return 0, err
	}
	return slotStarts[slot], nil
}

// HomeEntrance returns the ring cell that leads into the player's stretch.
func (b *Board) HomeEntrance(playerID int) (int, error) {
	slot, err := SlotFor(playerID, b.playerCount)
	if err != nil {
		return 0, err
	}
	return slotEntrances[slot], nil
}

// Progress returns how many ring cells a token at position has covered since
// its start cell. Positions off the ring report -1.
func (b *Board) Progress(position, playerID int) (int, error) {
	start, err := b.StartPosition(playerID)
	if err != nil {
		return 0, err
	}
	if position < 0 || position >= TrackSize {
		return -1, nil
	}
	return forwardDistance(start, position), nil
}

// NextPosition moves a token steps cells forward.
//
// Every token covers exactly 51 ring cells before turning into its stretch, so
// the turn-off is detected by comparing forward progress instead of testing
// whether the entrance lies between two cell indexes, which breaks across the
// 51->0 wrap. Stretch moves are capped at the final slot.
func (b *Board) NextPosition(current, steps, playerID int) (int, error) {
	start, err := b.StartPosition(playerID)
	if err != nil {
		return 0, err
	}
	if current < 0 || current > FinalSlot {
		return 0, fmt.Errorf("%w: position %d is not on the board", ErrInvalidArgument, current)
	}
	if steps < 0 {
		return 0, fmt.Errorf("%w: negative steps %d", ErrInvalidArgument, steps)
	}

	if current >= HomeStretchStart {
		return min(current+steps, FinalSlot), nil
	}

	progress := forwardDistance(start, current) + steps
	if progress > lastTrackProgress {
		return min(HomeStretchStart+progress-lastTrackProgress-1, FinalSlot), nil
	}
	return (current + steps) % TrackSize, nil
}

// Occupant returns the token recorded on a ring cell.
func (b *Board) Occupant(cell int) (TokenRef, bool) {
	if cell < 0 || cell >= TrackSize || b.occupancy[cell] == nil {
		return TokenRef{}, false
	}
	return *b.occupancy[cell], true
}

// Occupancy returns a copy of all occupied ring cells.
func (b *Board) Occupancy() map[int]TokenRef {
	out := make(map[int]TokenRef)
	for cell, ref := range b.occupancy {
		if ref != nil {
			out[cell] = *ref
		}
	}
	return out
}

func (b *Board) setOccupant(cell int, ref TokenRef) {
	if cell < 0 || cell >= TrackSize {
		return
	}
	b.occupancy[cell] = &ref
}

func (b *Board) clearCell(cell int) {
	if cell < 0 || cell >= TrackSize {
		return
	}
	b.occupancy[cell] = nil
}

func (b *Board) resetOccupancy() {
	b.occupancy = [TrackSize]*TokenRef{}
}

// forwardDistance counts cells walked from `from` to `to` around the ring.
func forwardDistance(from, to int) int {
	return ((to-from)%TrackSize + TrackSize) % TrackSize
}
