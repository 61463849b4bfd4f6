package engine

import "fmt"

// Board and rule constants
const (
	TrackSize         = 52
	HomeStretchSize   = 6
	HomeStretchStart  = TrackSize
	FinalSlot         = HomeStretchStart + HomeStretchSize - 1
	TokensPerPlayer   = 4
	MinPlayers        = 2
	MaxPlayers        = 4
	MaxSlots          = 4
	BasePosition      = -1
	DiceSides         = 6
	EnterRoll         = 1
	PenaltyOnesStreak = 3
	WinningOnesStreak = 7
	AutoEnterSixes    = 3

	// lastTrackProgress is the farthest a token travels on the ring before it
	// turns into its home stretch.
	lastTrackProgress = TrackSize - 2
)

// SafeCells are the star cells where captures never happen.
var SafeCells = [...]int{0, 8, 13, 21, 26, 34, 39, 47}

// State is the phase of the turn state machine.
type State int

const (
	AwaitingRoll State = iota
	SelectToken
	PlayerFinished
	GameOver
)

var stateNames = map[State]string{
	AwaitingRoll:   "awaiting_roll",
	SelectToken:    "select_token",
	PlayerFinished: "player_finished",
	GameOver:       "game_over",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state_%d", int(s))
}

// ParseState converts a state name back into a State.
func ParseState(name string) (State, bool) {
	for s, n := range stateNames {
		if n == name {
			return s, true
		}
	}
	return AwaitingRoll, false
}

// Color is the board colour bound to a slot.
type Color string

const (
	Green  Color = "green"
	Red    Color = "red"
	Blue   Color = "blue"
	Yellow Color = "yellow"
)

var slotColors = [MaxSlots]Color{Green, Red, Blue, Yellow}

// Zone classifies a logical token position for rendering.
type Zone string

const (
	ZoneBase        Zone = "base"
	ZoneTrack       Zone = "track"
	ZoneHomeStretch Zone = "home_stretch"
	ZoneHome        Zone = "home"
)

// Location maps a logical position to the zone and index a renderer needs.
// Index is the ring cell for ZoneTrack and the stretch slot (0..5) otherwise.
type Location struct {
	Zone  Zone `json:"zone"`
	Index int  `json:"index"`
}

// Token is one of the four pieces owned by a player.
type Token struct {
	ID       int  `json:"id"`
	PlayerID int  `json:"player_id"`
	Position int  `json:"position"`
	IsHome   bool `json:"is_home"`
}

// InBase reports whether the token still waits in its base.
func (t *Token) InBase() bool {
	return t.Position == BasePosition
}

// OnTrack reports whether the token sits on the shared ring.
func (t *Token) OnTrack() bool {
	return t.Position >= 0 && t.Position < TrackSize
}

// InHomeStretch reports whether the token is on its private stretch.
func (t *Token) InHomeStretch() bool {
	return t.Position >= HomeStretchStart
}

// Player is a participant of the game.
type Player struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	Color       Color                  `json:"color"`
	Slot        int                    `json:"slot"`
	Tokens      [TokensPerPlayer]Token `json:"tokens"`
	HasFinished bool                   `json:"has_finished"`
}

// TokensHome counts the tokens that reached the end of the stretch.
func (p *Player) TokensHome() int {
	n := 0
	for _, t := range p.Tokens {
		if t.IsHome {
			n++
		}
	}
	return n
}

// TokenRef identifies a token by owner and index.
type TokenRef struct {
	PlayerID int `json:"player_id"`
	TokenID  int `json:"token_id"`
}

// HistoryKind labels an entry of the action history.
type HistoryKind string

const (
	KindRoll      HistoryKind = "roll"
	KindEnter     HistoryKind = "enter"
	KindMove      HistoryKind = "move"
	KindCapture   HistoryKind = "capture"
	KindHome      HistoryKind = "home"
	KindPenalty   HistoryKind = "penalty"
	KindAutoEnter HistoryKind = "auto_enter"
	KindFinish    HistoryKind = "finish"
	KindTurn      HistoryKind = "turn"
	KindGameOver  HistoryKind = "game_over"
	KindReset     HistoryKind = "reset"
)

// HistoryEntry is a single recorded engine action
type HistoryEntry struct {
	Seq      int         `json:"seq"`
	Kind     HistoryKind `json:"kind"`
	PlayerID int         `json:"player_id"`
	Dice     int         `json:"dice,omitempty"`
	TokenID  int         `json:"token_id"`
	From     int         `json:"from"`
	To       int         `json:"to"`
	Detail   string      `json:"detail,omitempty"`
}

// GameState is the serialisable snapshot every control surface renders from.
type GameState struct {
	State              string           `json:"state"`
	Started            bool             `json:"started"`
	PlayerCount        int              `json:"player_count"`
	Players            []Player         `json:"players"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	DiceValue          int              `json:"dice_value"`
	ConsecutiveOnes    int              `json:"consecutive_ones"`
	ConsecutiveSixes   int              `json:"consecutive_sixes"`
	MovableTokens      []int            `json:"movable_tokens"`
	Message            string           `json:"message"`
	FinishOrder        []int            `json:"finish_order"`
	Winner             *int             `json:"winner,omitempty"`
	Occupancy          map[int]TokenRef `json:"occupancy"`
	TotalActions       int              `json:"total_actions"`
}
