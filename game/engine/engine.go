package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidPlayer      = fmt.Errorf("%w: player id must be between 0 and %d", ErrInvalidArgument, MaxSlots-1)
	ErrInvalidPlayerCount = fmt.Errorf("%w: player count must be between %d and %d", ErrInvalidArgument, MinPlayers, MaxPlayers)
	ErrInvalidToken       = fmt.Errorf("%w: token id must be between 0 and %d", ErrInvalidArgument, TokensPerPlayer-1)
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Engine provides the main interface for game operations
type Engine interface {
	// Setup
	Configure(playerCount int, names []string) error
	Start()
	Reset()

	// Turn commands; each returns false when illegal in the current state
	RollDice() bool
	SelectToken(tokenID int) bool
	AcknowledgeFinish() bool
	NextTurn()
	ClearMessage()

	// Queries
	State() State
	Started() bool
	CurrentPlayer() (Player, bool)
	CurrentPlayerIndex() int
	DiceValue() int
	MovableTokens() []int
	Message() string
	Players() []Player
	FinishOrder() []int
	Winner() (int, bool)
	TokenLocation(playerID, tokenID int) (Location, error)

	// Snapshots
	GetState() *GameState
	GetHistory() []HistoryEntry
	GetConfig() *GameConfig
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialise access.
type GameEngine struct {
	config   *GameConfig
	messages Messages
	dice     Dice
	board    *Board
	players  []*Player

	state               State
	current             int
	diceValue           int
	consecutiveOnes     int
	consecutiveSixes    int
	skipManualSelection bool
	movable             []int
	message             string
	finishOrder         []int

	history []HistoryEntry
	seq     int
}

// NewEngine creates an engine for the given preset. A nil dice rolls randomly
// using the preset seed. The game begins once Start is called.
func NewEngine(config *GameConfig, dice Dice) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if dice == nil {
		dice = NewRandomDice(config.Seed)
	}

	cfg := *config
	cfg.PlayerNames = slices.Clone(config.PlayerNames)
	cfg.Messages = config.Messages.WithDefaults()

	return &GameEngine{
		config:   &cfg,
		messages: cfg.Messages,
		dice:     dice,
		state:    AwaitingRoll,
	}, nil
}

// NewEngineWithDefaults creates an engine for the classic four-player preset
func NewEngineWithDefaults() *GameEngine {
	e, _ := NewEngine(DefaultGameConfig(), nil)
	return e
}

// Configure sets the player count and names used by the next Start.
func (e *GameEngine) Configure(playerCount int, names []string) error {
	if err := ValidatePlayerCount(playerCount); err != nil {
		return err
	}
	e.config.PlayerCount = playerCount
	if len(names) > playerCount {
		names = names[:playerCount]
	}
	e.config.PlayerNames = slices.Clone(names)
	return nil
}

// Start seats the configured players and begins a fresh game.
func (e *GameEngine) Start() {
	count := e.config.PlayerCount
	board, err := NewBoard(count)
	if err != nil {
		return
	}
	e.board = board

	names := playerNames(count, e.config.PlayerNames)
	e.players = make([]*Player, count)
	for i := range e.players {
		slot, _ := SlotFor(i, count)
		p := &Player{ID: i, Name: names[i], Color: slotColors[slot], Slot: slot}
		for t := range p.Tokens {
			p.Tokens[t] = Token{ID: t, PlayerID: i, Position: BasePosition}
		}
		e.players[i] = p
	}

	e.history = nil
	e.seq = 0
	e.Reset()
}

// Reset sends every token back to base and restarts the turn order with the
// same players. History is kept.
func (e *GameEngine) Reset() {
	if !e.Started() {
		return
	}
	for _, p := range e.players {
		p.HasFinished = false
		for t := range p.Tokens {
			p.Tokens[t].Position = BasePosition
			p.Tokens[t].IsHome = false
		}
	}
	e.board.resetOccupancy()

	e.state = AwaitingRoll
	e.current = 0
	e.diceValue = 0
	e.consecutiveOnes = 0
	e.consecutiveSixes = 0
	e.skipManualSelection = false
	e.movable = nil
	e.finishOrder = nil
	e.message = e.messages.Welcome

	e.record(HistoryEntry{Kind: KindReset, PlayerID: 0, TokenID: -1})
}

// RollDice draws a face for the current player and applies the streak rules.
func (e *GameEngine) RollDice() bool {
	if !e.Started() || e.state != AwaitingRoll {
		return false
	}

	player := e.players[e.current]
	value := e.dice.Roll()
	e.diceValue = value
	e.skipManualSelection = false
	e.movable = nil
	e.record(HistoryEntry{Kind: KindRoll, PlayerID: player.ID, Dice: value, TokenID: -1})

	switch value {
	case 1:
		e.consecutiveOnes++
		e.consecutiveSixes = 0
		switch e.consecutiveOnes {
		case PenaltyOnesStreak:
			e.sendBackFarthest(player)
			e.skipManualSelection = true
		case WinningOnesStreak:
			e.finishPlayer(player, e.messages.SevenOnesReason)
			return true
		}
	case DiceSides:
		e.consecutiveSixes++
		e.consecutiveOnes = 0
		if e.consecutiveSixes == AutoEnterSixes {
			e.skipManualSelection = e.autoEnter(player)
		}
	default:
		e.consecutiveOnes = 0
		e.consecutiveSixes = 0
	}

	if e.skipManualSelection {
		e.state = AwaitingRoll
		return true
	}

	e.movable = e.computeMovable(player)
	switch {
	case len(e.movable) > 0:
		e.state = SelectToken
	case grantsExtraRoll(value):
		e.state = AwaitingRoll
	default:
		e.advanceTurn()
	}
	return true
}

// SelectToken moves one of the current player's movable tokens by the rolled
// value.
func (e *GameEngine) SelectToken(tokenID int) bool {
	if !e.Started() || e.state != SelectToken || !slices.Contains(e.movable, tokenID) {
		return false
	}

	player := e.players[e.current]
	token := &player.Tokens[tokenID]

	var (
		dest int
		err  error
	)
	if token.InBase() {
		dest, err = e.board.StartPosition(player.ID)
	} else {
		dest, err = e.board.NextPosition(token.Position, e.diceValue, player.ID)
	}
	if err != nil {
		return false
	}

	e.movable = nil
	e.moveToken(player, token, dest)

	if player.TokensHome() == TokensPerPlayer && !player.HasFinished {
		e.finishPlayer(player, e.messages.AllHomeReason)
	}
	if e.state == GameOver || e.state == PlayerFinished {
		return true
	}

	if grantsExtraRoll(e.diceValue) {
		e.state = AwaitingRoll
	} else {
		e.advanceTurn()
	}
	return true
}

// AcknowledgeFinish leaves the PlayerFinished pause and passes the turn on.
func (e *GameEngine) AcknowledgeFinish() bool {
	if !e.Started() || e.state != PlayerFinished {
		return false
	}
	e.advanceTurn()
	return true
}

// NextTurn passes the turn to the next player who has not finished.
func (e *GameEngine) NextTurn() {
	if !e.Started() || e.state == GameOver {
		return
	}
	e.advanceTurn()
}

// ClearMessage drops the advisory message.
func (e *GameEngine) ClearMessage() {
	e.message = ""
}

// State returns the current phase of the turn state machine.
func (e *GameEngine) State() State {
	return e.state
}

// Started reports whether players have been seated.
func (e *GameEngine) Started() bool {
	return len(e.players) > 0
}

// CurrentPlayer returns a copy of the player whose turn it is.
func (e *GameEngine) CurrentPlayer() (Player, bool) {
	if !e.Started() {
		return Player{}, false
	}
	return *e.players[e.current], true
}

// CurrentPlayerIndex returns the index of the player whose turn it is.
func (e *GameEngine) CurrentPlayerIndex() int {
	return e.current
}

// DiceValue returns the last rolled face, 0 before the first roll.
func (e *GameEngine) DiceValue() int {
	return e.diceValue
}

// ConsecutiveOnes returns the current streak of 1s.
func (e *GameEngine) ConsecutiveOnes() int {
	return e.consecutiveOnes
}

// ConsecutiveSixes returns the current streak of 6s.
func (e *GameEngine) ConsecutiveSixes() int {
	return e.consecutiveSixes
}

// SkipManualSelection reports whether the last roll triggered an automatic move.
func (e *GameEngine) SkipManualSelection() bool {
	return e.skipManualSelection
}

// MovableTokens returns the token ids the current player may select.
func (e *GameEngine) MovableTokens() []int {
	return slices.Clone(e.movable)
}

// Message returns the advisory message, empty when cleared.
func (e *GameEngine) Message() string {
	return e.message
}

// Players returns copies of all seated players.
func (e *GameEngine) Players() []Player {
	out := make([]Player, len(e.players))
	for i, p := range e.players {
		out[i] = *p
	}
	return out
}

// FinishOrder returns player ids in the order they finished.
func (e *GameEngine) FinishOrder() []int {
	return slices.Clone(e.finishOrder)
}

// Winner returns the first player to finish.
func (e *GameEngine) Winner() (int, bool) {
	if len(e.finishOrder) == 0 {
		return 0, false
	}
	return e.finishOrder[0], true
}

// Board exposes the board for read-only queries.
func (e *GameEngine) Board() *Board {
	return e.board
}

// TokenLocation classifies a token's position for rendering.
func (e *GameEngine) TokenLocation(playerID, tokenID int) (Location, error) {
	if playerID < 0 || playerID >= MaxSlots {
		return Location{}, fmt.Errorf("%w: got %d", ErrInvalidPlayer, playerID)
	}
	if tokenID < 0 || tokenID >= TokensPerPlayer {
		return Location{}, fmt.Errorf("%w: got %d", ErrInvalidToken, tokenID)
	}
	if playerID >= len(e.players) {
		return Location{}, fmt.Errorf("%w: player %d is not seated", ErrInvalidPlayer, playerID)
	}
	return Locate(e.players[playerID].Tokens[tokenID].Position), nil
}

// GetState returns a detached snapshot of the game.
func (e *GameEngine) GetState() *GameState {
	gs := &GameState{
		State:              e.state.String(),
		Started:            e.Started(),
		PlayerCount:        e.config.PlayerCount,
		Players:            e.Players(),
		CurrentPlayerIndex: e.current,
		DiceValue:          e.diceValue,
		ConsecutiveOnes:    e.consecutiveOnes,
		ConsecutiveSixes:   e.consecutiveSixes,
		MovableTokens:      e.MovableTokens(),
		Message:            e.message,
		FinishOrder:        e.FinishOrder(),
		Occupancy:          map[int]TokenRef{},
		TotalActions:       e.seq,
	}
	if e.board != nil {
		gs.PlayerCount = e.board.PlayerCount()
		gs.Occupancy = e.board.Occupancy()
	}
	if gs.MovableTokens == nil {
		gs.MovableTokens = []int{}
	}
	if gs.FinishOrder == nil {
		gs.FinishOrder = []int{}
	}
	if w, ok := e.Winner(); ok {
		gs.Winner = &w
	}
	return gs
}

// GetHistory returns the recorded actions, oldest first.
func (e *GameEngine) GetHistory() []HistoryEntry {
	return slices.Clone(e.history)
}

// GetConfig returns a copy of the preset the engine plays with.
func (e *GameEngine) GetConfig() *GameConfig {
	cfg := *e.config
	cfg.PlayerNames = slices.Clone(e.config.PlayerNames)
	return &cfg
}

// finishPlayer marks p finished and either pauses for acknowledgement or ends
// the game when a single player is left.
func (e *GameEngine) finishPlayer(p *Player, reason string) {
	p.HasFinished = true
	e.finishOrder = append(e.finishOrder, p.ID)
	e.movable = nil
	e.message = fmt.Sprintf(e.messages.PlayerWon, p.Name, reason)
	e.record(HistoryEntry{Kind: KindFinish, PlayerID: p.ID, Dice: e.diceValue, TokenID: -1, Detail: reason})

	remaining := e.unfinished()
	if len(remaining) > 1 {
		e.state = PlayerFinished
		return
	}
	if len(remaining) == 1 {
		last := remaining[0]
		e.finishOrder = append(e.finishOrder, last.ID)
		e.message += " " + fmt.Sprintf(e.messages.LastPlayer, last.Name)
	}
	e.endGame()
}

// advanceTurn moves to the next unfinished player and restarts the streaks.
func (e *GameEngine) advanceTurn() {
	e.consecutiveOnes = 0
	e.consecutiveSixes = 0
	e.skipManualSelection = false
	e.movable = nil

	if len(e.unfinished()) <= 1 {
		e.endGame()
		return
	}
	for {
		e.current = (e.current + 1) % len(e.players)
		if !e.players[e.current].HasFinished {
			break
		}
	}
	e.state = AwaitingRoll
	e.record(HistoryEntry{Kind: KindTurn, PlayerID: e.current, TokenID: -1})
}

func (e *GameEngine) endGame() {
	if e.state == GameOver {
		return
	}
	e.state = GameOver
	e.movable = nil
	e.message = strings.TrimSpace(e.message + " " + e.messages.GameOver)
	e.record(HistoryEntry{Kind: KindGameOver, PlayerID: e.current, TokenID: -1})
}

func (e *GameEngine) unfinished() []*Player {
	var out []*Player
	for _, p := range e.players {
		if !p.HasFinished {
			out = append(out, p)
		}
	}
	return out
}

func (e *GameEngine) record(entry HistoryEntry) {
	e.seq++
	entry.Seq = e.seq
	e.history = append(e.history, entry)
}

// grantsExtraRoll reports whether a face keeps the turn with the same player.
func grantsExtraRoll(value int) bool {
	return value == 1 || value == DiceSides
}
