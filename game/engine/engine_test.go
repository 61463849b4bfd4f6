package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEngine starts a game with scripted dice.
func newTestEngine(t *testing.T, players int, faces ...int) (*GameEngine, *ScriptedDice) {
	t.Helper()
	dice := NewScriptedDice(faces...)
	cfg := DefaultGameConfig()
	cfg.PlayerCount = players
	e, err := NewEngine(cfg, dice)
	require.NoError(t, err)
	e.Start()
	return e, dice
}

// place puts a token on a logical position, keeping occupancy consistent.
func place(e *GameEngine, playerID, tokenID, pos int) {
	t := &e.players[playerID].Tokens[tokenID]
	ref := TokenRef{PlayerID: playerID, TokenID: tokenID}
	if t.OnTrack() {
		e.vacate(t.Position, ref)
	}
	t.Position = pos
	t.IsHome = pos == FinalSlot
	if pos >= 0 && pos < TrackSize {
		e.board.setOccupant(pos, ref)
	}
}

func countKind(e *GameEngine, kind HistoryKind) int {
	n := 0
	for _, k := range historyKinds(e) {
		if k == kind {
			n++
		}
	}
	return n
}

func historyKinds(e *GameEngine) []HistoryKind {
	var kinds []HistoryKind
	for _, h := range e.GetHistory() {
		kinds = append(kinds, h.Kind)
	}
	return kinds
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine(DefaultGameConfig(), nil)
	require.NoError(t, err)
	assert.False(t, e.Started())
	assert.False(t, e.RollDice(), "rolling before start is ignored")

	e.Start()
	assert.True(t, e.Started())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.Equal(t, DefaultMessages().Welcome, e.Message())
	require.Len(t, e.Players(), 4)
	for _, p := range e.Players() {
		for _, tok := range p.Tokens {
			assert.Equal(t, BasePosition, tok.Position)
			assert.False(t, tok.IsHome)
		}
	}

	_, err = NewEngine(&GameConfig{Name: "bad", PlayerCount: 9}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigure(t *testing.T) {
	e := NewEngineWithDefaults()
	assert.ErrorIs(t, e.Configure(1, nil), ErrInvalidPlayerCount)
	assert.ErrorIs(t, e.Configure(5, nil), ErrInvalidPlayerCount)

	require.NoError(t, e.Configure(2, []string{"Ana", "Bo", "ignored"}))
	e.Start()

	players := e.Players()
	require.Len(t, players, 2)
	assert.Equal(t, "Ana", players[0].Name)
	assert.Equal(t, Green, players[0].Color)
	assert.Equal(t, "Bo", players[1].Name)
	assert.Equal(t, Blue, players[1].Color)
	assert.Equal(t, 2, players[1].Slot)

	start, err := e.Board().StartPosition(1)
	require.NoError(t, err)
	assert.Equal(t, 26, start)
}

func TestRollWithoutMovableTokensPassesTurn(t *testing.T) {
	e, _ := newTestEngine(t, 4, 3)

	require.True(t, e.RollDice())
	assert.Equal(t, 3, e.DiceValue())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 1, e.CurrentPlayerIndex())
	assert.Empty(t, e.MovableTokens())
}

func TestSixWithAllTokensInBaseRollsAgain(t *testing.T) {
	e, _ := newTestEngine(t, 4, 6)

	require.True(t, e.RollDice())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.Equal(t, 1, e.ConsecutiveSixes())
}

func TestEnterTokenOnOne(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1, 1)

	require.True(t, e.RollDice())
	assert.Equal(t, SelectToken, e.State())
	assert.Equal(t, []int{0, 1, 2, 3}, e.MovableTokens())

	require.True(t, e.SelectToken(2))
	p, _ := e.CurrentPlayer()
	assert.Equal(t, 0, p.Tokens[2].Position)
	assert.Equal(t, AwaitingRoll, e.State(), "a 1 grants another roll")
	assert.Equal(t, 0, e.CurrentPlayerIndex())

	occ, ok := e.Board().Occupant(0)
	require.True(t, ok)
	assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 2}, occ)

	// entering a second token stacks on the start cell
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	p, _ = e.CurrentPlayer()
	assert.Equal(t, 0, p.Tokens[0].Position)
	assert.Equal(t, 0, p.Tokens[2].Position)
	assert.Contains(t, historyKinds(e), KindEnter)
}

func TestIllegalCallsAreIgnored(t *testing.T) {
	e, _ := newTestEngine(t, 4, 2, 2)

	assert.False(t, e.SelectToken(0), "select while awaiting roll")
	assert.False(t, e.AcknowledgeFinish())

	place(e, 0, 0, 10)
	require.True(t, e.RollDice())
	require.Equal(t, SelectToken, e.State())
	assert.False(t, e.RollDice(), "roll while selecting")
	assert.False(t, e.SelectToken(1), "token in base is not movable on a 2")
	assert.False(t, e.SelectToken(7))
	assert.Equal(t, SelectToken, e.State())

	require.True(t, e.SelectToken(0))
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestCrossingIntoHomeStretch(t *testing.T) {
	e, _ := newTestEngine(t, 4, 5)
	place(e, 0, 0, 48)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))

	p := e.Players()[0]
	assert.Equal(t, 54, p.Tokens[0].Position)
	loc, err := e.TokenLocation(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Location{Zone: ZoneHomeStretch, Index: 2}, loc)
	_, ok := e.Board().Occupant(48)
	assert.False(t, ok)
}

func TestHomeStretchRequiresExactRoll(t *testing.T) {
	e, _ := newTestEngine(t, 4, 3, 2, 2)
	place(e, 0, 0, 55)

	require.True(t, e.RollDice())
	assert.Empty(t, e.MovableTokens(), "55+3 overshoots home")
	assert.Equal(t, 1, e.CurrentPlayerIndex())

	e.NextTurn()
	e.NextTurn()
	e.NextTurn()
	require.Equal(t, 0, e.CurrentPlayerIndex())

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	p := e.Players()[0]
	assert.True(t, p.Tokens[0].IsHome)
	assert.Equal(t, FinalSlot, p.Tokens[0].Position)
	assert.Equal(t, DefaultMessages().TokenHome, e.Message())
	assert.Contains(t, historyKinds(e), KindHome)
}

func TestCaptureSendsOpponentToBase(t *testing.T) {
	e, _ := newTestEngine(t, 4, 2)
	place(e, 0, 0, 3)
	place(e, 1, 2, 5)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))

	players := e.Players()
	assert.Equal(t, 5, players[0].Tokens[0].Position)
	assert.Equal(t, BasePosition, players[1].Tokens[2].Position)
	occ, ok := e.Board().Occupant(5)
	require.True(t, ok)
	assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 0}, occ)
	assert.Contains(t, historyKinds(e), KindCapture)
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestCaptureTakesWholeStack(t *testing.T) {
	e, _ := newTestEngine(t, 4, 2)
	place(e, 0, 0, 3)
	place(e, 1, 0, 5)
	place(e, 1, 1, 5)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))

	players := e.Players()
	assert.Equal(t, BasePosition, players[1].Tokens[0].Position)
	assert.Equal(t, BasePosition, players[1].Tokens[1].Position)
}

func TestNoCaptureOnSafeCell(t *testing.T) {
	tests := []struct {
		name      string
		cell      int
		from      int
		dice      int
		occupants []TokenRef
	}{
		{"entering own start", 0, BasePosition, 1, []TokenRef{{PlayerID: 2, TokenID: 0}}},
		{"star 8", 8, 5, 3, []TokenRef{{PlayerID: 1, TokenID: 0}}},
		{"start of player 2 with its stack", 13, 10, 3, []TokenRef{{PlayerID: 1, TokenID: 0}, {PlayerID: 1, TokenID: 1}}},
		{"star 21 mixed stack", 21, 18, 3, []TokenRef{{PlayerID: 1, TokenID: 0}, {PlayerID: 3, TokenID: 2}}},
		{"start of player 3", 26, 23, 3, []TokenRef{{PlayerID: 2, TokenID: 0}}},
		{"star 34 mixed stack", 34, 31, 3, []TokenRef{{PlayerID: 2, TokenID: 1}, {PlayerID: 3, TokenID: 0}}},
		{"start of player 4 mixed stack", 39, 36, 3, []TokenRef{{PlayerID: 3, TokenID: 0}, {PlayerID: 1, TokenID: 3}}},
		{"star 47", 47, 44, 3, []TokenRef{{PlayerID: 2, TokenID: 2}}},
	}

	var covered []int
	for _, tt := range tests {
		covered = append(covered, tt.cell)
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, IsSafe(tt.cell))
			e, _ := newTestEngine(t, 4, tt.dice)
			if tt.from != BasePosition {
				place(e, 0, 0, tt.from)
			}
			for _, occ := range tt.occupants {
				place(e, occ.PlayerID, occ.TokenID, tt.cell)
			}

			require.True(t, e.RollDice())
			require.Contains(t, e.MovableTokens(), 0)
			require.True(t, e.SelectToken(0))

			players := e.Players()
			assert.Equal(t, tt.cell, players[0].Tokens[0].Position)
			for _, occ := range tt.occupants {
				assert.Equal(t, tt.cell, players[occ.PlayerID].Tokens[occ.TokenID].Position,
					"player %d token %d", occ.PlayerID, occ.TokenID)
			}
			assert.NotContains(t, historyKinds(e), KindCapture)
			occ, ok := e.Board().Occupant(tt.cell)
			require.True(t, ok)
			assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 0}, occ)
		})
	}
	assert.ElementsMatch(t, SafeCells[:], covered)
}

func TestLeavingMixedStarStackToCapture(t *testing.T) {
	e, _ := newTestEngine(t, 4, 3)
	place(e, 1, 0, 21)
	place(e, 0, 0, 21)
	place(e, 3, 2, 24)
	place(e, 3, 3, 24)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))

	players := e.Players()
	assert.Equal(t, 24, players[0].Tokens[0].Position)
	assert.Equal(t, BasePosition, players[3].Tokens[2].Position)
	assert.Equal(t, BasePosition, players[3].Tokens[3].Position)
	assert.Equal(t, 21, players[1].Tokens[0].Position)

	occ, ok := e.Board().Occupant(21)
	require.True(t, ok, "the opponent stays on the star")
	assert.Equal(t, TokenRef{PlayerID: 1, TokenID: 0}, occ)
	occ, ok = e.Board().Occupant(24)
	require.True(t, ok)
	assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 0}, occ)
}

func TestLeavingSharedCellKeepsOccupant(t *testing.T) {
	e, _ := newTestEngine(t, 4, 2)
	place(e, 0, 0, 4)
	place(e, 0, 1, 4)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(1))

	occ, ok := e.Board().Occupant(4)
	require.True(t, ok, "token 0 still sits on cell 4")
	assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 0}, occ)
	occ, ok = e.Board().Occupant(6)
	require.True(t, ok)
	assert.Equal(t, TokenRef{PlayerID: 0, TokenID: 1}, occ)
}

func TestThreeOnesSendsFarthestTokenBack(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1, 1, 1)
	place(e, 0, 0, 10)
	place(e, 0, 1, 30)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())

	p := e.Players()[0]
	assert.Equal(t, 12, p.Tokens[0].Position)
	assert.Equal(t, BasePosition, p.Tokens[1].Position)
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.True(t, e.SkipManualSelection())
	assert.Equal(t, DefaultMessages().ThreeOnes, e.Message())
	_, ok := e.Board().Occupant(30)
	assert.False(t, ok)
}

func TestThreeOnesFarthestUsesProgress(t *testing.T) {
	e, _ := newTestEngine(t, 4)
	place(e, 1, 0, 20)
	place(e, 1, 1, 5)

	e.sendBackFarthest(e.players[1])

	p := e.Players()[1]
	assert.Equal(t, 20, p.Tokens[0].Position)
	assert.Equal(t, BasePosition, p.Tokens[1].Position, "cell 5 is 44 cells from red's start")
}

func TestThreeOnesWithoutRingToken(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1)
	e.consecutiveOnes = 2

	require.True(t, e.RollDice())
	assert.Equal(t, DefaultMessages().ThreeOnesNoToken, e.Message())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.Empty(t, e.MovableTokens())
}

func TestSevenOnesWinsTheGame(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1)
	e.consecutiveOnes = 6

	require.True(t, e.RollDice())
	assert.Equal(t, PlayerFinished, e.State())
	assert.Equal(t, []int{0}, e.FinishOrder())
	assert.Contains(t, e.Message(), "with 7 consecutive 1s")
	winner, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, 0, winner)

	require.True(t, e.AcknowledgeFinish())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestSevenRolledOnesKeepCountingAfterPenalty(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1, 1, 1, 1, 1, 1, 1)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	assert.Equal(t, 2, e.ConsecutiveOnes())

	require.True(t, e.RollDice())
	assert.Equal(t, 3, e.ConsecutiveOnes())
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, DefaultMessages().ThreeOnes, e.Message())
	assert.Equal(t, BasePosition, e.Players()[0].Tokens[0].Position)

	require.True(t, e.RollDice())
	assert.Equal(t, 4, e.ConsecutiveOnes())
	require.True(t, e.SelectToken(0))
	for n := 5; n <= 6; n++ {
		require.True(t, e.RollDice())
		assert.Equal(t, n, e.ConsecutiveOnes())
		require.True(t, e.SelectToken(0))
	}
	assert.Equal(t, 0, e.CurrentPlayerIndex())

	require.True(t, e.RollDice())
	assert.Equal(t, 7, e.ConsecutiveOnes())
	assert.Equal(t, PlayerFinished, e.State())
	winner, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, 0, winner)
	assert.Equal(t, []int{0}, e.FinishOrder())
	assert.Contains(t, e.Message(), "with 7 consecutive 1s")
	assert.Equal(t, 1, countKind(e, KindPenalty))
}

func TestSevenOnesInTwoPlayerGameEndsIt(t *testing.T) {
	e, _ := newTestEngine(t, 2, 1)
	e.consecutiveOnes = 6

	require.True(t, e.RollDice())
	assert.Equal(t, GameOver, e.State())
	assert.Equal(t, []int{0, 1}, e.FinishOrder())
	assert.Contains(t, e.Message(), "Player 2 is the last player remaining.")
	assert.Contains(t, e.Message(), "Game Over!")
	assert.False(t, e.RollDice())
}

func TestThreeSixesAutoEnter(t *testing.T) {
	e, _ := newTestEngine(t, 4, 6, 6, 6)

	for i := 0; i < 3; i++ {
		require.True(t, e.RollDice())
	}

	p := e.Players()[0]
	assert.Equal(t, 0, p.Tokens[0].Position)
	for _, tok := range p.Tokens[1:] {
		assert.Equal(t, BasePosition, tok.Position)
	}
	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.True(t, e.SkipManualSelection())
	assert.Equal(t, DefaultMessages().ThreeSixes, e.Message())
	assert.Contains(t, historyKinds(e), KindAutoEnter)
}

func TestAutoEnterOntoOccupiedStartCell(t *testing.T) {
	e, _ := newTestEngine(t, 2, 6)
	e.consecutiveSixes = 2
	e.current = 1
	place(e, 0, 0, 26)

	require.True(t, e.RollDice())

	assert.Equal(t, 26, e.Players()[1].Tokens[0].Position)
	assert.Equal(t, 26, e.Players()[0].Tokens[0].Position, "start cells are safe")
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestThreeSixesWithMovableTokenRequiresSelection(t *testing.T) {
	e, _ := newTestEngine(t, 4, 6, 6, 6)
	place(e, 0, 0, 5)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())

	assert.Equal(t, 3, e.ConsecutiveSixes())
	assert.Equal(t, SelectToken, e.State())
	assert.Equal(t, []int{0}, e.MovableTokens())
	assert.False(t, e.SkipManualSelection())
}

func TestStreaksResetOnOtherFaces(t *testing.T) {
	e, _ := newTestEngine(t, 4, 6, 1, 4)
	place(e, 0, 0, 5)

	require.True(t, e.RollDice())
	assert.Equal(t, 1, e.ConsecutiveSixes())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	assert.Equal(t, 0, e.ConsecutiveSixes())
	assert.Equal(t, 1, e.ConsecutiveOnes())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	assert.Equal(t, 0, e.ConsecutiveOnes())
}

func TestFinishingAllTokens(t *testing.T) {
	e, _ := newTestEngine(t, 4, 1)
	place(e, 0, 0, FinalSlot)
	place(e, 0, 1, FinalSlot)
	place(e, 0, 2, FinalSlot)
	place(e, 0, 3, 56)

	require.True(t, e.RollDice())
	assert.Equal(t, []int{3}, e.MovableTokens())
	require.True(t, e.SelectToken(3))

	assert.Equal(t, PlayerFinished, e.State())
	assert.Equal(t, "Player 1 has won the game by getting all tokens home!", e.Message())
	assert.Equal(t, []int{0}, e.FinishOrder())
	assert.True(t, e.Players()[0].HasFinished)

	require.True(t, e.AcknowledgeFinish())
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestTurnOrderSkipsFinishedPlayers(t *testing.T) {
	e, _ := newTestEngine(t, 4, 3)
	e.players[0].HasFinished = true
	e.finishOrder = []int{0}
	e.current = 3

	require.True(t, e.RollDice())
	assert.Equal(t, 1, e.CurrentPlayerIndex())
}

func TestLastPlayerEndsGame(t *testing.T) {
	e, _ := newTestEngine(t, 3, 2)
	e.players[0].HasFinished = true
	e.finishOrder = []int{0}
	e.current = 1
	for i := 0; i < 3; i++ {
		place(e, 1, i, FinalSlot)
	}
	place(e, 1, 3, 55)

	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(3))

	assert.Equal(t, GameOver, e.State())
	assert.Equal(t, []int{0, 1, 2}, e.FinishOrder())
	winner, ok := e.Winner()
	require.True(t, ok)
	assert.Equal(t, 0, winner)

	gs := e.GetState()
	require.NotNil(t, gs.Winner)
	assert.Equal(t, 0, *gs.Winner)
	assert.Equal(t, "game_over", gs.State)

	e.NextTurn()
	assert.Equal(t, GameOver, e.State())
	assert.Equal(t, KindGameOver, e.GetHistory()[len(e.GetHistory())-1].Kind)
}

func TestNextTurnEndsGameWhenOnePlayerLeft(t *testing.T) {
	e, _ := newTestEngine(t, 3)
	e.players[0].HasFinished = true
	e.players[1].HasFinished = true

	e.NextTurn()
	assert.Equal(t, GameOver, e.State())
}

func TestResetKeepsPlayers(t *testing.T) {
	e, _ := newTestEngine(t, 3, 1)
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	e.ClearMessage()
	assert.Empty(t, e.Message())

	e.Reset()

	assert.Equal(t, AwaitingRoll, e.State())
	assert.Equal(t, 0, e.CurrentPlayerIndex())
	assert.Equal(t, 0, e.DiceValue())
	assert.Empty(t, e.FinishOrder())
	assert.Empty(t, e.Board().Occupancy())
	assert.Equal(t, DefaultMessages().Welcome, e.Message())
	require.Len(t, e.Players(), 3)
	for _, p := range e.Players() {
		for _, tok := range p.Tokens {
			assert.Equal(t, BasePosition, tok.Position)
		}
	}
	assert.Equal(t, KindReset, e.GetHistory()[len(e.GetHistory())-1].Kind)
}

func TestGetStateIsDetached(t *testing.T) {
	e, _ := newTestEngine(t, 2, 1)
	require.True(t, e.RollDice())

	gs := e.GetState()
	assert.Equal(t, "select_token", gs.State)
	assert.Equal(t, 2, gs.PlayerCount)
	assert.Equal(t, []int{0, 1, 2, 3}, gs.MovableTokens)
	assert.Nil(t, gs.Winner)

	gs.Players[0].Tokens[0].Position = 30
	gs.MovableTokens[0] = 3
	assert.Equal(t, BasePosition, e.Players()[0].Tokens[0].Position)
	assert.Equal(t, []int{0, 1, 2, 3}, e.MovableTokens())
}

func TestTokenLocationValidation(t *testing.T) {
	e, _ := newTestEngine(t, 2)

	_, err := e.TokenLocation(4, 0)
	assert.ErrorIs(t, err, ErrInvalidPlayer)
	_, err = e.TokenLocation(2, 0)
	assert.ErrorIs(t, err, ErrInvalidPlayer, "slot exists but player is not seated")
	_, err = e.TokenLocation(0, 4)
	assert.ErrorIs(t, err, ErrInvalidToken)

	loc, err := e.TokenLocation(1, 0)
	require.NoError(t, err)
	assert.Equal(t, ZoneBase, loc.Zone)
}

func TestHistorySequence(t *testing.T) {
	e, _ := newTestEngine(t, 2, 1, 4)
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))
	require.True(t, e.RollDice())
	require.True(t, e.SelectToken(0))

	history := e.GetHistory()
	for i, h := range history {
		assert.Equal(t, i+1, h.Seq)
	}
	assert.Equal(t, []HistoryKind{KindReset, KindRoll, KindEnter, KindRoll, KindMove, KindTurn}, historyKinds(e))
	assert.Equal(t, len(history), e.GetState().TotalActions)
}
