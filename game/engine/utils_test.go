package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingSteps(t *testing.T) {
	b, err := NewBoard(4)
	require.NoError(t, err)

	tests := []struct {
		position int
		player   int
		want     int
	}{
		{BasePosition, 0, 57},
		{0, 0, 56},
		{13, 1, 56},
		{50, 0, 6},
		{55, 2, 2},
		{FinalSlot, 3, 0},
	}
	for _, tt := range tests {
		got, err := RemainingSteps(b, tt.position, tt.player)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "position %d player %d", tt.position, tt.player)
	}

	// walking the reported distance lands exactly home
	got, err := b.NextPosition(50, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, FinalSlot, got)
}

func TestCountTokensInZone(t *testing.T) {
	p := Player{Tokens: [TokensPerPlayer]Token{
		{Position: BasePosition}, {Position: 5}, {Position: 53}, {Position: FinalSlot, IsHome: true},
	}}
	assert.Equal(t, 1, CountTokensInZone(p, ZoneBase))
	assert.Equal(t, 1, CountTokensInZone(p, ZoneTrack))
	assert.Equal(t, 1, CountTokensInZone(p, ZoneHomeStretch))
	assert.Equal(t, 1, CountTokensInZone(p, ZoneHome))
}

func TestThreatenedTokens(t *testing.T) {
	e, _ := newTestEngine(t, 4)
	place(e, 0, 0, 10)
	place(e, 0, 1, 8)
	place(e, 0, 2, 30)
	place(e, 1, 0, 6)

	assert.Equal(t, []int{0}, ThreatenedTokens(e.GetState(), 0))
	assert.Nil(t, ThreatenedTokens(e.GetState(), 9))
}

func TestDescribeTurn(t *testing.T) {
	e, _ := newTestEngine(t, 2, 1)
	assert.Equal(t, "Player 1 to roll", DescribeTurn(e.GetState()))

	require.True(t, e.RollDice())
	assert.Equal(t, "Player 1 must select a token", DescribeTurn(e.GetState()))

	assert.Equal(t, "Game not started", DescribeTurn(&GameState{}))
}
