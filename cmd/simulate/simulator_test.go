package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/mcp-training/ludo/game/engine"
)

func duelPreset() *engine.GameConfig {
	cfg := engine.DefaultGameConfig()
	cfg.PlayerCount = 2
	return cfg
}

func TestSimulator_SevenOnesEndsDuel(t *testing.T) {
	sim := &Simulator{
		Preset:   duelPreset(),
		Strategy: FirstStrategy{},
		Logger:   zaptest.NewLogger(t),
		Dice:     func(int) engine.Dice { return engine.NewScriptedDice(1) },
	}

	result, err := sim.Play(0)
	require.NoError(t, err)

	assert.True(t, result.Completed)
	assert.Equal(t, 0, result.Winner)
	assert.Equal(t, []int{0, 1}, result.FinishOrder)
	assert.Equal(t, 7, result.Rolls)
	assert.Equal(t, 1, result.Penalties)
	assert.Equal(t, 1, result.SevenOnes)
}

func TestSimulator_AbortsAtActionLimit(t *testing.T) {
	sim := &Simulator{
		Preset:     duelPreset(),
		Strategy:   FirstStrategy{},
		MaxActions: 5,
		Dice:       func(int) engine.Dice { return engine.NewScriptedDice(3) },
	}

	result, err := sim.Play(0)
	require.NoError(t, err)
	assert.False(t, result.Completed)
	assert.Equal(t, -1, result.Winner)
	assert.Equal(t, 5, result.Actions)
}

func TestSimulator_RunRandomGames(t *testing.T) {
	for _, name := range []string{"random", "first", "greedy"} {
		t.Run(name, func(t *testing.T) {
			strategy, err := newStrategy(name, 7)
			require.NoError(t, err)

			sim := &Simulator{Preset: engine.DefaultGameConfig(), Strategy: strategy, Seed: 42}
			report, err := sim.Run(context.Background(), 5)
			require.NoError(t, err)

			assert.Equal(t, 5, report.Games)
			assert.Equal(t, 5, report.Completed+report.Aborted)
			assert.Len(t, report.WinsBySeat, 4)

			wins := 0
			for _, w := range report.WinsBySeat {
				wins += w
			}
			assert.Equal(t, report.Completed, wins)

			var out bytes.Buffer
			report.Print(&out)
			assert.Contains(t, out.String(), "strategy "+name)
		})
	}
}

func TestSimulator_RunValidation(t *testing.T) {
	sim := &Simulator{Preset: duelPreset(), Strategy: FirstStrategy{}}

	_, err := sim.Run(context.Background(), 0)
	assert.ErrorIs(t, err, engine.ErrInvalidArgument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sim.Run(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStrategy_Unknown(t *testing.T) {
	_, err := newStrategy("clever", 1)
	assert.Error(t, err)
}

func TestGreedyStrategy_PrefersEnteringOverShortMove(t *testing.T) {
	e, err := engine.NewEngine(duelPreset(), engine.NewScriptedDice(1, 1))
	require.NoError(t, err)
	e.Start()

	require.True(t, e.RollDice())
	greedy := GreedyStrategy{}
	assert.Equal(t, 0, greedy.Choose(e))
	require.True(t, e.SelectToken(0))

	require.True(t, e.RollDice())
	require.Equal(t, []int{0, 1, 2, 3}, e.MovableTokens())
	assert.Equal(t, 1, greedy.Choose(e))
}
