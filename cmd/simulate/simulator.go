package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/ludo/game/engine"
)

// Simulator plays whole games with one strategy for every seat.
type Simulator struct {
	Preset     *engine.GameConfig
	Strategy   Strategy
	Seed       uint64
	MaxActions int
	Logger     *zap.Logger

	// Dice overrides the seeded random dice; used by tests.
	Dice func(game int) engine.Dice
}

// GameResult summarises one finished (or aborted) game.
type GameResult struct {
	Winner      int   `json:"winner"`
	FinishOrder []int `json:"finish_order"`
	Actions     int   `json:"actions"`
	Rolls       int   `json:"rolls"`
	Captures    int   `json:"captures"`
	Penalties   int   `json:"penalties"`
	AutoEnters  int   `json:"auto_enters"`
	SevenOnes   int   `json:"seven_ones"`
	Completed   bool  `json:"completed"`
}

// Report aggregates the results of a run.
type Report struct {
	Strategy    string  `json:"strategy"`
	Players     int     `json:"players"`
	Games       int     `json:"games"`
	Completed   int     `json:"completed"`
	Aborted     int     `json:"aborted"`
	WinsBySeat  []int   `json:"wins_by_seat"`
	AvgRolls    float64 `json:"avg_rolls"`
	MinRolls    int     `json:"min_rolls"`
	MaxRolls    int     `json:"max_rolls"`
	Captures    int     `json:"captures"`
	Penalties   int     `json:"penalties"`
	AutoEnters  int     `json:"auto_enters"`
	SevenOnes   int     `json:"seven_ones"`
	TotalRolls  int     `json:"total_rolls"`
	TotalAction int     `json:"total_actions"`
}

// Run plays games sequentially and stops early when ctx is cancelled.
func (s *Simulator) Run(ctx context.Context, games int) (*Report, error) {
	if games <= 0 {
		return nil, fmt.Errorf("%w: games must be positive, got %d", engine.ErrInvalidArgument, games)
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{
		Strategy:   s.Strategy.Name(),
		Players:    s.Preset.PlayerCount,
		WinsBySeat: make([]int, s.Preset.PlayerCount),
	}

	for i := range games {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result, err := s.Play(i)
		if err != nil {
			return report, fmt.Errorf("game %d: %w", i, err)
		}
		logger.Debug("game finished",
			zap.Int("game", i),
			zap.Int("winner", result.Winner),
			zap.Int("rolls", result.Rolls),
			zap.Bool("completed", result.Completed))

		report.add(result)
	}
	if report.Completed > 0 {
		report.AvgRolls = float64(report.TotalRolls) / float64(report.Completed)
	}
	return report, nil
}

// Play runs game number i to completion or until MaxActions engine calls.
func (s *Simulator) Play(i int) (*GameResult, error) {
	var dice engine.Dice
	if s.Dice != nil {
		dice = s.Dice(i)
	} else {
		dice = engine.NewRandomDice(s.Seed + uint64(i) + 1)
	}

	e, err := engine.NewEngine(s.Preset, dice)
	if err != nil {
		return nil, err
	}
	e.Start()

	result := &GameResult{Winner: -1}
	limit := s.MaxActions
	if limit <= 0 {
		limit = 20000
	}

	for result.Actions < limit && e.State() != engine.GameOver {
		result.Actions++
		switch e.State() {
		case engine.PlayerFinished:
			e.AcknowledgeFinish()
		case engine.SelectToken:
			e.SelectToken(s.Strategy.Choose(e))
		default:
			e.RollDice()
		}
	}

	result.Completed = e.State() == engine.GameOver
	if winner, ok := e.Winner(); ok {
		result.Winner = winner
	}
	result.FinishOrder = e.FinishOrder()

	sevenOnes := e.GetConfig().Messages.SevenOnesReason
	for _, h := range e.GetHistory() {
		switch h.Kind {
		case engine.KindRoll:
			result.Rolls++
		case engine.KindCapture:
			result.Captures++
		case engine.KindPenalty:
			result.Penalties++
		case engine.KindAutoEnter:
			result.AutoEnters++
		case engine.KindFinish:
			if h.Detail == sevenOnes {
				result.SevenOnes++
			}
		}
	}
	return result, nil
}

func (r *Report) add(g *GameResult) {
	r.Games++
	r.TotalAction += g.Actions
	r.Captures += g.Captures
	r.Penalties += g.Penalties
	r.AutoEnters += g.AutoEnters
	r.SevenOnes += g.SevenOnes

	if !g.Completed {
		r.Aborted++
		return
	}
	r.Completed++
	r.TotalRolls += g.Rolls
	if r.MinRolls == 0 || g.Rolls < r.MinRolls {
		r.MinRolls = g.Rolls
	}
	r.MaxRolls = max(r.MaxRolls, g.Rolls)
	if g.Winner >= 0 && g.Winner < len(r.WinsBySeat) {
		r.WinsBySeat[g.Winner]++
	}
}

// Print writes a human-readable summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "=== %d games, %d players, strategy %s ===\n", r.Games, r.Players, r.Strategy)
	fmt.Fprintf(w, "Completed: %d  Aborted: %d\n", r.Completed, r.Aborted)
	fmt.Fprintf(w, "Rolls per game: avg %.1f, min %d, max %d\n", r.AvgRolls, r.MinRolls, r.MaxRolls)

	seats := make([]string, len(r.WinsBySeat))
	for i, wins := range r.WinsBySeat {
		pct := 0.0
		if r.Completed > 0 {
			pct = 100 * float64(wins) / float64(r.Completed)
		}
		seats[i] = fmt.Sprintf("P%d %d (%.0f%%)", i+1, wins, pct)
	}
	fmt.Fprintf(w, "Wins by seat: %s\n", strings.Join(seats, ", "))
	fmt.Fprintf(w, "Captures: %d  Three-1s penalties: %d  Auto-entries: %d  Seven-1s finishes: %d\n",
		r.Captures, r.Penalties, r.AutoEnters, r.SevenOnes)
}
