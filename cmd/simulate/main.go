// Command simulate plays headless Ludo games against the rules engine and
// prints aggregate statistics: game length, wins by seat, captures, streak
// penalties and auto-entries. It is useful for sanity-checking rule changes
// and presets without a server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/ludo/game/config"
	"github.com/wricardo/mcp-training/ludo/game/engine"
	"github.com/wricardo/mcp-training/ludo/internal/logging"
)

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "Play headless Ludo games and report statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: 100, Usage: "Number of games to play"},
			&cli.IntFlag{Name: "players", Aliases: []string{"p"}, Usage: "Player count (overrides the preset)"},
			&cli.StringFlag{Name: "preset", Usage: "Preset to load from --config-dir (default: built-in classic)"},
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
			&cli.StringFlag{Name: "strategy", Aliases: []string{"s"}, Value: "greedy", Usage: "random, first or greedy"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "Base seed; game i uses seed+i"},
			&cli.IntFlag{Name: "max-actions", Value: 20000, Usage: "Abort a game after this many engine actions"},
			&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON"},
			&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "debug, info, warn or error", Sources: cli.EnvVars("LOG_LEVEL")},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger, err := logging.New(cmd.String("log-level"), "console")
	if err != nil {
		return err
	}
	defer logger.Sync()

	preset, err := loadPreset(cmd.String("config-dir"), cmd.String("preset"), logger)
	if err != nil {
		return err
	}
	if n := cmd.Int("players"); n != 0 {
		if err := engine.ValidatePlayerCount(n); err != nil {
			return err
		}
		preset.PlayerCount = n
		preset.PlayerNames = nil
	}

	strategy, err := newStrategy(cmd.String("strategy"), cmd.Uint64("seed"))
	if err != nil {
		return err
	}

	sim := &Simulator{
		Preset:     preset,
		Strategy:   strategy,
		Seed:       cmd.Uint64("seed"),
		MaxActions: cmd.Int("max-actions"),
		Logger:     logger,
	}

	report, err := sim.Run(ctx, cmd.Int("games"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	report.Print(os.Stdout)
	return nil
}

func loadPreset(dir, name string, logger *zap.Logger) (*engine.GameConfig, error) {
	if name == "" {
		return engine.DefaultGameConfig(), nil
	}
	manager, err := config.NewManager(dir, config.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	preset, err := manager.LoadConfig(name)
	if err != nil {
		return nil, err
	}
	clone := *preset
	return &clone, nil
}
