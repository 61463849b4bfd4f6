// Command validate checks the game presets in a config directory. For every
// .json, .yaml or .yml file it checks:
//   - the file parses and decodes into a preset
//   - name, player count and player names are consistent
//   - message templates keep their %s verbs and format cleanly
//   - the preset seats its players and accepts a first roll
//
// It also warns about presets shadowed by another file with the same id.
// The command exits with non-zero status if any preset is invalid.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/ludo/game/config"
	"github.com/wricardo/mcp-training/ludo/game/engine"
	"github.com/wricardo/mcp-training/ludo/internal/logging"
)

var presetExtensions = []string{".json", ".yaml", ".yml"}

// ValidationResult captures the outcome of validating a single file.
// Info holds the checks that passed.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// presetFiles lists the preset files of dir in name order.
func presetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(presetExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		files = append(files, entry.Name())
	}
	slices.Sort(files)
	return files, nil
}

// presetID strips the extension from a preset file name.
func presetID(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

// resolvedFile returns the file the config manager reads for id, which is
// the first existing extension in lookup order.
func resolvedFile(files []string, id string) string {
	for _, ext := range presetExtensions {
		if slices.Contains(files, id+ext) {
			return id + ext
		}
	}
	return ""
}

// validateDir validates every preset file in dir.
func validateDir(dir string, logger *zap.Logger) ([]ValidationResult, error) {
	files, err := presetFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	manager, err := config.NewManager(dir, config.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, validatePreset(manager, files, file))
	}
	return results, nil
}

func validatePreset(manager *config.Manager, files []string, file string) ValidationResult {
	result := ValidationResult{File: file, Valid: true}
	id := presetID(file)

	if winner := resolvedFile(files, id); winner != file {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Shadowed by %s; config_id %q never loads this file", winner, id))
		return result
	}

	preset, err := manager.LoadConfig(id)
	if err != nil {
		result.fail("%v", err)
		return result
	}
	result.Info = append(result.Info,
		fmt.Sprintf("✓ %q: %d players", preset.Name, preset.PlayerCount))

	if preset.Name != id {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Name %q differs from config_id %q", preset.Name, id))
	}
	if strings.TrimSpace(preset.Description) == "" {
		result.Warnings = append(result.Warnings, "Description is empty")
	}

	seen := map[string]bool{}
	for _, name := range preset.PlayerNames {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if seen[key] {
			result.fail("Duplicate player name %q", name)
		}
		seen[key] = true
	}

	checkMessages(&result, preset.Messages)
	if result.Valid {
		smokeTest(&result, preset)
	}
	return result
}

// checkMessages renders the templates with sample values and rejects any
// output carrying a formatting error.
func checkMessages(result *ValidationResult, m engine.Messages) {
	rendered := map[string]string{
		"player_won":  fmt.Sprintf(m.PlayerWon, "Green", m.AllHomeReason),
		"last_player": fmt.Sprintf(m.LastPlayer, "Red"),
	}
	for key, text := range rendered {
		if strings.Contains(text, "%!") {
			result.fail("Message %s does not format cleanly: %q", key, text)
		}
	}

	plain := map[string]string{
		"welcome":     m.Welcome,
		"three_ones":  m.ThreeOnes,
		"three_sixes": m.ThreeSixes,
		"token_home":  m.TokenHome,
		"game_over":   m.GameOver,
	}
	for key, text := range plain {
		if strings.Contains(text, "%") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Message %s contains %% but is shown verbatim", key))
		}
	}
}

// smokeTest seats the players and rolls once.
func smokeTest(result *ValidationResult, preset *engine.GameConfig) {
	e, err := engine.NewEngine(preset, engine.NewScriptedDice(1))
	if err != nil {
		result.fail("Engine rejected preset: %v", err)
		return
	}
	e.Start()

	players := e.Players()
	if len(players) != preset.PlayerCount {
		result.fail("Expected %d seated players, got %d", preset.PlayerCount, len(players))
		return
	}
	if !e.RollDice() || e.State() != engine.SelectToken {
		result.fail("First roll of 1 did not offer a token to enter")
		return
	}

	colors := make([]string, len(players))
	for i, p := range players {
		colors[i] = fmt.Sprintf("%s=%s", p.Name, p.Color)
	}
	result.Info = append(result.Info, "✓ Seats: "+strings.Join(colors, ", "))
}

// printResults writes a report and reports whether every preset is valid.
func printResults(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate Ludo game presets",
		ArgsUsage: "[config-dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-dir", Value: "configs", Usage: "Directory containing game presets", Sources: cli.EnvVars("CONFIG_DIR")},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("config-dir")
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}

			logger, err := logging.New("warn", "console")
			if err != nil {
				return err
			}
			defer logger.Sync()

			results, err := validateDir(dir, logger)
			if err != nil {
				return err
			}
			if !printResults(os.Stdout, results) {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "validate: %v\n", err)
		os.Exit(1)
	}
}
