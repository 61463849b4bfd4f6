// Package config provides preset management for Ludo games.
//
// The config package handles:
//   - Loading game presets from JSON or YAML files
//   - Preset validation
//   - Default preset selection
//   - Preset discovery and listing
//
// Preset Format:
//
// Presets live as <name>.json, <name>.yaml or <name>.yml in the configs
// directory and are decoded through viper, so both formats use the same
// snake_case keys. Each preset defines:
//   - The player count (2 to 4) and optional player names
//   - An optional dice seed for reproducible games
//   - Overrides for the advisory messages
//
// Usage:
//
//	manager, err := config.NewManager("configs", config.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	duel, err := manager.LoadConfig("duel")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
