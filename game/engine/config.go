package engine

import (
	"fmt"
	"strings"
)

// Messages holds the advisory texts shown after notable events.
type Messages struct {
	Welcome          string `json:"welcome" mapstructure:"welcome"`
	ThreeOnes        string `json:"three_ones" mapstructure:"three_ones"`
	ThreeOnesNoToken string `json:"three_ones_no_token" mapstructure:"three_ones_no_token"`
	SevenOnesReason  string `json:"seven_ones_reason" mapstructure:"seven_ones_reason"`
	ThreeSixes       string `json:"three_sixes" mapstructure:"three_sixes"`
	TokenHome        string `json:"token_home" mapstructure:"token_home"`
	AllHomeReason    string `json:"all_home_reason" mapstructure:"all_home_reason"`
	PlayerWon        string `json:"player_won" mapstructure:"player_won"`
	LastPlayer       string `json:"last_player" mapstructure:"last_player"`
	GameOver         string `json:"game_over" mapstructure:"game_over"`
}

// GameConfig describes a game preset.
type GameConfig struct {
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	PlayerCount int      `json:"player_count" mapstructure:"player_count"`
	PlayerNames []string `json:"player_names,omitempty" mapstructure:"player_names"`
	// Seed makes dice rolls reproducible; zero means random.
	Seed     uint64   `json:"seed,omitempty" mapstructure:"seed"`
	Messages Messages `json:"messages" mapstructure:"messages"`
}

// DefaultMessages returns the stock advisory texts.
func DefaultMessages() Messages {
	return Messages{
		Welcome:          "Roll the dice to begin.",
		ThreeOnes:        "Oops! Three consecutive 1s. Your farthest token returned to base.",
		ThreeOnesNoToken: "Three consecutive 1s, but no token to move back.",
		SevenOnesReason:  "with 7 consecutive 1s",
		ThreeSixes:       "Three consecutive 6s! A new token moved to the starting position.",
		TokenHome:        "Bravo, the token is home!",
		AllHomeReason:    "by getting all tokens home",
		PlayerWon:        "%s has won the game %s!",
		LastPlayer:       "%s is the last player remaining.",
		GameOver:         "Game Over!",
	}
}

// DefaultGameConfig returns the four-player preset used when nothing else is
// configured.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Four players, standard rules",
		PlayerCount: MaxPlayers,
		Messages:    DefaultMessages(),
	}
}

// WithDefaults fills blank message texts from DefaultMessages.
func (m Messages) WithDefaults() Messages {
	d := DefaultMessages()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.Welcome, d.Welcome)
	fill(&m.ThreeOnes, d.ThreeOnes)
	fill(&m.ThreeOnesNoToken, d.ThreeOnesNoToken)
	fill(&m.SevenOnesReason, d.SevenOnesReason)
	fill(&m.ThreeSixes, d.ThreeSixes)
	fill(&m.TokenHome, d.TokenHome)
	fill(&m.AllHomeReason, d.AllHomeReason)
	fill(&m.PlayerWon, d.PlayerWon)
	fill(&m.LastPlayer, d.LastPlayer)
	fill(&m.GameOver, d.GameOver)
	return m
}

// ValidatePlayerCount rejects counts outside 2..4.
func ValidatePlayerCount(count int) error {
	if count < MinPlayers || count > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, count)
	}
	return nil
}

// ValidateGameConfig validates a preset for correctness
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if err := ValidatePlayerCount(config.PlayerCount); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(config.PlayerNames) > config.PlayerCount {
		return fmt.Errorf("%w: %d player names given for %d players",
			ErrInvalidConfig, len(config.PlayerNames), config.PlayerCount)
	}

	// Format strings must keep their verbs
	if config.Messages.PlayerWon != "" && strings.Count(config.Messages.PlayerWon, "%s") != 2 {
		return fmt.Errorf("%w: messages.player_won must contain %%s twice (name, reason)", ErrInvalidConfig)
	}
	if config.Messages.LastPlayer != "" && strings.Count(config.Messages.LastPlayer, "%s") != 1 {
		return fmt.Errorf("%w: messages.last_player must contain %%s once for the name", ErrInvalidConfig)
	}

	return nil
}

// playerNames pads names with "Player N" defaults up to count.
func playerNames(count int, names []string) []string {
	out := make([]string, count)
	for i := range out {
		if i < len(names) && strings.TrimSpace(names[i]) != "" {
			out[i] = strings.TrimSpace(names[i])
			continue
		}
		out[i] = fmt.Sprintf("Player %d", i+1)
	}
	return out
}
