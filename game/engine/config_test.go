package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGameConfig(t *testing.T) {
	cfg := DefaultGameConfig()
	require.NoError(t, ValidateGameConfig(cfg))
	assert.Equal(t, "classic", cfg.Name)
	assert.Equal(t, MaxPlayers, cfg.PlayerCount)
	assert.Equal(t, DefaultMessages(), cfg.Messages)
}

func TestValidateGameConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr bool
	}{
		{"valid", func(*GameConfig) {}, false},
		{"blank name", func(c *GameConfig) { c.Name = "  " }, true},
		{"too few players", func(c *GameConfig) { c.PlayerCount = 1 }, true},
		{"too many players", func(c *GameConfig) { c.PlayerCount = 5 }, true},
		{"too many names", func(c *GameConfig) {
			c.PlayerCount = 2
			c.PlayerNames = []string{"a", "b", "c"}
		}, true},
		{"player_won missing reason verb", func(c *GameConfig) { c.Messages.PlayerWon = "%s won" }, true},
		{"last_player without verb", func(c *GameConfig) { c.Messages.LastPlayer = "last one" }, true},
		{"blank messages fall back", func(c *GameConfig) { c.Messages = Messages{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.mutate(cfg)
			err := ValidateGameConfig(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.ErrorIs(t, ValidateGameConfig(nil), ErrInvalidConfig)
}

func TestValidateGameConfigWrapsPlayerCount(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.PlayerCount = 7
	err := ValidateGameConfig(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)
}

func TestMessagesWithDefaults(t *testing.T) {
	m := Messages{Welcome: "Hi"}.WithDefaults()
	assert.Equal(t, "Hi", m.Welcome)
	assert.Equal(t, DefaultMessages().GameOver, m.GameOver)
	assert.Equal(t, DefaultMessages().PlayerWon, m.PlayerWon)
}

func TestPlayerNames(t *testing.T) {
	names := playerNames(3, []string{"Ana", " ", "Bo", "extra"})
	assert.Equal(t, []string{"Ana", "Player 2", "Bo"}, names)
	assert.Equal(t, []string{"Player 1", "Player 2"}, playerNames(2, nil))
}
