package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/mcp-training/ludo/game/engine"
)

func createTestConfig() *engine.GameConfig {
	cfg := engine.DefaultGameConfig()
	cfg.Name = "Test Config"
	cfg.PlayerCount = 3
	return cfg
}

func TestManager_Create(t *testing.T) {
	manager := NewManager(WithLogger(zaptest.NewLogger(t)))
	config := createTestConfig()

	t.Run("generated id", func(t *testing.T) {
		sess, err := manager.Create("", config)
		require.NoError(t, err)
		assert.Len(t, sess.ID, 4)
		assert.Equal(t, config, sess.Config)
		assert.False(t, sess.CreatedAt.IsZero())
		require.NotNil(t, sess.Engine)
		assert.True(t, sess.Engine.Started())
		assert.Len(t, sess.Engine.Players(), 3)
	})

	t.Run("explicit id is lower-cased", func(t *testing.T) {
		sess, err := manager.Create("AbCd", config)
		require.NoError(t, err)
		assert.Equal(t, "abcd", sess.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := manager.Create("ABCD", config)
		assert.ErrorIs(t, err, ErrSessionAlreadyExists)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := manager.Create("../x", config)
		assert.ErrorIs(t, err, ErrInvalidSessionID)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := manager.Create("", &engine.GameConfig{Name: "bad", PlayerCount: 1})
		assert.ErrorIs(t, err, engine.ErrInvalidConfig)
	})
}

func TestManager_DiceFactory(t *testing.T) {
	manager := NewManager(WithDiceFactory(func(*engine.GameConfig) engine.Dice {
		return engine.NewScriptedDice(4)
	}))

	sess, err := manager.Create("", createTestConfig())
	require.NoError(t, err)
	require.True(t, sess.Engine.RollDice())
	assert.Equal(t, 4, sess.Engine.DiceValue())
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()
	created, err := manager.Create("game1", createTestConfig())
	require.NoError(t, err)

	got, err := manager.Get("GAME1")
	require.NoError(t, err)
	assert.Same(t, created, got)

	_, err = manager.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	first, err := manager.GetOrCreate("table", config)
	require.NoError(t, err)
	second, err := manager.GetOrCreate("table", config)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, manager.Count())
}

func TestManager_ListAndDelete(t *testing.T) {
	manager := NewManager()
	for i := 0; i < 3; i++ {
		_, err := manager.Create(fmt.Sprintf("s%d", i), createTestConfig())
		require.NoError(t, err)
	}
	assert.Len(t, manager.List(), 3)

	require.NoError(t, manager.Delete("S1"))
	assert.Equal(t, 2, manager.Count())
	assert.ErrorIs(t, manager.Delete("s1"), ErrSessionNotFound)
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := NewManager()
	sess, err := manager.Create("", createTestConfig())
	require.NoError(t, err)

	before := sess.LastAccessedAt
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, manager.UpdateLastAccessed(sess.ID))
	assert.True(t, sess.LastAccessedAt.After(before))

	assert.ErrorIs(t, manager.UpdateLastAccessed("none"), ErrSessionNotFound)
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	manager := NewManager(WithLogger(zaptest.NewLogger(t)))
	old, err := manager.Create("old", createTestConfig())
	require.NoError(t, err)
	_, err = manager.Create("fresh", createTestConfig())
	require.NoError(t, err)

	old.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	assert.Equal(t, []string{"old"}, removed)
	assert.Equal(t, 1, manager.Count())
	_, err = manager.Get("fresh")
	assert.NoError(t, err)
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	config := createTestConfig()

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := manager.Create("", config)
			if assert.NoError(t, err) {
				ids <- sess.ID
			}
			manager.List()
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Equal(t, 50, manager.Count())
}
