package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wricardo/mcp-training/ludo/game/engine"
)

// ErrConfigNotFound is returned by CreateSession when the requested preset
// does not exist.
var ErrConfigNotFound = errors.New("configuration not found")

const (
	// DefaultMessageTTL is how long an advisory message stays visible.
	DefaultMessageTTL = 3 * time.Second
	// DefaultFinishDelay is the pause shown after a player finishes.
	DefaultFinishDelay = 3 * time.Second
)

// ChangeFunc is notified with a fresh snapshot whenever a session changes,
// including changes made by timers.
type ChangeFunc func(sessionID string, state *engine.GameState)

// Option configures the game service.
type Option func(*gameServiceImpl)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *gameServiceImpl) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMessageTTL sets how long advisory messages stay before being cleared.
// Zero keeps messages until the next one replaces them.
func WithMessageTTL(d time.Duration) Option {
	return func(s *gameServiceImpl) { s.messageTTL = d }
}

// WithFinishDelay sets the pause after a player finishes. Zero disables the
// automatic acknowledgement so clients must call AcknowledgeFinish.
func WithFinishDelay(d time.Duration) Option {
	return func(s *gameServiceImpl) { s.finishDelay = d }
}

// WithOnChange registers the change hook.
func WithOnChange(fn ChangeFunc) Option {
	return func(s *gameServiceImpl) { s.onChange = fn }
}

// WithScheduler replaces the timer scheduler.
func WithScheduler(scheduler *Scheduler) Option {
	return func(s *gameServiceImpl) {
		if scheduler != nil {
			s.timers = scheduler
		}
	}
}

// gameServiceImpl implements the GameService interface. One mutex serialises
// every engine call, timer callbacks included.
type gameServiceImpl struct {
	sessions    SessionManager
	configs     ConfigManager
	timers      *Scheduler
	logger      *zap.Logger
	onChange    ChangeFunc
	messageTTL  time.Duration
	finishDelay time.Duration
	now         func() time.Time
	mu          sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions:    sessions,
		configs:     configs,
		timers:      NewScheduler(nil),
		logger:      zap.NewNop(),
		messageTTL:  DefaultMessageTTL,
		finishDelay: DefaultFinishDelay,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given preset name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	sess, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	s.logger.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("config", configID),
		zap.Int("players", config.PlayerCount))
	s.scheduleTimers(sess.ID, sess.Engine, "")

	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Engine.GetConfig(),
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session and cancels its timers
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.timers.CancelSession(sess.ID)
	s.logger.Info("session deleted", zap.String("session_id", sess.ID))
	return nil
}

// Configure sets the player count and names used by the next Start
func (s *gameServiceImpl) Configure(ctx context.Context, sessionID string, playerCount int, names []string) (*ActionResult, error) {
	return s.apply(sessionID, "configure", func(e *engine.GameEngine) (bool, error) {
		if err := e.Configure(playerCount, names); err != nil {
			return false, err
		}
		return true, nil
	})
}

// Start seats the configured players and begins a new game
func (s *gameServiceImpl) Start(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(sessionID, "start", func(e *engine.GameEngine) (bool, error) {
		e.Start()
		return e.Started(), nil
	})
}

// Reset restarts the game with the same players
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(sessionID, "reset", func(e *engine.GameEngine) (bool, error) {
		if !e.Started() {
			return false, nil
		}
		e.Reset()
		return true, nil
	})
}

// RollDice rolls for the current player
func (s *gameServiceImpl) RollDice(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(sessionID, "roll", func(e *engine.GameEngine) (bool, error) {
		return e.RollDice(), nil
	})
}

// SelectToken moves one of the current player's tokens
func (s *gameServiceImpl) SelectToken(ctx context.Context, sessionID string, tokenID int) (*ActionResult, error) {
	return s.apply(sessionID, "select", func(e *engine.GameEngine) (bool, error) {
		return e.SelectToken(tokenID), nil
	})
}

// AcknowledgeFinish leaves the finished-player pause
func (s *gameServiceImpl) AcknowledgeFinish(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(sessionID, "acknowledge", func(e *engine.GameEngine) (bool, error) {
		return e.AcknowledgeFinish(), nil
	})
}

// ClearMessage dismisses the advisory message
func (s *gameServiceImpl) ClearMessage(ctx context.Context, sessionID string) (*ActionResult, error) {
	return s.apply(sessionID, "clear_message", func(e *engine.GameEngine) (bool, error) {
		if e.Message() == "" {
			return false, nil
		}
		e.ClearMessage()
		return true, nil
	})
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)

	return sess.Engine.GetState(), nil
}

// GetHistory returns a page of the action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("session not found: %w", err)
	}
	history := sess.Engine.GetHistory()
	s.mu.Unlock()

	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := min(start+opts.Limit, total)

	entries := []engine.HistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// Most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				entries = append(entries, history[i])
			}
		} else {
			entries = append(entries, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Entries:      entries,
		TotalEntries: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns the available presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a preset by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig stores a preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// apply runs a command against a session engine under the service lock,
// collects the events it produced and refreshes the timers.
func (s *gameServiceImpl) apply(sessionID, action string, cmd func(*engine.GameEngine) (bool, error)) (*ActionResult, error) {
	result, id, err := s.applyLocked(sessionID, action, cmd)
	if err != nil {
		return nil, err
	}
	if result.Applied {
		s.notify(id, result.GameState)
	}
	return result, nil
}

func (s *gameServiceImpl) applyLocked(sessionID, action string, cmd func(*engine.GameEngine) (bool, error)) (*ActionResult, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sessionID)

	e := sess.Engine
	before := len(e.GetHistory())
	if action == "start" {
		// Start clears the history
		before = 0
	}
	prevMessage := e.Message()

	applied, err := cmd(e)
	if err != nil {
		s.logger.Debug("action rejected",
			zap.String("session_id", sess.ID),
			zap.String("action", action),
			zap.Error(err))
		return nil, "", err
	}

	state := e.GetState()
	result := &ActionResult{
		Applied:   applied,
		GameState: state,
		Message:   state.Message,
		Events:    s.eventsSince(e, before),
	}

	if applied {
		s.scheduleTimers(sess.ID, e, prevMessage)
	}

	s.logger.Debug("action",
		zap.String("session_id", sess.ID),
		zap.String("action", action),
		zap.Bool("applied", applied),
		zap.Int("player", state.CurrentPlayerIndex),
		zap.Int("dice", state.DiceValue),
		zap.String("state", state.State))

	return result, sess.ID, nil
}

// scheduleTimers arms the message and finish timers for the engine's state.
// Callers hold s.mu.
func (s *gameServiceImpl) scheduleTimers(sessionID string, e *engine.GameEngine, prevMessage string) {
	if msg := e.Message(); msg != "" && msg != prevMessage && s.messageTTL > 0 {
		s.timers.Schedule(sessionID, TimerClearMessage, s.messageTTL, func(gen uint64) {
			s.timerFired(sessionID, TimerClearMessage, gen, func(e *engine.GameEngine) bool {
				if e.Message() != msg {
					return false
				}
				e.ClearMessage()
				return true
			})
		})
	}

	if e.State() != engine.PlayerFinished {
		s.timers.Cancel(sessionID, TimerAcknowledgeFinish)
		return
	}
	if s.finishDelay > 0 && !s.timers.Pending(sessionID, TimerAcknowledgeFinish) {
		s.timers.Schedule(sessionID, TimerAcknowledgeFinish, s.finishDelay, func(gen uint64) {
			s.timerFired(sessionID, TimerAcknowledgeFinish, gen, func(e *engine.GameEngine) bool {
				return e.AcknowledgeFinish()
			})
		})
	}
}

// timerFired applies a timer callback unless the timer was cancelled or
// replaced while it waited for the lock, the session is gone, or the callback
// no longer applies.
func (s *gameServiceImpl) timerFired(sessionID string, kind TimerKind, gen uint64, fn func(*engine.GameEngine) bool) {
	s.mu.Lock()
	if !s.timers.Claim(sessionID, kind, gen) {
		s.mu.Unlock()
		return
	}
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.mu.Unlock()
		return
	}

	prevMessage := sess.Engine.Message()
	if !fn(sess.Engine) {
		s.mu.Unlock()
		return
	}
	s.scheduleTimers(sess.ID, sess.Engine, prevMessage)
	state := sess.Engine.GetState()
	s.mu.Unlock()

	s.logger.Debug("timer fired", zap.String("session_id", sessionID), zap.String("timer", string(kind)))
	s.notify(sessionID, state)
}

func (s *gameServiceImpl) notify(sessionID string, state *engine.GameState) {
	if s.onChange != nil {
		s.onChange(sessionID, state)
	}
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		GameConfig:     sess.Engine.GetConfig(),
	}
}

// eventsSince converts history entries recorded after index before into events.
func (s *gameServiceImpl) eventsSince(e *engine.GameEngine, before int) []GameEvent {
	history := e.GetHistory()
	before = min(before, len(history))

	players := e.Players()
	now := s.now()
	events := make([]GameEvent, 0, len(history)-before)
	for _, h := range history[before:] {
		events = append(events, GameEvent{
			ID:        uuid.NewString(),
			Type:      h.Kind,
			Message:   describeEntry(h, players),
			Timestamp: now,
			PlayerID:  h.PlayerID,
			TokenID:   h.TokenID,
			Dice:      h.Dice,
			From:      h.From,
			To:        h.To,
		})
	}
	return events
}

func describeEntry(h engine.HistoryEntry, players []engine.Player) string {
	name := fmt.Sprintf("Player %d", h.PlayerID+1)
	if h.PlayerID >= 0 && h.PlayerID < len(players) {
		name = players[h.PlayerID].Name
	}

	switch h.Kind {
	case engine.KindRoll:
		return fmt.Sprintf("%s rolled a %d", name, h.Dice)
	case engine.KindEnter:
		return fmt.Sprintf("%s entered token %d at cell %d", name, h.TokenID, h.To)
	case engine.KindMove:
		return fmt.Sprintf("%s moved token %d from %d to %d", name, h.TokenID, h.From, h.To)
	case engine.KindCapture:
		return fmt.Sprintf("%s %s", name, h.Detail)
	case engine.KindHome:
		return fmt.Sprintf("%s brought token %d home", name, h.TokenID)
	case engine.KindPenalty:
		return fmt.Sprintf("%s lost token %d to three 1s", name, h.TokenID)
	case engine.KindAutoEnter:
		return fmt.Sprintf("%s auto-entered token %d after three 6s", name, h.TokenID)
	case engine.KindFinish:
		return fmt.Sprintf("%s finished %s", name, h.Detail)
	case engine.KindTurn:
		return fmt.Sprintf("%s's turn", name)
	case engine.KindGameOver:
		return "Game over"
	case engine.KindReset:
		return "Game reset"
	default:
		return string(h.Kind)
	}
}
