package handler

import (
	"sync"
	"time"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"
	"wordmatch/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Settings holds the game timings used by the handler
type Settings struct {
	FlashDelay      time.Duration
	SettleDelay     time.Duration
	GenerateTimeout time.Duration

	// Clock drives game timers, the system clock when nil
	Clock game.Clock
}

// Bot is the part of *tele.Bot the handler uses
type Bot interface {
	Handle(endpoint interface{}, h tele.HandlerFunc, m ...tele.MiddlewareFunc)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	bot             Bot
	authService     *service.AuthService
	wordService     *service.WordService
	progressService *service.ProgressService
	voices          *voiceCache
	settings        Settings
	logger          *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Running game sessions, one per user
	games   map[int64]*activeGame
	gameMux sync.Mutex
}

// activeGame ties a session to the chat message showing its board
type activeGame struct {
	session   *game.Session
	cfg       domain.GameConfig
	chatID    int64
	messageID int
	lastSeen  time.Time
}

// NewHandler creates a new handler instance. synth may be nil, in which case
// games run without pronunciation.
func NewHandler(
	bot Bot,
	authService *service.AuthService,
	wordService *service.WordService,
	progressService *service.ProgressService,
	synth Synthesizer,
	settings Settings,
	logger *zap.Logger,
) *Handler {
	h := &Handler{
		bot:             bot,
		authService:     authService,
		wordService:     wordService,
		progressService: progressService,
		settings:        settings,
		logger:          logger,
		states:          make(map[int64]*domain.StateData),
		games:           make(map[int64]*activeGame),
	}
	if synth != nil {
		h.voices = newVoiceCache(bot, synth, logger)
	}
	return h
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnStartGame, h.handleStartGame)
	h.bot.Handle(&btnReview, h.handleReview)
	h.bot.Handle(&btnPlayAgain, h.handlePlayAgain)
	h.bot.Handle(&btnHome, h.handleHome)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle, Level: domain.LevelN5}
	}
	copied := *state
	copied.Conjugations = append([]domain.Conjugation(nil), state.Conjugations...)
	return &copied
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state, keeping the menu selection
func (h *Handler) ResetState(userID int64) {
	state := h.GetState(userID)
	state.State = domain.StateIdle
	state.MessageID = 0
	h.SetState(userID, state)
}

// setPhase moves the user to another state without touching the selection
func (h *Handler) setPhase(userID int64, phase domain.UserState, messageID int) {
	state := h.GetState(userID)
	state.State = phase
	state.MessageID = messageID
	h.SetState(userID, state)
}

// startTracking registers a new game for the user, abandoning any previous one
func (h *Handler) startTracking(userID int64, g *activeGame) {
	h.gameMux.Lock()
	prev := h.games[userID]
	g.lastSeen = time.Now()
	h.games[userID] = g
	h.gameMux.Unlock()

	if prev != nil {
		prev.session.Close()
	}
}

// lookupGame returns the user's running game and marks it as active
func (h *Handler) lookupGame(userID int64) *activeGame {
	h.gameMux.Lock()
	defer h.gameMux.Unlock()

	g, ok := h.games[userID]
	if !ok {
		return nil
	}
	g.lastSeen = time.Now()
	return g
}

// endGame abandons the user's running game, if any
func (h *Handler) endGame(userID int64) {
	h.gameMux.Lock()
	g := h.games[userID]
	delete(h.games, userID)
	h.gameMux.Unlock()

	if g != nil {
		g.session.Close()
	}
}

// takeGame removes and returns the registry entry if it still belongs to
// session
func (h *Handler) takeGame(userID int64, session *game.Session) *activeGame {
	h.gameMux.Lock()
	defer h.gameMux.Unlock()

	g, ok := h.games[userID]
	if !ok || g.session != session {
		return nil
	}
	delete(h.games, userID)
	return g
}

// EvictIdle closes games nobody touched for longer than maxIdle and returns
// how many were closed
func (h *Handler) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	h.gameMux.Lock()
	var stale []*activeGame
	for userID, g := range h.games {
		if g.lastSeen.Before(cutoff) || g.session.Closed() {
			stale = append(stale, g)
			delete(h.games, userID)
		}
	}
	h.gameMux.Unlock()

	for _, g := range stale {
		g.session.Close()
	}
	return len(stale)
}

// ActiveGames returns the number of running games
func (h *Handler) ActiveGames() int {
	h.gameMux.Lock()
	defer h.gameMux.Unlock()
	return len(h.games)
}

// Inline keyboard buttons
var (
	btnStartGame = tele.Btn{
		Unique: "start_game",
		Text:   "▶️ 开始游戏",
	}
	btnReview = tele.Btn{
		Unique: "review",
		Text:   "📕 错题本 / 复习",
	}
	btnPlayAgain = tele.Btn{
		Unique: "play_again",
		Text:   "🔄 再玩一次",
	}
	btnHome = tele.Btn{
		Unique: "home",
		Text:   "🏠 返回菜单",
	}
)
