package handler

import (
	"context"
	"strconv"

	"wordmatch/internal/domain"
	"wordmatch/internal/game"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStartGame starts a normal game with the menu selection
func (h *Handler) handleStartGame(c tele.Context) error {
	state := h.GetState(c.Sender().ID)

	cfg := domain.GameConfig{
		Level:        state.Level,
		Conjugations: append([]domain.Conjugation(nil), state.Conjugations...),
	}
	return h.runGame(c, cfg)
}

// handleReview starts a review game over the oldest review items
func (h *Handler) handleReview(c tele.Context) error {
	userID := c.Sender().ID

	batch := h.progressService.ReviewBatch(userID)
	if len(batch) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: textReviewEmpty, ShowAlert: true})
	}

	state := h.GetState(userID)
	return h.runGame(c, domain.GameConfig{
		Level:      state.Level,
		ReviewMode: true,
		ReviewData: batch,
	})
}

// handlePlayAgain repeats the last game config. Review games fetch a fresh
// batch since solved items are gone from the list.
func (h *Handler) handlePlayAgain(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if state.Config == nil {
		return h.handleHome(c)
	}
	if state.Config.ReviewMode {
		return h.handleReview(c)
	}
	return h.runGame(c, *state.Config)
}

// runGame shows the loading screen, loads the pairs and puts the board on
// the same message
func (h *Handler) runGame(c tele.Context, cfg domain.GameConfig) error {
	userID := c.Sender().ID
	chatID := c.Chat().ID

	h.endGame(userID)
	c.Respond()

	messageID, err := h.showLoading(c, cfg)
	if err != nil {
		return err
	}

	state := h.GetState(userID)
	state.State = domain.StateLoading
	state.Config = &cfg
	state.MessageID = messageID
	h.SetState(userID, state)

	ctx, cancel := context.WithTimeout(context.Background(), h.settings.GenerateTimeout)
	defer cancel()

	pairs, err := h.wordService.LoadPairs(ctx, cfg)
	if err != nil {
		h.logger.Error("Failed to load words",
			zap.Int64("user_id", userID),
			zap.String("level", string(cfg.Level)),
			zap.Bool("review", cfg.ReviewMode),
			zap.Error(err),
		)
		h.showLoadFailed(userID, chatID, messageID)
		return nil
	}

	var session *game.Session
	session, err = game.NewSession(pairs, game.Options{
		FlashDelay:  h.settings.FlashDelay,
		SettleDelay: h.settings.SettleDelay,
		Clock:       h.settings.Clock,
		Speaker:     h.speakerFor(chatID),
		Logger:      h.logger.With(zap.Int64("user_id", userID)),
		OnChange: func(s game.State) {
			h.editStored(chatID, messageID, boardText(s, cfg), boardMarkup(s))
		},
		OnFinish: func(mistakes []domain.WordPair) {
			h.finishGame(userID, session, cfg, mistakes)
		},
	})
	if err != nil {
		h.logger.Error("Failed to start session", zap.Int64("user_id", userID), zap.Error(err))
		h.showLoadFailed(userID, chatID, messageID)
		return nil
	}

	h.startTracking(userID, &activeGame{
		session:   session,
		cfg:       cfg,
		chatID:    chatID,
		messageID: messageID,
	})
	h.setPhase(userID, domain.StatePlaying, messageID)

	h.logger.Info("Game started",
		zap.Int64("user_id", userID),
		zap.String("level", string(cfg.Level)),
		zap.Int("pairs", len(pairs)),
		zap.Bool("review", cfg.ReviewMode),
	)

	snapshot := session.Snapshot()
	h.editStored(chatID, messageID, boardText(snapshot, cfg), boardMarkup(snapshot))
	return nil
}

// showLoadFailed replaces the loading screen with the retry screen
func (h *Handler) showLoadFailed(userID, chatID int64, messageID int) {
	h.setPhase(userID, domain.StateResult, messageID)
	h.editStored(chatID, messageID, textLoadFailed, loadFailedMarkup())
}

// showLoading turns the callback's message into the loading screen and
// returns its id, posting a new message if the edit fails
func (h *Handler) showLoading(c tele.Context, cfg domain.GameConfig) (int, error) {
	text := loadingText(cfg)

	if id := callbackMessageID(c); id != 0 {
		if err := c.Edit(text); err == nil || isNotModified(err) {
			return id, nil
		}
	}

	msg, err := h.bot.Send(c.Chat(), text)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// handleCardClick forwards a card tap to the running session
func (h *Handler) handleCardClick(c tele.Context, cardID string) error {
	userID := c.Sender().ID

	g := h.lookupGame(userID)
	if g == nil || g.messageID != callbackMessageID(c) {
		return c.Respond(&tele.CallbackResponse{Text: textGameOver})
	}

	g.session.Select(cardID)
	return c.Respond()
}

// finishGame persists the outcome and shows the result screen
func (h *Handler) finishGame(userID int64, session *game.Session, cfg domain.GameConfig, mistakes []domain.WordPair) {
	g := h.takeGame(userID, session)
	if g == nil {
		return
	}

	h.progressService.RecordFinish(userID, cfg, session.Pairs(), mistakes)

	h.logger.Info("Game finished",
		zap.Int64("user_id", userID),
		zap.String("level", string(cfg.Level)),
		zap.Bool("review", cfg.ReviewMode),
		zap.Int("mistakes", len(mistakes)),
	)

	h.setPhase(userID, domain.StateResult, g.messageID)
	h.editStored(g.chatID, g.messageID, resultText(cfg, mistakes), resultMarkup())
}

// editStored edits a message outside of a callback, e.g. from a timer
func (h *Handler) editStored(chatID int64, messageID int, text string, markup *tele.ReplyMarkup) {
	msg := tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
	if _, err := h.bot.Edit(msg, text, markup); err != nil && !isNotModified(err) {
		h.logger.Warn("Failed to edit message",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
	}
}

// speakerFor returns the pronunciation speaker for a chat, or nil when
// speech is not configured
func (h *Handler) speakerFor(chatID int64) game.Speaker {
	if h.voices == nil {
		return nil
	}
	return h.voices.speakerFor(chatID)
}

func callbackMessageID(c tele.Context) int {
	if cb := c.Callback(); cb != nil && cb.Message != nil {
		return cb.Message.ID
	}
	return 0
}
