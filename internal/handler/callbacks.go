package handler

import (
	"strings"
	"unicode"

	"wordmatch/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Already showing this content, e.g. a double tap on the same toggle
	if isNotModified(err) {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	// Handle specific button callbacks by Unique first
	switch callback.Unique {
	case btnStartGame.Unique:
		return h.handleStartGame(c)
	case btnReview.Unique:
		return h.handleReview(c)
	case btnPlayAgain.Unique:
		return h.handlePlayAgain(c)
	case btnHome.Unique:
		return h.handleHome(c)
	}

	// If Unique is empty, try to handle by Data (for buttons with Unique that didn't come through)
	if callback.Unique == "" {
		switch data {
		case btnStartGame.Unique:
			return h.handleStartGame(c)
		case btnReview.Unique:
			return h.handleReview(c)
		case btnPlayAgain.Unique:
			return h.handlePlayAgain(c)
		case btnHome.Unique:
			return h.handleHome(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, cardPrefix):
		return h.handleCardClick(c, strings.TrimPrefix(data, cardPrefix))
	case strings.HasPrefix(data, levelPrefix):
		return h.handleLevelSelection(c, strings.TrimPrefix(data, levelPrefix))
	case strings.HasPrefix(data, conjPrefix):
		return h.handleConjugationToggle(c, strings.TrimPrefix(data, conjPrefix))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleLevelSelection switches the menu to another JLPT level
func (h *Handler) handleLevelSelection(c tele.Context, raw string) error {
	userID := c.Sender().ID

	level, ok := domain.ParseLevel(raw)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "未知等级"})
	}

	state := h.GetState(userID)
	state.Level = level
	h.SetState(userID, state)

	return h.editMenu(c, userID)
}

// handleConjugationToggle adds or removes a verb form from the selection
func (h *Handler) handleConjugationToggle(c tele.Context, raw string) error {
	userID := c.Sender().ID

	conj, ok := domain.ParseConjugation(raw)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "未知变形"})
	}

	state := h.GetState(userID)
	state.ToggleConjugation(conj)
	h.SetState(userID, state)

	return h.editMenu(c, userID)
}

// handleHome abandons the running game without saving and shows the menu
func (h *Handler) handleHome(c tele.Context) error {
	userID := c.Sender().ID

	h.endGame(userID)
	return h.editMenu(c, userID)
}

// editMenu replaces the callback's message with the menu
func (h *Handler) editMenu(c tele.Context, userID int64) error {
	state := h.GetState(userID)
	summary := h.progressService.Summary(userID)
	text, markup := menuText(state, summary), menuMarkup(state, summary)

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return h.sendMenu(c, userID, "")
	}

	h.setPhase(userID, domain.StateMenu, callbackMessageID(c))
	return c.Respond()
}
