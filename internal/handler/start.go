package handler

import (
	"wordmatch/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgAskPassword = "你好! 请输入密码:"
	msgInternalErr = "出错了, 请稍后再试。"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Check if authorized, registering the user on first contact
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalErr)
	}

	h.endGame(userID)
	h.ResetState(userID)

	if !authorized {
		return c.Send(msgAskPassword)
	}

	return h.sendMenu(c, userID, "")
}

// sendMenu posts a fresh menu message below the conversation
func (h *Handler) sendMenu(c tele.Context, userID int64, prefix string) error {
	state := h.GetState(userID)
	summary := h.progressService.Summary(userID)

	msg, err := h.bot.Send(c.Chat(), prefix+menuText(state, summary), menuMarkup(state, summary))
	if err != nil {
		return err
	}
	h.setPhase(userID, domain.StateMenu, msg.ID)
	return nil
}
