package handler

import (
	"strings"

	"wordmatch/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Check authorization first
	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgInternalErr)
	}

	// If not authorized, check password
	if !authorized {
		if !h.authService.CheckPassword(text) {
			return c.Send("密码不对")
		}

		if err := h.authService.AuthorizeUser(userID); err != nil {
			h.logger.Error("Failed to authorize user", zap.Error(err))
			return c.Send(msgInternalErr)
		}

		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		h.ResetState(userID)
		return h.sendMenu(c, userID, "✅ 验证成功!\n\n")
	}

	// The game is played with buttons only; a stray message brings the menu
	// back unless a game is on screen
	switch h.GetState(userID).State {
	case domain.StatePlaying, domain.StateLoading:
		return c.Send("请点击上面的卡片 👆")
	default:
		return h.sendMenu(c, userID, "")
	}
}
