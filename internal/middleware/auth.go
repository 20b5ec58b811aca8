package middleware

import (
	"wordmatch/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgLocked = "请先输入密码"

// AuthMiddleware creates authentication middleware. Button presses from
// unauthorized users are answered with an alert and dropped; commands and
// text pass through so the password can be entered.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Callback() == nil || c.Sender() == nil {
				return next(c)
			}

			userID := c.Sender().ID

			// Check authorization
			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware",
					zap.Int64("user_id", userID),
					zap.Error(err),
				)
				return c.Respond(&tele.CallbackResponse{Text: "出错了, 请稍后再试。"})
			}

			if !authorized {
				logger.Debug("Rejected callback from unauthorized user", zap.Int64("user_id", userID))
				return c.Respond(&tele.CallbackResponse{Text: msgLocked, ShowAlert: true})
			}

			// User is authorized, continue
			return next(c)
		}
	}
}
