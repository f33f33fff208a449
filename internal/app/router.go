package app

import (
	"github.com/gin-gonic/gin"

	"github.com/mentora-app/mentora-backend/internal/middleware"
	"github.com/mentora-app/mentora-backend/internal/platform/logger"
	"github.com/mentora-app/mentora-backend/internal/server"
)

func wireMiddleware(log *logger.Logger, s Services) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(log, s.Auth)
}

func wireRouter(cfg Config, h Handlers, authMiddleware *middleware.AuthMiddleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware: authMiddleware,
		AuthHandler:    h.Auth,
		ClassHandler:   h.Class,
		MeetingHandler: h.Meeting,
		BoardHandler:   h.Board,
		QuizHandler:    h.Quiz,
		AttemptHandler: h.Attempt,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
