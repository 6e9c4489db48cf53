package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/hivemind-backend/internal/http"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		ServiceName:      cfg.ServiceName,
		AllowedOrigins:   cfg.AllowedOrigins,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		SubjectHandler:   handlers.Subject,
		NoteHandler:      handlers.Note,
		IngestionHandler: handlers.Ingestion,
		ConsensusHandler: handlers.Consensus,
		TutorHandler:     handlers.Tutor,
		AnalyticsHandler: handlers.Analytics,
	})
}
