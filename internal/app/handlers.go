package app

import (
	"context"

	httpH "github.com/yungbote/hivemind-backend/internal/http/handlers"
	httpMW "github.com/yungbote/hivemind-backend/internal/http/middleware"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Subject   *httpH.SubjectHandler
	Note      *httpH.NoteHandler
	Ingestion *httpH.IngestionHandler
	Consensus *httpH.ConsensusHandler
	Tutor     *httpH.TutorHandler
	Analytics *httpH.AnalyticsHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, readiness func(context.Context) error) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(cfg.Port, services.AIHealth, readiness),
		Auth:      httpH.NewAuthHandler(services.Auth),
		Subject:   httpH.NewSubjectHandler(services.Subject),
		Note:      httpH.NewNoteHandler(services.Note),
		Ingestion: httpH.NewIngestionHandler(log, services.Ingestion),
		Consensus: httpH.NewConsensusHandler(services.Consensus),
		Tutor:     httpH.NewTutorHandler(services.Tutor),
		Analytics: httpH.NewAnalyticsHandler(services.Analytics),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
