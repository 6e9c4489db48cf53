package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/hivemind-backend/internal/http/handlers"
	httpMW "github.com/yungbote/hivemind-backend/internal/http/middleware"
	"github.com/yungbote/hivemind-backend/internal/observability"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	AuthHandler      *httpH.AuthHandler
	SubjectHandler   *httpH.SubjectHandler
	NoteHandler      *httpH.NoteHandler
	IngestionHandler *httpH.IngestionHandler
	ConsensusHandler *httpH.ConsensusHandler
	TutorHandler     *httpH.TutorHandler
	AnalyticsHandler *httpH.AnalyticsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	if cfg.Log == nil {
		cfg.Log = logger.NewNop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "hivemind"
	}
	r.Use(httpMW.Recovery(cfg.Log))
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, observability.Current()))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/ai/health", cfg.HealthHandler.AIHealth)
	}

	// Public
	if cfg.AuthHandler != nil {
		r.POST("/auth/register", cfg.AuthHandler.Register)
		r.POST("/auth/login", cfg.AuthHandler.Login)
	}
	if cfg.SubjectHandler != nil {
		r.GET("/subjects/", cfg.SubjectHandler.List)
	}
	if cfg.NoteHandler != nil {
		r.GET("/notes/all", cfg.NoteHandler.ListAll)
	}

	protected := r.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.GET("/auth/me", cfg.AuthHandler.Me)
			protected.GET("/me", cfg.AuthHandler.Me)
		}

		if cfg.SubjectHandler != nil {
			protected.POST("/subjects/", cfg.SubjectHandler.Create)
		}

		if cfg.NoteHandler != nil {
			protected.GET("/notes/my", cfg.NoteHandler.ListMine)
		}

		if cfg.IngestionHandler != nil {
			protected.POST("/ingestion/upload", cfg.IngestionHandler.Upload)
		}

		if cfg.ConsensusHandler != nil {
			protected.POST("/consensus/process", cfg.ConsensusHandler.Process)
			protected.GET("/consensus/master/latest", cfg.ConsensusHandler.Latest)
			protected.GET("/consensus/master/:subject_id/:chapter", cfg.ConsensusHandler.Get)
			protected.GET("/consensus/master/:subject_id/:chapter/pdf", cfg.ConsensusHandler.PDF)
		}

		if cfg.TutorHandler != nil {
			protected.POST("/rag/tutor", cfg.TutorHandler.Ask)
			protected.GET("/rag/quiz/latest", cfg.TutorHandler.LatestQuiz)
		}

		if cfg.AnalyticsHandler != nil {
			protected.GET("/analytics/report", cfg.AnalyticsHandler.Report)
		}
	}

	return r
}
