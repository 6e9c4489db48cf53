package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/platform/logger"
	"github.com/yungbote/hivemind-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Subject   services.SubjectService
	Note      services.NoteService
	Ingestion services.IngestionService
	Consensus services.ConsensusService
	Tutor     services.TutorService
	Analytics services.AnalyticsService
	AIHealth  services.AIHealthService
	QuizStore services.QuizStore
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	prompts, err := services.LoadPrompts()
	if err != nil {
		return Services{}, fmt.Errorf("load prompts: %w", err)
	}

	// Leave the interface nil when there is no client so Available() reports false.
	var generator services.TextGenerator
	if clients.OpenAI != nil {
		generator = clients.OpenAI
	}

	store, err := selectQuizStore(cfg, repos, clients)
	if err != nil {
		return Services{}, err
	}
	extractor := selectExtractor(log, cfg, clients, prompts)

	ingestion := services.NewIngestionService(log, repos.Subject, repos.Note, extractor, clients.Bucket)
	consensus := services.NewConsensusService(db, log, repos.User, repos.Subject, repos.Note, repos.MasterNote, generator, prompts)
	tutor := services.NewTutorService(log, repos.MasterNote, repos.Analytics, store, generator, prompts)

	return Services{
		Auth:      services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Subject:   services.NewSubjectService(log, repos.Subject),
		Note:      services.NewNoteService(log, repos.Note),
		Ingestion: ingestion,
		Consensus: consensus,
		Tutor:     tutor,
		Analytics: services.NewAnalyticsService(log, repos.Note, repos.Analytics),
		AIHealth:  services.NewAIHealthService(clients.OpenAI != nil, ingestion, consensus, tutor, store),
		QuizStore: store,
	}, nil
}

func selectQuizStore(cfg Config, repos Repos, clients Clients) (services.QuizStore, error) {
	switch cfg.QuizStore {
	case "", services.QuizStoreMemory:
		return services.NewMemoryQuizStore(), nil
	case services.QuizStoreRedis:
		if clients.Redis == nil {
			return nil, fmt.Errorf("QUIZ_STORE=redis requires a redis client")
		}
		return services.NewRedisQuizStore(clients.Redis, cfg.RedisQuizPrefix, cfg.RedisQuizTTL), nil
	case services.QuizStorePostgres:
		return services.NewDBQuizStore(repos.QuizState), nil
	default:
		return nil, fmt.Errorf("unknown QUIZ_STORE %q", cfg.QuizStore)
	}
}

// selectExtractor returns nil when no OCR backend is usable; uploads then
// answer 503.
func selectExtractor(log *logger.Logger, cfg Config, clients Clients, prompts *services.Prompts) services.TextExtractor {
	if cfg.MockIngestion || cfg.OCRProvider == services.OCRProviderMock {
		log.Warn("Mock ingestion enabled; uploads will not be transcribed")
		return services.NewMockExtractor(prompts)
	}
	switch cfg.OCRProvider {
	case services.OCRProviderGCPVision:
		if clients.Vision != nil {
			return services.NewVisionExtractor(clients.Vision)
		}
	default:
		if clients.OpenAI != nil {
			return services.NewOpenAIExtractor(clients.OpenAI, prompts)
		}
	}
	log.Warn("No OCR provider available", "ocr_provider", cfg.OCRProvider)
	return nil
}
