package app

import (
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/hivemind-backend/internal/data/db"
	"github.com/yungbote/hivemind-backend/internal/platform/envutil"
	"github.com/yungbote/hivemind-backend/internal/platform/gcp"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
	"github.com/yungbote/hivemind-backend/internal/platform/openai"
	"github.com/yungbote/hivemind-backend/internal/platform/redis"
	"github.com/yungbote/hivemind-backend/internal/services"
)

type Config struct {
	Port    string
	LogMode string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB     db.Config
	OpenAI openai.Config
	Bucket gcp.BucketConfig
	Redis  redis.Config

	OCRProvider   string
	MockIngestion bool

	QuizStore       string
	RedisQuizPrefix string
	RedisQuizTTL    time.Duration

	AllowedOrigins []string

	MetricsEnabled bool
	MetricsAddr    string

	ServiceName string
	Environment string
}

// LoadEnvFile loads .env into the process environment when present.
// Variables already set win.
func LoadEnvFile(log *logger.Logger, paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil && log != nil {
			log.Info("Loaded environment file", "path", p)
		}
	}
}

func LoadConfig() Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8000"),
		LogMode: envutil.String("LOG_MODE", "development"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,

		DB:     db.ConfigFromEnv(),
		OpenAI: openai.ConfigFromEnv(),
		Bucket: gcp.BucketConfigFromEnv(),
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},

		OCRProvider:   strings.ToLower(envutil.String("OCR_PROVIDER", services.OCRProviderOpenAI)),
		MockIngestion: envutil.Bool("MOCK_INGESTION", false),

		QuizStore:       strings.ToLower(envutil.String("QUIZ_STORE", services.QuizStoreMemory)),
		RedisQuizPrefix: envutil.String("REDIS_QUIZ_PREFIX", "hivemind:quiz"),
		RedisQuizTTL:    time.Duration(envutil.Int("REDIS_QUIZ_TTL_SECONDS", 86400)) * time.Second,

		AllowedOrigins: envutil.List("ALLOWED_ORIGINS", nil),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false),
		MetricsAddr:    envutil.String("METRICS_ADDR", ":9090"),

		ServiceName: envutil.String("OTEL_SERVICE_NAME", "hivemind"),
		Environment: envutil.String("APP_ENV", "development"),
	}
	return cfg
}
