package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	"github.com/yungbote/hivemind-backend/internal/services"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ACCESS_TOKEN_TTL", "QUIZ_STORE", "OCR_PROVIDER", "ALLOWED_ORIGINS", "REDIS_QUIZ_TTL_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, services.QuizStoreMemory, cfg.QuizStore)
	assert.Equal(t, services.OCRProviderOpenAI, cfg.OCRProvider)
	assert.Equal(t, 24*time.Hour, cfg.RedisQuizTTL)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("QUIZ_STORE", "Postgres")
	t.Setenv("OCR_PROVIDER", "GCP_VISION")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("ACCESS_TOKEN_TTL", "60")
	cfg := LoadConfig()
	assert.Equal(t, services.QuizStorePostgres, cfg.QuizStore)
	assert.Equal(t, services.OCRProviderGCPVision, cfg.OCRProvider)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
}

func TestSelectQuizStore(t *testing.T) {
	db := testutil.DB(t)
	reposet := wireRepos(db, testutil.Logger(t))

	s, err := selectQuizStore(Config{QuizStore: services.QuizStorePostgres}, reposet, Clients{})
	require.NoError(t, err)
	assert.Equal(t, services.QuizStorePostgres, s.Kind())

	s, err = selectQuizStore(Config{}, reposet, Clients{})
	require.NoError(t, err)
	assert.Equal(t, services.QuizStoreMemory, s.Kind())

	_, err = selectQuizStore(Config{QuizStore: services.QuizStoreRedis}, reposet, Clients{})
	assert.Error(t, err)

	_, err = selectQuizStore(Config{QuizStore: "etcd"}, reposet, Clients{})
	assert.Error(t, err)
}

func TestSelectExtractor(t *testing.T) {
	log := testutil.Logger(t)
	prompts := services.MustLoadPrompts()

	e := selectExtractor(log, Config{MockIngestion: true, OCRProvider: services.OCRProviderOpenAI}, Clients{}, prompts)
	require.NotNil(t, e)
	assert.Equal(t, services.OCRProviderMock, e.Provider())

	assert.Nil(t, selectExtractor(log, Config{OCRProvider: services.OCRProviderOpenAI}, Clients{}, prompts))
	assert.Nil(t, selectExtractor(log, Config{OCRProvider: services.OCRProviderGCPVision}, Clients{}, prompts))
}

func TestWireServicesWithoutClients(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svcs, err := wireServices(db, log, Config{JWTSecretKey: "k", AccessTokenTTL: time.Hour, MockIngestion: true}, wireRepos(db, log), Clients{})
	require.NoError(t, err)
	h := svcs.AIHealth.Health()
	assert.False(t, h.OpenAIKeyPresent)
	assert.True(t, h.IngestionAgentAvailable)
	assert.False(t, h.ConsensusAgentAvailable)
	assert.False(t, h.TutorAgentAvailable)
}
