package app

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/hivemind-backend/internal/platform/gcp"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
	"github.com/yungbote/hivemind-backend/internal/platform/openai"
	"github.com/yungbote/hivemind-backend/internal/platform/redis"
	"github.com/yungbote/hivemind-backend/internal/services"
)

// Clients holds the optional external integrations. Any field may be nil;
// services degrade instead of failing startup.
type Clients struct {
	OpenAI openai.Client
	Vision gcp.VisionOCR
	Bucket gcp.BucketService
	Redis  *goredis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	if strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		c, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		out.OpenAI = c
	} else {
		log.Warn("OPENAI_API_KEY not set; AI agents disabled")
	}

	if cfg.OCRProvider == services.OCRProviderGCPVision && !cfg.MockIngestion {
		v, err := gcp.NewVisionOCR(ctx, log)
		if err != nil {
			log.Warn("Vision OCR unavailable", "error", err)
		} else {
			out.Vision = v
		}
	}

	if cfg.Bucket.Name != "" {
		b, err := gcp.NewBucketService(ctx, log, cfg.Bucket)
		if err != nil {
			log.Warn("Note image bucket unavailable; raw images will not be kept", "error", err)
		} else {
			out.Bucket = b
		}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(ctx, log, cfg.Redis)
		if err != nil {
			if cfg.QuizStore == services.QuizStoreRedis {
				out.Close(log)
				return Clients{}, fmt.Errorf("init redis: %w", err)
			}
			log.Warn("Redis unavailable", "error", err)
		} else {
			out.Redis = rdb
		}
	}
	if cfg.QuizStore == services.QuizStoreRedis && out.Redis == nil {
		out.Close(log)
		return Clients{}, fmt.Errorf("QUIZ_STORE=redis requires REDIS_ADDR")
	}
	return out, nil
}

func (c Clients) Close(log *logger.Logger) {
	if c.Vision != nil {
		if err := c.Vision.Close(); err != nil {
			log.Warn("Closing vision client failed", "error", err)
		}
	}
	if c.Bucket != nil {
		if err := c.Bucket.Close(); err != nil {
			log.Warn("Closing bucket client failed", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn("Closing redis client failed", "error", err)
		}
	}
}
