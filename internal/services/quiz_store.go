package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
)

const (
	QuizStoreMemory   = "memory"
	QuizStoreRedis    = "redis"
	QuizStorePostgres = "postgres"
)

// QuizStore holds at most one pending question per user. Put overwrites.
// Get returns nil, nil when nothing is pending.
type QuizStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*types.QuizQuestion, error)
	Put(ctx context.Context, userID uuid.UUID, q *types.QuizQuestion) error
	Kind() string
}

type memoryQuizStore struct {
	mu    sync.RWMutex
	state map[uuid.UUID]types.QuizQuestion
}

func NewMemoryQuizStore() QuizStore {
	return &memoryQuizStore{state: map[uuid.UUID]types.QuizQuestion{}}
}

func (s *memoryQuizStore) Kind() string { return QuizStoreMemory }

func (s *memoryQuizStore) Get(ctx context.Context, userID uuid.UUID) (*types.QuizQuestion, error) {
	s.mu.RLock()
	q, ok := s.state[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return cloneQuiz(&q), nil
}

func (s *memoryQuizStore) Put(ctx context.Context, userID uuid.UUID, q *types.QuizQuestion) error {
	if q == nil {
		return fmt.Errorf("quiz question required")
	}
	c := cloneQuiz(q)
	s.mu.Lock()
	s.state[userID] = *c
	s.mu.Unlock()
	return nil
}

func cloneQuiz(q *types.QuizQuestion) *types.QuizQuestion {
	out := *q
	out.Options = make(map[string]string, len(q.Options))
	for k, v := range q.Options {
		out.Options[k] = v
	}
	return &out
}

type redisQuizStore struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisQuizStore keeps one JSON value per user at "<prefix>:<user_id>".
// ttl <= 0 keeps entries until overwritten.
func NewRedisQuizStore(rdb *goredis.Client, prefix string, ttl time.Duration) QuizStore {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "hivemind:quiz"
	}
	if ttl < 0 {
		ttl = 0
	}
	return &redisQuizStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *redisQuizStore) Kind() string { return QuizStoreRedis }

func (s *redisQuizStore) key(userID uuid.UUID) string { return s.prefix + ":" + userID.String() }

func (s *redisQuizStore) Get(ctx context.Context, userID uuid.UUID) (*types.QuizQuestion, error) {
	raw, err := s.rdb.Get(ctx, s.key(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get quiz: %w", err)
	}
	var q types.QuizQuestion
	if err := json.Unmarshal(raw, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &q, nil
}

func (s *redisQuizStore) Put(ctx context.Context, userID uuid.UUID, q *types.QuizQuestion) error {
	if q == nil {
		return fmt.Errorf("quiz question required")
	}
	raw, err := json.Marshal(q)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set quiz: %w", err)
	}
	return nil
}

type dbQuizStore struct {
	repo repos.QuizStateRepo
}

// NewDBQuizStore persists quiz state in the quiz_states table.
func NewDBQuizStore(repo repos.QuizStateRepo) QuizStore {
	return &dbQuizStore{repo: repo}
}

func (s *dbQuizStore) Kind() string { return QuizStorePostgres }

func (s *dbQuizStore) Get(ctx context.Context, userID uuid.UUID) (*types.QuizQuestion, error) {
	row, err := s.repo.GetByUserID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil || row == nil {
		return nil, err
	}
	q := &types.QuizQuestion{
		Question:    row.Question,
		Answer:      row.Answer,
		Explanation: row.Explanation,
	}
	if len(row.Options) > 0 {
		if err := json.Unmarshal(row.Options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode quiz options: %w", err)
		}
	}
	return q, nil
}

func (s *dbQuizStore) Put(ctx context.Context, userID uuid.UUID, q *types.QuizQuestion) error {
	if q == nil {
		return fmt.Errorf("quiz question required")
	}
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	return s.repo.Upsert(dbctx.Context{Ctx: ctx}, &types.QuizState{
		UserID:      userID,
		Question:    q.Question,
		Options:     datatypes.JSON(opts),
		Answer:      q.Answer,
		Explanation: q.Explanation,
	})
}
