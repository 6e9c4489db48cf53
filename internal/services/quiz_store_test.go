package services

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/hivemind-backend/internal/domain"
)

func sampleQuiz(tag string) *types.QuizQuestion {
	return &types.QuizQuestion{
		Question:    "Q " + tag,
		Options:     map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"},
		Answer:      "B",
		Explanation: "because " + tag,
	}
}

func exerciseQuizStore(t *testing.T, store QuizStore) {
	t.Helper()
	ctx := context.Background()
	user := uuid.New()

	got, err := store.Get(ctx, user)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Put(ctx, user, sampleQuiz("one")))
	require.NoError(t, store.Put(ctx, user, sampleQuiz("two")))

	got, err = store.Get(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Q two", got.Question)
	assert.Equal(t, "B", got.Answer)
	assert.Equal(t, "4", got.Options["D"])

	other, err := store.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryQuizStore(t *testing.T) {
	exerciseQuizStore(t, NewMemoryQuizStore())
}

func TestMemoryQuizStoreReturnsCopies(t *testing.T) {
	store := NewMemoryQuizStore()
	user := uuid.New()
	q := sampleQuiz("x")
	require.NoError(t, store.Put(context.Background(), user, q))
	q.Options["A"] = "mutated"

	got, _ := store.Get(context.Background(), user)
	assert.Equal(t, "1", got.Options["A"])
	got.Options["B"] = "mutated"
	again, _ := store.Get(context.Background(), user)
	assert.Equal(t, "2", again.Options["B"])
}

func TestMemoryQuizStoreConcurrentWriters(t *testing.T) {
	store := NewMemoryQuizStore()
	user := uuid.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Put(context.Background(), user, sampleQuiz(fmt.Sprint(i)))
			_, _ = store.Get(context.Background(), user)
		}(i)
	}
	wg.Wait()
	got, err := store.Get(context.Background(), user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Valid())
}

func TestDBQuizStore(t *testing.T) {
	f := newFixture(t)
	store := NewDBQuizStore(f.quizStates)
	assert.Equal(t, QuizStorePostgres, store.Kind())
	exerciseQuizStore(t, store)
}

func TestRedisQuizStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	prefix := "hm-test:" + uuid.NewString()
	store := NewRedisQuizStore(rdb, prefix, time.Minute)
	assert.Equal(t, QuizStoreRedis, store.Kind())
	exerciseQuizStore(t, store)

	user := uuid.New()
	require.NoError(t, store.Put(context.Background(), user, sampleQuiz("ttl")))
	ttl, err := rdb.TTL(context.Background(), prefix+":"+user.String()).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
