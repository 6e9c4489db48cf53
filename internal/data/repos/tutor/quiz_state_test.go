package tutor

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
)

func TestQuizStateRepoUpsertOverwrites(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuizStateRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	userID := uuid.New()

	got, err := repo.GetByUserID(dbc, userID)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(dbc, &types.QuizState{
		UserID:   userID,
		Question: "first",
		Options:  datatypes.JSON(`{"A":"1","B":"2","C":"3","D":"4"}`),
		Answer:   "A",
	}))
	require.NoError(t, repo.Upsert(dbc, &types.QuizState{
		UserID:      userID,
		Question:    "second",
		Options:     datatypes.JSON(`{"A":"5","B":"6","C":"7","D":"8"}`),
		Answer:      "C",
		Explanation: "because",
	}))

	got, err = repo.GetByUserID(dbc, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Question)
	assert.Equal(t, "C", got.Answer)
	assert.JSONEq(t, `{"A":"5","B":"6","C":"7","D":"8"}`, string(got.Options))
}
