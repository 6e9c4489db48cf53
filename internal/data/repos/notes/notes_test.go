package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
)

func TestSubjectRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewSubjectRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	_, err := repo.Create(dbc, []*types.Subject{{Name: "Physics"}, {Name: "Biology"}})
	require.NoError(t, err)

	all, err := repo.ListAll(dbc)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Biology", all[0].Name)
	assert.Equal(t, "Physics", all[1].Name)

	_, err = repo.Create(dbc, []*types.Subject{{Name: "Physics"}})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "expected duplicate key, got %v", err)

	got, err := repo.GetByName(dbc, "Biology")
	require.NoError(t, err)
	require.NotNil(t, got)

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{got.ID})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
}

func TestNoteRepoListings(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewNoteRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	subject := testutil.SeedSubject(t, ctx, db, "History")
	other := testutil.SeedSubject(t, ctx, db, "Art")
	ann := testutil.SeedUser(t, ctx, db, "ann@example.com", "ann", "Adams", 1)
	bob := testutil.SeedUser(t, ctx, db, "bob@example.com", "bob", "Adams", 3)
	cat := testutil.SeedUser(t, ctx, db, "cat@example.com", "cat", "Baker", 2)

	base := time.Now().UTC().Add(-time.Hour)
	n1 := testutil.SeedNote(t, ctx, db, ann.ID, subject.ID, 2, "ann ch2", base)
	n2 := testutil.SeedNote(t, ctx, db, ann.ID, subject.ID, 1, "ann ch1", base.Add(time.Minute))
	testutil.SeedNote(t, ctx, db, bob.ID, subject.ID, 1, "bob ch1", base.Add(2*time.Minute))
	testutil.SeedNote(t, ctx, db, cat.ID, subject.ID, 1, "cat ch1", base.Add(3*time.Minute))
	testutil.SeedNote(t, ctx, db, ann.ID, other.ID, 1, "ann art", base.Add(4*time.Minute))

	all, err := repo.ListBySubjectWithAuthor(dbc, subject.ID, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	// teacher asc, year desc
	assert.Equal(t, "bob", all[0].PseudoName)
	assert.Equal(t, "Adams", all[0].Teacher)
	assert.Equal(t, 3, all[0].Year)
	assert.Equal(t, "cat", all[3].PseudoName)

	ch1, err := repo.ListBySubjectWithAuthor(dbc, subject.ID, 1)
	require.NoError(t, err)
	assert.Len(t, ch1, 3)

	mine, err := repo.ListByUser(dbc, ann.ID, testutil.PtrUUID(subject.ID))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, n2.ID, mine[0].ID)
	assert.Equal(t, n1.ID, mine[1].ID)

	mineAll, err := repo.ListByUser(dbc, ann.ID, nil)
	require.NoError(t, err)
	assert.Len(t, mineAll, 3)

	count, err := repo.CountByUser(dbc, ann.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{n2.ID, n1.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, byIDs, 2)
	assert.Equal(t, n1.ID, byIDs[0].ID)
}

func TestMasterNoteRepoReplaceContent(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMasterNoteRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "m@example.com", "m", "T", 1)
	s := testutil.SeedSubject(t, ctx, db, "Chemistry")

	ok, err := repo.ReplaceContent(dbc, u.ID, s.ID, 3, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Create(dbc, &types.MasterNote{
		UserID: u.ID, SubjectID: s.ID, Chapter: 3, Topic: "Chemistry - Chapter 3", Content: "v1", Version: 1,
	}))

	ok, err = repo.ReplaceContent(dbc, u.ID, s.ID, 3, "v2")
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByKey(dbc, u.ID, s.ID, 3)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, 2, got.Version)

	err = repo.Create(dbc, &types.MasterNote{UserID: u.ID, SubjectID: s.ID, Chapter: 3, Content: "dup", Version: 1})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMasterNoteRepoLatest(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewMasterNoteRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	u := testutil.SeedUser(t, ctx, db, "l@example.com", "l", "T", 1)
	s := testutil.SeedSubject(t, ctx, db, "Math")

	none, err := repo.GetLatestByUser(dbc, u.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	now := time.Now().UTC()
	testutil.SeedMasterNote(t, ctx, db, u.ID, s.ID, 1, "old", now.Add(-time.Hour))
	newest := testutil.SeedMasterNote(t, ctx, db, u.ID, s.ID, 2, "new", now)

	latest, err := repo.GetLatestByUser(dbc, u.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newest.ID, latest.ID)
}
