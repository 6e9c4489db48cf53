package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
)

func intPtr(v int) *int { return &v }

func TestConsensusCreatesThenVersionsMasterNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subject := testutil.SeedSubject(t, ctx, f.db, "Physics")
	ann := testutil.SeedUser(t, ctx, f.db, "ann@example.com", "ann", "Adams", 2)
	bob := testutil.SeedUser(t, ctx, f.db, "bob@example.com", "bob", "Baker", 3)
	base := time.Now().UTC().Add(-time.Hour)
	n1 := testutil.SeedNote(t, ctx, f.db, ann.ID, subject.ID, 4, "forces", base)
	n2 := testutil.SeedNote(t, ctx, f.db, bob.ID, subject.ID, 4, "momentum", base.Add(time.Minute))

	gen := &fakeGenerator{reply: "# Master v1"}
	svc := f.consensus(gen)

	res, err := svc.Process(ctx, ConsensusInput{UserID: ann.ID, SubjectID: subject.ID, Chapter: intPtr(4), NoteIDs: []uuid.UUID{n1.ID, n2.ID}})
	require.NoError(t, err)
	assert.Equal(t, "Consensus reached and Master Note updated", res.Message)
	assert.Equal(t, 2, res.NotesProcessed)
	assert.Equal(t, 4, res.Chapter)
	assert.Equal(t, 1, res.Version)

	call := gen.lastCall(t)
	assert.Equal(t, f.prompts.MasterNoteSystem, call.System)
	assert.True(t, strings.HasPrefix(call.User, "Here are several student notes for Chapter 4. Please synthesize them into a single Master Note:\n\n"))
	assert.Contains(t, call.User, "Note from ann (Adams, 2):\nforces\n---\nNote from bob (Baker, 3):\nmomentum")

	mn, err := svc.GetMasterNote(ctx, ann.ID, subject.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "Physics - Chapter 4", mn.Topic)
	assert.Equal(t, "# Master v1", mn.Content)
	assert.Equal(t, 1, mn.Version)

	gen.reply = "# Master v2"
	res, err = svc.Process(ctx, ConsensusInput{UserID: ann.ID, SubjectID: subject.ID, Chapter: intPtr(4), NoteIDs: []uuid.UUID{n1.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Version)

	mn, err = svc.GetMasterNote(ctx, ann.ID, subject.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "# Master v2", mn.Content)
	assert.Equal(t, 2, mn.Version)

	var count int64
	require.NoError(t, f.db.Model(&types.MasterNote{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConsensusInfersChapterFromFirstNote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subject := testutil.SeedSubject(t, ctx, f.db, "Chemistry")
	ann := testutil.SeedUser(t, ctx, f.db, "ann@example.com", "ann", "Adams", 2)
	n := testutil.SeedNote(t, ctx, f.db, ann.ID, subject.ID, 7, "bonds", time.Now().UTC())

	res, err := f.consensus(&fakeGenerator{reply: "ok"}).Process(ctx, ConsensusInput{UserID: ann.ID, SubjectID: subject.ID, NoteIDs: []uuid.UUID{n.ID}})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Chapter)
}

func TestConsensusEmptySelectionIsBadRequest(t *testing.T) {
	f := newFixture(t)
	gen := &fakeGenerator{reply: "unused"}
	_, err := f.consensus(gen).Process(context.Background(), ConsensusInput{UserID: uuid.New(), SubjectID: uuid.New(), NoteIDs: []uuid.UUID{uuid.New()}})

	ae, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "No notes selected for consensus", ae.Error())
	assert.Empty(t, gen.calls)

	var count int64
	require.NoError(t, f.db.Model(&types.MasterNote{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestConsensusWithoutGeneratorIsUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subject := testutil.SeedSubject(t, ctx, f.db, "Art")
	u := testutil.SeedUser(t, ctx, f.db, "u@example.com", "u", "T", 1)
	n := testutil.SeedNote(t, ctx, f.db, u.ID, subject.ID, 1, "x", time.Now().UTC())

	svc := f.consensus(nil)
	assert.False(t, svc.Available())
	_, err := svc.Process(ctx, ConsensusInput{UserID: u.ID, SubjectID: subject.ID, NoteIDs: []uuid.UUID{n.ID}})
	assert.Equal(t, http.StatusServiceUnavailable, apierr.StatusOf(err))
}

func TestConsensusGeneratorErrorIsInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	subject := testutil.SeedSubject(t, ctx, f.db, "Art")
	u := testutil.SeedUser(t, ctx, f.db, "u@example.com", "u", "T", 1)
	n := testutil.SeedNote(t, ctx, f.db, u.ID, subject.ID, 1, "x", time.Now().UTC())

	_, err := f.consensus(&fakeGenerator{err: errors.New("quota exceeded")}).Process(ctx, ConsensusInput{UserID: u.ID, SubjectID: subject.ID, NoteIDs: []uuid.UUID{n.ID}})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apierr.StatusOf(err))
	assert.Equal(t, "AI Agent error: quota exceeded", err.Error())
}

func TestConsensusUnknownSubjectTopic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	art := testutil.SeedSubject(t, ctx, f.db, "Art")
	u := testutil.SeedUser(t, ctx, f.db, "u@example.com", "u", "T", 1)
	n := testutil.SeedNote(t, ctx, f.db, u.ID, art.ID, 2, "x", time.Now().UTC())

	missing := uuid.New()
	svc := f.consensus(&fakeGenerator{reply: "ok"})
	_, err := svc.Process(ctx, ConsensusInput{UserID: u.ID, SubjectID: missing, NoteIDs: []uuid.UUID{n.ID}})
	require.NoError(t, err)
	mn, err := svc.GetMasterNote(ctx, u.ID, missing, 2)
	require.NoError(t, err)
	assert.Equal(t, "Unknown - Chapter 2", mn.Topic)
}

func TestMasterNoteReadsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := f.consensus(nil)
	ctx := context.Background()

	_, err := svc.GetMasterNote(ctx, uuid.New(), uuid.New(), 1)
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
	_, err = svc.GetLatestMasterNote(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
	_, _, err = svc.RenderMasterNotePDF(ctx, uuid.New(), uuid.New(), 1)
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}

func TestLatestMasterNoteIsNewest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s := testutil.SeedSubject(t, ctx, f.db, "Math")
	u := testutil.SeedUser(t, ctx, f.db, "u@example.com", "u", "T", 1)
	base := time.Now().UTC().Add(-time.Hour)
	testutil.SeedMasterNote(t, ctx, f.db, u.ID, s.ID, 1, "old", base)
	testutil.SeedMasterNote(t, ctx, f.db, u.ID, s.ID, 2, "new", base.Add(time.Minute))

	mn, err := f.consensus(nil).GetLatestMasterNote(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", mn.Content)
}

func TestDedupeUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, dedupeUUIDs([]uuid.UUID{a, uuid.Nil, b, a}))
}
