package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
)

func TestComputeReport(t *testing.T) {
	cases := []struct {
		notes             int64
		attempts, correct int
		want              AnalyticsReport
	}{
		{0, 0, 0, AnalyticsReport{PrepScore: 0, ContributionScore: 0, PrepLevel: 1}},
		{3, 4, 3, AnalyticsReport{PrepScore: 75, ContributionScore: 30, PrepLevel: 3}},
		{25, 2, 1, AnalyticsReport{PrepScore: 50, ContributionScore: 100, PrepLevel: 1}},
		{1, 3, 2, AnalyticsReport{PrepScore: 67, ContributionScore: 10, PrepLevel: 3}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, *computeReport(tc.notes, tc.attempts, tc.correct))
	}
}

func TestAnalyticsReportPersistsScores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	u := testutil.SeedUser(t, ctx, f.db, "u@example.com", "u", "T", 1)
	s := testutil.SeedSubject(t, ctx, f.db, "Bio")
	for i := 0; i < 2; i++ {
		testutil.SeedNote(t, ctx, f.db, u.ID, s.ID, 1, "n", time.Now().UTC())
	}
	require.NoError(t, f.analytics.RecordQuizAnswer(dbc, u.ID, true))
	require.NoError(t, f.analytics.RecordQuizAnswer(dbc, u.ID, false))

	report, err := NewAnalyticsService(f.log, f.notes, f.analytics).Report(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, AnalyticsReport{PrepScore: 50, ContributionScore: 20, PrepLevel: 1}, *report)

	row, err := f.analytics.GetByUserID(dbc, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, row.InfoSynthesisScore)
	assert.Equal(t, 20.0, row.PeerSupportScore)
	assert.Equal(t, 2, row.QuizAttempts)
}

func TestAIHealthReportsConfiguration(t *testing.T) {
	f := newFixture(t)
	gen := &fakeGenerator{}
	ing := NewIngestionService(f.log, f.subjects, f.notes, NewMockExtractor(f.prompts), nil)
	store := NewMemoryQuizStore()
	h := NewAIHealthService(false, ing, f.consensus(nil), f.tutor(store, gen), store).Health()

	assert.Equal(t, AIHealth{
		OpenAIKeyPresent:        false,
		OCRProvider:             OCRProviderMock,
		IngestionAgentAvailable: true,
		ConsensusAgentAvailable: false,
		TutorAgentAvailable:     true,
		QuizStore:               QuizStoreMemory,
	}, h)
	assert.Empty(t, gen.calls)
}
