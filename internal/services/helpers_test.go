package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type genCall struct {
	System string
	User   string
}

type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []genCall
}

func (f *fakeGenerator) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, genCall{System: system, User: user})
	return f.reply, f.err
}

func (f *fakeGenerator) lastCall(t *testing.T) genCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		t.Fatalf("generator was never called")
	}
	return f.calls[len(f.calls)-1]
}

type fixture struct {
	db         *gorm.DB
	log        *logger.Logger
	prompts    *Prompts
	users      repos.UserRepo
	subjects   repos.SubjectRepo
	notes      repos.NoteRepo
	masters    repos.MasterNoteRepo
	analytics  repos.StudentAnalyticsRepo
	quizStates repos.QuizStateRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	p, err := LoadPrompts()
	if err != nil {
		t.Fatalf("load prompts: %v", err)
	}
	return &fixture{
		db:         db,
		log:        log,
		prompts:    p,
		users:      repos.NewUserRepo(db, log),
		subjects:   repos.NewSubjectRepo(db, log),
		notes:      repos.NewNoteRepo(db, log),
		masters:    repos.NewMasterNoteRepo(db, log),
		analytics:  repos.NewStudentAnalyticsRepo(db, log),
		quizStates: repos.NewQuizStateRepo(db, log),
	}
}

func (f *fixture) consensus(gen TextGenerator) ConsensusService {
	return NewConsensusService(f.db, f.log, f.users, f.subjects, f.notes, f.masters, gen, f.prompts)
}

func (f *fixture) tutor(store QuizStore, gen TextGenerator) TutorService {
	return NewTutorService(f.log, f.masters, f.analytics, store, gen, f.prompts)
}
