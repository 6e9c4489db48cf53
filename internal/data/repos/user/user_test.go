package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/data/repos/testutil"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Email:      "userrepo@example.com",
			Password:   "pw",
			PseudoName: "owl",
			Teacher:    "Smith",
			Year:       2,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected 1 user with id, got %+v", created)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	byEmail, err := repo.GetByEmail(dbc, "userrepo@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail == nil || byEmail.PseudoName != "owl" {
		t.Fatalf("GetByEmail: unexpected result: %+v", byEmail)
	}

	missing, err := repo.GetByEmail(dbc, "nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("GetByEmail (missing): got %+v, %v", missing, err)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}

	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}
}

func TestStudentAnalyticsRepo(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, db, "stats@example.com", "fox", "Lee", 1)

	repo := NewStudentAnalyticsRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	row, err := repo.GetByUserID(dbc, u.ID)
	if err != nil || row != nil {
		t.Fatalf("GetByUserID before writes: %+v, %v", row, err)
	}

	if err := repo.RecordQuizAnswer(dbc, u.ID, true); err != nil {
		t.Fatalf("RecordQuizAnswer: %v", err)
	}
	if err := repo.RecordQuizAnswer(dbc, u.ID, false); err != nil {
		t.Fatalf("RecordQuizAnswer: %v", err)
	}
	if err := repo.UpsertScores(dbc, u.ID, 50, 20); err != nil {
		t.Fatalf("UpsertScores: %v", err)
	}

	row, err = repo.GetByUserID(dbc, u.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if row.QuizAttempts != 2 || row.QuizCorrect != 1 {
		t.Fatalf("unexpected tallies: %+v", row)
	}
	if row.InfoSynthesisScore != 50 || row.PeerSupportScore != 20 {
		t.Fatalf("unexpected scores: %+v", row)
	}
}
