package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/hivemind-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, pseudo, teacher string, year int) *types.User {
	tb.Helper()
	u := &types.User{
		ID:         uuid.New(),
		Email:      email,
		Password:   "pw",
		PseudoName: pseudo,
		Teacher:    teacher,
		Year:       year,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedSubject(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Subject {
	tb.Helper()
	s := &types.Subject{ID: uuid.New(), Name: name}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

// SeedNote inserts a note with an explicit created_at so ordering is stable.
func SeedNote(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, subjectID uuid.UUID, chapter int, content string, createdAt time.Time) *types.Note {
	tb.Helper()
	n := &types.Note{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subjectID,
		Chapter:   chapter,
		Content:   content,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed note: %v", err)
	}
	return n
}

func SeedMasterNote(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, subjectID uuid.UUID, chapter int, content string, createdAt time.Time) *types.MasterNote {
	tb.Helper()
	m := &types.MasterNote{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subjectID,
		Chapter:   chapter,
		Topic:     types.MasterNoteTopic("seed", chapter),
		Content:   content,
		Version:   1,
		CreatedAt: createdAt,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed master note: %v", err)
	}
	return m
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
