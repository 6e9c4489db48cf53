package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type NoteService interface {
	// ListAll returns every student's notes for a subject; chapter <= 0 means all chapters.
	ListAll(ctx context.Context, subjectID uuid.UUID, chapter int) ([]*types.NoteWithAuthor, error)
	ListMine(ctx context.Context, userID uuid.UUID, subjectID *uuid.UUID) ([]*types.Note, error)
}

type noteService struct {
	log      *logger.Logger
	noteRepo repos.NoteRepo
}

func NewNoteService(log *logger.Logger, noteRepo repos.NoteRepo) NoteService {
	return &noteService{log: log.With("service", "NoteService"), noteRepo: noteRepo}
}

func (s *noteService) ListAll(ctx context.Context, subjectID uuid.UUID, chapter int) ([]*types.NoteWithAuthor, error) {
	return s.noteRepo.ListBySubjectWithAuthor(dbctx.Context{Ctx: ctx}, subjectID, chapter)
}

func (s *noteService) ListMine(ctx context.Context, userID uuid.UUID, subjectID *uuid.UUID) ([]*types.Note, error) {
	return s.noteRepo.ListByUser(dbctx.Context{Ctx: ctx}, userID, subjectID)
}
