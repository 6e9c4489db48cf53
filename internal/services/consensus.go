package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/observability"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

// TextGenerator is the text-only half of openai.Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type ConsensusInput struct {
	UserID    uuid.UUID
	SubjectID uuid.UUID
	// Chapter is optional; nil means infer it from the first resolved note.
	Chapter *int
	NoteIDs []uuid.UUID
}

type ConsensusResult struct {
	Message        string `json:"message"`
	NotesProcessed int    `json:"notes_processed"`
	Chapter        int    `json:"chapter"`
	Version        int    `json:"version"`
}

type ConsensusService interface {
	Process(ctx context.Context, in ConsensusInput) (*ConsensusResult, error)
	GetMasterNote(ctx context.Context, userID, subjectID uuid.UUID, chapter int) (*types.MasterNote, error)
	GetLatestMasterNote(ctx context.Context, userID uuid.UUID) (*types.MasterNote, error)
	RenderMasterNotePDF(ctx context.Context, userID, subjectID uuid.UUID, chapter int) ([]byte, string, error)
	Available() bool
}

type consensusService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	subjectRepo    repos.SubjectRepo
	noteRepo       repos.NoteRepo
	masterNoteRepo repos.MasterNoteRepo
	generator      TextGenerator
	prompts        *Prompts
}

// NewConsensusService accepts a nil generator; Process then answers 503.
func NewConsensusService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	subjectRepo repos.SubjectRepo,
	noteRepo repos.NoteRepo,
	masterNoteRepo repos.MasterNoteRepo,
	generator TextGenerator,
	prompts *Prompts,
) ConsensusService {
	return &consensusService{
		db:             db,
		log:            log.With("service", "ConsensusService"),
		userRepo:       userRepo,
		subjectRepo:    subjectRepo,
		noteRepo:       noteRepo,
		masterNoteRepo: masterNoteRepo,
		generator:      generator,
		prompts:        prompts,
	}
}

func (s *consensusService) Available() bool { return s.generator != nil }

func (s *consensusService) Process(ctx context.Context, in ConsensusInput) (res *ConsensusResult, err error) {
	ctx, span := observability.StartSpan(ctx, "consensus.process",
		attribute.String("subject_id", in.SubjectID.String()),
		attribute.Int("note_ids", len(in.NoteIDs)),
	)
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
			if ae, ok := apierr.As(err); ok {
				status = ae.Code
			}
			span.SetStatus(codes.Error, err.Error())
		}
		observability.Current().IncConsensus(status)
		span.End()
	}()

	dbc := dbctx.Context{Ctx: ctx}
	notes, err := s.noteRepo.GetByIDs(dbc, dedupeUUIDs(in.NoteIDs))
	if err != nil {
		return nil, apierr.Internal("Database error loading notes", err)
	}
	if len(notes) == 0 {
		return nil, apierr.BadRequest("No notes selected for consensus")
	}

	chapter := 1
	switch {
	case in.Chapter != nil:
		chapter = *in.Chapter
	case notes[0].Chapter != 0:
		chapter = notes[0].Chapter
	}
	span.SetAttributes(attribute.Int("chapter", chapter))

	if s.generator == nil {
		return nil, apierr.ServiceUnavailable("Consensus agent not configured")
	}

	combined, err := s.combineNotes(dbc, notes)
	if err != nil {
		return nil, apierr.Internal("Database error loading note authors", err)
	}
	user := render(s.prompts.MasterNoteUser, "chapter", fmt.Sprint(chapter), "notes", combined)
	content, err := s.generator.GenerateText(ctx, s.prompts.MasterNoteSystem, user)
	if err != nil {
		s.log.Error("Master Note synthesis failed", "error", err, "chapter", chapter)
		return nil, apierr.Internal("AI Agent error: "+err.Error(), err)
	}

	topic, err := s.topicFor(dbc, in.SubjectID, chapter)
	if err != nil {
		return nil, apierr.Internal("Database error saving Master Note", err)
	}

	var version int
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, uErr := s.upsertMasterNote(dbctx.Context{Ctx: ctx, Tx: tx}, in.UserID, in.SubjectID, chapter, topic, content)
		version = v
		return uErr
	})
	if txErr != nil {
		s.log.Error("Saving Master Note failed", "error", txErr, "user_id", in.UserID, "chapter", chapter)
		return nil, apierr.Internal("Database error saving Master Note", txErr)
	}

	s.log.Info("Master Note synthesized",
		"user_id", in.UserID,
		"subject_id", in.SubjectID,
		"chapter", chapter,
		"version", version,
		"notes_processed", len(notes),
	)
	return &ConsensusResult{
		Message:        "Consensus reached and Master Note updated",
		NotesProcessed: len(notes),
		Chapter:        chapter,
		Version:        version,
	}, nil
}

// upsertMasterNote bumps the version of an existing row in place or inserts
// version 1. An insert that loses a race to a concurrent insert falls back
// to the update once.
func (s *consensusService) upsertMasterNote(dbc dbctx.Context, userID, subjectID uuid.UUID, chapter int, topic, content string) (int, error) {
	updated, err := s.masterNoteRepo.ReplaceContent(dbc, userID, subjectID, chapter, content)
	if err != nil {
		return 0, err
	}
	if !updated {
		const sp = "master_note_insert"
		if err := dbc.Tx.SavePoint(sp).Error; err != nil {
			return 0, err
		}
		createErr := s.masterNoteRepo.Create(dbc, &types.MasterNote{
			UserID:    userID,
			SubjectID: subjectID,
			Chapter:   chapter,
			Topic:     topic,
			Content:   content,
			Version:   1,
		})
		switch {
		case createErr == nil:
			return 1, nil
		case errors.Is(createErr, gorm.ErrDuplicatedKey):
			if err := dbc.Tx.RollbackTo(sp).Error; err != nil {
				return 0, err
			}
			if updated, err = s.masterNoteRepo.ReplaceContent(dbc, userID, subjectID, chapter, content); err != nil {
				return 0, err
			}
			if !updated {
				return 0, fmt.Errorf("master note vanished after duplicate insert")
			}
		default:
			return 0, createErr
		}
	}
	mn, err := s.masterNoteRepo.GetByKey(dbc, userID, subjectID, chapter)
	if err != nil {
		return 0, err
	}
	if mn == nil {
		return 0, fmt.Errorf("master note missing after update")
	}
	return mn.Version, nil
}

func (s *consensusService) combineNotes(dbc dbctx.Context, notes []*types.Note) (string, error) {
	userIDs := make([]uuid.UUID, 0, len(notes))
	for _, n := range notes {
		userIDs = append(userIDs, n.UserID)
	}
	users, err := s.userRepo.GetByIDs(dbc, dedupeUUIDs(userIDs))
	if err != nil {
		return "", err
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		pseudo, teacher, year := "Unknown", "Unknown", 0
		if u := byID[n.UserID]; u != nil {
			if u.PseudoName != "" {
				pseudo = u.PseudoName
			}
			if u.Teacher != "" {
				teacher = u.Teacher
			}
			year = u.Year
		}
		parts = append(parts, fmt.Sprintf("Note from %s (%s, %d):\n%s", pseudo, teacher, year, n.Content))
	}
	return strings.Join(parts, "\n---\n"), nil
}

func (s *consensusService) topicFor(dbc dbctx.Context, subjectID uuid.UUID, chapter int) (string, error) {
	subjects, err := s.subjectRepo.GetByIDs(dbc, []uuid.UUID{subjectID})
	if err != nil {
		return "", err
	}
	name := ""
	if len(subjects) > 0 {
		name = subjects[0].Name
	}
	return types.MasterNoteTopic(name, chapter), nil
}

func (s *consensusService) GetMasterNote(ctx context.Context, userID, subjectID uuid.UUID, chapter int) (*types.MasterNote, error) {
	mn, err := s.masterNoteRepo.GetByKey(dbctx.Context{Ctx: ctx}, userID, subjectID, chapter)
	if err != nil {
		return nil, fmt.Errorf("get master note: %w", err)
	}
	if mn == nil {
		return nil, apierr.NotFound("Master Note not found for this chapter")
	}
	return mn, nil
}

func (s *consensusService) GetLatestMasterNote(ctx context.Context, userID uuid.UUID) (*types.MasterNote, error) {
	mn, err := s.masterNoteRepo.GetLatestByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("get latest master note: %w", err)
	}
	if mn == nil {
		return nil, apierr.NotFound("No Master Note found")
	}
	return mn, nil
}

func (s *consensusService) RenderMasterNotePDF(ctx context.Context, userID, subjectID uuid.UUID, chapter int) ([]byte, string, error) {
	mn, err := s.masterNoteRepo.GetByKey(dbctx.Context{Ctx: ctx}, userID, subjectID, chapter)
	if err != nil {
		return nil, "", fmt.Errorf("get master note: %w", err)
	}
	if mn == nil {
		return nil, "", apierr.NotFound("Master Note not found")
	}
	pdf, err := RenderMasterNotePDF(mn)
	if err != nil {
		return nil, "", apierr.Internal("PDF generation failed", err)
	}
	return pdf, MasterNotePDFName(subjectID, chapter), nil
}

func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
