package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/observability"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

const (
	TutorModeChat       = "chat"
	TutorModeQuiz       = "quiz"
	TutorModeFlashcards = "flashcards"
)

var answerLetter = regexp.MustCompile(`\b([abcd])\b`)

type TutorInput struct {
	UserID    uuid.UUID
	SubjectID *uuid.UUID
	Chapter   int
	Question  string
	Mode      string
}

type TutorService interface {
	// Ask always yields a reply string; generation failures degrade to fixed
	// apology text. The error is reserved for storage failures.
	Ask(ctx context.Context, in TutorInput) (string, error)
	LatestQuiz(ctx context.Context, userID uuid.UUID) (*types.PublicQuiz, error)
	Available() bool
}

type tutorService struct {
	log            *logger.Logger
	masterNoteRepo repos.MasterNoteRepo
	analyticsRepo  repos.StudentAnalyticsRepo
	store          QuizStore
	generator      TextGenerator
	prompts        *Prompts
}

func NewTutorService(
	log *logger.Logger,
	masterNoteRepo repos.MasterNoteRepo,
	analyticsRepo repos.StudentAnalyticsRepo,
	store QuizStore,
	generator TextGenerator,
	prompts *Prompts,
) TutorService {
	return &tutorService{
		log:            log.With("service", "TutorService"),
		masterNoteRepo: masterNoteRepo,
		analyticsRepo:  analyticsRepo,
		store:          store,
		generator:      generator,
		prompts:        prompts,
	}
}

func (s *tutorService) Available() bool { return s.generator != nil }

func (s *tutorService) Ask(ctx context.Context, in TutorInput) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	if mode == "" {
		mode = TutorModeChat
	}
	if mode == TutorModeQuiz {
		normalized := strings.ToLower(strings.TrimSpace(in.Question))
		if answerLetter.MatchString(normalized) {
			return s.evaluateAnswer(ctx, in.UserID, normalized)
		}
	}

	knowledge, err := s.resolveContext(ctx, in)
	if err != nil {
		return "", err
	}
	system := render(s.prompts.TutorSystem, "mode", mode)

	if mode == TutorModeQuiz {
		return s.generateQuiz(ctx, in.UserID, system, knowledge)
	}

	if s.generator == nil {
		return s.prompts.Replies.ChatFailed, nil
	}
	reply, err := s.generator.GenerateText(ctx, system, render(s.prompts.ChatRequest, "context", knowledge, "question", in.Question))
	if err != nil {
		s.log.Warn("Tutor generation failed", "mode", mode, "error", err)
		return s.prompts.Replies.ChatFailed, nil
	}
	return reply, nil
}

// resolveContext picks the exact chapter's Master Note when subject and
// chapter are given, else the user's newest one.
func (s *tutorService) resolveContext(ctx context.Context, in TutorInput) (string, error) {
	dbc := dbctx.Context{Ctx: ctx}
	var mn *types.MasterNote
	var err error
	if in.SubjectID != nil && *in.SubjectID != uuid.Nil && in.Chapter > 0 {
		if mn, err = s.masterNoteRepo.GetByKey(dbc, in.UserID, *in.SubjectID, in.Chapter); err != nil {
			return "", fmt.Errorf("get master note: %w", err)
		}
	}
	if mn == nil {
		if mn, err = s.masterNoteRepo.GetLatestByUser(dbc, in.UserID); err != nil {
			return "", fmt.Errorf("get latest master note: %w", err)
		}
	}
	if mn == nil {
		return s.prompts.ContextWithoutMasterNote, nil
	}
	return render(s.prompts.ContextWithMasterNote, "content", mn.Content), nil
}

func (s *tutorService) evaluateAnswer(ctx context.Context, userID uuid.UUID, normalized string) (string, error) {
	pending, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load quiz state: %w", err)
	}
	if pending == nil {
		observability.Current().IncQuizEvent("no_pending")
		return s.prompts.Replies.NoPendingQuiz, nil
	}
	m := answerLetter.FindStringSubmatch(normalized)
	correct := strings.ToUpper(strings.TrimSpace(pending.Answer))
	if m == nil || correct == "" {
		return s.prompts.Replies.AnswerUnparsed, nil
	}
	choice := strings.ToUpper(m[1])
	ok := choice == correct

	if s.analyticsRepo != nil {
		if err := s.analyticsRepo.RecordQuizAnswer(dbctx.Context{Ctx: ctx}, userID, ok); err != nil {
			s.log.Warn("Recording quiz answer failed", "user_id", userID, "error", err)
		}
	}
	if ok {
		observability.Current().IncQuizEvent("answered_correct")
		return "Correct. " + pending.Explanation, nil
	}
	observability.Current().IncQuizEvent("answered_incorrect")
	return fmt.Sprintf("Incorrect. The correct answer is %s. %s", correct, pending.Explanation), nil
}

func (s *tutorService) generateQuiz(ctx context.Context, userID uuid.UUID, system, knowledge string) (string, error) {
	if s.generator == nil {
		return s.prompts.Replies.QuizFailed, nil
	}
	raw, err := s.generator.GenerateText(ctx, system, render(s.prompts.QuizRequest, "context", knowledge))
	if err != nil {
		s.log.Warn("Quiz generation failed", "error", err)
		observability.Current().IncQuizEvent("generation_failed")
		return s.prompts.Replies.QuizFailed, nil
	}
	q, err := parseQuizQuestion(raw)
	if err != nil {
		s.log.Warn("Quiz output unparseable", "error", err)
		observability.Current().IncQuizEvent("generation_failed")
		return s.prompts.Replies.QuizFailed, nil
	}
	if err := s.store.Put(ctx, userID, q); err != nil {
		return "", fmt.Errorf("save quiz state: %w", err)
	}
	observability.Current().IncQuizEvent("generated")
	return formatQuiz(q), nil
}

// parseQuizQuestion decodes the first '{' .. last '}' span of raw.
func parseQuizQuestion(raw string) (*types.QuizQuestion, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in model output")
	}
	var q types.QuizQuestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &q); err != nil {
		return nil, fmt.Errorf("decode quiz json: %w", err)
	}
	q.Answer = strings.ToUpper(strings.TrimSpace(q.Answer))
	if !q.Valid() {
		return nil, errors.New("quiz json missing question, options or answer")
	}
	return &q, nil
}

func formatQuiz(q *types.QuizQuestion) string {
	lines := make([]string, 0, len(types.QuizLabels))
	for _, l := range types.QuizLabels {
		lines = append(lines, fmt.Sprintf("%s) %s", l, q.Options[l]))
	}
	return q.Question + "\n\n" + strings.Join(lines, "\n")
}

func (s *tutorService) LatestQuiz(ctx context.Context, userID uuid.UUID) (*types.PublicQuiz, error) {
	q, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load quiz state: %w", err)
	}
	if q == nil {
		return nil, apierr.NotFound("No active quiz found")
	}
	pub := q.Public()
	return &pub, nil
}
