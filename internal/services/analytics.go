package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type AnalyticsReport struct {
	PrepScore         int `json:"prep_score"`
	ContributionScore int `json:"contribution_score"`
	PrepLevel         int `json:"prep_level"`
}

type AnalyticsService interface {
	Report(ctx context.Context, userID uuid.UUID) (*AnalyticsReport, error)
}

type analyticsService struct {
	log           *logger.Logger
	noteRepo      repos.NoteRepo
	analyticsRepo repos.StudentAnalyticsRepo
}

func NewAnalyticsService(log *logger.Logger, noteRepo repos.NoteRepo, analyticsRepo repos.StudentAnalyticsRepo) AnalyticsService {
	return &analyticsService{
		log:           log.With("service", "AnalyticsService"),
		noteRepo:      noteRepo,
		analyticsRepo: analyticsRepo,
	}
}

func (s *analyticsService) Report(ctx context.Context, userID uuid.UUID) (*AnalyticsReport, error) {
	dbc := dbctx.Context{Ctx: ctx}
	count, err := s.noteRepo.CountByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}
	row, err := s.analyticsRepo.GetByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}
	attempts, correct := 0, 0
	if row != nil {
		attempts, correct = row.QuizAttempts, row.QuizCorrect
	}

	report := computeReport(count, attempts, correct)
	if err := s.analyticsRepo.UpsertScores(dbc, userID, float64(report.PrepScore), float64(report.ContributionScore)); err != nil {
		s.log.Warn("Persisting analytics scores failed", "user_id", userID, "error", err)
	}
	return report, nil
}

// computeReport: ten notes saturate contribution; prep is the quiz hit rate.
func computeReport(notes int64, attempts, correct int) *AnalyticsReport {
	contribution := int(min(100, notes*10))
	prep := 0
	if attempts > 0 {
		prep = int(math.Round(100 * float64(correct) / float64(attempts)))
	}
	level := 1
	if prep > 50 {
		level = 3
	}
	return &AnalyticsReport{PrepScore: prep, ContributionScore: contribution, PrepLevel: level}
}
