package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type StudentAnalyticsRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.StudentAnalytics, error)
	RecordQuizAnswer(dbc dbctx.Context, userID uuid.UUID, correct bool) error
	UpsertScores(dbc dbctx.Context, userID uuid.UUID, infoSynthesis, peerSupport float64) error
}

type studentAnalyticsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentAnalyticsRepo(db *gorm.DB, baseLog *logger.Logger) StudentAnalyticsRepo {
	return &studentAnalyticsRepo{db: db, log: baseLog.With("repo", "StudentAnalyticsRepo")}
}

func (r *studentAnalyticsRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.StudentAnalytics, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.StudentAnalytics
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// RecordQuizAnswer bumps the attempt tally (and the correct tally when
// correct) in a single upsert so concurrent answers are never lost.
func (r *studentAnalyticsRepo) RecordQuizAnswer(dbc dbctx.Context, userID uuid.UUID, correct bool) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	correctInc := 0
	if correct {
		correctInc = 1
	}
	row := &types.StudentAnalytics{
		UserID:       userID,
		QuizAttempts: 1,
		QuizCorrect:  correctInc,
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quiz_attempts": gorm.Expr("student_analytics.quiz_attempts + 1"),
				"quiz_correct":  gorm.Expr("student_analytics.quiz_correct + ?", correctInc),
				"last_updated":  time.Now().UTC(),
			}),
		}).
		Create(row).Error
}

func (r *studentAnalyticsRepo) UpsertScores(dbc dbctx.Context, userID uuid.UUID, infoSynthesis, peerSupport float64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	row := &types.StudentAnalytics{
		UserID:             userID,
		InfoSynthesisScore: infoSynthesis,
		PeerSupportScore:   peerSupport,
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"info_synthesis_score": infoSynthesis,
				"peer_support_score":   peerSupport,
				"last_updated":         time.Now().UTC(),
			}),
		}).
		Create(row).Error
}
