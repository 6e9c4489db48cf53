package tutor

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type QuizStateRepo interface {
	GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.QuizState, error)
	Upsert(dbc dbctx.Context, state *types.QuizState) error
}

type quizStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizStateRepo(db *gorm.DB, baseLog *logger.Logger) QuizStateRepo {
	return &quizStateRepo{db: db, log: baseLog.With("repo", "QuizStateRepo")}
}

func (r *quizStateRepo) GetByUserID(dbc dbctx.Context, userID uuid.UUID) (*types.QuizState, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []*types.QuizState
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

// Upsert overwrites any existing row for the user.
func (r *quizStateRepo) Upsert(dbc dbctx.Context, state *types.QuizState) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	state.UpdatedAt = time.Now().UTC()
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"question", "options", "answer", "explanation", "updated_at"}),
		}).
		Create(state).Error
}
