package notes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type MasterNoteRepo interface {
	Create(dbc dbctx.Context, note *types.MasterNote) error
	GetByKey(dbc dbctx.Context, userID, subjectID uuid.UUID, chapter int) (*types.MasterNote, error)
	GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.MasterNote, error)
	ReplaceContent(dbc dbctx.Context, userID, subjectID uuid.UUID, chapter int, content string) (bool, error)
}

type masterNoteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterNoteRepo(db *gorm.DB, baseLog *logger.Logger) MasterNoteRepo {
	return &masterNoteRepo{db: db, log: baseLog.With("repo", "MasterNoteRepo")}
}

func (r *masterNoteRepo) Create(dbc dbctx.Context, note *types.MasterNote) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx).Create(note).Error
}

// GetByKey returns nil, nil when no master note exists for the key.
func (r *masterNoteRepo) GetByKey(dbc dbctx.Context, userID, subjectID uuid.UUID, chapter int) (*types.MasterNote, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MasterNote
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ? AND subject_id = ? AND chapter = ?", userID, subjectID, chapter).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *masterNoteRepo) GetLatestByUser(dbc dbctx.Context, userID uuid.UUID) (*types.MasterNote, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.MasterNote
	if err := transaction.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

// ReplaceContent swaps the content and bumps version in one statement.
// It reports false when no row exists for the key.
func (r *masterNoteRepo) ReplaceContent(dbc dbctx.Context, userID, subjectID uuid.UUID, chapter int, content string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.MasterNote{}).
		Where("user_id = ? AND subject_id = ? AND chapter = ?", userID, subjectID, chapter).
		Updates(map[string]any{
			"content": content,
			"version": gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
