package notes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type NoteRepo interface {
	Create(dbc dbctx.Context, notes []*types.Note) ([]*types.Note, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Note, error)
	ListBySubjectWithAuthor(dbc dbctx.Context, subjectID uuid.UUID, chapter int) ([]*types.NoteWithAuthor, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, subjectID *uuid.UUID) ([]*types.Note, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type noteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
	return &noteRepo{db: db, log: baseLog.With("repo", "NoteRepo")}
}

func (r *noteRepo) Create(dbc dbctx.Context, notes []*types.Note) ([]*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(notes) == 0 {
		return []*types.Note{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// GetByIDs returns the matching notes oldest first. Unknown ids are skipped.
func (r *noteRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Note
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListBySubjectWithAuthor filters on chapter only when chapter > 0.
func (r *noteRepo) ListBySubjectWithAuthor(dbc dbctx.Context, subjectID uuid.UUID, chapter int) ([]*types.NoteWithAuthor, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).
		Table("notes").
		Select("notes.*, users.pseudo_name AS pseudo_name, users.teacher AS teacher, users.year AS year").
		Joins("JOIN users ON users.id = notes.user_id").
		Where("notes.subject_id = ?", subjectID)
	if chapter > 0 {
		q = q.Where("notes.chapter = ?", chapter)
	}
	var out []*types.NoteWithAuthor
	if err := q.
		Order("users.teacher ASC").
		Order("users.year DESC").
		Order("users.pseudo_name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, subjectID *uuid.UUID) ([]*types.Note, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Where("user_id = ?", userID)
	if subjectID != nil && *subjectID != uuid.Nil {
		q = q.Where("subject_id = ?", *subjectID)
	}
	var out []*types.Note
	if err := q.
		Order("chapter ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *noteRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Note{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
