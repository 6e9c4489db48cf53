package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos/notes"
	"github.com/yungbote/hivemind-backend/internal/data/repos/tutor"
	"github.com/yungbote/hivemind-backend/internal/data/repos/user"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type StudentAnalyticsRepo = user.StudentAnalyticsRepo

type SubjectRepo = notes.SubjectRepo
type NoteRepo = notes.NoteRepo
type MasterNoteRepo = notes.MasterNoteRepo

type QuizStateRepo = tutor.QuizStateRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }
func NewStudentAnalyticsRepo(db *gorm.DB, log *logger.Logger) StudentAnalyticsRepo {
	return user.NewStudentAnalyticsRepo(db, log)
}

func NewSubjectRepo(db *gorm.DB, log *logger.Logger) SubjectRepo {
	return notes.NewSubjectRepo(db, log)
}
func NewNoteRepo(db *gorm.DB, log *logger.Logger) NoteRepo { return notes.NewNoteRepo(db, log) }
func NewMasterNoteRepo(db *gorm.DB, log *logger.Logger) MasterNoteRepo {
	return notes.NewMasterNoteRepo(db, log)
}

func NewQuizStateRepo(db *gorm.DB, log *logger.Logger) QuizStateRepo {
	return tutor.NewQuizStateRepo(db, log)
}
