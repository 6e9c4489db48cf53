package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type Repos struct {
	User       repos.UserRepo
	Analytics  repos.StudentAnalyticsRepo
	Subject    repos.SubjectRepo
	Note       repos.NoteRepo
	MasterNote repos.MasterNoteRepo
	QuizState  repos.QuizStateRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Analytics:  repos.NewStudentAnalyticsRepo(db, log),
		Subject:    repos.NewSubjectRepo(db, log),
		Note:       repos.NewNoteRepo(db, log),
		MasterNote: repos.NewMasterNoteRepo(db, log),
		QuizState:  repos.NewQuizStateRepo(db, log),
	}
}
