package domain

import (
	"github.com/yungbote/hivemind-backend/internal/domain/notes"
	"github.com/yungbote/hivemind-backend/internal/domain/tutor"
	"github.com/yungbote/hivemind-backend/internal/domain/user"
)

type User = user.User
type StudentAnalytics = user.StudentAnalytics

type Subject = notes.Subject
type Note = notes.Note
type NoteWithAuthor = notes.NoteWithAuthor
type MasterNote = notes.MasterNote

type QuizQuestion = tutor.QuizQuestion
type PublicQuiz = tutor.PublicQuiz
type QuizState = tutor.QuizState

var MasterNoteTopic = notes.MasterNoteTopic
var QuizLabels = tutor.QuizLabels
