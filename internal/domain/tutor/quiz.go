package tutor

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var QuizLabels = []string{"A", "B", "C", "D"}

// QuizQuestion is the single pending multiple-choice question for a user.
// Answer is kept server side and never returned to the client.
type QuizQuestion struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation"`
}

// Valid reports whether q has a prompt, every A-D option and an A-D answer.
func (q *QuizQuestion) Valid() bool {
	if q == nil || strings.TrimSpace(q.Question) == "" {
		return false
	}
	for _, l := range QuizLabels {
		if strings.TrimSpace(q.Options[l]) == "" {
			return false
		}
	}
	ans := strings.ToUpper(strings.TrimSpace(q.Answer))
	for _, l := range QuizLabels {
		if ans == l {
			return true
		}
	}
	return false
}

// PublicQuiz is the client-visible part of a QuizQuestion.
type PublicQuiz struct {
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

func (q *QuizQuestion) Public() PublicQuiz {
	opts := make(map[string]string, len(q.Options))
	for k, v := range q.Options {
		opts[k] = v
	}
	return PublicQuiz{Question: q.Question, Options: opts}
}

// QuizState is the durable row used by the postgres quiz store.
type QuizState struct {
	UserID      uuid.UUID      `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	Question    string         `gorm:"type:text;not null;column:question" json:"question"`
	Options     datatypes.JSON `gorm:"type:json;not null;column:options" json:"options"`
	Answer      string         `gorm:"not null;column:answer" json:"-"`
	Explanation string         `gorm:"type:text;column:explanation" json:"explanation"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (QuizState) TableName() string { return "quiz_states" }
