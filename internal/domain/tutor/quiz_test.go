package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validQuiz() *QuizQuestion {
	return &QuizQuestion{
		Question:    "What is 2+2?",
		Options:     map[string]string{"A": "3", "B": "4", "C": "5", "D": "22"},
		Answer:      "B",
		Explanation: "Basic arithmetic.",
	}
}

func TestQuizQuestionValid(t *testing.T) {
	assert.True(t, validQuiz().Valid())

	q := validQuiz()
	q.Answer = "E"
	assert.False(t, q.Valid())

	q = validQuiz()
	delete(q.Options, "D")
	assert.False(t, q.Valid())

	q = validQuiz()
	q.Question = "  "
	assert.False(t, q.Valid())

	var nilQuiz *QuizQuestion
	assert.False(t, nilQuiz.Valid())
}

func TestPublicStripsAnswer(t *testing.T) {
	q := validQuiz()
	pub := q.Public()
	assert.Equal(t, q.Question, pub.Question)
	assert.Equal(t, q.Options, pub.Options)

	pub.Options["A"] = "changed"
	assert.Equal(t, "3", q.Options["A"])
}
