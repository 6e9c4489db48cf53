package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentAnalytics is the last computed report for one user plus the raw quiz
// tallies the prep score is derived from.
type StudentAnalytics struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`
	InfoSynthesisScore float64   `gorm:"not null;default:0;column:info_synthesis_score" json:"info_synthesis_score"`
	PeerSupportScore   float64   `gorm:"not null;default:0;column:peer_support_score" json:"peer_support_score"`
	QuizAttempts       int       `gorm:"not null;default:0;column:quiz_attempts" json:"quiz_attempts"`
	QuizCorrect        int       `gorm:"not null;default:0;column:quiz_correct" json:"quiz_correct"`
	LastUpdated        time.Time `gorm:"not null;autoUpdateTime;column:last_updated" json:"last_updated"`
}

func (StudentAnalytics) TableName() string { return "student_analytics" }

func (a *StudentAnalytics) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
