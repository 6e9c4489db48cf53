package notes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MasterNote is the synthesized study guide for one (user, subject, chapter).
// Version starts at 1 and grows by one on every re-synthesis.
type MasterNote struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_master_note_key,priority:1;column:user_id" json:"user_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_master_note_key,priority:2;column:subject_id" json:"subject_id"`
	Chapter   int       `gorm:"not null;uniqueIndex:idx_master_note_key,priority:3;column:chapter" json:"chapter"`
	Topic     string    `gorm:"index;column:topic" json:"topic"`
	Content   string    `gorm:"type:text;not null;column:content" json:"content"`
	Version   int       `gorm:"not null;default:1;column:version" json:"version"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (MasterNote) TableName() string { return "master_notes" }

func (m *MasterNote) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MasterNoteTopic is the display topic for a chapter of a subject.
func MasterNoteTopic(subjectName string, chapter int) string {
	if subjectName == "" {
		subjectName = "Unknown"
	}
	return fmt.Sprintf("%s - Chapter %d", subjectName, chapter)
}
