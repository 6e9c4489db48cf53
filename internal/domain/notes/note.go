package notes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is one transcribed upload. Rows are never updated after insert.
type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;index:idx_note_subject_chapter,priority:1;column:subject_id" json:"subject_id"`
	Chapter     int       `gorm:"not null;index:idx_note_subject_chapter,priority:2;column:chapter" json:"chapter"`
	Content     string    `gorm:"type:text;not null;column:content" json:"content"`
	RawImageURL string    `gorm:"column:raw_image_url" json:"raw_image_url,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

func (Note) TableName() string { return "notes" }

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// NoteWithAuthor is a Note joined with its owner's display fields.
type NoteWithAuthor struct {
	Note
	PseudoName string `json:"pseudo_name"`
	Teacher    string `json:"teacher"`
	Year       int    `json:"year"`
}
