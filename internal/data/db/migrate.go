package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/hivemind-backend/internal/domain"
)

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&types.User{},
		&types.StudentAnalytics{},
		&types.Subject{},
		&types.Note{},
		&types.MasterNote{},
		&types.QuizState{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// AllTables lists every table AutoMigrateAll creates.
func AllTables() []string {
	return []string{"users", "student_analytics", "subjects", "notes", "master_notes", "quiz_states"}
}

// ClearableTables is the delete order used by the clear command. Subjects
// are reference data and survive.
func ClearableTables() []string {
	return []string{
		"student_analytics",
		"quiz_states",
		"notes",
		"master_notes",
		"users",
	}
}
