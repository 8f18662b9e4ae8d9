package dao

import (
	"fmt"

	"gorm.io/gorm"
)

// InitTables migrates the schema. The partial unique index cannot be expressed
// through struct tags, so it is created separately.
func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Event{},
		&Ticket{},
		&Registration{},
		&ForumPost{},
		&Poll{},
		&PollVote{},
		&QA{},
		&Notification{},
	)
	if err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	err = db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS " + uniqueActiveRegistration +
			" ON registrations (user_id, event_id) WHERE status <> '" + statusCancelled + "'",
	).Error
	if err != nil {
		return fmt.Errorf("create %s -> %w", uniqueActiveRegistration, err)
	}

	return nil
}
