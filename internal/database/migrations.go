package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task indexes for the ownership checks and listing
		{"tasks", "idx_tasks_owner_id", "owner_id"},
		{"tasks", "idx_tasks_status", "status"},

		// Message indexes: the owner filter and the task_id ordering of the
		// message index, plus the cascade delete by task
		{"messages", "idx_messages_owner_id", "owner_id"},
		{"messages", "idx_messages_task_id", "task_id"},

		// Collaborator lookups
		{"task_collaborators", "idx_task_collaborators_task_id", "task_id"},
		{"task_collaborators", "idx_task_collaborators_user_id", "user_id"},
	}

	for _, idx := range indexes {
		exists, err := indexExists(db, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}
		if exists {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

func indexExists(db *gorm.DB, table, name string) (bool, error) {
	var count int64
	var err error

	switch db.Dialector.Name() {
	case "mysql":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM information_schema.statistics
			WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
		`, table, name).Scan(&count).Error
	case "postgres":
		err = db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, table, name).Scan(&count).Error
	default:
		// SQLite in tests: Migrator covers existence checks
		return db.Migrator().HasIndex(table, name), nil
	}

	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BootstrapIndexes creates the secondary indexes on an already-migrated
// schema; Migrate owns the tables themselves
func BootstrapIndexes(db *gorm.DB) error {
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
