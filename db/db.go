package db

import (
	"fmt"
	"os"
	"path/filepath"

	"radiotrack/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the SQLite database at path, creating the parent directory
// when needed, and runs migrations. WAL keeps readers unblocked during
// writes; the busy timeout covers the backup VACUUM.
func Connect(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_synchronous=NORMAL&_busy_timeout=5000", path)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Employee{},
		&models.PasswordHistory{},
		&models.Item{},
		&models.Post{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// Usernames are unique regardless of case; the column index alone can't
	// express that.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_username_nocase
	  ON %s (LOWER(username));
	`, models.EmployeeTable, models.EmployeeTable)).Error; err != nil {
		return err
	}

	return nil
}
