package database

import (
	"fmt"
	"log/slog"

	"github.com/scentbase/perfume-catalog-api/internal/models"
	"gorm.io/gorm"
)

// Migrate prepares the schema on the default connection.
func Migrate() error {
	return MigrateDatabase(DB)
}

// MigrateDatabase runs the schema migration against the given connection.
// Join tables are registered first so their composite keys and secondary
// indexes come from the join models; AutoMigrate then creates everything
// else, including the tag uniqueness indexes the reconciler relies on.
func MigrateDatabase(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Designer{},
		&models.Perfume{},
		&models.PerfumeNote{},
		&models.PerfumeDesigner{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database migrations completed")
	return nil
}

// SetupJoinTables registers the explicit join models for the two perfume
// relations. Must run on a connection before any association write.
func SetupJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Perfume{}, "Notes", &models.PerfumeNote{}); err != nil {
		return fmt.Errorf("failed to set up perfume_notes join table: %w", err)
	}
	if err := db.SetupJoinTable(&models.Perfume{}, "Designers", &models.PerfumeDesigner{}); err != nil {
		return fmt.Errorf("failed to set up perfume_designers join table: %w", err)
	}
	return nil
}
