package database

import (
	"gorm.io/gorm"

	"lostfound_backend/internal/models"
)

// Migrate creates or updates the schema for every model, including the
// partial unique index that allows at most one pending claim per item.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.Claim{},
		&models.Comment{},
		&models.Notification{},
	)
}
