package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lostfound_backend/internal/database"
	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
)

// newTestDB opens a throwaway SQLite database with the same schema and
// error translation the Postgres deployment uses, so unique-violation
// mapping behaves identically.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(user))
	return user
}

func createLostItem(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Item {
	t.Helper()

	item := &models.Item{
		Name:         name,
		Category:     "electronics",
		Description:  "test item",
		Location:     "library",
		Date:         "2025-03-01",
		Time:         "14:00",
		ContactEmail: owner.Email,
		Type:         models.ItemTypeLost,
		Reporter:     owner.Name,
		CreatedByID:  owner.ID,
		ClaimStatus:  models.ItemUnclaimed,
	}
	require.NoError(t, repositories.NewItemRepository(db).Create(item))
	return item
}
