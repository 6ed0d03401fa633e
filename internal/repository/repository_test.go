package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// setupTestDB opens a private in-memory database per test, migrated with the
// full schema and the same error translation the production connection uses.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.College{},
		&models.Department{},
		&models.User{},
		&models.Faculty{},
		&models.Student{},
		&models.Subject{},
		&models.Room{},
		&models.Section{},
		&models.UserActivityLog{},
	))
	return db
}

func createTestDepartment(t *testing.T, db *gorm.DB, name, code string) models.Department {
	t.Helper()
	department := models.Department{Name: name, Code: code, Active: true}
	require.NoError(t, db.Create(&department).Error)
	return department
}
