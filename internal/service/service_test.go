package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// setupServiceDB opens a private in-memory database per test with the full
// schema and the production error translation.
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type authEnv struct {
	db      *gorm.DB
	users   repository.UserRepository
	tokens  *auth.TokenManager
	service *AuthService
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	db := setupServiceDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	users := repository.NewUserRepository(db)
	recorder := NewActivityService(repository.NewActivityLogRepository(db), users, logger)
	tokens := auth.NewTokenManager(auth.TokenManagerConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
		Issuer:        "campus-api-test",
	})

	return &authEnv{
		db:     db,
		users:  users,
		tokens: tokens,
		service: NewAuthService(
			users, tokens, auth.NewDenylist(client), recorder, testValidator(), logger,
		),
	}
}

// countActivity counts audit rows matching an action and success flag.
func countActivity(t *testing.T, db *gorm.DB, action string, success bool) int64 {
	t.Helper()
	var count int64
	err := db.Model(&models.UserActivityLog{}).
		Where("action = ? AND success = ?", action, success).Count(&count).Error
	require.NoError(t, err)
	return count
}

func createActiveUser(t *testing.T, db *gorm.DB, username string, role models.Role, password string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
