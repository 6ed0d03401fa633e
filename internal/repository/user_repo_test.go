package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestUserRepositoryCreateRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	first := models.User{Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: true}
	require.NoError(t, repo.Create(ctx, &first))

	duplicate := models.User{Username: "jdoe2", Email: "jdoe@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: true}
	err := repo.Create(ctx, &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	department := createTestDepartment(t, db, "Computer Science", "CS")

	inactive := false
	users := []models.User{
		{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleDeptAdmin, DepartmentID: &department.ID, Active: true},
		{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleStudent, DepartmentID: &department.ID, Active: true},
		{Username: "carol", Email: "carol@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: false},
	}
	for i := range users {
		require.NoError(t, repo.Create(ctx, &users[i]))
	}

	listed, total, err := repo.List(ctx, UserFilter{Role: models.RoleStudent})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, listed, 2)

	listed, total, err = repo.List(ctx, UserFilter{DepartmentID: &department.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	listed, total, err = repo.List(ctx, UserFilter{Active: &inactive})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "carol", listed[0].Username)

	listed, total, err = repo.List(ctx, UserFilter{Search: "ALICE"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "alice", listed[0].Username)
}

func TestUserRepositoryDeactivateKeepsRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := models.User{Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "x", Role: models.RoleFaculty, Active: true}
	require.NoError(t, repo.Create(ctx, &user))

	updated, err := repo.Deactivate(ctx, user.ID)
	require.NoError(t, err)
	require.False(t, updated.Active)

	// The account survives deactivation.
	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "jdoe", fetched.Username)
	require.False(t, fetched.Active)

	_, err = repo.Deactivate(ctx, 9999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryRecordLogin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := models.User{Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: true}
	require.NoError(t, repo.Create(ctx, &user))

	at := time.Now().Truncate(time.Second)
	require.NoError(t, repo.RecordLogin(ctx, user.ID, at))

	fetched, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.LastLoginAt)
	require.WithinDuration(t, at, *fetched.LastLoginAt, time.Second)
}

func TestUserRepositoryCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	department := createTestDepartment(t, db, "Physics", "PHY")

	users := []models.User{
		{Username: "a", Email: "a@example.com", PasswordHash: "x", Role: models.RoleFaculty, DepartmentID: &department.ID, Active: true},
		{Username: "b", Email: "b@example.com", PasswordHash: "x", Role: models.RoleStudent, DepartmentID: &department.ID, Active: true},
		{Username: "c", Email: "c@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: false},
	}
	for i := range users {
		require.NoError(t, repo.Create(ctx, &users[i]))
	}

	count, err := repo.CountByRole(ctx, models.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.CountActive(ctx, true)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	count, err = repo.CountByDepartment(ctx, department.ID, models.RoleFaculty)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}
