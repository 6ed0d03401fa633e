package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestActivityLogRepositoryListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	user := models.User{Username: "jdoe", Email: "jdoe@example.com", PasswordHash: "x", Role: models.RoleStudent, Active: true}
	require.NoError(t, db.Create(&user).Error)

	entries := []models.UserActivityLog{
		{UserID: &user.ID, Action: models.ActionLogin, Success: true, CreatedAt: time.Now().Add(-2 * time.Hour)},
		{UserID: &user.ID, Action: models.ActionLogout, Success: true, CreatedAt: time.Now().Add(-time.Hour)},
		{Action: models.ActionFailedLogin, Success: false, Details: datatypes.JSONMap{"reason": "unknown username"}, CreatedAt: time.Now()},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	listed, total, err := repo.List(ctx, ActivityLogFilter{Action: models.ActionLogin})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, models.ActionLogin, listed[0].Action)

	listed, total, err = repo.List(ctx, ActivityLogFilter{UserID: &user.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)

	start := time.Now().Add(-90 * time.Minute)
	listed, total, err = repo.List(ctx, ActivityLogFilter{StartDate: &start})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, models.ActionFailedLogin, listed[0].Action, "newest entry first")
}

func TestActivityLogRepositoryDepartmentScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	deptA := createTestDepartment(t, db, "Computer Science", "CS")
	deptB := createTestDepartment(t, db, "Physics", "PHY")

	userA := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: models.RoleFaculty, DepartmentID: &deptA.ID, Active: true}
	userB := models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x", Role: models.RoleFaculty, DepartmentID: &deptB.ID, Active: true}
	require.NoError(t, db.Create(&userA).Error)
	require.NoError(t, db.Create(&userB).Error)

	require.NoError(t, repo.Create(ctx, &models.UserActivityLog{UserID: &userA.ID, Action: models.ActionLogin, Success: true}))
	require.NoError(t, repo.Create(ctx, &models.UserActivityLog{UserID: &userB.ID, Action: models.ActionLogin, Success: true}))

	listed, total, err := repo.List(ctx, ActivityLogFilter{DepartmentID: &deptA.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, userA.ID, *listed[0].UserID)
}

func TestActivityLogRepositoryCountByAction(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityLogRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.UserActivityLog{Action: models.ActionFailedLogin, Success: false}))
	require.NoError(t, repo.Create(ctx, &models.UserActivityLog{Action: models.ActionFailedLogin, Success: false}))
	require.NoError(t, repo.Create(ctx, &models.UserActivityLog{Action: models.ActionLogin, Success: true}))

	count, err := repo.CountByAction(ctx, models.ActionFailedLogin, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	success := true
	count, err = repo.CountByAction(ctx, models.ActionFailedLogin, &success)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}
