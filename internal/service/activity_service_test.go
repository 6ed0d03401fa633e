package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

func newActivityService(t *testing.T) (*ActivityService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	svc := NewActivityService(
		repository.NewActivityLogRepository(db),
		repository.NewUserRepository(db),
		zerolog.Nop(),
	)
	return svc, db
}

func recordLoginFor(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserActivityLog{
		UserID: &userID, Action: models.ActionLogin, Success: true,
	}).Error)
}

func TestActivityListVisibilityByRole(t *testing.T) {
	svc, db := newActivityService(t)
	ctx := context.Background()

	deptA := createDepartment(t, db, "Computer Science", "CS")
	deptB := createDepartment(t, db, "Physics", "PHY")

	superAdmin := createDeptUser(t, db, "root", models.RoleSuperAdmin, nil)
	deptAdmin := createDeptUser(t, db, "cs-admin", models.RoleDeptAdmin, &deptA.ID)
	faculty := createDeptUser(t, db, "cs-prof", models.RoleFaculty, &deptA.ID)
	outsider := createDeptUser(t, db, "phy-prof", models.RoleFaculty, &deptB.ID)

	recordLoginFor(t, db, faculty.ID)
	recordLoginFor(t, db, outsider.ID)

	result, err := svc.List(ctx, superAdmin.ID, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Pagination.Total)

	result, err = svc.List(ctx, deptAdmin.ID, dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Pagination.Total)
	require.Equal(t, faculty.ID, *result.Items[0].UserID)

	_, err = svc.List(ctx, faculty.ID, dto.ActivityListRequest{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestActivityListDeptAdminWithoutDepartment(t *testing.T) {
	svc, db := newActivityService(t)

	orphan := createDeptUser(t, db, "orphan-admin", models.RoleDeptAdmin, nil)

	_, err := svc.List(context.Background(), orphan.ID, dto.ActivityListRequest{})
	require.ErrorIs(t, err, ErrForbidden)
}
