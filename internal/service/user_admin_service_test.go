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

func newUserAdminService(t *testing.T) (*UserAdminService, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t)
	logger := zerolog.Nop()
	users := repository.NewUserRepository(db)
	svc := NewUserAdminService(
		users,
		NewActivityService(repository.NewActivityLogRepository(db), users, logger),
		testValidator(),
		logger,
	)
	return svc, db
}

func createDeptUser(t *testing.T, db *gorm.DB, username string, role models.Role, departmentID *uint) models.User {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		DepartmentID: departmentID,
		Active:       true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestUserAdminListScopedToDepartment(t *testing.T) {
	svc, db := newUserAdminService(t)
	ctx := context.Background()

	deptA := createDepartment(t, db, "Computer Science", "CS")
	deptB := createDepartment(t, db, "Physics", "PHY")

	admin := createDeptUser(t, db, "admin-a", models.RoleDeptAdmin, &deptA.ID)
	createDeptUser(t, db, "faculty-a", models.RoleFaculty, &deptA.ID)
	createDeptUser(t, db, "student-b", models.RoleStudent, &deptB.ID)

	resp, err := svc.List(ctx, admin.ID, dto.UserListRequest{DepartmentID: &deptB.ID})
	require.NoError(t, err)
	for _, item := range resp.Items {
		require.NotEqual(t, "student-b", item.Username, "requested filter cannot escape the admin's department")
	}
	usernames := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		usernames = append(usernames, item.Username)
	}
	require.Contains(t, usernames, "faculty-a")
}

func TestUserAdminListForbiddenForNonAdmins(t *testing.T) {
	svc, db := newUserAdminService(t)

	student := createDeptUser(t, db, "student", models.RoleStudent, nil)
	_, err := svc.List(context.Background(), student.ID, dto.UserListRequest{})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUserAdminUpdateRoleGated(t *testing.T) {
	svc, db := newUserAdminService(t)
	ctx := context.Background()

	dept := createDepartment(t, db, "Computer Science", "CS")
	admin := createDeptUser(t, db, "admin", models.RoleDeptAdmin, &dept.ID)
	target := createDeptUser(t, db, "student", models.RoleStudent, &dept.ID)

	role := "faculty"
	resp, err := svc.Update(ctx, admin.ID, target.ID, dto.AdminUserUpdateRequest{Role: &role})
	require.NoError(t, err)
	require.Equal(t, "faculty", resp.Role)

	// Promotion to an admin role is beyond a dept admin's reach.
	elevated := "super_admin"
	_, err = svc.Update(ctx, admin.ID, target.ID, dto.AdminUserUpdateRequest{Role: &elevated})
	require.ErrorIs(t, err, ErrForbidden)

	// As is moving a user into another department.
	other := createDepartment(t, db, "Physics", "PHY")
	_, err = svc.Update(ctx, admin.ID, target.ID, dto.AdminUserUpdateRequest{DepartmentID: &other.ID})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUserAdminDeactivate(t *testing.T) {
	svc, db := newUserAdminService(t)
	ctx := context.Background()

	admin := createDeptUser(t, db, "root", models.RoleSuperAdmin, nil)
	target := createDeptUser(t, db, "student", models.RoleStudent, nil)

	// Nobody deactivates their own account.
	_, err := svc.Deactivate(ctx, admin.ID, admin.ID)
	validationErr, ok := AsValidationError(err)
	require.True(t, ok)
	require.Contains(t, validationErr.Fields, "id")

	resp, err := svc.Deactivate(ctx, admin.ID, target.ID)
	require.NoError(t, err)
	require.False(t, resp.Active)

	var stored models.User
	require.NoError(t, db.First(&stored, target.ID).Error)
	require.False(t, stored.Active, "deactivation keeps the row")
	require.Equal(t, int64(1), countActivity(t, db, models.ActionAccountDeactivated, true))
}
