package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/acadsuite/campus-api/internal/models"
)

func TestCanPermissionMatrix(t *testing.T) {
	cases := []struct {
		role models.Role
		op   Operation
		want bool
	}{
		{models.RoleSuperAdmin, OpManageDepartments, true},
		{models.RoleSuperAdmin, OpViewActivityLogs, true},
		{models.RoleDeptAdmin, OpManageUsers, true},
		{models.RoleDeptAdmin, OpManageMasterData, true},
		{models.RoleDeptAdmin, OpManageDepartments, false},
		{models.RoleDeptAdmin, OpViewActivityLogs, false},
		{models.RoleFaculty, OpViewMasterData, true},
		{models.RoleFaculty, OpManageMasterData, false},
		{models.RoleStudent, OpViewOwnProfile, true},
		{models.RoleStudent, OpViewMasterData, false},
		{models.Role("intruder"), OpViewOwnProfile, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, Can(tc.role, tc.op), "role=%s op=%s", tc.role, tc.op)
	}
}

func TestCanAssignRole(t *testing.T) {
	superAdmin := &models.User{ID: 1, Role: models.RoleSuperAdmin}
	deptAdmin := &models.User{ID: 2, Role: models.RoleDeptAdmin}
	faculty := &models.User{ID: 3, Role: models.RoleFaculty}

	// Self-registration never grants an admin role.
	require.True(t, CanAssignRole(nil, models.RoleStudent))
	require.True(t, CanAssignRole(nil, models.RoleFaculty))
	require.False(t, CanAssignRole(nil, models.RoleDeptAdmin))
	require.False(t, CanAssignRole(nil, models.RoleSuperAdmin))

	require.True(t, CanAssignRole(superAdmin, models.RoleSuperAdmin))
	require.True(t, CanAssignRole(superAdmin, models.RoleDeptAdmin))

	require.True(t, CanAssignRole(deptAdmin, models.RoleFaculty))
	require.False(t, CanAssignRole(deptAdmin, models.RoleDeptAdmin))

	require.False(t, CanAssignRole(faculty, models.RoleStudent))
	require.False(t, CanAssignRole(superAdmin, models.Role("owner")))
}

func TestCanManageUser(t *testing.T) {
	deptA := uint(10)
	deptB := uint(20)

	superAdmin := models.User{ID: 1, Role: models.RoleSuperAdmin}
	adminA := models.User{ID: 2, Role: models.RoleDeptAdmin, DepartmentID: &deptA}
	facultyA := models.User{ID: 3, Role: models.RoleFaculty, DepartmentID: &deptA}
	studentB := models.User{ID: 4, Role: models.RoleStudent, DepartmentID: &deptB}

	require.True(t, CanManageUser(superAdmin, adminA))
	require.True(t, CanManageUser(superAdmin, studentB))

	require.True(t, CanManageUser(adminA, facultyA), "dept admin manages own department members")
	require.False(t, CanManageUser(adminA, studentB), "dept admin has no reach across departments")
	require.False(t, CanManageUser(adminA, superAdmin), "admin accounts are out of a dept admin's reach")

	require.True(t, CanManageUser(facultyA, facultyA), "everyone manages themselves")
	require.False(t, CanManageUser(facultyA, studentB))
}
