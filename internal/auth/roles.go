package auth

import "github.com/acadsuite/campus-api/internal/models"

// Operation identifies an action subject to role-based permission checks.
type Operation string

const (
	OpManageUsers       Operation = "manage_users"
	OpManageDepartments Operation = "manage_departments"
	OpManageMasterData  Operation = "manage_master_data"
	OpViewMasterData    Operation = "view_master_data"
	OpViewActivityLogs  Operation = "view_activity_logs"
	OpViewOwnProfile    Operation = "view_own_profile"
	OpUpdateOwnProfile  Operation = "update_own_profile"
)

// Can decides whether a role may perform an operation. The switch is
// exhaustive over the closed role set; an unknown role is always denied.
func Can(role models.Role, op Operation) bool {
	switch role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleDeptAdmin:
		switch op {
		case OpManageUsers, OpManageMasterData, OpViewMasterData,
			OpViewOwnProfile, OpUpdateOwnProfile:
			return true
		case OpManageDepartments, OpViewActivityLogs:
			return false
		}
		return false
	case models.RoleFaculty:
		switch op {
		case OpViewMasterData, OpViewOwnProfile, OpUpdateOwnProfile:
			return true
		}
		return false
	case models.RoleStudent:
		switch op {
		case OpViewOwnProfile, OpUpdateOwnProfile:
			return true
		}
		return false
	}
	return false
}

// CanAssignRole decides whether an actor may create or promote an account
// with the target role. Self-registration (no actor) is restricted to the
// non-admin roles.
func CanAssignRole(actor *models.User, target models.Role) bool {
	if !target.Valid() {
		return false
	}
	if actor == nil {
		return target == models.RoleStudent || target == models.RoleFaculty
	}
	switch actor.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleDeptAdmin:
		return target == models.RoleFaculty || target == models.RoleStudent
	case models.RoleFaculty, models.RoleStudent:
		return false
	}
	return false
}

// CanManageUser decides whether the actor may read or mutate the target
// account. Everyone manages their own profile; dept admins reach only
// faculty and students of their own department.
func CanManageUser(actor models.User, target models.User) bool {
	if actor.ID == target.ID {
		return true
	}
	switch actor.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleDeptAdmin:
		if target.Role == models.RoleSuperAdmin || target.Role == models.RoleDeptAdmin {
			return false
		}
		return actor.SameDepartment(target)
	case models.RoleFaculty, models.RoleStudent:
		return false
	}
	return false
}
