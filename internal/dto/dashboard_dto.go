package dto

// DashboardResponse is the role-shaped dashboard payload. RoleData varies by
// role and is built by the dashboard service.
type DashboardResponse struct {
	User     UserResponse           `json:"user"`
	RoleData map[string]interface{} `json:"role_specific_data"`
}
