package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Tracked activity log actions.
const (
	ActionLogin              = "login"
	ActionLogout             = "logout"
	ActionFailedLogin        = "failed_login"
	ActionPasswordChange     = "password_change"
	ActionProfileUpdate      = "profile_update"
	ActionAccountCreated     = "account_created"
	ActionAccountDeactivated = "account_deactivated"
)

// ActivityActions lists every tracked action value.
var ActivityActions = []string{
	ActionLogin,
	ActionLogout,
	ActionFailedLogin,
	ActionPasswordChange,
	ActionProfileUpdate,
	ActionAccountCreated,
	ActionAccountDeactivated,
}

// ValidActivityAction reports whether the action is a tracked value.
func ValidActivityAction(action string) bool {
	normalized := strings.ToLower(strings.TrimSpace(action))
	for _, known := range ActivityActions {
		if known == normalized {
			return true
		}
	}
	return false
}

// UserActivityLog is an append-only audit record of an authentication-related
// event. UserID is nil for anonymous events such as failed logins against
// unknown usernames. Rows are never updated or deleted.
type UserActivityLog struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    *uint             `json:"user_id"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    string            `gorm:"size:20;not null" json:"action"`
	IPAddress string            `gorm:"size:45" json:"ip_address"`
	UserAgent string            `json:"user_agent"`
	Details   datatypes.JSONMap `gorm:"type:json" json:"details"`
	Success   bool              `gorm:"not null;default:true" json:"success"`
	CreatedAt time.Time         `json:"timestamp"`
}
