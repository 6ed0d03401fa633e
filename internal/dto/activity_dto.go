package dto

import (
	"time"

	"github.com/acadsuite/campus-api/internal/models"
)

// ActivityListRequest narrows the audit trail listing. Dates accept RFC 3339
// timestamps or plain dates.
type ActivityListRequest struct {
	UserID    *uint
	Action    string
	StartDate string
	EndDate   string
	Page      int
	PageSize  int
}

// ActivityResponse is the public shape of an audit entry.
type ActivityResponse struct {
	ID        uint                   `json:"id"`
	UserID    *uint                  `json:"user_id"`
	Action    string                 `json:"action"`
	IPAddress string                 `json:"ip_address"`
	UserAgent string                 `json:"user_agent"`
	Details   map[string]interface{} `json:"details"`
	Success   bool                   `json:"success"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewActivityResponse maps an audit entry into its public shape.
func NewActivityResponse(entry models.UserActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		Details:   entry.Details,
		Success:   entry.Success,
		Timestamp: entry.CreatedAt,
	}
}

// ActivityListResponse is a page of audit entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PageMeta           `json:"pagination"`
}
