package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// ActivityLogFilter narrows audit trail queries.
type ActivityLogFilter struct {
	UserID       *uint
	DepartmentID *uint
	Action       string
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}

// ActivityLogRepository persists the append-only audit trail. There is no
// update or delete path: rows are immutable once written.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.UserActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.UserActivityLog, int64, error)
	CountByAction(ctx context.Context, action string, success *bool) (int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.UserActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.UserActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserActivityLog{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DepartmentID != nil {
		query = query.Where(
			"user_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("department_id = ?", *filter.DepartmentID),
		)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", strings.ToLower(action))
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var entries []models.UserActivityLog
	if err := query.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *activityLogRepository) CountByAction(ctx context.Context, action string, success *bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserActivityLog{}).Where("action = ?", action)
	if success != nil {
		query = query.Where("success = ?", *success)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
