package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/observability"
	"github.com/acadsuite/campus-api/internal/repository"
)

// ActivityEntry describes one audit event to be recorded.
type ActivityEntry struct {
	UserID    *uint
	Action    string
	IPAddress string
	UserAgent string
	Details   map[string]interface{}
	Success   bool
}

// ActivityRecorder appends audit events. Implementations must never let a
// failed write break the operation being audited.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService records and lists the append-only audit trail.
type ActivityService struct {
	repo   repository.ActivityLogRepository
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo repository.ActivityLogRepository, users repository.UserRepository, logger zerolog.Logger) *ActivityService {
	return &ActivityService{
		repo:   repo,
		users:  users,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

// Record appends an audit event. Write failures are logged and counted but
// not surfaced: the audited operation must not fail because its trail could
// not be written.
func (s *ActivityService) Record(ctx context.Context, entry ActivityEntry) {
	action := strings.ToLower(strings.TrimSpace(entry.Action))
	if !models.ValidActivityAction(action) {
		s.logger.Error().Str("action", entry.Action).Msg("dropping audit entry with unknown action")
		observability.AuditWriteFailures().Inc()
		return
	}

	row := &models.UserActivityLog{
		UserID:    entry.UserID,
		Action:    action,
		IPAddress: entry.IPAddress,
		UserAgent: entry.UserAgent,
		Details:   datatypes.JSONMap(entry.Details),
		Success:   entry.Success,
	}

	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("failed to persist audit entry")
		observability.AuditWriteFailures().Inc()
	}
}

// List returns a page of audit entries visible to the actor. Super admins
// see the whole trail; department admins only entries produced by users of
// their own department.
func (s *ActivityService) List(ctx context.Context, actorID uint, req dto.ActivityListRequest) (*dto.ActivityListResponse, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := repository.ActivityLogFilter{
		UserID:   req.UserID,
		Action:   req.Action,
		Page:     page,
		PageSize: pageSize,
	}

	switch actor.Role {
	case models.RoleSuperAdmin:
	case models.RoleDeptAdmin:
		if actor.DepartmentID == nil {
			return nil, ErrForbidden
		}
		filter.DepartmentID = actor.DepartmentID
	default:
		return nil, ErrForbidden
	}

	if req.Action != "" && !models.ValidActivityAction(req.Action) {
		return nil, FieldError("action", "unknown action")
	}

	start, err := parseDateBound(req.StartDate, false)
	if err != nil {
		return nil, FieldError("start_date", "expected RFC 3339 timestamp or YYYY-MM-DD")
	}
	end, err := parseDateBound(req.EndDate, true)
	if err != nil {
		return nil, FieldError("end_date", "expected RFC 3339 timestamp or YYYY-MM-DD")
	}
	filter.StartDate = start
	filter.EndDate = end

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
	}

	return &dto.ActivityListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// parseDateBound accepts an RFC 3339 timestamp or a plain date. Plain dates
// used as an upper bound are pushed to the end of that day so the range is
// inclusive.
func parseDateBound(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}
