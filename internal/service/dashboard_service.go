package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// recentActivityLimit caps the activity feed embedded in admin dashboards.
const recentActivityLimit = 10

// DashboardService aggregates role-specific counters for the dashboard
// endpoint. Admin aggregates are cached briefly since they hit several
// count queries per request.
type DashboardService struct {
	users    repository.UserRepository
	activity repository.ActivityLogRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(
	users repository.UserRepository,
	activity repository.ActivityLogRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &DashboardService{
		users:    users,
		activity: activity,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

// Dashboard returns the caller's profile plus data shaped by their role.
func (s *DashboardService) Dashboard(ctx context.Context, userID uint) (*dto.DashboardResponse, error) {
	tracer := otel.Tracer("github.com/acadsuite/campus-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.build")
	defer span.End()

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "load_user_failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("dashboard.role", string(user.Role)))

	var roleData map[string]interface{}
	switch user.Role {
	case models.RoleSuperAdmin:
		roleData, err = s.superAdminData(ctx)
	case models.RoleDeptAdmin:
		roleData, err = s.deptAdminData(ctx, user)
	default:
		roleData = s.memberData(user)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate_failed")
		return nil, err
	}

	return &dto.DashboardResponse{
		User:     dto.NewUserResponse(user),
		RoleData: roleData,
	}, nil
}

func (s *DashboardService) superAdminData(ctx context.Context) (map[string]interface{}, error) {
	const cacheKey = "campus:dashboard:super_admin"
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	byRole := make(map[string]interface{}, len(models.Roles))
	var total int64
	for _, role := range models.Roles {
		count, err := s.users.CountByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		byRole[string(role)] = count
		total += count
	}

	active, err := s.users.CountActive(ctx, true)
	if err != nil {
		return nil, err
	}
	failedLogins, err := s.activity.CountByAction(ctx, models.ActionFailedLogin, nil)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentActivity(ctx, nil)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"total_users":     total,
		"active_users":    active,
		"users_by_role":   byRole,
		"failed_logins":   failedLogins,
		"recent_activity": recent,
	}
	s.writeCache(ctx, cacheKey, data)
	return data, nil
}

func (s *DashboardService) deptAdminData(ctx context.Context, user models.User) (map[string]interface{}, error) {
	if user.DepartmentID == nil {
		return map[string]interface{}{"department_id": nil}, nil
	}
	deptID := *user.DepartmentID

	cacheKey := fmt.Sprintf("campus:dashboard:dept:%d", deptID)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	facultyCount, err := s.users.CountByDepartment(ctx, deptID, models.RoleFaculty)
	if err != nil {
		return nil, err
	}
	studentCount, err := s.users.CountByDepartment(ctx, deptID, models.RoleStudent)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentActivity(ctx, &deptID)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"department_id":                deptID,
		"faculty_count":                facultyCount,
		"student_count":                studentCount,
		"recent_department_activities": recent,
	}
	s.writeCache(ctx, cacheKey, data)
	return data, nil
}

// recentActivity returns the latest audit entries, optionally scoped to one
// department's users.
func (s *DashboardService) recentActivity(ctx context.Context, departmentID *uint) ([]dto.ActivityResponse, error) {
	entries, _, err := s.activity.List(ctx, repository.ActivityLogFilter{
		DepartmentID: departmentID,
		Page:         1,
		PageSize:     recentActivityLimit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewActivityResponse(entry))
	}
	return items, nil
}

func (s *DashboardService) memberData(user models.User) map[string]interface{} {
	data := map[string]interface{}{
		"role":          string(user.Role),
		"department_id": user.DepartmentID,
	}
	if user.LastLoginAt != nil {
		data["last_login"] = user.LastLoginAt
	}
	return data
}

func (s *DashboardService) readCache(ctx context.Context, key string) (map[string]interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read dashboard cache")
		}
		return nil, false
	}
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(cached), &data); err != nil {
		return nil, false
	}
	return data, true
}

func (s *DashboardService) writeCache(ctx context.Context, key string, data map[string]interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store dashboard cache")
	}
}
