package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// UserAdminService implements user management for admin roles. Department
// admins are confined to faculty and students of their own department.
type UserAdminService struct {
	users    repository.UserRepository
	activity ActivityRecorder
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUserAdminService constructs the user admin service.
func NewUserAdminService(
	users repository.UserRepository,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) *UserAdminService {
	return &UserAdminService{
		users:    users,
		activity: activity,
		validate: validate,
		logger:   logger.With().Str("component", "user_admin_service").Logger(),
	}
}

func (s *UserAdminService) loadActor(ctx context.Context, actorID uint) (models.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrForbidden
		}
		return models.User{}, err
	}
	return actor, nil
}

// List returns a page of users visible to the actor. Department admins see
// only their own department regardless of the requested filter.
func (s *UserAdminService) List(ctx context.Context, actorID uint, req dto.UserListRequest) (*dto.UserListResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.Can(actor.Role, auth.OpManageUsers) {
		return nil, ErrForbidden
	}

	filter := repository.UserFilter{
		DepartmentID: req.DepartmentID,
		Active:       req.Active,
		Search:       req.Search,
		Sort:         req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	if strings.TrimSpace(req.Role) != "" {
		role, ok := models.ParseRole(req.Role)
		if !ok {
			return nil, FieldError("role", "unknown role")
		}
		filter.Role = role
	}

	if actor.Role == models.RoleDeptAdmin {
		if actor.DepartmentID == nil {
			return nil, ErrForbidden
		}
		filter.DepartmentID = actor.DepartmentID
	}

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		if actor.Role == models.RoleDeptAdmin && !auth.CanManageUser(actor, user) {
			continue
		}
		items = append(items, dto.NewUserResponse(user))
	}

	return &dto.UserListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Get returns a single user the actor is allowed to manage.
func (s *UserAdminService) Get(ctx context.Context, actorID, id uint) (*dto.UserResponse, error) {
	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !auth.CanManageUser(actor, user) {
		return nil, ErrForbidden
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Update applies admin edits to a user. Role changes are additionally gated
// by what the actor is allowed to assign.
func (s *UserAdminService) Update(ctx context.Context, actorID, id uint, req dto.AdminUserUpdateRequest) (*dto.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !auth.CanManageUser(actor, target) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != id {
			return nil, FieldError("email", "a user with that email already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["email"] = email
	}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Role != nil {
		role, ok := models.ParseRole(*req.Role)
		if !ok {
			return nil, FieldError("role", "unknown role")
		}
		if !auth.CanAssignRole(&actor, role) {
			return nil, ErrForbidden
		}
		updates["role"] = role
	}
	if req.DepartmentID != nil {
		if actor.Role == models.RoleDeptAdmin {
			// Dept admins cannot move users between departments.
			if actor.DepartmentID == nil || *req.DepartmentID != *actor.DepartmentID {
				return nil, ErrForbidden
			}
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = strings.TrimSpace(*req.ContactNumber)
	}
	if req.EmployeeID != nil {
		updates["employee_id"] = normalizeOptional(req.EmployeeID)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		resp := dto.NewUserResponse(target)
		return &resp, nil
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("employee_id", "a user with that employee id already exists")
		}
		return nil, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  &id,
		Action:  models.ActionProfileUpdate,
		Details: map[string]interface{}{"updated_by": actor.ID},
		Success: true,
	})

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Deactivate disables an account without deleting it. The row, its audit
// trail and its relations all survive; only login stops working.
func (s *UserAdminService) Deactivate(ctx context.Context, actorID, id uint) (*dto.UserResponse, error) {
	if actorID == id {
		return nil, FieldError("id", "cannot deactivate your own account")
	}

	actor, err := s.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !auth.CanManageUser(actor, target) {
		return nil, ErrForbidden
	}

	user, err := s.users.Deactivate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:  &id,
		Action:  models.ActionAccountDeactivated,
		Details: map[string]interface{}{"deactivated_by": actor.ID, "username": user.Username},
		Success: true,
	})

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
