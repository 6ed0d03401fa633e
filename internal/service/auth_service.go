package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/auth"
	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// ErrUserNotFound indicates the requested account does not exist.
var ErrUserNotFound = errors.New("user not found")

// ClientMeta carries request origin details into the audit trail.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// AuthService implements registration, login, token lifecycle and
// self-service profile management.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	denylist *auth.Denylist
	activity ActivityRecorder
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenManager,
	denylist *auth.Denylist,
	activity ActivityRecorder,
	validate *validator.Validate,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		denylist: denylist,
		activity: activity,
		validate: validate,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a new account. A nil actorID means self-registration,
// which is restricted to the student and faculty roles; admins may create
// accounts up to the roles they are allowed to assign.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest, actorID *uint, meta ClientMeta) (*dto.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	var actor *models.User
	if actorID != nil {
		loaded, err := s.users.GetByID(ctx, *actorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrForbidden
			}
			return nil, err
		}
		actor = &loaded
	}
	if req.Password != req.PasswordConfirm {
		return nil, FieldError("password_confirm", "password fields didn't match")
	}

	role := models.RoleStudent
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			return nil, FieldError("role", "unknown role")
		}
		role = parsed
	}
	if !auth.CanAssignRole(actor, role) {
		return nil, ErrForbidden
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := auth.ValidatePasswordStrength(req.Password, username, req.FirstName, req.LastName, email); err != nil {
		return nil, FieldError("password", err.Error())
	}

	// Pre-checks give the caller a named field; the unique indexes remain
	// the source of truth under concurrent registration.
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, FieldError("username", "a user with that username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, FieldError("email", "a user with that email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return nil, FieldError("date_of_birth", "expected YYYY-MM-DD")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:      username,
		Email:         email,
		PasswordHash:  hash,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Role:          role,
		DepartmentID:  req.DepartmentID,
		ContactNumber: strings.TrimSpace(req.ContactNumber),
		EmployeeID:    normalizeOptional(req.EmployeeID),
		DateOfBirth:   dob,
		Active:        true,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if isDuplicateKey(err) {
			// The translated error does not say which index fired, so name
			// every unique column a concurrent registration could have taken.
			return nil, NewValidationError("validation failed", map[string]string{
				"username":    "already taken by another account",
				"email":       "already taken by another account",
				"employee_id": "already taken by another account",
			})
		}
		return nil, err
	}

	details := map[string]interface{}{"username": user.Username, "role": string(user.Role)}
	if actor != nil {
		details["created_by"] = actor.ID
	}
	s.activity.Record(ctx, ActivityEntry{
		UserID:    &user.ID,
		Action:    models.ActionAccountCreated,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   details,
		Success:   true,
	})

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: dto.TokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken},
	}, nil
}

// Login authenticates credentials and issues a token pair. Unknown usernames,
// wrong passwords and deactivated accounts all produce the same error so the
// response leaks nothing about which check failed.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, meta ClientMeta) (*dto.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordFailedLogin(ctx, nil, req.Username, "unknown username", meta)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		s.recordFailedLogin(ctx, &user.ID, req.Username, "wrong password", meta)
		return nil, ErrInvalidCredentials
	}

	if !user.Active {
		s.recordFailedLogin(ctx, &user.ID, req.Username, "account deactivated", meta)
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.users.RecordLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login timestamp")
	}
	user.LastLoginAt = &now

	s.activity.Record(ctx, ActivityEntry{
		UserID:    &user.ID,
		Action:    models.ActionLogin,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   map[string]interface{}{"username": user.Username},
		Success:   true,
	})

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User:   dto.NewUserResponse(user),
		Tokens: dto.TokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken},
	}, nil
}

func (s *AuthService) recordFailedLogin(ctx context.Context, userID *uint, username, reason string, meta ClientMeta) {
	s.activity.Record(ctx, ActivityEntry{
		UserID:    userID,
		Action:    models.ActionFailedLogin,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   map[string]interface{}{"username": username, "reason": reason},
		Success:   false,
	})
}

// Logout revokes the presented refresh token. Subsequent refresh attempts
// with that token fail immediately even though it has not yet expired.
func (s *AuthService) Logout(ctx context.Context, req dto.LogoutRequest, userID uint, meta ClientMeta) error {
	if err := s.validate.Struct(req); err != nil {
		return validationErrorFrom(err)
	}

	claims, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return ErrTokenInvalid
	}
	if claims.UserID != userID {
		return ErrTokenInvalid
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:    &userID,
		Action:    models.ActionLogout,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   map[string]interface{}{"username": claims.Username},
		Success:   true,
	})
	return nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued, so each refresh token can be exchanged at most once.
func (s *AuthService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.TokenResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	claims, err := s.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrTokenInvalid
	}

	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken}, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies the caller's self-service profile changes. Role,
// department and active status are not reachable from here.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req dto.ProfileUpdateRequest, meta ClientMeta) (*dto.UserResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	changed := make([]string, 0, 6)

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != userID {
			return nil, FieldError("email", "a user with that email already exists")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["email"] = email
		changed = append(changed, "email")
	}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
		changed = append(changed, "first_name")
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
		changed = append(changed, "last_name")
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = strings.TrimSpace(*req.ContactNumber)
		changed = append(changed, "contact_number")
	}
	if req.EmployeeID != nil {
		updates["employee_id"] = normalizeOptional(req.EmployeeID)
		changed = append(changed, "employee_id")
	}
	if req.DateOfBirth != nil {
		dob, err := parseOptionalDate(req.DateOfBirth)
		if err != nil {
			return nil, FieldError("date_of_birth", "expected YYYY-MM-DD")
		}
		updates["date_of_birth"] = dob
		changed = append(changed, "date_of_birth")
	}
	if req.Address != nil {
		updates["address"] = strings.TrimSpace(*req.Address)
		changed = append(changed, "address")
	}

	if len(updates) == 0 {
		return s.Profile(ctx, userID)
	}

	user, err := s.users.Update(ctx, userID, updates)
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
		UserID:    &userID,
		Action:    models.ActionProfileUpdate,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   map[string]interface{}{"fields": changed},
		Success:   true,
	})

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the old password and replaces it, subject to the
// same strength policy as registration.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req dto.PasswordChangeRequest, meta ClientMeta) error {
	if err := s.validate.Struct(req); err != nil {
		return validationErrorFrom(err)
	}
	if req.NewPassword != req.NewPasswordConfirm {
		return FieldError("new_password_confirm", "password fields didn't match")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		s.activity.Record(ctx, ActivityEntry{
			UserID:    &userID,
			Action:    models.ActionPasswordChange,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
			Details:   map[string]interface{}{"reason": "wrong old password"},
			Success:   false,
		})
		return FieldError("old_password", "old password is incorrect")
	}

	if err := auth.ValidatePasswordStrength(req.NewPassword, user.Username, user.FirstName, user.LastName, user.Email); err != nil {
		return FieldError("new_password", err.Error())
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if _, err := s.users.Update(ctx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return err
	}

	s.activity.Record(ctx, ActivityEntry{
		UserID:    &userID,
		Action:    models.ActionPasswordChange,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   map[string]interface{}{"username": user.Username},
		Success:   true,
	})
	return nil
}

// parseOptionalDate parses a YYYY-MM-DD date when present.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// normalizeOptional trims an optional string, mapping empty to nil so unique
// indexes ignore absent values.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
