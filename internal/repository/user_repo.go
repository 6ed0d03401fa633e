package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// UserFilter narrows user listing queries.
type UserFilter struct {
	Role         models.Role
	DepartmentID *uint
	Active       *bool
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// UserRepository provides access to user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error)
	Deactivate(ctx context.Context, id uint) (models.User, error)
	RecordLogin(ctx context.Context, id uint, at time.Time) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	CountActive(ctx context.Context, active bool) (int64, error)
	CountByDepartment(ctx context.Context, departmentID uint, role models.Role) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository constructs a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

var userSortColumns = map[string]string{
	"created_at": "created_at",
	"username":   "username",
	"email":      "email",
	"last_login": "last_login_at",
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	order := orderClause(filter.Sort, userSortColumns, "created_at DESC")
	if err := query.Order(order).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Deactivate(ctx context.Context, id uint) (models.User, error) {
	return r.Update(ctx, id, map[string]interface{}{"active": false})
}

func (r *userRepository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *userRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *userRepository) CountActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("active = ?", active).Count(&count).Error
	return count, err
}

func (r *userRepository) CountByDepartment(ctx context.Context, departmentID uint, role models.Role) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("department_id = ?", departmentID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
