package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// CollegeFilter narrows college listing queries.
type CollegeFilter struct {
	Name     string
	Code     string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

// CollegeRepository provides access to colleges.
type CollegeRepository interface {
	Create(ctx context.Context, college *models.College) error
	GetByID(ctx context.Context, id uint) (models.College, error)
	List(ctx context.Context, filter CollegeFilter) ([]models.College, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.College, error)
	Delete(ctx context.Context, id uint) error
}

type collegeRepository struct {
	db *gorm.DB
}

// NewCollegeRepository constructs a college repository.
func NewCollegeRepository(db *gorm.DB) CollegeRepository {
	return &collegeRepository{db: db}
}

func (r *collegeRepository) Create(ctx context.Context, college *models.College) error {
	return r.db.WithContext(ctx).Create(college).Error
}

func (r *collegeRepository) GetByID(ctx context.Context, id uint) (models.College, error) {
	var college models.College
	if err := r.db.WithContext(ctx).First(&college, id).Error; err != nil {
		return models.College{}, err
	}
	return college, nil
}

var collegeSortColumns = map[string]string{
	"code": "code",
	"name": "name",
}

func (r *collegeRepository) List(ctx context.Context, filter CollegeFilter) ([]models.College, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.College{})

	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var colleges []models.College
	order := orderClause(filter.Sort, collegeSortColumns, "code ASC")
	if err := query.Order(order).Find(&colleges).Error; err != nil {
		return nil, 0, err
	}

	return colleges, total, nil
}

func (r *collegeRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.College, error) {
	result := r.db.WithContext(ctx).Model(&models.College{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.College{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.College{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *collegeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.College{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
