package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// DepartmentFilter narrows department listing queries.
type DepartmentFilter struct {
	Name      string
	Code      string
	CollegeID *uint
	Active    *bool
	Search    string
	Sort      string
	Page      int
	PageSize  int
}

// DepartmentRepository provides access to departments.
type DepartmentRepository interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id uint) (models.Department, error)
	GetByCode(ctx context.Context, code string) (models.Department, error)
	List(ctx context.Context, filter DepartmentFilter) ([]models.Department, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Department, error)
	Delete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
	ListByCollege(ctx context.Context, collegeID uint) ([]models.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository constructs a department repository.
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (models.Department, error) {
	var department models.Department
	if err := r.db.WithContext(ctx).First(&department, id).Error; err != nil {
		return models.Department{}, err
	}
	return department, nil
}

func (r *departmentRepository) GetByCode(ctx context.Context, code string) (models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).Where("code = ?", strings.TrimSpace(code)).First(&department).Error
	if err != nil {
		return models.Department{}, err
	}
	return department, nil
}

var departmentSortColumns = map[string]string{
	"name": "name",
	"code": "code",
}

func (r *departmentRepository) List(ctx context.Context, filter DepartmentFilter) ([]models.Department, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Department{})

	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Code != "" {
		query = query.Where("code = ?", filter.Code)
	}
	if filter.CollegeID != nil {
		query = query.Where("college_id = ?", *filter.CollegeID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
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

	var departments []models.Department
	order := orderClause(filter.Sort, departmentSortColumns, "code ASC")
	if err := query.Order(order).Find(&departments).Error; err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

func (r *departmentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Department, error) {
	result := r.db.WithContext(ctx).Model(&models.Department{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Department{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Department{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Department{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *departmentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Where("active = ?", true).Count(&count).Error
	return count, err
}

func (r *departmentRepository) ListByCollege(ctx context.Context, collegeID uint) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).Where("college_id = ?", collegeID).Order("code ASC").Find(&departments).Error
	return departments, err
}
