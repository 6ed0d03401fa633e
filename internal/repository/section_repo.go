package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// SectionFilter narrows section listing queries.
type SectionFilter struct {
	DepartmentID *uint
	CollegeID    *uint
	Semester     string
	Name         string
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// SectionRepository provides access to sections.
type SectionRepository interface {
	Create(ctx context.Context, section *models.Section) error
	GetByID(ctx context.Context, id uint) (models.Section, error)
	List(ctx context.Context, filter SectionFilter) ([]models.Section, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Section, error)
	Delete(ctx context.Context, id uint) error
	ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Section, error)
}

type sectionRepository struct {
	db *gorm.DB
}

// NewSectionRepository constructs a section repository.
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(ctx context.Context, section *models.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (models.Section, error) {
	var section models.Section
	if err := r.db.WithContext(ctx).Preload("Department").First(&section, id).Error; err != nil {
		return models.Section{}, err
	}
	return section, nil
}

var sectionSortColumns = map[string]string{
	"name": "name",
	"size": "size",
}

func (r *sectionRepository) List(ctx context.Context, filter SectionFilter) ([]models.Section, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Section{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.CollegeID != nil {
		query = query.Where(
			"department_id IN (?)",
			r.db.Model(&models.Department{}).Select("id").Where("college_id = ?", *filter.CollegeID),
		)
	}
	if semester := strings.TrimSpace(filter.Semester); semester != "" {
		query = query.Where("semester = ?", semester)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("name = ?", name)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(semester) LIKE ?", pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var sections []models.Section
	order := orderClause(filter.Sort, sectionSortColumns, "semester ASC, name ASC")
	if err := query.Preload("Department").Order(order).Find(&sections).Error; err != nil {
		return nil, 0, err
	}

	return sections, total, nil
}

func (r *sectionRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Section, error) {
	result := r.db.WithContext(ctx).Model(&models.Section{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Section{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Section{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *sectionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Section{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sectionRepository) ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.WithContext(ctx).Where("department_id IN ?", departmentIDs).
		Order("semester ASC, name ASC").Find(&sections).Error
	return sections, err
}
