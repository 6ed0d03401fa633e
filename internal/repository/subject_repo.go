package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// SubjectFilter narrows subject listing queries.
type SubjectFilter struct {
	Category     string
	DepartmentID *uint
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// SubjectRepository provides access to subjects and their associations.
type SubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject, prerequisiteIDs, departmentIDs []uint) error
	GetByID(ctx context.Context, id uint) (models.Subject, error)
	List(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}, prerequisiteIDs, departmentIDs []uint) (models.Subject, error)
	Delete(ctx context.Context, id uint) error
	ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Subject, error)
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository constructs a subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

func (r *subjectRepository) Create(ctx context.Context, subject *models.Subject, prerequisiteIDs, departmentIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subject).Error; err != nil {
			return err
		}
		return r.replaceAssociations(tx, subject, prerequisiteIDs, departmentIDs)
	})
}

func (r *subjectRepository) GetByID(ctx context.Context, id uint) (models.Subject, error) {
	var subject models.Subject
	err := r.db.WithContext(ctx).Preload("Prerequisites").Preload("Departments").First(&subject, id).Error
	if err != nil {
		return models.Subject{}, err
	}
	return subject, nil
}

var subjectSortColumns = map[string]string{
	"code": "code",
	"name": "name",
}

func (r *subjectRepository) List(ctx context.Context, filter SubjectFilter) ([]models.Subject, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Subject{})

	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if filter.DepartmentID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Table("subject_departments").Select("subject_id").Where("department_id = ?", *filter.DepartmentID),
		)
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

	var subjects []models.Subject
	order := orderClause(filter.Sort, subjectSortColumns, "code ASC")
	if err := query.Preload("Prerequisites").Preload("Departments").Order(order).Find(&subjects).Error; err != nil {
		return nil, 0, err
	}

	return subjects, total, nil
}

func (r *subjectRepository) Update(ctx context.Context, id uint, updates map[string]interface{}, prerequisiteIDs, departmentIDs []uint) (models.Subject, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.First(&subject, id).Error; err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&subject).Updates(updates).Error; err != nil {
				return err
			}
		}
		return r.replaceAssociations(tx, &subject, prerequisiteIDs, departmentIDs)
	})
	if err != nil {
		return models.Subject{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *subjectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.First(&subject, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&subject).Association("Prerequisites").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&subject).Association("Departments").Clear(); err != nil {
			return err
		}
		return tx.Delete(&subject).Error
	})
}

func (r *subjectRepository) ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Table("subject_departments").Select("subject_id").Where("department_id IN ?", departmentIDs)).
		Order("code ASC").Find(&subjects).Error
	return subjects, err
}

// replaceAssociations rewrites the prerequisite and department links. A nil
// slice leaves the association untouched; an empty slice clears it.
func (r *subjectRepository) replaceAssociations(tx *gorm.DB, subject *models.Subject, prerequisiteIDs, departmentIDs []uint) error {
	if prerequisiteIDs != nil {
		prerequisites := make([]*models.Subject, 0, len(prerequisiteIDs))
		for _, prereqID := range prerequisiteIDs {
			var prereq models.Subject
			if err := tx.First(&prereq, prereqID).Error; err != nil {
				return err
			}
			prerequisites = append(prerequisites, &prereq)
		}
		if err := tx.Model(subject).Association("Prerequisites").Replace(prerequisites); err != nil {
			return err
		}
	}

	if departmentIDs != nil {
		departments := make([]models.Department, 0, len(departmentIDs))
		for _, departmentID := range departmentIDs {
			var department models.Department
			if err := tx.First(&department, departmentID).Error; err != nil {
				return err
			}
			departments = append(departments, department)
		}
		if err := tx.Model(subject).Association("Departments").Replace(departments); err != nil {
			return err
		}
	}

	return nil
}
