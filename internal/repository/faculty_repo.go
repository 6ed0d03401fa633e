package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// FacultyFilter narrows faculty listing queries.
type FacultyFilter struct {
	DepartmentID    *uint
	CollegeID       *uint
	ExperienceYears *int
	Search          string
	Sort            string
	Page            int
	PageSize        int
}

// FacultyImportRow is one reconciled row from a bulk upload file.
type FacultyImportRow struct {
	FirstName             string
	LastName              string
	Email                 string
	DepartmentCode        string
	DepartmentName        string
	Qualifications        string
	ExperienceYears       int
	WorkloadCapacityHours int
}

// FacultyRepository provides access to faculty records.
type FacultyRepository interface {
	Create(ctx context.Context, faculty *models.Faculty) error
	GetByID(ctx context.Context, id uint) (models.Faculty, error)
	List(ctx context.Context, filter FacultyFilter) ([]models.Faculty, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Faculty, error)
	Delete(ctx context.Context, id uint) error
	ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Faculty, error)
	BulkUpsert(ctx context.Context, rows []FacultyImportRow) (int, error)
}

type facultyRepository struct {
	db *gorm.DB
}

// NewFacultyRepository constructs a faculty repository.
func NewFacultyRepository(db *gorm.DB) FacultyRepository {
	return &facultyRepository{db: db}
}

func (r *facultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	return r.db.WithContext(ctx).Create(faculty).Error
}

func (r *facultyRepository) GetByID(ctx context.Context, id uint) (models.Faculty, error) {
	var faculty models.Faculty
	err := r.db.WithContext(ctx).Preload("Department").First(&faculty, id).Error
	if err != nil {
		return models.Faculty{}, err
	}
	return faculty, nil
}

var facultySortColumns = map[string]string{
	"experience_years": "experience_years",
	"last_name":        "last_name",
}

func (r *facultyRepository) List(ctx context.Context, filter FacultyFilter) ([]models.Faculty, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Faculty{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.CollegeID != nil {
		query = query.Where(
			"department_id IN (?)",
			r.db.Model(&models.Department{}).Select("id").Where("college_id = ?", *filter.CollegeID),
		)
	}
	if filter.ExperienceYears != nil {
		query = query.Where("experience_years = ?", *filter.ExperienceYears)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var faculties []models.Faculty
	order := orderClause(filter.Sort, facultySortColumns, "last_name ASC, first_name ASC")
	if err := query.Preload("Department").Order(order).Find(&faculties).Error; err != nil {
		return nil, 0, err
	}

	return faculties, total, nil
}

func (r *facultyRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Faculty, error) {
	result := r.db.WithContext(ctx).Model(&models.Faculty{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Faculty{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Faculty{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *facultyRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Faculty{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *facultyRepository) ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := r.db.WithContext(ctx).Where("department_id IN ?", departmentIDs).
		Order("last_name ASC, first_name ASC").Find(&faculties).Error
	return faculties, err
}

// BulkUpsert reconciles import rows inside one transaction: each row resolves
// or creates its department by code, then upserts the faculty record keyed by
// email. Any row error rolls the whole batch back.
func (r *facultyRepository) BulkUpsert(ctx context.Context, rows []FacultyImportRow) (int, error) {
	processed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			department, err := getOrCreateDepartment(tx, row.DepartmentCode, row.DepartmentName)
			if err != nil {
				return err
			}

			values := map[string]interface{}{
				"first_name":              row.FirstName,
				"last_name":               row.LastName,
				"department_id":           department.ID,
				"qualifications":          row.Qualifications,
				"experience_years":        row.ExperienceYears,
				"workload_capacity_hours": row.WorkloadCapacityHours,
			}

			var existing models.Faculty
			err = tx.Where("email = ?", row.Email).First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Updates(values).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				faculty := models.Faculty{
					FirstName:             row.FirstName,
					LastName:              row.LastName,
					Email:                 row.Email,
					DepartmentID:          department.ID,
					Qualifications:        row.Qualifications,
					ExperienceYears:       row.ExperienceYears,
					WorkloadCapacityHours: row.WorkloadCapacityHours,
				}
				if err := tx.Create(&faculty).Error; err != nil {
					return err
				}
			default:
				return err
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

// getOrCreateDepartment resolves a department by code within the current
// transaction, creating it with the code as name when no name is supplied.
func getOrCreateDepartment(tx *gorm.DB, code, name string) (models.Department, error) {
	code = strings.TrimSpace(code)
	var department models.Department
	err := tx.Where("code = ?", code).First(&department).Error
	if err == nil {
		return department, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Department{}, err
	}

	if strings.TrimSpace(name) == "" {
		name = code
	}
	department = models.Department{Name: name, Code: code, Active: true}
	if err := tx.Create(&department).Error; err != nil {
		return models.Department{}, err
	}
	return department, nil
}
