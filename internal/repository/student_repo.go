package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// StudentFilter narrows student listing queries.
type StudentFilter struct {
	DepartmentID    *uint
	CollegeID       *uint
	CurrentSemester string
	Search          string
	Sort            string
	Page            int
	PageSize        int
}

// StudentImportRow is one reconciled row from a bulk upload file.
type StudentImportRow struct {
	FirstName       string
	LastName        string
	Email           string
	EnrollmentNo    string
	DepartmentCode  string
	DepartmentName  string
	CurrentSemester string
}

// StudentRepository provides access to student records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (models.Student, error)
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error)
	Delete(ctx context.Context, id uint) error
	ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Student, error)
	BulkUpsert(ctx context.Context, rows []StudentImportRow) (int, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Preload("Department").First(&student, id).Error
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

var studentSortColumns = map[string]string{
	"enrollment_no": "enrollment_no",
	"last_name":     "last_name",
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.CollegeID != nil {
		query = query.Where(
			"department_id IN (?)",
			r.db.Model(&models.Department{}).Select("id").Where("college_id = ?", *filter.CollegeID),
		)
	}
	if semester := strings.TrimSpace(filter.CurrentSemester); semester != "" {
		query = query.Where("current_semester = ?", semester)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(enrollment_no) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var students []models.Student
	order := orderClause(filter.Sort, studentSortColumns, "enrollment_no ASC")
	if err := query.Preload("Department").Order(order).Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	result := r.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Student{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepository) ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).Where("department_id IN ?", departmentIDs).
		Order("enrollment_no ASC").Find(&students).Error
	return students, err
}

// BulkUpsert reconciles import rows inside one transaction, keyed by
// enrollment number. Duplicate keys within the file resolve last-row-wins.
func (r *studentRepository) BulkUpsert(ctx context.Context, rows []StudentImportRow) (int, error) {
	processed := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			department, err := getOrCreateDepartment(tx, row.DepartmentCode, row.DepartmentName)
			if err != nil {
				return err
			}

			values := map[string]interface{}{
				"first_name":       row.FirstName,
				"last_name":        row.LastName,
				"email":            row.Email,
				"department_id":    department.ID,
				"current_semester": row.CurrentSemester,
			}

			var existing models.Student
			err = tx.Where("enrollment_no = ?", row.EnrollmentNo).First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&existing).Updates(values).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				student := models.Student{
					FirstName:       row.FirstName,
					LastName:        row.LastName,
					Email:           row.Email,
					EnrollmentNo:    row.EnrollmentNo,
					DepartmentID:    &department.ID,
					CurrentSemester: row.CurrentSemester,
				}
				if err := tx.Create(&student).Error; err != nil {
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
