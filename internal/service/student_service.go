package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/observability"
	"github.com/acadsuite/campus-api/internal/repository"
	"github.com/acadsuite/campus-api/pkg/tabular"
)

// ErrStudentNotFound indicates the requested student record does not exist.
var ErrStudentNotFound = errors.New("student not found")

var studentImportColumns = []string{
	"first_name", "last_name", "email", "enrollment_no", "department_code", "current_semester",
}

// StudentService implements student CRUD and spreadsheet bulk import.
type StudentService struct {
	students    repository.StudentRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(
	students repository.StudentRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *StudentService {
	return &StudentService{
		students:    students,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "student_service").Logger(),
	}
}

// Create registers a new student record.
func (s *StudentService) Create(ctx context.Context, req dto.StudentCreateRequest) (*dto.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("department_id", "department does not exist")
			}
			return nil, err
		}
	}

	student := models.Student{
		FirstName:           strings.TrimSpace(req.FirstName),
		LastName:            strings.TrimSpace(req.LastName),
		Email:               strings.ToLower(strings.TrimSpace(req.Email)),
		EnrollmentNo:        strings.TrimSpace(req.EnrollmentNo),
		DepartmentID:        req.DepartmentID,
		CurrentSemester:     strings.TrimSpace(req.CurrentSemester),
		MajorSubjects:       encodeJSONList(req.MajorSubjects),
		MinorSubjects:       encodeJSONList(req.MinorSubjects),
		ElectivePreferences: encodeJSONList(req.ElectivePreferences),
		CreditRequirements:  datatypes.JSONMap(req.CreditRequirements),
	}

	if err := s.students.Create(ctx, &student); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("enrollment_no", "a student with that email or enrollment number already exists")
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// Get returns a student record by id.
func (s *StudentService) Get(ctx context.Context, id uint) (*dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// List returns a page of student records.
func (s *StudentService) List(ctx context.Context, req dto.StudentListRequest) (*dto.StudentListResponse, error) {
	filter := repository.StudentFilter{
		DepartmentID:    req.DepartmentID,
		CollegeID:       req.CollegeID,
		CurrentSemester: req.CurrentSemester,
		Search:          req.Search,
		Sort:            req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	students, total, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	return &dto.StudentListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a student record.
func (s *StudentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (*dto.StudentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.EnrollmentNo != nil {
		updates["enrollment_no"] = strings.TrimSpace(*req.EnrollmentNo)
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("department_id", "department does not exist")
			}
			return nil, err
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.CurrentSemester != nil {
		updates["current_semester"] = strings.TrimSpace(*req.CurrentSemester)
	}
	if req.MajorSubjects != nil {
		updates["major_subjects"] = encodeJSONList(req.MajorSubjects)
	}
	if req.MinorSubjects != nil {
		updates["minor_subjects"] = encodeJSONList(req.MinorSubjects)
	}
	if req.ElectivePreferences != nil {
		updates["elective_preferences"] = encodeJSONList(req.ElectivePreferences)
	}
	if req.CreditRequirements != nil {
		updates["credit_requirements"] = datatypes.JSONMap(req.CreditRequirements)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	student, err := s.students.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("enrollment_no", "a student with that email or enrollment number already exists")
		}
		return nil, err
	}

	resp := dto.NewStudentResponse(student)
	return &resp, nil
}

// Delete removes a student record.
func (s *StudentService) Delete(ctx context.Context, id uint) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

// BulkImport ingests a csv or xlsx upload of student rows. The whole file is
// applied in one transaction keyed by enrollment number; the last occurrence
// of a duplicated key wins.
func (s *StudentService) BulkImport(ctx context.Context, filename string, file io.Reader) (*dto.BulkImportResponse, error) {
	tracer := otel.Tracer("github.com/acadsuite/campus-api/internal/service/student")
	ctx, span := tracer.Start(ctx, "student.bulk_import")
	span.SetAttributes(attribute.String("import.filename", filename))
	defer span.End()

	table, err := tabular.Parse(filename, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse_failed")
		return nil, FieldError("file", err.Error())
	}

	if missing := table.MissingColumns(studentImportColumns...); len(missing) > 0 {
		return nil, FieldError("file", "missing required columns: "+strings.Join(missing, ", "))
	}

	rows := make([]repository.StudentImportRow, 0, len(table.Rows))
	for i, raw := range table.Rows {
		row, err := s.importRow(raw)
		if err != nil {
			observability.BulkImportRows().WithLabelValues("student", "rejected").Inc()
			return nil, FieldError("file", fmt.Sprintf("row %d: %s", i+2, err.Error()))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, FieldError("file", "no data rows found")
	}

	processed, err := s.students.BulkUpsert(ctx, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert_failed")
		observability.BulkImportRows().WithLabelValues("student", "failed").Add(float64(len(rows)))
		if isDuplicateKey(err) {
			return nil, FieldError("file", "a row conflicts with an existing student's unique email")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("import.processed", processed))
	observability.BulkImportRows().WithLabelValues("student", "processed").Add(float64(processed))
	s.logger.Info().Str("filename", filename).Int("processed", processed).Msg("student bulk import complete")

	return &dto.BulkImportResponse{Processed: processed}, nil
}

func (s *StudentService) importRow(raw map[string]string) (repository.StudentImportRow, error) {
	row := repository.StudentImportRow{
		FirstName:       strings.TrimSpace(raw["first_name"]),
		LastName:        strings.TrimSpace(raw["last_name"]),
		Email:           strings.ToLower(strings.TrimSpace(raw["email"])),
		EnrollmentNo:    strings.TrimSpace(raw["enrollment_no"]),
		DepartmentCode:  strings.ToUpper(strings.TrimSpace(raw["department_code"])),
		DepartmentName:  strings.TrimSpace(raw["department_name"]),
		CurrentSemester: strings.TrimSpace(raw["current_semester"]),
	}

	if row.FirstName == "" || row.LastName == "" {
		return row, errors.New("first_name and last_name are required")
	}
	if err := s.validate.Var(row.Email, "required,email"); err != nil {
		return row, errors.New("invalid email")
	}
	if row.EnrollmentNo == "" {
		return row, errors.New("enrollment_no is required")
	}
	if row.DepartmentCode == "" {
		return row, errors.New("department_code is required")
	}

	return row, nil
}

// encodeJSONList stores an ordered list as a JSON document, defaulting to an
// empty array rather than null.
func encodeJSONList(list []interface{}) datatypes.JSON {
	if list == nil {
		list = []interface{}{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
