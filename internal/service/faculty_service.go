package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
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

// ErrFacultyNotFound indicates the requested faculty record does not exist.
var ErrFacultyNotFound = errors.New("faculty not found")

var facultyImportColumns = []string{"first_name", "last_name", "email", "department_code"}

// FacultyService implements faculty CRUD and spreadsheet bulk import.
type FacultyService struct {
	faculties   repository.FacultyRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewFacultyService constructs the faculty service.
func NewFacultyService(
	faculties repository.FacultyRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *FacultyService {
	return &FacultyService{
		faculties:   faculties,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "faculty_service").Logger(),
	}
}

// Create registers a new faculty record.
func (s *FacultyService) Create(ctx context.Context, req dto.FacultyCreateRequest) (*dto.FacultyResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}
	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldError("department_id", "department does not exist")
		}
		return nil, err
	}

	faculty := models.Faculty{
		FirstName:             strings.TrimSpace(req.FirstName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		DepartmentID:          req.DepartmentID,
		Qualifications:        strings.TrimSpace(req.Qualifications),
		ExperienceYears:       0,
		WorkloadCapacityHours: 16,
		Availability:          datatypes.JSONMap(req.Availability),
		Preferences:           datatypes.JSONMap(req.Preferences),
	}
	if req.ExperienceYears != nil {
		faculty.ExperienceYears = *req.ExperienceYears
	}
	if req.WorkloadCapacityHours != nil {
		faculty.WorkloadCapacityHours = *req.WorkloadCapacityHours
	}

	if err := s.faculties.Create(ctx, &faculty); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("email", "a faculty with that email already exists")
		}
		return nil, err
	}

	resp := dto.NewFacultyResponse(faculty)
	return &resp, nil
}

// Get returns a faculty record by id.
func (s *FacultyService) Get(ctx context.Context, id uint) (*dto.FacultyResponse, error) {
	faculty, err := s.faculties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		return nil, err
	}
	resp := dto.NewFacultyResponse(faculty)
	return &resp, nil
}

// List returns a page of faculty records.
func (s *FacultyService) List(ctx context.Context, req dto.FacultyListRequest) (*dto.FacultyListResponse, error) {
	filter := repository.FacultyFilter{
		DepartmentID:    req.DepartmentID,
		CollegeID:       req.CollegeID,
		ExperienceYears: req.ExperienceYears,
		Search:          req.Search,
		Sort:            req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	faculties, total, err := s.faculties.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FacultyResponse, 0, len(faculties))
	for _, faculty := range faculties {
		items = append(items, dto.NewFacultyResponse(faculty))
	}

	return &dto.FacultyListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a faculty record.
func (s *FacultyService) Update(ctx context.Context, id uint, req dto.FacultyUpdateRequest) (*dto.FacultyResponse, error) {
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
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("department_id", "department does not exist")
			}
			return nil, err
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.Qualifications != nil {
		updates["qualifications"] = strings.TrimSpace(*req.Qualifications)
	}
	if req.ExperienceYears != nil {
		updates["experience_years"] = *req.ExperienceYears
	}
	if req.WorkloadCapacityHours != nil {
		updates["workload_capacity_hours"] = *req.WorkloadCapacityHours
	}
	if req.Availability != nil {
		updates["availability"] = datatypes.JSONMap(req.Availability)
	}
	if req.Preferences != nil {
		updates["preferences"] = datatypes.JSONMap(req.Preferences)
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	faculty, err := s.faculties.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFacultyNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("email", "a faculty with that email already exists")
		}
		return nil, err
	}

	resp := dto.NewFacultyResponse(faculty)
	return &resp, nil
}

// Delete removes a faculty record.
func (s *FacultyService) Delete(ctx context.Context, id uint) error {
	if err := s.faculties.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFacultyNotFound
		}
		return err
	}
	return nil
}

// BulkImport ingests a csv or xlsx upload of faculty rows. The whole file is
// applied in one transaction; any bad row rolls everything back. Rows sharing
// an email are applied in file order, so the last occurrence wins.
func (s *FacultyService) BulkImport(ctx context.Context, filename string, file io.Reader) (*dto.BulkImportResponse, error) {
	tracer := otel.Tracer("github.com/acadsuite/campus-api/internal/service/faculty")
	ctx, span := tracer.Start(ctx, "faculty.bulk_import")
	span.SetAttributes(attribute.String("import.filename", filename))
	defer span.End()

	table, err := tabular.Parse(filename, file)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "parse_failed")
		return nil, FieldError("file", err.Error())
	}

	if missing := table.MissingColumns(facultyImportColumns...); len(missing) > 0 {
		return nil, FieldError("file", "missing required columns: "+strings.Join(missing, ", "))
	}

	rows := make([]repository.FacultyImportRow, 0, len(table.Rows))
	for i, raw := range table.Rows {
		row, err := s.importRow(raw)
		if err != nil {
			observability.BulkImportRows().WithLabelValues("faculty", "rejected").Inc()
			return nil, FieldError("file", fmt.Sprintf("row %d: %s", i+2, err.Error()))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, FieldError("file", "no data rows found")
	}

	processed, err := s.faculties.BulkUpsert(ctx, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert_failed")
		observability.BulkImportRows().WithLabelValues("faculty", "failed").Add(float64(len(rows)))
		if isDuplicateKey(err) {
			return nil, FieldError("file", "a row conflicts with an existing faculty member's unique email")
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("import.processed", processed))
	observability.BulkImportRows().WithLabelValues("faculty", "processed").Add(float64(processed))
	s.logger.Info().Str("filename", filename).Int("processed", processed).Msg("faculty bulk import complete")

	return &dto.BulkImportResponse{Processed: processed}, nil
}

func (s *FacultyService) importRow(raw map[string]string) (repository.FacultyImportRow, error) {
	row := repository.FacultyImportRow{
		FirstName:             strings.TrimSpace(raw["first_name"]),
		LastName:              strings.TrimSpace(raw["last_name"]),
		Email:                 strings.ToLower(strings.TrimSpace(raw["email"])),
		DepartmentCode:        strings.ToUpper(strings.TrimSpace(raw["department_code"])),
		DepartmentName:        strings.TrimSpace(raw["department_name"]),
		Qualifications:        strings.TrimSpace(raw["qualifications"]),
		ExperienceYears:       0,
		WorkloadCapacityHours: 16,
	}

	if row.FirstName == "" || row.LastName == "" {
		return row, errors.New("first_name and last_name are required")
	}
	if err := s.validate.Var(row.Email, "required,email"); err != nil {
		return row, errors.New("invalid email")
	}
	if row.DepartmentCode == "" {
		return row, errors.New("department_code is required")
	}

	if value := strings.TrimSpace(raw["experience_years"]); value != "" {
		years, err := strconv.Atoi(value)
		if err != nil || years < 0 {
			return row, errors.New("experience_years must be a non-negative integer")
		}
		row.ExperienceYears = years
	}
	if value := strings.TrimSpace(raw["workload_capacity_hours"]); value != "" {
		hours, err := strconv.Atoi(value)
		if err != nil || hours < 0 {
			return row, errors.New("workload_capacity_hours must be a non-negative integer")
		}
		row.WorkloadCapacityHours = hours
	}

	return row, nil
}
