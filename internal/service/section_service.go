package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// ErrSectionNotFound indicates the requested section does not exist.
var ErrSectionNotFound = errors.New("section not found")

// SectionService implements section CRUD. The (department, semester, name)
// triple is unique; the database index backs that up under concurrency.
type SectionService struct {
	sections    repository.SectionRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewSectionService constructs the section service.
func NewSectionService(
	sections repository.SectionRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *SectionService {
	return &SectionService{
		sections:    sections,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "section_service").Logger(),
	}
}

// Create registers a new section.
func (s *SectionService) Create(ctx context.Context, req dto.SectionCreateRequest) (*dto.SectionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}
	if _, err := s.departments.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldError("department_id", "department does not exist")
		}
		return nil, err
	}

	section := models.Section{
		DepartmentID: req.DepartmentID,
		Semester:     strings.TrimSpace(req.Semester),
		Name:         strings.ToUpper(strings.TrimSpace(req.Name)),
		Size:         req.Size,
	}

	if err := s.sections.Create(ctx, &section); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("name", "a section with that department, semester and name already exists")
		}
		return nil, err
	}

	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// Get returns a section by id.
func (s *SectionService) Get(ctx context.Context, id uint) (*dto.SectionResponse, error) {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// List returns a page of sections.
func (s *SectionService) List(ctx context.Context, req dto.SectionListRequest) (*dto.SectionListResponse, error) {
	filter := repository.SectionFilter{
		DepartmentID: req.DepartmentID,
		CollegeID:    req.CollegeID,
		Semester:     req.Semester,
		Name:         req.Name,
		Search:       req.Search,
		Sort:         req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	sections, total, err := s.sections.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SectionResponse, 0, len(sections))
	for _, section := range sections {
		items = append(items, dto.NewSectionResponse(section))
	}

	return &dto.SectionListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a section.
func (s *SectionService) Update(ctx context.Context, id uint, req dto.SectionUpdateRequest) (*dto.SectionResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("department_id", "department does not exist")
			}
			return nil, err
		}
		updates["department_id"] = *req.DepartmentID
	}
	if req.Semester != nil {
		updates["semester"] = strings.TrimSpace(*req.Semester)
	}
	if req.Name != nil {
		updates["name"] = strings.ToUpper(strings.TrimSpace(*req.Name))
	}
	if req.Size != nil {
		updates["size"] = *req.Size
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	section, err := s.sections.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("name", "a section with that department, semester and name already exists")
		}
		return nil, err
	}

	resp := dto.NewSectionResponse(section)
	return &resp, nil
}

// Delete removes a section.
func (s *SectionService) Delete(ctx context.Context, id uint) error {
	if err := s.sections.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		return err
	}
	return nil
}
