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

// ErrDepartmentNotFound indicates the requested department does not exist.
var ErrDepartmentNotFound = errors.New("department not found")

// DepartmentService implements department CRUD.
type DepartmentService struct {
	departments repository.DepartmentRepository
	colleges    repository.CollegeRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(
	departments repository.DepartmentRepository,
	colleges repository.CollegeRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *DepartmentService {
	return &DepartmentService{
		departments: departments,
		colleges:    colleges,
		validate:    validate,
		logger:      logger.With().Str("component", "department_service").Logger(),
	}
}

// Create registers a new department.
func (s *DepartmentService) Create(ctx context.Context, req dto.DepartmentCreateRequest) (*dto.DepartmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	if req.CollegeID != nil {
		if _, err := s.colleges.GetByID(ctx, *req.CollegeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("college_id", "college does not exist")
			}
			return nil, err
		}
	}

	department := models.Department{
		Name:               strings.TrimSpace(req.Name),
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:        strings.TrimSpace(req.Description),
		CollegeID:          req.CollegeID,
		HeadOfDepartmentID: req.HeadOfDepartmentID,
		Active:             true,
	}

	if err := s.departments.Create(ctx, &department); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a department with that name or code already exists")
		}
		return nil, err
	}

	resp := dto.NewDepartmentResponse(department)
	return &resp, nil
}

// Get returns a department by id.
func (s *DepartmentService) Get(ctx context.Context, id uint) (*dto.DepartmentResponse, error) {
	department, err := s.departments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	resp := dto.NewDepartmentResponse(department)
	return &resp, nil
}

// List returns a page of departments.
func (s *DepartmentService) List(ctx context.Context, req dto.DepartmentListRequest) (*dto.DepartmentListResponse, error) {
	filter := repository.DepartmentFilter{
		Name:      req.Name,
		Code:      req.Code,
		CollegeID: req.CollegeID,
		Active:    req.Active,
		Search:    req.Search,
		Sort:      req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	departments, total, err := s.departments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		items = append(items, dto.NewDepartmentResponse(department))
	}

	return &dto.DepartmentListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a department.
func (s *DepartmentService) Update(ctx context.Context, id uint, req dto.DepartmentUpdateRequest) (*dto.DepartmentResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.CollegeID != nil {
		if _, err := s.colleges.GetByID(ctx, *req.CollegeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("college_id", "college does not exist")
			}
			return nil, err
		}
		updates["college_id"] = *req.CollegeID
	}
	if req.HeadOfDepartmentID != nil {
		updates["head_of_department_id"] = *req.HeadOfDepartmentID
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	department, err := s.departments.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a department with that name or code already exists")
		}
		return nil, err
	}

	resp := dto.NewDepartmentResponse(department)
	return &resp, nil
}

// Delete removes a department.
func (s *DepartmentService) Delete(ctx context.Context, id uint) error {
	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDepartmentNotFound
		}
		return err
	}
	return nil
}
