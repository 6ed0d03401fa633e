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

// ErrSubjectNotFound indicates the requested subject does not exist.
var ErrSubjectNotFound = errors.New("subject not found")

// SubjectService implements subject CRUD including prerequisite and
// department associations.
type SubjectService struct {
	subjects    repository.SubjectRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewSubjectService constructs the subject service.
func NewSubjectService(
	subjects repository.SubjectRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *SubjectService {
	return &SubjectService{
		subjects:    subjects,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "subject_service").Logger(),
	}
}

// Create registers a new subject with its associations.
func (s *SubjectService) Create(ctx context.Context, req dto.SubjectCreateRequest) (*dto.SubjectResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	category, ok := canonicalSubjectCategory(req.Category)
	if !ok {
		return nil, FieldError("category", "must be one of: "+strings.Join(models.SubjectCategories, ", "))
	}

	if err := s.checkPrerequisites(ctx, req.PrerequisiteIDs, 0); err != nil {
		return nil, err
	}
	if err := s.checkDepartments(ctx, req.DepartmentIDs); err != nil {
		return nil, err
	}

	subject := models.Subject{
		Code:     strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:     strings.TrimSpace(req.Name),
		Category: category,
	}
	if req.CreditsTheory != nil {
		subject.CreditsTheory = *req.CreditsTheory
	}
	if req.CreditsPractical != nil {
		subject.CreditsPractical = *req.CreditsPractical
	}

	if err := s.subjects.Create(ctx, &subject, req.PrerequisiteIDs, req.DepartmentIDs); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a subject with that code already exists")
		}
		return nil, err
	}

	created, err := s.subjects.GetByID(ctx, subject.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSubjectResponse(created)
	return &resp, nil
}

// Get returns a subject by id with its associations.
func (s *SubjectService) Get(ctx context.Context, id uint) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

// List returns a page of subjects.
func (s *SubjectService) List(ctx context.Context, req dto.SubjectListRequest) (*dto.SubjectListResponse, error) {
	filter := repository.SubjectFilter{
		DepartmentID: req.DepartmentID,
		Search:       req.Search,
		Sort:         req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	if strings.TrimSpace(req.Category) != "" {
		category, ok := canonicalSubjectCategory(req.Category)
		if !ok {
			return nil, FieldError("category", "must be one of: "+strings.Join(models.SubjectCategories, ", "))
		}
		filter.Category = category
	}

	subjects, total, err := s.subjects.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		items = append(items, dto.NewSubjectResponse(subject))
	}

	return &dto.SubjectListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a subject. Nil association slices leave the
// association untouched; empty slices clear it.
func (s *SubjectService) Update(ctx context.Context, id uint, req dto.SubjectUpdateRequest) (*dto.SubjectResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	if req.Code != nil {
		updates["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		category, ok := canonicalSubjectCategory(*req.Category)
		if !ok {
			return nil, FieldError("category", "must be one of: "+strings.Join(models.SubjectCategories, ", "))
		}
		updates["category"] = category
	}
	if req.CreditsTheory != nil {
		updates["credits_theory"] = *req.CreditsTheory
	}
	if req.CreditsPractical != nil {
		updates["credits_practical"] = *req.CreditsPractical
	}

	if err := s.checkPrerequisites(ctx, req.PrerequisiteIDs, id); err != nil {
		return nil, err
	}
	if err := s.checkDepartments(ctx, req.DepartmentIDs); err != nil {
		return nil, err
	}

	if len(updates) == 0 && req.PrerequisiteIDs == nil && req.DepartmentIDs == nil {
		return s.Get(ctx, id)
	}

	subject, err := s.subjects.Update(ctx, id, updates, req.PrerequisiteIDs, req.DepartmentIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a subject with that code already exists")
		}
		return nil, err
	}

	resp := dto.NewSubjectResponse(subject)
	return &resp, nil
}

// Delete removes a subject and its association rows.
func (s *SubjectService) Delete(ctx context.Context, id uint) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	return nil
}

// checkPrerequisites rejects unknown subject ids and self-reference. The
// selfID is zero on create, where no self-reference is possible yet.
func (s *SubjectService) checkPrerequisites(ctx context.Context, ids []uint, selfID uint) error {
	for _, prereqID := range ids {
		if selfID != 0 && prereqID == selfID {
			return FieldError("prerequisite_ids", "a subject cannot be its own prerequisite")
		}
		if _, err := s.subjects.GetByID(ctx, prereqID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return FieldError("prerequisite_ids", "prerequisite subject does not exist")
			}
			return err
		}
	}
	return nil
}

func (s *SubjectService) checkDepartments(ctx context.Context, ids []uint) error {
	for _, departmentID := range ids {
		if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return FieldError("department_ids", "department does not exist")
			}
			return err
		}
	}
	return nil
}

// canonicalSubjectCategory maps a case-insensitive category to its stored
// spelling.
func canonicalSubjectCategory(category string) (string, bool) {
	trimmed := strings.TrimSpace(category)
	for _, known := range models.SubjectCategories {
		if strings.EqualFold(known, trimmed) {
			return known, true
		}
	}
	return "", false
}
