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

// ErrCollegeNotFound indicates the requested college does not exist.
var ErrCollegeNotFound = errors.New("college not found")

// CollegeService implements college CRUD and the per-college summary.
type CollegeService struct {
	colleges    repository.CollegeRepository
	departments repository.DepartmentRepository
	faculties   repository.FacultyRepository
	students    repository.StudentRepository
	rooms       repository.RoomRepository
	subjects    repository.SubjectRepository
	sections    repository.SectionRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewCollegeService constructs the college service.
func NewCollegeService(
	colleges repository.CollegeRepository,
	departments repository.DepartmentRepository,
	faculties repository.FacultyRepository,
	students repository.StudentRepository,
	rooms repository.RoomRepository,
	subjects repository.SubjectRepository,
	sections repository.SectionRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *CollegeService {
	return &CollegeService{
		colleges:    colleges,
		departments: departments,
		faculties:   faculties,
		students:    students,
		rooms:       rooms,
		subjects:    subjects,
		sections:    sections,
		validate:    validate,
		logger:      logger.With().Str("component", "college_service").Logger(),
	}
}

// Create registers a new college.
func (s *CollegeService) Create(ctx context.Context, req dto.CollegeCreateRequest) (*dto.CollegeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	college := models.College{
		Name: strings.TrimSpace(req.Name),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
	}

	if err := s.colleges.Create(ctx, &college); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a college with that name or code already exists")
		}
		return nil, err
	}

	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

// Get returns a college by id.
func (s *CollegeService) Get(ctx context.Context, id uint) (*dto.CollegeResponse, error) {
	college, err := s.colleges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, err
	}
	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

// List returns a page of colleges.
func (s *CollegeService) List(ctx context.Context, req dto.CollegeListRequest) (*dto.CollegeListResponse, error) {
	filter := repository.CollegeFilter{
		Name:   req.Name,
		Code:   req.Code,
		Search: req.Search,
		Sort:   req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	colleges, total, err := s.colleges.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CollegeResponse, 0, len(colleges))
	for _, college := range colleges {
		items = append(items, dto.NewCollegeResponse(college))
	}

	return &dto.CollegeListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a college.
func (s *CollegeService) Update(ctx context.Context, id uint, req dto.CollegeUpdateRequest) (*dto.CollegeResponse, error) {
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
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	college, err := s.colleges.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("code", "a college with that name or code already exists")
		}
		return nil, err
	}

	resp := dto.NewCollegeResponse(college)
	return &resp, nil
}

// Delete removes a college.
func (s *CollegeService) Delete(ctx context.Context, id uint) error {
	if err := s.colleges.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollegeNotFound
		}
		return err
	}
	return nil
}

// Summary aggregates everything attached to a college: its departments and
// every faculty, student, room, subject and section owned by them.
func (s *CollegeService) Summary(ctx context.Context, id uint) (*dto.CollegeSummaryResponse, error) {
	college, err := s.colleges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		return nil, err
	}

	departments, err := s.departments.ListByCollege(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &dto.CollegeSummaryResponse{
		College:     dto.NewCollegeResponse(college),
		Departments: make([]dto.DepartmentResponse, 0, len(departments)),
		Faculties:   []dto.FacultyResponse{},
		Students:    []dto.StudentResponse{},
		Rooms:       []dto.RoomResponse{},
		Subjects:    []dto.SubjectResponse{},
		Sections:    []dto.SectionResponse{},
	}

	departmentIDs := make([]uint, 0, len(departments))
	for _, department := range departments {
		summary.Departments = append(summary.Departments, dto.NewDepartmentResponse(department))
		departmentIDs = append(departmentIDs, department.ID)
	}
	if len(departmentIDs) == 0 {
		return summary, nil
	}

	faculties, err := s.faculties.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	for _, faculty := range faculties {
		summary.Faculties = append(summary.Faculties, dto.NewFacultyResponse(faculty))
	}

	students, err := s.students.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		summary.Students = append(summary.Students, dto.NewStudentResponse(student))
	}

	rooms, err := s.rooms.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		summary.Rooms = append(summary.Rooms, dto.NewRoomResponse(room))
	}

	subjects, err := s.subjects.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	for _, subject := range subjects {
		summary.Subjects = append(summary.Subjects, dto.NewSubjectResponse(subject))
	}

	sections, err := s.sections.ListByDepartments(ctx, departmentIDs)
	if err != nil {
		return nil, err
	}
	for _, section := range sections {
		summary.Sections = append(summary.Sections, dto.NewSectionResponse(section))
	}

	return summary, nil
}
