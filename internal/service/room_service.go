package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/models"
	"github.com/acadsuite/campus-api/internal/repository"
)

// ErrRoomNotFound indicates the requested room does not exist.
var ErrRoomNotFound = errors.New("room not found")

// RoomService implements room CRUD.
type RoomService struct {
	rooms       repository.RoomRepository
	departments repository.DepartmentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewRoomService constructs the room service.
func NewRoomService(
	rooms repository.RoomRepository,
	departments repository.DepartmentRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) *RoomService {
	return &RoomService{
		rooms:       rooms,
		departments: departments,
		validate:    validate,
		logger:      logger.With().Str("component", "room_service").Logger(),
	}
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req dto.RoomCreateRequest) (*dto.RoomResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	roomType := strings.ToLower(strings.TrimSpace(req.RoomType))
	if !models.ValidRoomType(roomType) {
		return nil, FieldError("room_type", "must be one of: "+strings.Join(models.RoomTypes, ", "))
	}
	if req.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, FieldError("department_id", "department does not exist")
			}
			return nil, err
		}
	}

	room := models.Room{
		Number:       strings.TrimSpace(req.Number),
		RoomType:     roomType,
		Capacity:     req.Capacity,
		Equipment:    encodeJSONList(req.Equipment),
		Constraints:  datatypes.JSONMap(req.Constraints),
		DepartmentID: req.DepartmentID,
	}

	if err := s.rooms.Create(ctx, &room); err != nil {
		if isDuplicateKey(err) {
			return nil, FieldError("number", "a room with that number already exists")
		}
		return nil, err
	}

	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

// Get returns a room by id.
func (s *RoomService) Get(ctx context.Context, id uint) (*dto.RoomResponse, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

// List returns a page of rooms.
func (s *RoomService) List(ctx context.Context, req dto.RoomListRequest) (*dto.RoomListResponse, error) {
	filter := repository.RoomFilter{
		Capacity:     req.Capacity,
		DepartmentID: req.DepartmentID,
		CollegeID:    req.CollegeID,
		Search:       req.Search,
		Sort:         req.Sort,
	}
	filter.Page, filter.PageSize = normalizePage(req.Page, req.PageSize)

	if strings.TrimSpace(req.RoomType) != "" {
		roomType := strings.ToLower(strings.TrimSpace(req.RoomType))
		if !models.ValidRoomType(roomType) {
			return nil, FieldError("room_type", "must be one of: "+strings.Join(models.RoomTypes, ", "))
		}
		filter.RoomType = roomType
	}

	rooms, total, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, dto.NewRoomResponse(room))
	}

	return &dto.RoomListResponse{
		Items:      items,
		Pagination: dto.NewPageMeta(filter.Page, filter.PageSize, total),
	}, nil
}

// Update applies partial edits to a room.
func (s *RoomService) Update(ctx context.Context, id uint, req dto.RoomUpdateRequest) (*dto.RoomResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationErrorFrom(err)
	}

	updates := map[string]interface{}{}
	if req.Number != nil {
		updates["number"] = strings.TrimSpace(*req.Number)
	}
	if req.RoomType != nil {
		roomType := strings.ToLower(strings.TrimSpace(*req.RoomType))
		if !models.ValidRoomType(roomType) {
			return nil, FieldError("room_type", "must be one of: "+strings.Join(models.RoomTypes, ", "))
		}
		updates["room_type"] = roomType
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Equipment != nil {
		updates["equipment"] = encodeJSONList(req.Equipment)
	}
	if req.Constraints != nil {
		updates["constraints"] = datatypes.JSONMap(req.Constraints)
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
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	room, err := s.rooms.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		if isDuplicateKey(err) {
			return nil, FieldError("number", "a room with that number already exists")
		}
		return nil, err
	}

	resp := dto.NewRoomResponse(room)
	return &resp, nil
}

// Delete removes a room.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	return nil
}
