package dto

import (
	"github.com/acadsuite/campus-api/internal/models"
)

// RoomCreateRequest carries the fields to create a room.
type RoomCreateRequest struct {
	Number       string                 `json:"number" validate:"required,max=50"`
	RoomType     string                 `json:"room_type" validate:"required"`
	Capacity     int                    `json:"capacity" validate:"required,min=1"`
	Equipment    []interface{}          `json:"equipment"`
	Constraints  map[string]interface{} `json:"constraints"`
	DepartmentID *uint                  `json:"department_id"`
}

// RoomUpdateRequest carries the editable room fields.
type RoomUpdateRequest struct {
	Number       *string                `json:"number" validate:"omitempty,max=50"`
	RoomType     *string                `json:"room_type"`
	Capacity     *int                   `json:"capacity" validate:"omitempty,min=1"`
	Equipment    []interface{}          `json:"equipment"`
	Constraints  map[string]interface{} `json:"constraints"`
	DepartmentID *uint                  `json:"department_id"`
}

// RoomListRequest narrows the room listing.
type RoomListRequest struct {
	RoomType     string
	Capacity     *int
	DepartmentID *uint
	CollegeID    *uint
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// RoomResponse is the public shape of a room.
type RoomResponse struct {
	ID           uint                   `json:"id"`
	Number       string                 `json:"number"`
	RoomType     string                 `json:"room_type"`
	Capacity     int                    `json:"capacity"`
	Equipment    []interface{}          `json:"equipment"`
	Constraints  map[string]interface{} `json:"constraints"`
	DepartmentID *uint                  `json:"department_id"`
	Department   *DepartmentResponse    `json:"department,omitempty"`
}

// NewRoomResponse maps a room model into its public shape.
func NewRoomResponse(room models.Room) RoomResponse {
	response := RoomResponse{
		ID:           room.ID,
		Number:       room.Number,
		RoomType:     room.RoomType,
		Capacity:     room.Capacity,
		Equipment:    decodeJSONList(room.Equipment),
		Constraints:  room.Constraints,
		DepartmentID: room.DepartmentID,
	}
	if room.Department != nil {
		department := NewDepartmentResponse(*room.Department)
		response.Department = &department
	}
	return response
}

// RoomListResponse is a page of rooms.
type RoomListResponse struct {
	Items      []RoomResponse `json:"items"`
	Pagination PageMeta       `json:"pagination"`
}
