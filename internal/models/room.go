package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Room types accepted by the API.
const (
	RoomTypeLecture = "lecture"
	RoomTypeLab     = "lab"
	RoomTypeSeminar = "seminar"
)

// RoomTypes lists the accepted room type values.
var RoomTypes = []string{RoomTypeLecture, RoomTypeLab, RoomTypeSeminar}

// ValidRoomType reports whether the value is a known room type.
func ValidRoomType(roomType string) bool {
	normalized := strings.ToLower(strings.TrimSpace(roomType))
	return normalized == RoomTypeLecture || normalized == RoomTypeLab || normalized == RoomTypeSeminar
}

// Room is a teaching space. Equipment and constraints are opaque documents.
type Room struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Number       string            `gorm:"size:50;uniqueIndex;not null" json:"number"`
	RoomType     string            `gorm:"size:20;not null" json:"room_type"`
	Capacity     int               `gorm:"not null" json:"capacity"`
	Equipment    datatypes.JSON    `gorm:"type:json" json:"equipment"`
	Constraints  datatypes.JSONMap `gorm:"type:json" json:"constraints"`
	DepartmentID *uint             `json:"department_id"`
	Department   *Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
