package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/acadsuite/campus-api/internal/models"
)

// RoomFilter narrows room listing queries.
type RoomFilter struct {
	RoomType     string
	Capacity     *int
	DepartmentID *uint
	CollegeID    *uint
	Search       string
	Sort         string
	Page         int
	PageSize     int
}

// RoomRepository provides access to rooms.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uint) (models.Room, error)
	List(ctx context.Context, filter RoomFilter) ([]models.Room, int64, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Room, error)
	Delete(ctx context.Context, id uint) error
	ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository constructs a room repository.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).Preload("Department").First(&room, id).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

var roomSortColumns = map[string]string{
	"capacity": "capacity",
	"number":   "number",
}

func (r *roomRepository) List(ctx context.Context, filter RoomFilter) ([]models.Room, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Room{})

	if roomType := strings.ToLower(strings.TrimSpace(filter.RoomType)); roomType != "" {
		query = query.Where("room_type = ?", roomType)
	}
	if filter.Capacity != nil {
		query = query.Where("capacity = ?", *filter.Capacity)
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.CollegeID != nil {
		query = query.Where(
			"department_id IN (?)",
			r.db.Model(&models.Department{}).Select("id").Where("college_id = ?", *filter.CollegeID),
		)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(number) LIKE ?", pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var rooms []models.Room
	order := orderClause(filter.Sort, roomSortColumns, "number ASC")
	if err := query.Preload("Department").Order(order).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

func (r *roomRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Room, error) {
	result := r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return models.Room{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Room{}, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *roomRepository) ListByDepartments(ctx context.Context, departmentIDs []uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Where("department_id IN ?", departmentIDs).
		Order("number ASC").Find(&rooms).Error
	return rooms, err
}
