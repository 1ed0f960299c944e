package repository

import (
	"context"

	"boardinghouse/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// RoomStatusCount is one row of the landlord's status breakdown.
type RoomStatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) GetByLandlord(ctx context.Context, landlordID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	tx := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("landlord_id = ?", landlordID).
		Order("room_number").
		Find(&rooms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Room{}, id).Error
}

// SetTenant assigns or clears the tenant and flips the occupancy status in one update.
func (r *RoomRepository) SetTenant(ctx context.Context, roomID int64, tenantID *int64, status domain.RoomStatus) (*domain.Room, error) {
	updates := map[string]interface{}{
		"tenant_id": tenantID,
		"status":    status,
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", roomID).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, roomID)
}

func (r *RoomRepository) CountByStatus(ctx context.Context, landlordID int64) ([]RoomStatusCount, error) {
	var rows []RoomStatusCount
	tx := r.db.WithContext(ctx).
		Table("rooms").
		Select("status, COUNT(*) AS count").
		Where("landlord_id = ?", landlordID).
		Group("status").
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}
