package repository

import (
	"context"

	"boardinghouse/internal/domain"

	"gorm.io/gorm"
)

type HouseRepository struct {
	db *gorm.DB
}

func NewHouseRepository(db *gorm.DB) *HouseRepository {
	return &HouseRepository{db: db}
}

func (r *HouseRepository) Create(ctx context.Context, h *domain.BoardingHouse) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HouseRepository) GetByID(ctx context.Context, id int64) (*domain.BoardingHouse, error) {
	var h domain.BoardingHouse
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *HouseRepository) GetByLandlord(ctx context.Context, landlordID int64) ([]domain.BoardingHouse, error) {
	var houses []domain.BoardingHouse
	tx := r.db.WithContext(ctx).
		Where("landlord_id = ?", landlordID).
		Order("name").
		Find(&houses)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return houses, nil
}

func (r *HouseRepository) Update(ctx context.Context, h *domain.BoardingHouse) error {
	return r.db.WithContext(ctx).Save(h).Error
}
