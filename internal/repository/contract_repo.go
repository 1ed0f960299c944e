package repository

import (
	"context"
	"time"

	"boardinghouse/internal/domain"

	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) GetActiveByRoom(ctx context.Context, roomID int64) (*domain.Contract, error) {
	var c domain.Contract
	tx := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, domain.ContractActive).
		First(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *ContractRepository) Terminate(ctx context.Context, id int64) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).
		Model(&domain.Contract{}).
		Where("id = ? AND status = ?", id, domain.ContractActive).
		Updates(map[string]interface{}{
			"status":        domain.ContractTerminated,
			"terminated_at": now,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
