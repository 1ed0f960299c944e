package repository

import (
	"context"
	"time"

	"boardinghouse/internal/domain"

	"gorm.io/gorm"
)

type BillRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, b *domain.Bill) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BillRepository) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	var b domain.Bill
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetWithDetails loads a bill with its room and tenant, for notifications
// and detail views.
func (r *BillRepository) GetWithDetails(ctx context.Context, id int64) (*domain.Bill, error) {
	var b domain.Bill
	tx := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Tenant").
		First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

func (r *BillRepository) GetByLandlord(ctx context.Context, landlordID int64) ([]domain.Bill, error) {
	var bills []domain.Bill
	tx := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Tenant").
		Where("landlord_id = ?", landlordID).
		Order("period_year DESC, period_month DESC").
		Find(&bills)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bills, nil
}

func (r *BillRepository) GetByTenant(ctx context.Context, tenantID int64) ([]domain.Bill, error) {
	var bills []domain.Bill
	tx := r.db.WithContext(ctx).
		Preload("Room").
		Where("tenant_id = ?", tenantID).
		Order("period_year DESC, period_month DESC").
		Find(&bills)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bills, nil
}

// UpdateAmounts only touches an unpaid bill; a paid bill is immutable.
func (r *BillRepository) UpdateAmounts(ctx context.Context, id int64, roomCharge, electricity, water, total int64, dueDate *time.Time) (*domain.Bill, error) {
	updates := map[string]interface{}{
		"room_charge":  roomCharge,
		"electricity":  electricity,
		"water":        water,
		"total_amount": total,
	}
	if dueDate != nil {
		updates["due_date"] = *dueDate
	}
	tx := r.db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("id = ? AND status = ?", id, domain.BillUnpaid).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *BillRepository) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Bill{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  domain.BillPaid,
			"paid_at": paidAt,
		}).Error
}
