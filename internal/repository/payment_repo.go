package repository

import (
	"context"
	"errors"
	"time"

	"boardinghouse/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByTransactionCode(ctx context.Context, code string) (*domain.Payment, error) {
	var p domain.Payment
	tx := r.db.WithContext(ctx).Where("transaction_code = ?", code).First(&p)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &p, nil
}

// MarkCompleted flips a payment to Completed and stamps the payment date in
// one transaction. Returns false without touching the row when the payment is
// already Completed, so replayed callbacks and racing pollers converge on the
// same terminal state.
func (r *PaymentRepository) MarkCompleted(ctx context.Context, code string, paidAt time.Time) (bool, error) {
	var changed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("transaction_code = ?", code).First(&p).Error; err != nil {
			return err
		}
		if p.Status == domain.PaymentCompleted {
			changed = false
			return nil
		}
		res := tx.Model(&domain.Payment{}).Where("transaction_code = ?", code).Updates(map[string]interface{}{
			"status":       domain.PaymentCompleted,
			"payment_date": paidAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("payment row not updated")
		}
		changed = true
		return nil
	})
	return changed, err
}

// MarkFailedIfPending flips a Pending payment to Failed. Terminal rows are
// left alone, so changed=true means this call performed the transition and
// the caller may notify exactly once.
func (r *PaymentRepository) MarkFailedIfPending(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("transaction_code = ? AND status = ?", code, domain.PaymentPending).
		Update("status", domain.PaymentFailed)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	var existing int64
	if err := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("transaction_code = ?", code).Count(&existing).Error; err != nil {
		return false, err
	}
	if existing == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return false, nil
}

func (r *PaymentRepository) TotalCompletedByLandlord(ctx context.Context, landlordID int64) (int64, error) {
	var total int64
	tx := r.db.WithContext(ctx).
		Table("payments").
		Select("COALESCE(SUM(payments.total_amount), 0)").
		Joins("JOIN bills ON bills.id = payments.bill_id").
		Where("bills.landlord_id = ? AND payments.status = ?", landlordID, domain.PaymentCompleted).
		Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return total, nil
}
