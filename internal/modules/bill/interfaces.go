package bill

import (
	"context"
	"time"

	"boardinghouse/internal/domain"
)

type billRepo interface {
	Create(ctx context.Context, b *domain.Bill) error
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
	GetWithDetails(ctx context.Context, id int64) (*domain.Bill, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]domain.Bill, error)
	GetByTenant(ctx context.Context, tenantID int64) ([]domain.Bill, error)
	UpdateAmounts(ctx context.Context, id int64, roomCharge, electricity, water, total int64, dueDate *time.Time) (*domain.Bill, error)
}

type roomReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type contractReader interface {
	GetActiveByRoom(ctx context.Context, roomID int64) (*domain.Contract, error)
}

// issueNotifier announces new bills. Best-effort: a failed notification
// never fails bill creation.
type issueNotifier interface {
	BillIssued(ctx context.Context, b *domain.Bill)
}
