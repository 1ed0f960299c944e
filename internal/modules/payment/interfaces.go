package payment

import (
	"context"
	"time"

	"boardinghouse/internal/domain"
)

type billReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
}

type billWriter interface {
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
}

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByTransactionCode(ctx context.Context, code string) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, code string, paidAt time.Time) (bool, error)
	MarkFailedIfPending(ctx context.Context, code string) (bool, error)
}

// resultNotifier receives terminal payment outcomes. Implementations must be
// best-effort: a failed notification never fails the payment flow.
type resultNotifier interface {
	PaymentCompleted(ctx context.Context, p *domain.Payment)
	PaymentFailed(ctx context.Context, p *domain.Payment)
}
