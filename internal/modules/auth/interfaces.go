package auth

import (
	"context"

	"boardinghouse/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// ResetTokenRepositoryInterface stores password-reset tokens by sha256 hash.
type ResetTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.PasswordResetToken) error
	GetActiveByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
}

// Mailer sends account lifecycle emails.
type Mailer interface {
	SendWelcome(ctx context.Context, to, name, role string) error
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}
