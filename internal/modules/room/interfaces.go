package room

import (
	"context"

	"boardinghouse/internal/domain"
	"boardinghouse/internal/repository"
)

type roomRepo interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	SetTenant(ctx context.Context, roomID int64, tenantID *int64, status domain.RoomStatus) (*domain.Room, error)
	CountByStatus(ctx context.Context, landlordID int64) ([]repository.RoomStatusCount, error)
}

type houseReader interface {
	GetByID(ctx context.Context, id int64) (*domain.BoardingHouse, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type contractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetActiveByRoom(ctx context.Context, roomID int64) (*domain.Contract, error)
	Terminate(ctx context.Context, id int64) error
}
