package house

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"boardinghouse/internal/domain"
)

type houseRepo interface {
	Create(ctx context.Context, h *domain.BoardingHouse) error
	GetByID(ctx context.Context, id int64) (*domain.BoardingHouse, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]domain.BoardingHouse, error)
	Update(ctx context.Context, h *domain.BoardingHouse) error
}

type Service struct {
	houses houseRepo
}

func NewService(houses houseRepo) *Service {
	return &Service{houses: houses}
}

func (s *Service) Create(ctx context.Context, landlordID int64, req CreateHouseRequest) (*domain.BoardingHouse, error) {
	h := &domain.BoardingHouse{
		LandlordID:  landlordID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Description: req.Description,
	}
	if err := s.houses.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) List(ctx context.Context, landlordID int64) ([]domain.BoardingHouse, error) {
	return s.houses.GetByLandlord(ctx, landlordID)
}

// Get returns the house only to its owning landlord.
func (s *Service) Get(ctx context.Context, landlordID, houseID int64) (*domain.BoardingHouse, error) {
	h, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	if h.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, landlordID, houseID int64, req UpdateHouseRequest) (*domain.BoardingHouse, error) {
	h, err := s.Get(ctx, landlordID, houseID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		h.Name = req.Name
	}
	if req.Address != "" {
		h.Address = req.Address
	}
	if req.City != "" {
		h.City = req.City
	}
	if req.Description != "" {
		h.Description = req.Description
	}

	if err := s.houses.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}
