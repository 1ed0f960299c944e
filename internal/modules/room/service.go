package room

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"boardinghouse/internal/domain"
)

type Service struct {
	rooms     roomRepo
	houses    houseReader
	users     userReader
	contracts contractRepo
}

func NewService(rooms roomRepo, houses houseReader, users userReader, contracts contractRepo) *Service {
	return &Service{
		rooms:     rooms,
		houses:    houses,
		users:     users,
		contracts: contracts,
	}
}

func (s *Service) CreateRoom(ctx context.Context, landlordID int64, req CreateRoomRequest) (*domain.Room, error) {
	house, err := s.houses.GetByID(ctx, req.HouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, err
	}
	if house.LandlordID != landlordID {
		return nil, ErrNotOwner
	}

	room := &domain.Room{
		HouseID:      req.HouseID,
		LandlordID:   landlordID,
		RoomNumber:   req.RoomNumber,
		RoomType:     domain.RoomType(req.RoomType),
		Capacity:     req.Capacity,
		MonthlyPrice: req.MonthlyPrice,
		Status:       domain.RoomAvailable,
		Description:  req.Description,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms returns all of the landlord's rooms with the status breakdown.
func (s *Service) ListRooms(ctx context.Context, landlordID int64) (*ListResponse, error) {
	rooms, err := s.rooms.GetByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	counts, err := s.rooms.CountByStatus(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	var stats Stats
	for _, row := range counts {
		stats.Total += row.Count
		switch domain.RoomStatus(row.Status) {
		case domain.RoomAvailable:
			stats.Available = row.Count
		case domain.RoomOccupied:
			stats.Occupied = row.Count
		}
	}

	return &ListResponse{Rooms: rooms, Stats: stats}, nil
}

func (s *Service) GetRoom(ctx context.Context, landlordID, roomID int64) (*domain.Room, error) {
	return s.ownedRoom(ctx, landlordID, roomID)
}

func (s *Service) UpdateRoom(ctx context.Context, landlordID, roomID int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != "" {
		room.RoomNumber = req.RoomNumber
	}
	if req.RoomType != "" {
		room.RoomType = domain.RoomType(req.RoomType)
	}
	if req.Capacity > 0 {
		room.Capacity = req.Capacity
	}
	if req.MonthlyPrice > 0 {
		room.MonthlyPrice = req.MonthlyPrice
	}
	if req.Description != "" {
		room.Description = req.Description
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom removes a vacant room. An occupied room must have its tenant
// removed first so the contract is closed properly.
func (s *Service) DeleteRoom(ctx context.Context, landlordID, roomID int64) error {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return err
	}
	if room.Status == domain.RoomOccupied {
		return ErrRoomOccupied
	}
	return s.rooms.Delete(ctx, roomID)
}

// AssignTenant moves a vacant room to Occupied and opens an active contract
// at the room's current monthly price.
func (s *Service) AssignTenant(ctx context.Context, landlordID, roomID int64, req AssignTenantRequest) (*domain.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status == domain.RoomOccupied || room.TenantID != nil {
		return nil, ErrRoomOccupied
	}

	tenant, err := s.users.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	if tenant.Role != domain.RoleTenant {
		return nil, ErrNotATenant
	}

	updated, err := s.rooms.SetTenant(ctx, roomID, &req.TenantID, domain.RoomOccupied)
	if err != nil {
		return nil, err
	}

	if err := s.contracts.Create(ctx, &domain.Contract{
		RoomID:      roomID,
		TenantID:    req.TenantID,
		LandlordID:  landlordID,
		MonthlyRent: room.MonthlyPrice,
		Deposit:     req.Deposit,
		Status:      domain.ContractActive,
		StartDate:   time.Now(),
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// RemoveTenant terminates the active contract and frees the room.
func (s *Service) RemoveTenant(ctx context.Context, landlordID, roomID int64) (*domain.Room, error) {
	room, err := s.ownedRoom(ctx, landlordID, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != domain.RoomOccupied || room.TenantID == nil {
		return nil, ErrRoomVacant
	}

	contract, err := s.contracts.GetActiveByRoom(ctx, roomID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if contract != nil {
		if err := s.contracts.Terminate(ctx, contract.ID); err != nil {
			return nil, err
		}
	}

	return s.rooms.SetTenant(ctx, roomID, nil, domain.RoomAvailable)
}

func (s *Service) ownedRoom(ctx context.Context, landlordID, roomID int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	return room, nil
}
