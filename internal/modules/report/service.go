package report

import (
	"context"

	"boardinghouse/internal/domain"
	"boardinghouse/internal/repository"
)

type paymentTotalsReader interface {
	TotalCompletedByLandlord(ctx context.Context, landlordID int64) (int64, error)
}

type roomStatsReader interface {
	CountByStatus(ctx context.Context, landlordID int64) ([]repository.RoomStatusCount, error)
}

type houseReader interface {
	GetByLandlord(ctx context.Context, landlordID int64) ([]domain.BoardingHouse, error)
}

// Dashboard is the landlord's summary view.
type Dashboard struct {
	TotalIncome    int64 `json:"total_income"`
	TotalHouses    int   `json:"total_houses"`
	TotalRooms     int64 `json:"total_rooms"`
	AvailableRooms int64 `json:"available_rooms"`
	OccupiedRooms  int64 `json:"occupied_rooms"`
}

type Service struct {
	payments paymentTotalsReader
	rooms    roomStatsReader
	houses   houseReader
}

func NewService(payments paymentTotalsReader, rooms roomStatsReader, houses houseReader) *Service {
	return &Service{
		payments: payments,
		rooms:    rooms,
		houses:   houses,
	}
}

// Dashboard aggregates completed payment income and occupancy numbers
// across all of the landlord's houses.
func (s *Service) Dashboard(ctx context.Context, landlordID int64) (*Dashboard, error) {
	income, err := s.payments.TotalCompletedByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	counts, err := s.rooms.CountByStatus(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	houses, err := s.houses.GetByLandlord(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalIncome: income,
		TotalHouses: len(houses),
	}
	for _, row := range counts {
		d.TotalRooms += row.Count
		switch domain.RoomStatus(row.Status) {
		case domain.RoomAvailable:
			d.AvailableRooms = row.Count
		case domain.RoomOccupied:
			d.OccupiedRooms = row.Count
		}
	}

	return d, nil
}
