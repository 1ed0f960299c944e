package bill

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"boardinghouse/internal/domain"
)

type Service struct {
	bills     billRepo
	rooms     roomReader
	contracts contractReader
	notifier  issueNotifier
	loggerf   func(format string, args ...interface{})
}

func NewService(bills billRepo, rooms roomReader, contracts contractReader, notifier issueNotifier, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bills:     bills,
		rooms:     rooms,
		contracts: contracts,
		notifier:  notifier,
		loggerf:   loggerf,
	}
}

// Create issues a bill against an occupied room. The total is always
// computed server-side from the three charges.
func (s *Service) Create(ctx context.Context, landlordID int64, req CreateBillRequest) (*domain.Bill, error) {
	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	if room.Status != domain.RoomOccupied || room.TenantID == nil {
		return nil, ErrRoomNotOccupied
	}

	contract, err := s.contracts.GetActiveByRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotOccupied
		}
		return nil, err
	}

	b := &domain.Bill{
		RoomID:      req.RoomID,
		ContractID:  contract.ID,
		TenantID:    *room.TenantID,
		LandlordID:  landlordID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		RoomCharge:  req.RoomCharge,
		Electricity: req.Electricity,
		Water:       req.Water,
		TotalAmount: req.RoomCharge + req.Electricity + req.Water,
		Status:      domain.BillUnpaid,
		DueDate:     req.DueDate,
	}
	if err := s.bills.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if full, err := s.bills.GetWithDetails(ctx, b.ID); err == nil {
			s.notifier.BillIssued(ctx, full)
		} else {
			s.loggerf("bill %d: detail reload for notification failed: %v", b.ID, err)
		}
	}

	return b, nil
}

// Update replaces the amounts of an unpaid bill; a paid bill is immutable.
func (s *Service) Update(ctx context.Context, landlordID, billID int64, req UpdateBillRequest) (*domain.Bill, error) {
	b, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if b.LandlordID != landlordID {
		return nil, ErrNotOwner
	}
	if b.Status != domain.BillUnpaid {
		return nil, ErrBillNotEditable
	}

	total := req.RoomCharge + req.Electricity + req.Water
	updated, err := s.bills.UpdateAmounts(ctx, billID, req.RoomCharge, req.Electricity, req.Water, total, req.DueDate)
	if err != nil {
		// The guarded update misses when the bill flipped to Paid between
		// the read above and the write.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotEditable
		}
		return nil, err
	}
	return updated, nil
}

func (s *Service) ListForLandlord(ctx context.Context, landlordID int64) ([]domain.Bill, error) {
	return s.bills.GetByLandlord(ctx, landlordID)
}

func (s *Service) ListForTenant(ctx context.Context, tenantID int64) ([]domain.Bill, error) {
	return s.bills.GetByTenant(ctx, tenantID)
}

// Get returns the bill to its landlord or its tenant.
func (s *Service) Get(ctx context.Context, userID, billID int64) (*domain.Bill, error) {
	b, err := s.bills.GetWithDetails(ctx, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if b.LandlordID != userID && b.TenantID != userID {
		return nil, ErrNotOwner
	}
	return b, nil
}
