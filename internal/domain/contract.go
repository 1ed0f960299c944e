package domain

import "time"

type ContractStatus string

const (
	ContractActive     ContractStatus = "Active"
	ContractTerminated ContractStatus = "Terminated"
)

type Contract struct {
	ID           int64          `json:"id"`
	RoomID       int64          `gorm:"index;not null" json:"room_id"`
	TenantID     int64          `gorm:"index;not null" json:"tenant_id"`
	LandlordID   int64          `gorm:"index;not null" json:"landlord_id"`
	MonthlyRent  int64          `json:"monthly_rent"`
	Deposit      int64          `json:"deposit,omitempty"`
	Status       ContractStatus `gorm:"type:varchar(16);default:'Active';index" json:"status"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	TerminatedAt *time.Time     `json:"terminated_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
