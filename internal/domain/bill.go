package domain

import "time"

type BillStatus string

const (
	BillUnpaid BillStatus = "Unpaid"
	BillPaid   BillStatus = "Paid"
)

// Bill is the amount owed for a room over one billing period.
// All amounts are in VND.
type Bill struct {
	ID           int64      `json:"id"`
	RoomID       int64      `gorm:"index;not null" json:"room_id"`
	ContractID   int64      `gorm:"index;not null" json:"contract_id"`
	TenantID     int64      `gorm:"index;not null" json:"tenant_id"`
	LandlordID   int64      `gorm:"index;not null" json:"landlord_id"`
	PeriodMonth  int        `json:"period_month" validate:"required,gte=1,lte=12"`
	PeriodYear   int        `json:"period_year" validate:"required,gte=2000"`
	RoomCharge   int64      `json:"room_charge" validate:"required,gt=0"`
	Electricity  int64      `json:"electricity" validate:"gte=0"`
	Water        int64      `json:"water" validate:"gte=0"`
	TotalAmount  int64      `json:"total_amount"`
	Status       BillStatus `gorm:"type:varchar(16);default:'Unpaid';index" json:"status"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Room   *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	Tenant *User `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
