package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
)

// Terminal reports whether no further status transition is permitted.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed
}

type PaymentMethod string

const (
	MethodOnline PaymentMethod = "Online Payment"
	MethodCash   PaymentMethod = "Cash"
)

// Payment is one payment attempt against a bill. TransactionCode is generated
// once at creation and correlates the row with the gateway transaction.
type Payment struct {
	ID              int64         `json:"id"`
	BillID          int64         `gorm:"index;not null" json:"bill_id"`
	UserID          int64         `gorm:"index;not null" json:"user_id"`
	ContractID      int64         `gorm:"index;not null" json:"contract_id"`
	Method          PaymentMethod `gorm:"type:varchar(32);column:payment_method" json:"payment_method"`
	// TotalAmount is in VND, before the x100 gateway scaling.
	TotalAmount     int64         `json:"total_amount"`
	Status          PaymentStatus `gorm:"type:varchar(16);default:'Pending';index" json:"status"`
	TransactionCode string        `gorm:"type:varchar(64);uniqueIndex;not null" json:"transaction_code"`
	// PaymentDate is stamped only when the payment completes.
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
