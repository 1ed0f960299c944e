package bill

import "time"

type CreateBillRequest struct {
	RoomID      int64      `json:"room_id" binding:"required"`
	PeriodMonth int        `json:"period_month" binding:"required,gte=1,lte=12"`
	PeriodYear  int        `json:"period_year" binding:"required,gte=2000"`
	RoomCharge  int64      `json:"room_charge" binding:"required,gt=0"`
	Electricity int64      `json:"electricity" binding:"gte=0"`
	Water       int64      `json:"water" binding:"gte=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateBillRequest replaces the amounts of an unpaid bill. Zero charges are
// allowed only for electricity and water.
type UpdateBillRequest struct {
	RoomCharge  int64      `json:"room_charge" binding:"required,gt=0"`
	Electricity int64      `json:"electricity" binding:"gte=0"`
	Water       int64      `json:"water" binding:"gte=0"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}
