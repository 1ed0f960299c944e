package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomShared RoomType = "Shared"
)

type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
)

type Room struct {
	ID          int64      `json:"id"`
	HouseID     int64      `gorm:"index;not null" json:"house_id"`
	LandlordID  int64      `gorm:"index;not null" json:"landlord_id"`
	RoomNumber  string     `gorm:"type:varchar(16);not null" json:"room_number" validate:"required"`
	RoomType    RoomType   `gorm:"type:varchar(16)" json:"room_type" validate:"required"`
	Capacity    int        `json:"capacity" validate:"required,gt=0"`
	// MonthlyPrice is in VND, the smallest currency unit.
	MonthlyPrice int64      `json:"monthly_price" validate:"required,gt=0"`
	Status       RoomStatus `gorm:"type:varchar(16);default:'Available';index" json:"status"`
	TenantID     *int64     `gorm:"index" json:"tenant_id,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Tenant *User `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}
