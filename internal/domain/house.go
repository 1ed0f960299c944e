package domain

import "time"

type BoardingHouse struct {
	ID          int64     `json:"id"`
	LandlordID  int64     `gorm:"index;not null" json:"landlord_id"`
	Name        string    `json:"name" validate:"required"`
	Address     string    `json:"address" validate:"required"`
	City        string    `json:"city,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:HouseID"`
}

func (BoardingHouse) TableName() string { return "boarding_houses" }
