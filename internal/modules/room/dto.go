package room

import "boardinghouse/internal/domain"

type CreateRoomRequest struct {
	HouseID      int64  `json:"house_id" binding:"required"`
	RoomNumber   string `json:"room_number" binding:"required"`
	RoomType     string `json:"room_type" binding:"required,oneof=Single Double Shared"`
	Capacity     int    `json:"capacity" binding:"required,gt=0"`
	MonthlyPrice int64  `json:"monthly_price" binding:"required,gt=0"`
	Description  string `json:"description"`
}

type UpdateRoomRequest struct {
	RoomNumber   string `json:"room_number,omitempty"`
	RoomType     string `json:"room_type,omitempty" binding:"omitempty,oneof=Single Double Shared"`
	Capacity     int    `json:"capacity,omitempty" binding:"omitempty,gt=0"`
	MonthlyPrice int64  `json:"monthly_price,omitempty" binding:"omitempty,gt=0"`
	Description  string `json:"description,omitempty"`
}

type AssignTenantRequest struct {
	TenantID int64 `json:"tenant_id" binding:"required"`
	Deposit  int64 `json:"deposit" binding:"gte=0"`
}

// Stats is the landlord's room status breakdown.
type Stats struct {
	Total     int64 `json:"total"`
	Available int64 `json:"available"`
	Occupied  int64 `json:"occupied"`
}

type ListResponse struct {
	Rooms []domain.Room `json:"rooms"`
	Stats Stats         `json:"stats"`
}
