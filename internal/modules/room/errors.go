package room

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrHouseNotFound  = errors.New("boarding house not found")
	ErrNotOwner       = errors.New("room belongs to another landlord")
	ErrRoomOccupied   = errors.New("room already has a tenant")
	ErrRoomVacant     = errors.New("room has no tenant")
	ErrTenantNotFound = errors.New("tenant account not found")
	ErrNotATenant     = errors.New("user is not a tenant account")
)
