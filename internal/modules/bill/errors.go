package bill

import "errors"

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrNotOwner        = errors.New("resource belongs to another landlord")
	ErrRoomNotOccupied = errors.New("room has no tenant to bill")
	ErrBillNotEditable = errors.New("bill is paid and can no longer be edited")
)
