package house

import "errors"

var (
	ErrHouseNotFound = errors.New("boarding house not found")
	ErrNotOwner      = errors.New("boarding house belongs to another landlord")
)
