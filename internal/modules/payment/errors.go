package payment

import "errors"

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrBillAlreadyPaid = errors.New("bill is already paid")
	ErrNotConfigured   = errors.New("vnpay credentials are not configured")
)

// Gateway result codes shared by the return and query paths.
const (
	CodeSuccess          = "00"
	CodeNotFound         = "01"
	CodeInvalidSignature = "97"
	CodeSystemError      = "99"
)
