package payment

type CreatePaymentRequest struct {
	BillID     int64 `json:"bill_id" binding:"required" example:"12"`
	ContractID int64 `json:"contract_id" binding:"required" example:"3"`
	// TotalAmount is in VND.
	TotalAmount int64 `json:"total_amount" binding:"required,gt=0" example:"1800000"`

	// Filled by the handler, not the client.
	UserID    int64  `json:"-"`
	IPAddress string `json:"-"`
}

type CreatePaymentResponse struct {
	PaymentURL      string `json:"payment_url" example:"https://sandbox.vnpayment.vn/paymentv2/vpcpay.html?..."`
	TransactionCode string `json:"transaction_code" example:"VNP20260831120000a1b2c3d4"`
}

// Result is the structured outcome of the return-callback and status-query
// paths. It is always populated, never raised, so the HTTP layer can hand the
// gateway a well-formed acknowledgment regardless of business outcome.
type Result struct {
	Code      string `json:"code" example:"00"`
	Message   string `json:"message" example:"Transaction successful"`
	PaymentID int64  `json:"payment_id,omitempty" example:"7"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"invalid request"`
}
