package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("/vnpay", h.CreatePayment)
		payments.GET("/vnpay/:code/status", h.QueryTransaction)
	}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/payments/vnpay-return", h.VnpayReturn)
}

// CreatePayment godoc
// @Summary      Initialize VNPay payment
// @Description  Creates a pending payment for a bill and returns the gateway redirect URL
// @Tags         Payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreatePaymentRequest true "Payment payload"
// @Success      200 {object} CreatePaymentResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /payments/vnpay [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loggerf("level=error msg=invalid vnpay create payload err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = c.GetInt64("user_id")
	req.IPAddress = c.ClientIP()

	resp, err := h.service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrBillNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case ErrBillAlreadyPaid:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case ErrNotConfigured:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			h.loggerf("level=error msg=vnpay create failed request=%+v err=%v", req, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VnpayReturn godoc
// @Summary      VNPay return callback
// @Description  Verifies the gateway callback signature and settles the payment. Always acknowledges with 200.
// @Tags         Payments
// @Produce      json
// @Param        vnp_TxnRef query string true "Transaction reference"
// @Param        vnp_ResponseCode query string true "Gateway response code"
// @Param        vnp_SecureHash query string true "HMAC-SHA512 signature"
// @Success      200 {object} Result
// @Router       /payments/vnpay-return [get]
func (h *Handler) VnpayReturn(c *gin.Context) {
	params := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	h.loggerf("level=info msg=vnpay return callback txn_ref=%s response_code=%s", params["vnp_TxnRef"], params["vnp_ResponseCode"])

	res := h.service.ProcessReturn(c.Request.Context(), params)

	// The gateway expects a 200-level acknowledgment regardless of outcome.
	c.JSON(http.StatusOK, res)
}

// QueryTransaction godoc
// @Summary      Query VNPay transaction status
// @Description  Reconciles the local payment against the gateway's querydr API
// @Tags         Payments
// @Security     BearerAuth
// @Produce      json
// @Param        code path string true "Transaction code"
// @Success      200 {object} Result
// @Router       /payments/vnpay/{code}/status [get]
func (h *Handler) QueryTransaction(c *gin.Context) {
	code := c.Param("code")
	res := h.service.QueryTransaction(c.Request.Context(), code)
	c.JSON(http.StatusOK, res)
}
