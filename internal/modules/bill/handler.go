package bill

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boardinghouse/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterLandlordRoutes mounts the landlord-only bill endpoints.
func (h *Handler) RegisterLandlordRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.ListForLandlord)
		bills.PUT("/:id", h.Update)
	}
}

// RegisterSharedRoutes mounts endpoints available to any authenticated user.
func (h *Handler) RegisterSharedRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.GET("/my", h.ListForTenant)
		bills.GET("/:id", h.Get)
	}
}

// Create godoc
// @Summary      Issue a bill
// @Description  Bills an occupied room for one period; the total is room charge + electricity + water
// @Tags         Bills
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateBillRequest true "Bill payload"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /bills [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bill": b})
}

// Update godoc
// @Summary      Update an unpaid bill
// @Tags         Bills
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Bill ID"
// @Param        body body UpdateBillRequest true "New amounts"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /bills/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID")
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bill": b})
}

// ListForLandlord godoc
// @Summary      List issued bills with room and tenant details
// @Tags         Bills
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /bills [get]
func (h *Handler) ListForLandlord(c *gin.Context) {
	bills, err := h.service.ListForLandlord(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list bills")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bills": bills})
}

// ListForTenant godoc
// @Summary      List the tenant's own bills
// @Tags         Bills
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /bills/my [get]
func (h *Handler) ListForTenant(c *gin.Context) {
	bills, err := h.service.ListForTenant(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list bills")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bills": bills})
}

// Get godoc
// @Summary      Get one bill
// @Tags         Bills
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /bills/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid bill ID")
		return
	}

	b, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bill": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBillNotFound), errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrRoomNotOccupied), errors.Is(err, ErrBillNotEditable):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
