package house

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"boardinghouse/internal/pkg/response"
	"boardinghouse/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the house endpoints; the group must already carry
// auth and landlord-role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	houses := rg.Group("/houses")
	{
		houses.POST("", h.Create)
		houses.GET("", h.List)
		houses.GET("/:id", h.Get)
		houses.PUT("/:id", h.Update)
	}
}

// Create godoc
// @Summary      Create a boarding house
// @Tags         Houses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateHouseRequest true "House payload"
// @Success      201 {object} map[string]interface{}
// @Router       /houses [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", fields)
		return
	}

	house, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create boarding house")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"house": house})
}

// List godoc
// @Summary      List the landlord's boarding houses
// @Tags         Houses
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /houses [get]
func (h *Handler) List(c *gin.Context) {
	houses, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list boarding houses")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"houses": houses})
}

// Get godoc
// @Summary      Get one boarding house
// @Tags         Houses
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "House ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /houses/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid house ID")
		return
	}

	house, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"house": house})
}

// Update godoc
// @Summary      Update a boarding house
// @Tags         Houses
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "House ID"
// @Param        body body UpdateHouseRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Router       /houses/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid house ID")
		return
	}

	var req UpdateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	house, err := h.service.Update(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"house": house})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrHouseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Boarding house not found")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this boarding house")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
