package room

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

// RegisterRoutes mounts the room endpoints; the group must already carry
// auth and landlord-role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.Create)
		rooms.GET("", h.List)
		rooms.GET("/:id", h.Get)
		rooms.PUT("/:id", h.Update)
		rooms.DELETE("/:id", h.Delete)
		rooms.POST("/:id/tenant", h.AssignTenant)
		rooms.DELETE("/:id/tenant", h.RemoveTenant)
	}
}

// Create godoc
// @Summary      Create a room
// @Tags         Rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body CreateRoomRequest true "Room payload"
// @Success      201 {object} map[string]interface{}
// @Router       /rooms [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

// List godoc
// @Summary      List rooms with status stats
// @Tags         Rooms
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} ListResponse
// @Router       /rooms [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.ListRooms(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list rooms")
		return
	}

	response.Success(c, http.StatusOK, list)
}

// Get godoc
// @Summary      Get one room
// @Tags         Rooms
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]interface{}
// @Router       /rooms/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// Update godoc
// @Summary      Update a room
// @Tags         Rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Room ID"
// @Param        body body UpdateRoomRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Router       /rooms/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.UpdateRoom(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// Delete godoc
// @Summary      Delete a vacant room
// @Tags         Rooms
// @Security     BearerAuth
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /rooms/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteRoom(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

// AssignTenant godoc
// @Summary      Assign a tenant to a room
// @Description  Marks the room Occupied and opens an active contract at the room's monthly price
// @Tags         Rooms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "Room ID"
// @Param        body body AssignTenantRequest true "Tenant assignment"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /rooms/{id}/tenant [post]
func (h *Handler) AssignTenant(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	var req AssignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	room, err := h.service.AssignTenant(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

// RemoveTenant godoc
// @Summary      Remove the tenant from a room
// @Description  Terminates the active contract and marks the room Available
// @Tags         Rooms
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Room ID"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} map[string]interface{}
// @Router       /rooms/{id}/tenant [delete]
func (h *Handler) RemoveTenant(c *gin.Context) {
	id, ok := h.roomID(c)
	if !ok {
		return
	}

	room, err := h.service.RemoveTenant(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) roomID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrHouseNotFound), errors.Is(err, ErrTenantNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrRoomOccupied), errors.Is(err, ErrRoomVacant), errors.Is(err, ErrNotATenant):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
