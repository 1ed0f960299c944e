package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boardinghouse/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the report endpoints; the group must already carry
// auth and landlord-role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/dashboard", h.Dashboard)
}

// Dashboard godoc
// @Summary      Landlord dashboard
// @Description  Completed payment income and occupancy breakdown across all houses
// @Tags         Reports
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} Dashboard
// @Router       /reports/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to build dashboard")
		return
	}

	response.Success(c, http.StatusOK, d)
}
