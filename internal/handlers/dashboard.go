package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaydipchangani/project-management-backend/internal/dto"
	"github.com/jaydipchangani/project-management-backend/internal/services"
)

// DashboardHandler serves the dashboard overview
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Overview returns counts and recent items scoped to the current user's role
func (h *DashboardHandler) Overview(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Overview(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToDashboardDTO(*summary)))
}
