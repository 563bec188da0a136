package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/pkg/response"
)

type dashboardService interface {
	Hoje(ctx context.Context) (*dto.DashboardHojeResponse, error)
}

// DashboardHandler exposes the "hoje" card endpoint.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Hoje godoc
// @Summary Today's schedule with the next class called out
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/hoje [get]
func (h *DashboardHandler) Hoje(c *gin.Context) {
	resp, err := h.service.Hoje(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
