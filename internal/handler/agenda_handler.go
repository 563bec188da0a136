package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/pkg/response"
)

type agendaService interface {
	Day(ctx context.Context, dateStr string) (*dto.AgendaDayResponse, error)
}

// AgendaHandler exposes the day view endpoint.
type AgendaHandler struct {
	service agendaService
}

// NewAgendaHandler constructs an agenda handler.
func NewAgendaHandler(service agendaService) *AgendaHandler {
	return &AgendaHandler{service: service}
}

// Day godoc
// @Summary Agenda for one calendar date
// @Tags Agenda
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Success 200 {object} response.Envelope
// @Router /agenda [get]
func (h *AgendaHandler) Day(c *gin.Context) {
	resp, err := h.service.Day(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
