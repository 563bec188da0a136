package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
	"github.com/minhasaulas/prof-agenda-api/internal/service"
	"github.com/minhasaulas/prof-agenda-api/pkg/response"
)

type historicoService interface {
	ListByDate(ctx context.Context, dateStr string) ([]models.RegistroDetail, string, error)
	Export(ctx context.Context, dateStr, format string) (*service.ExportFile, error)
}

// HistoricoHandler exposes the daily history listing and its exports.
type HistoricoHandler struct {
	service historicoService
}

// NewHistoricoHandler constructs a historico handler.
func NewHistoricoHandler(service historicoService) *HistoricoHandler {
	return &HistoricoHandler{service: service}
}

// List godoc
// @Summary Lesson records of one calendar date
// @Tags Historico
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Success 200 {object} response.Envelope
// @Router /historico [get]
func (h *HistoricoHandler) List(c *gin.Context) {
	registros, date, err := h.service.ListByDate(c.Request.Context(), strings.TrimSpace(c.Query("date")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, registros, nil, map[string]interface{}{"date": date})
}

// Export godoc
// @Summary Export one day of lesson records
// @Tags Historico
// @Produce text/csv
// @Produce application/pdf
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param format query string true "Export format (csv or pdf)"
// @Success 200 {file} file
// @Router /historico/export [get]
func (h *HistoricoHandler) Export(c *gin.Context) {
	file, err := h.service.Export(
		c.Request.Context(),
		strings.TrimSpace(c.Query("date")),
		strings.ToLower(strings.TrimSpace(c.Query("format"))),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
