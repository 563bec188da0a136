package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/response"
)

type registroService interface {
	Reconcile(ctx context.Context, turmaID, dateStr, horario string) (*dto.ReconcileResponse, error)
	Save(ctx context.Context, req dto.SaveRegistroRequest) (*models.Registro, error)
}

// RegistroHandler exposes the lesson-record endpoints.
type RegistroHandler struct {
	service registroService
}

// NewRegistroHandler constructs a registro handler.
func NewRegistroHandler(service registroService) *RegistroHandler {
	return &RegistroHandler{service: service}
}

// Reconcile godoc
// @Summary Resolve the lesson-record screen for one slot
// @Tags Registros
// @Produce json
// @Param id path string true "Turma ID"
// @Param date query string false "Date (YYYY-MM-DD). Defaults to today"
// @Param horario query string false "Slot time. Defaults to the turma's first slot"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id}/registro [get]
func (h *RegistroHandler) Reconcile(c *gin.Context) {
	resp, err := h.service.Reconcile(
		c.Request.Context(),
		c.Param("id"),
		strings.TrimSpace(c.Query("date")),
		strings.TrimSpace(c.Query("horario")),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Create or update a lesson record
// @Tags Registros
// @Accept json
// @Produce json
// @Param payload body dto.SaveRegistroRequest true "Registro payload"
// @Success 200 {object} response.Envelope
// @Router /registros [post]
func (h *RegistroHandler) Save(c *gin.Context) {
	var req dto.SaveRegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	registro, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	response.JSON(c, status, registro, nil)
}
