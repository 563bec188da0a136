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

type turmaService interface {
	List(ctx context.Context, filter models.TurmaFilter) ([]dto.TurmaItem, error)
	Get(ctx context.Context, id string) (*dto.TurmaDetail, error)
	Create(ctx context.Context, req dto.SaveTurmaRequest) (*models.Turma, error)
	Update(ctx context.Context, id string, req dto.SaveTurmaRequest) (*models.Turma, error)
	Delete(ctx context.Context, id string) error
}

// TurmaHandler exposes turma CRUD endpoints.
type TurmaHandler struct {
	service turmaService
}

// NewTurmaHandler constructs a turma handler.
func NewTurmaHandler(service turmaService) *TurmaHandler {
	return &TurmaHandler{service: service}
}

// List godoc
// @Summary List turmas with weekly schedule chips
// @Tags Turmas
// @Produce json
// @Param search query string false "Search by name or subject"
// @Param status query string false "Filter by status"
// @Param hoje query bool false "Only turmas recurring today"
// @Success 200 {object} response.Envelope
// @Router /turmas [get]
func (h *TurmaHandler) List(c *gin.Context) {
	filter := models.TurmaFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
		Hoje:   c.Query("hoje") == "true",
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a turma with its editable schedule
// @Tags Turmas
// @Produce json
// @Param id path string true "Turma ID"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [get]
func (h *TurmaHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Create a turma with its weekly schedule
// @Tags Turmas
// @Accept json
// @Produce json
// @Param payload body dto.SaveTurmaRequest true "Turma payload"
// @Success 201 {object} response.Envelope
// @Router /turmas [post]
func (h *TurmaHandler) Create(c *gin.Context) {
	var req dto.SaveTurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, turma)
}

// Update godoc
// @Summary Update a turma and replace its schedule
// @Tags Turmas
// @Accept json
// @Produce json
// @Param id path string true "Turma ID"
// @Param payload body dto.SaveTurmaRequest true "Turma payload"
// @Success 200 {object} response.Envelope
// @Router /turmas/{id} [put]
func (h *TurmaHandler) Update(c *gin.Context) {
	var req dto.SaveTurmaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	turma, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, turma, nil)
}

// Delete godoc
// @Summary Delete a turma with its agenda and records
// @Tags Turmas
// @Produce json
// @Param id path string true "Turma ID"
// @Success 204
// @Router /turmas/{id} [delete]
func (h *TurmaHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
