package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
)

type fakeAgendaSrv struct {
	resp     *dto.AgendaDayResponse
	err      error
	lastDate string
}

func (f *fakeAgendaSrv) Day(_ context.Context, dateStr string) (*dto.AgendaDayResponse, error) {
	f.lastDate = dateStr
	return f.resp, f.err
}

func TestAgendaHandlerDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAgendaSrv{resp: &dto.AgendaDayResponse{
		Date:      "2024-03-15",
		DayOfWeek: 5,
		Items: []dto.AgendaItem{
			{AgendaSlot: models.AgendaSlot{ID: "s1", Time: "08:00"}},
		},
	}}
	h := NewAgendaHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/agenda?date=2024-03-15", nil)

	h.Day(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03-15", srv.lastDate)

	var envelope struct {
		Data dto.AgendaDayResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 5, envelope.Data.DayOfWeek)
	require.Len(t, envelope.Data.Items, 1)
}

func TestAgendaHandlerDayInvalidDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAgendaSrv{err: appErrors.Clone(appErrors.ErrValidation, "data inválida, use AAAA-MM-DD")}
	h := NewAgendaHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/agenda?date=15-03-2024", nil)

	h.Day(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
