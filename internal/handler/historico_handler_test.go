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

	"github.com/minhasaulas/prof-agenda-api/internal/models"
	"github.com/minhasaulas/prof-agenda-api/internal/service"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
)

type fakeHistoricoSrv struct {
	registros  []models.RegistroDetail
	date       string
	file       *service.ExportFile
	err        error
	lastFormat string
}

func (f *fakeHistoricoSrv) ListByDate(_ context.Context, dateStr string) ([]models.RegistroDetail, string, error) {
	return f.registros, f.date, f.err
}

func (f *fakeHistoricoSrv) Export(_ context.Context, dateStr, format string) (*service.ExportFile, error) {
	f.lastFormat = format
	return f.file, f.err
}

func TestHistoricoHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeHistoricoSrv{
		registros: []models.RegistroDetail{{TurmaName: "9º Ano A"}},
		date:      "2024-03-15",
	}
	h := NewHistoricoHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/historico?date=2024-03-15", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.RegistroDetail `json:"data"`
		Meta map[string]interface{}  `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "2024-03-15", envelope.Meta["date"])
}

func TestHistoricoHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeHistoricoSrv{file: &service.ExportFile{
		Content:     []byte("Turma,Disciplina\n"),
		ContentType: "text/csv",
		Filename:    "historico-2024-03-15.csv",
	}}
	h := NewHistoricoHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/historico/export?format=CSV", nil)

	h.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", srv.lastFormat)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "historico-2024-03-15.csv")
}

func TestHistoricoHandlerExportInvalidFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeHistoricoSrv{err: appErrors.Clone(appErrors.ErrValidation, "formato inválido, use csv ou pdf")}
	h := NewHistoricoHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/historico/export?format=xlsx", nil)

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
