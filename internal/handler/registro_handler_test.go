package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
)

type fakeRegistroSrv struct {
	resp     *dto.ReconcileResponse
	registro *models.Registro
	err      error
	last     struct {
		turmaID string
		date    string
		horario string
	}
	lastReq dto.SaveRegistroRequest
}

func (f *fakeRegistroSrv) Reconcile(_ context.Context, turmaID, dateStr, horario string) (*dto.ReconcileResponse, error) {
	f.last.turmaID = turmaID
	f.last.date = dateStr
	f.last.horario = horario
	return f.resp, f.err
}

func (f *fakeRegistroSrv) Save(_ context.Context, req dto.SaveRegistroRequest) (*models.Registro, error) {
	f.lastReq = req
	return f.registro, f.err
}

func TestRegistroHandlerReconcilePassesParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRegistroSrv{resp: &dto.ReconcileResponse{TurmaID: "turma-1", Mode: dto.ModeCreate}}
	h := NewRegistroHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/turmas/turma-1/registro?date=2024-03-15&horario=08:00", nil)
	c.Params = gin.Params{{Key: "id", Value: "turma-1"}}

	h.Reconcile(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "turma-1", srv.last.turmaID)
	assert.Equal(t, "2024-03-15", srv.last.date)
	assert.Equal(t, "08:00", srv.last.horario)
}

func TestRegistroHandlerReconcileTurmaNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRegistroSrv{err: appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")}
	h := NewRegistroHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/turmas/missing/registro", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Reconcile(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistroHandlerSaveCreates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRegistroSrv{registro: &models.Registro{ID: "reg-new"}}
	h := NewRegistroHandler(srv)

	body, _ := json.Marshal(dto.SaveRegistroRequest{TurmaID: "turma-1", Date: "2024-03-15", Conteudo: "Frações"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registros", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "turma-1", srv.lastReq.TurmaID)
}

func TestRegistroHandlerSaveUpdates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRegistroSrv{registro: &models.Registro{ID: "reg-1"}}
	h := NewRegistroHandler(srv)

	body, _ := json.Marshal(dto.SaveRegistroRequest{ID: "reg-1", TurmaID: "turma-1"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registros", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegistroHandlerSaveInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewRegistroHandler(&fakeRegistroSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registros", bytes.NewReader([]byte("{")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegistroHandlerSaveFailureSurfacesMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRegistroSrv{err: appErrors.ErrSaveFailed}
	h := NewRegistroHandler(srv)

	body, _ := json.Marshal(dto.SaveRegistroRequest{TurmaID: "turma-1"})
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/registros", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Save(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var envelope struct {
		Error *appErrors.Error `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "não foi possível salvar os dados", envelope.Error.Message)
}
