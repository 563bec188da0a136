package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/export"
)

func newHistoricoService(registros *rangeListerStub) *HistoricoService {
	svc := NewHistoricoService(registros, export.NewCSVExporter(), export.NewPDFExporter(), nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestHistoricoServiceListByDate(t *testing.T) {
	registros := &rangeListerStub{registros: []models.RegistroDetail{
		{Registro: models.Registro{ID: "reg-1", Horario: "08:00"}, TurmaName: "9º Ano A", TurmaSubject: "Matemática"},
	}}
	svc := newHistoricoService(registros)

	items, date, err := svc.ListByDate(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", date)
	require.Len(t, items, 1)
	assert.Equal(t, "9º Ano A", items[0].TurmaName)
}

func TestHistoricoServiceListDegradesOnError(t *testing.T) {
	svc := newHistoricoService(&rangeListerStub{err: errors.New("connection refused")})

	items, date, err := svc.ListByDate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", date)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestHistoricoServiceExportCSV(t *testing.T) {
	registros := &rangeListerStub{registros: []models.RegistroDetail{
		{
			Registro:     models.Registro{Horario: "08:00", Conteudo: "Frações", Exercicios: "Página 42", ProximosPassos: "Decimais"},
			TurmaName:    "9º Ano A",
			TurmaSubject: "Matemática",
		},
	}}
	svc := newHistoricoService(registros)

	file, err := svc.Export(context.Background(), "2024-03-15", ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "historico-2024-03-15.csv", file.Filename)

	content := string(file.Content)
	assert.True(t, strings.HasPrefix(content, "Turma,Disciplina,Horário,Conteúdo,Exercícios,Próximos Passos"))
	assert.Contains(t, content, "9º Ano A,Matemática,08:00,Frações,Página 42,Decimais")
}

func TestHistoricoServiceExportPDF(t *testing.T) {
	svc := newHistoricoService(&rangeListerStub{})

	file, err := svc.Export(context.Background(), "", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "historico-2024-03-15.pdf", file.Filename)
	assert.NotEmpty(t, file.Content)
}

func TestHistoricoServiceExportInvalidFormat(t *testing.T) {
	svc := newHistoricoService(&rangeListerStub{})
	_, err := svc.Export(context.Background(), "", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
