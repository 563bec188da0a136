package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
)

type rangeListerStub struct {
	registros []models.RegistroDetail
	err       error
	ranges    [][2]time.Time
}

func (s *rangeListerStub) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RegistroDetail, error) {
	s.ranges = append(s.ranges, [2]time.Time{start, end})
	if s.err != nil {
		return nil, s.err
	}
	return s.registros, nil
}

func TestAgendaServiceDayOverlaysPlanned(t *testing.T) {
	agenda := &agendaStoreStub{byDay: []models.AgendaSlot{
		{ID: "s1", TurmaID: "turma-1", Time: "08:00", DayOfWeek: 5},
		{ID: "s2", TurmaID: "turma-2", Time: "10:00", DayOfWeek: 5},
	}}
	registros := &rangeListerStub{registros: []models.RegistroDetail{
		{Registro: models.Registro{ID: "reg-1", TurmaID: "turma-1", Horario: "08:00", Conteudo: "Frações"}},
	}}

	svc := NewAgendaService(agenda, registros, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) } // a Friday

	resp, err := svc.Day(context.Background(), "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", resp.Date)
	assert.Equal(t, 5, resp.DayOfWeek)
	require.Len(t, resp.Items, 2)
	require.NotNil(t, resp.Items[0].Planned)
	assert.Equal(t, "reg-1", resp.Items[0].Planned.ID)
	assert.Nil(t, resp.Items[1].Planned)

	require.Len(t, registros.ranges, 1)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), registros.ranges[0][0])
	assert.Equal(t, time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC), registros.ranges[0][1])
}

func TestAgendaServiceDayDefaultsToToday(t *testing.T) {
	agenda := &agendaStoreStub{}
	svc := NewAgendaService(agenda, &rangeListerStub{}, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC) }

	resp, err := svc.Day(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", resp.Date)
	assert.Equal(t, 2, resp.DayOfWeek)
	assert.Empty(t, resp.Items)
}

func TestAgendaServiceDayDegradesOnReadFailure(t *testing.T) {
	agenda := &agendaStoreStub{listErr: errors.New("connection refused")}
	registros := &rangeListerStub{err: errors.New("connection refused")}
	svc := NewAgendaService(agenda, registros, zap.NewNop())

	resp, err := svc.Day(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestAgendaServiceDayInvalidDate(t *testing.T) {
	svc := NewAgendaService(&agendaStoreStub{}, &rangeListerStub{}, zap.NewNop())
	_, err := svc.Day(context.Background(), "15-03-2024")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAgendaServiceDayUnmatchedRecordStaysHidden(t *testing.T) {
	agenda := &agendaStoreStub{byDay: []models.AgendaSlot{
		{ID: "s1", TurmaID: "turma-1", Time: "08:00", DayOfWeek: 5},
	}}
	registros := &rangeListerStub{registros: []models.RegistroDetail{
		{Registro: models.Registro{ID: "reg-1", TurmaID: "turma-1", Horario: "10:00"}},
	}}
	svc := NewAgendaService(agenda, registros, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC) }

	resp, err := svc.Day(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Nil(t, resp.Items[0].Planned)
}
