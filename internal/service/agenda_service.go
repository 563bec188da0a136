package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/timeutil"
)

type agendaDayLister interface {
	ListByDay(ctx context.Context, dayOfWeek int) ([]models.AgendaSlot, error)
}

type registroRangeLister interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RegistroDetail, error)
}

// AgendaService assembles the day view: the weekday's recurring slots
// overlaid with the lesson records saved for that calendar date.
type AgendaService struct {
	agenda    agendaDayLister
	registros registroRangeLister
	logger    *zap.Logger
	now       func() time.Time
}

// NewAgendaService constructs AgendaService.
func NewAgendaService(agenda agendaDayLister, registros registroRangeLister, logger *zap.Logger) *AgendaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgendaService{agenda: agenda, registros: registros, logger: logger, now: time.Now}
}

// Day returns the agenda for one calendar date. Both reads degrade to empty
// on failure; the screen shows its empty state rather than an error.
func (s *AgendaService) Day(ctx context.Context, dateStr string) (*dto.AgendaDayResponse, error) {
	day := s.now()
	if dateStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, dateStr, day.Location())
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "data inválida, use AAAA-MM-DD")
		}
		day = parsed
	}
	weekday := timeutil.DayOfWeek(day)

	slots, err := s.agenda.ListByDay(ctx, weekday)
	if err != nil {
		s.logger.Warn("failed to list agenda for day", zap.Int("day_of_week", weekday), zap.Error(err))
		slots = nil
	}

	start, end := timeutil.DayBounds(day)
	registros, err := s.registros.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Warn("failed to list registros for day", zap.String("date", day.Format(dateLayout)), zap.Error(err))
		registros = nil
	}

	// Records are matched to slots on the exact (turma, horario) pair. A
	// record whose horario no longer matches any slot simply stays hidden.
	planned := make(map[string]*models.Registro, len(registros))
	for i := range registros {
		registro := registros[i].Registro
		planned[registro.TurmaID+"|"+registro.Horario] = &registro
	}

	items := make([]dto.AgendaItem, 0, len(slots))
	for _, slot := range slots {
		items = append(items, dto.AgendaItem{
			AgendaSlot: slot,
			Planned:    planned[slot.TurmaID+"|"+slot.Time],
		})
	}

	return &dto.AgendaDayResponse{
		Date:      day.Format(dateLayout),
		DayOfWeek: weekday,
		Items:     items,
	}, nil
}
