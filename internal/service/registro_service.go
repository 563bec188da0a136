package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/timeutil"
)

const dateLayout = "2006-01-02"

type registroRepository interface {
	FindBySlot(ctx context.Context, turmaID, horario string, start, end time.Time) (*models.Registro, error)
	FindLatestByTurma(ctx context.Context, turmaID string) (*models.Registro, error)
	Create(ctx context.Context, registro *models.Registro) error
	Update(ctx context.Context, registro *models.Registro) error
}

type turmaFinder interface {
	FindByID(ctx context.Context, id string) (*models.Turma, error)
}

type agendaLister interface {
	ListByTurma(ctx context.Context, turmaID, slotType string) ([]models.AgendaSlot, error)
}

// RegistroService drives the lesson-record screen: reconciling the screen
// state for a (turma, date, horario) context and upserting records.
type RegistroService struct {
	registros registroRepository
	turmas    turmaFinder
	agenda    agendaLister
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegistroService constructs RegistroService.
func NewRegistroService(registros registroRepository, turmas turmaFinder, agenda agendaLister, validate *validator.Validate, logger *zap.Logger) *RegistroService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistroService{
		registros: registros,
		turmas:    turmas,
		agenda:    agenda,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Reconcile resolves the lesson-record screen for one slot. It decides EDIT
// versus CREATE from the current exact match only: a record exists for the
// exact (turma, horario, day) triple means EDIT with that record loaded;
// anything else means CREATE with empty fields. The latest record of the
// turma is attached as read-only reference in CREATE mode only.
func (s *RegistroService) Reconcile(ctx context.Context, turmaID, dateStr, horario string) (*dto.ReconcileResponse, error) {
	turma, err := s.turmas.FindByID(ctx, turmaID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}

	day := s.now()
	if dateStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, dateStr, day.Location())
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "data inválida, use AAAA-MM-DD")
		}
		day = parsed
	}

	slots, err := s.agenda.ListByTurma(ctx, turmaID, models.SlotTypeClass)
	if err != nil {
		s.logger.Warn("failed to load turma slots", zap.String("turma_id", turmaID), zap.Error(err))
		slots = nil
	}
	if slots == nil {
		slots = []models.AgendaSlot{}
	}
	if horario == "" && len(slots) > 0 {
		horario = slots[0].Time
	}

	resp := &dto.ReconcileResponse{
		TurmaID:      turma.ID,
		TurmaName:    turma.Name,
		TurmaSubject: turma.Subject,
		Date:         day.Format(dateLayout),
		Horario:      horario,
		Horarios:     slots,
		Mode:         dto.ModeCreate,
		IsFuture:     s.isFuture(day),
	}

	start, end := timeutil.DayBounds(day)
	existing, err := s.registros.FindBySlot(ctx, turmaID, horario, start, end)
	switch {
	case err == nil:
		resp.Mode = dto.ModeEdit
		resp.Existing = existing
		return resp, nil
	case err != sql.ErrNoRows:
		s.logger.Warn("failed to match registro for slot",
			zap.String("turma_id", turmaID),
			zap.String("horario", horario),
			zap.Error(err))
	}

	// CREATE mode: surface the turma's latest record as context, but only
	// as a reference card, never prefilled into the editable fields.
	latest, err := s.registros.FindLatestByTurma(ctx, turmaID)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logger.Warn("failed to load latest registro", zap.String("turma_id", turmaID), zap.Error(err))
		}
		return resp, nil
	}
	resp.Reference = &dto.RegistroReference{
		Data:           latest.Data.Format(dateLayout),
		Conteudo:       latest.Conteudo,
		ProximosPassos: latest.ProximosPassos,
	}
	return resp, nil
}

// Save upserts a lesson record. A request carrying an ID updates that row;
// otherwise a new row is inserted with Data anchored at midday so timezone
// conversion cannot shift the calendar day. Horario is stored verbatim: it
// identifies the slot and may be a range ("08:00 - 09:30"), and Reconcile
// matches it against the stored value character for character.
func (s *RegistroService) Save(ctx context.Context, req dto.SaveRegistroRequest) (*models.Registro, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registro payload")
	}

	if _, err := s.turmas.FindByID(ctx, req.TurmaID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}

	data := s.now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, data.Location())
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "data inválida, use AAAA-MM-DD")
		}
		data = timeutil.MiddayAnchor(parsed)
	}

	registro := &models.Registro{
		ID:             req.ID,
		TurmaID:        req.TurmaID,
		Data:           data,
		Horario:        req.Horario,
		Conteudo:       req.Conteudo,
		Exercicios:     req.Exercicios,
		ProximosPassos: req.ProximosPassos,
	}

	if registro.ID != "" {
		if err := s.registros.Update(ctx, registro); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
		}
		return registro, nil
	}

	if err := s.registros.Create(ctx, registro); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
	}
	return registro, nil
}

// isFuture holds for any day strictly after today; later hours of today are
// still "today", not future.
func (s *RegistroService) isFuture(day time.Time) bool {
	now := s.now()
	return day.After(now) && !timeutil.SameDay(day, now)
}
