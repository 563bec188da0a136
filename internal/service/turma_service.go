package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/timeutil"
)

type turmaRepository interface {
	List(ctx context.Context, filter models.TurmaFilter) ([]models.Turma, error)
	FindByID(ctx context.Context, id string) (*models.Turma, error)
	Create(ctx context.Context, turma *models.Turma) error
	Update(ctx context.Context, turma *models.Turma) error
	Delete(ctx context.Context, exec sqlx.ExtContext, id string) error
}

type agendaRepository interface {
	ListByTurma(ctx context.Context, turmaID, slotType string) ([]models.AgendaSlot, error)
	ListClassSlots(ctx context.Context) ([]models.AgendaSlot, error)
	ReplaceForTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string, slots []models.AgendaSlot) error
	DeleteByTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string) error
}

type registroPurger interface {
	DeleteByTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string) error
}

// TurmaService coordinates the class list, the class editor and the cascade
// deletion of a class with all of its dependent rows.
type TurmaService struct {
	db        *sqlx.DB
	turmas    turmaRepository
	agenda    agendaRepository
	registros registroPurger
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTurmaService constructs TurmaService.
func NewTurmaService(db *sqlx.DB, turmas turmaRepository, agenda agendaRepository, registros registroPurger, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TurmaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurmaService{
		db:        db,
		turmas:    turmas,
		agenda:    agenda,
		registros: registros,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns turmas matching the filter, each decorated with its weekly
// CLASS chips and the "recurs today" flag. Read failures degrade to an empty
// list; the screen renders its empty state instead of an error page.
func (s *TurmaService) List(ctx context.Context, filter models.TurmaFilter) ([]dto.TurmaItem, error) {
	turmas, err := s.turmas.List(ctx, filter)
	if err != nil {
		s.logger.Warn("failed to list turmas", zap.Error(err))
		return []dto.TurmaItem{}, nil
	}

	slots, err := s.agenda.ListClassSlots(ctx)
	if err != nil {
		s.logger.Warn("failed to list agenda slots", zap.Error(err))
		slots = nil
	}

	grouped := GroupByTurma(slots)
	today := timeutil.DayOfWeek(s.now())
	hoje := TodayTurmaIDs(slots, today)

	items := make([]dto.TurmaItem, 0, len(turmas))
	for _, turma := range turmas {
		if filter.Hoje && !hoje[turma.ID] {
			continue
		}
		horarios := grouped[turma.ID]
		if horarios == nil {
			horarios = []models.AgendaSlot{}
		}
		items = append(items, dto.TurmaItem{
			Turma:    turma,
			Horarios: horarios,
			Hoje:     hoje[turma.ID],
		})
	}
	return items, nil
}

// Get loads a turma and splits its stored CLASS slots back into editable
// schedule entries for the editor form.
func (s *TurmaService) Get(ctx context.Context, id string) (*dto.TurmaDetail, error) {
	turma, err := s.turmas.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}

	slots, err := s.agenda.ListByTurma(ctx, id, models.SlotTypeClass)
	if err != nil {
		s.logger.Warn("failed to load turma schedule", zap.String("turma_id", id), zap.Error(err))
		slots = nil
	}

	entries := make([]dto.ScheduleEntry, 0, len(slots))
	for _, slot := range slots {
		start, end := splitTimeRange(slot.Time)
		entries = append(entries, dto.ScheduleEntry{
			DayOfWeek: slot.DayOfWeek,
			StartTime: start,
			EndTime:   end,
		})
	}

	return &dto.TurmaDetail{Turma: *turma, Schedules: entries}, nil
}

// Create persists a new turma with its full weekly schedule.
func (s *TurmaService) Create(ctx context.Context, req dto.SaveTurmaRequest) (*models.Turma, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid turma payload")
	}

	entries := normalizeEntries(req.Schedules)
	turma := &models.Turma{
		Name:          req.Name,
		Subject:       req.Subject,
		StudentsCount: req.StudentsCount,
		Status:        req.Status,
		NextClass:     NextClassLabel(entries),
		ImageURL:      req.ImageURL,
	}
	if turma.Status == "" {
		turma.Status = models.TurmaStatusAtiva
	}

	if err := s.turmas.Create(ctx, turma); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
	}
	if err := s.agenda.ReplaceForTurma(ctx, nil, turma.ID, slotsFromEntries(turma, entries)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
	}

	s.invalidateDashboard(ctx)
	return turma, nil
}

// Update modifies a turma and replaces its whole slot set with the schedule
// carried in the request. Omitted entries are dropped, not kept.
func (s *TurmaService) Update(ctx context.Context, id string, req dto.SaveTurmaRequest) (*models.Turma, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid turma payload")
	}

	turma, err := s.turmas.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}

	entries := normalizeEntries(req.Schedules)
	turma.Name = req.Name
	turma.Subject = req.Subject
	turma.StudentsCount = req.StudentsCount
	if req.Status != "" {
		turma.Status = req.Status
	}
	turma.NextClass = NextClassLabel(entries)
	turma.ImageURL = req.ImageURL

	if err := s.turmas.Update(ctx, turma); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
	}
	if err := s.agenda.ReplaceForTurma(ctx, nil, turma.ID, slotsFromEntries(turma, entries)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSaveFailed.Code, appErrors.ErrSaveFailed.Status, appErrors.ErrSaveFailed.Message)
	}

	s.invalidateDashboard(ctx)
	return turma, nil
}

// Delete removes a turma and everything hanging off it in one transaction,
// children first. Any failure rolls the whole cascade back.
func (s *TurmaService) Delete(ctx context.Context, id string) error {
	if _, err := s.turmas.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "Turma não encontrada")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCascadeDelete.Code, appErrors.ErrCascadeDelete.Status, appErrors.ErrCascadeDelete.Message)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.registros.DeleteByTurma(ctx, tx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCascadeDelete.Code, appErrors.ErrCascadeDelete.Status, appErrors.ErrCascadeDelete.Message)
	}
	if err := s.agenda.DeleteByTurma(ctx, tx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCascadeDelete.Code, appErrors.ErrCascadeDelete.Status, appErrors.ErrCascadeDelete.Message)
	}
	if err := s.turmas.Delete(ctx, tx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCascadeDelete.Code, appErrors.ErrCascadeDelete.Status, appErrors.ErrCascadeDelete.Message)
	}
	if err := tx.Commit(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrCascadeDelete.Code, appErrors.ErrCascadeDelete.Status, appErrors.ErrCascadeDelete.Message)
	}

	s.invalidateDashboard(ctx)
	return nil
}

func (s *TurmaService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "dashboard:*")
}

// normalizeEntries masks every time field and drops entries with no start
// time, the same way the editor form discards blank rows.
func normalizeEntries(entries []dto.ScheduleEntry) []dto.ScheduleEntry {
	out := make([]dto.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		entry.StartTime = timeutil.NormalizeTimeInput(entry.StartTime)
		entry.EndTime = timeutil.NormalizeTimeInput(entry.EndTime)
		if entry.StartTime == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// slotsFromEntries materializes the schedule entries into CLASS slots with
// the denormalized "name - subject" title.
func slotsFromEntries(turma *models.Turma, entries []dto.ScheduleEntry) []models.AgendaSlot {
	slots := make([]models.AgendaSlot, 0, len(entries))
	for _, entry := range entries {
		slots = append(slots, models.AgendaSlot{
			TurmaID:   turma.ID,
			Title:     turma.Name + " - " + turma.Subject,
			Time:      timeRange(entry.StartTime, entry.EndTime),
			DayOfWeek: entry.DayOfWeek,
			Type:      models.SlotTypeClass,
		})
	}
	return slots
}
