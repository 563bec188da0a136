package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

// AgendaRepository manages the recurring weekly slots.
type AgendaRepository struct {
	db *sqlx.DB
}

// NewAgendaRepository constructs a new agenda repository.
func NewAgendaRepository(db *sqlx.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

func (r *AgendaRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListByTurma returns every slot of a turma ordered by day and time.
// When slotType is non-empty only slots of that type are returned.
func (r *AgendaRepository) ListByTurma(ctx context.Context, turmaID, slotType string) ([]models.AgendaSlot, error) {
	query := `SELECT id, turma_id, title, "time", day_of_week, type, location, period, created_at FROM agenda WHERE turma_id = $1`
	args := []interface{}{turmaID}
	if slotType != "" {
		query += ` AND type = $2`
		args = append(args, slotType)
	}
	query += ` ORDER BY day_of_week ASC, "time" ASC`

	var slots []models.AgendaSlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("list agenda by turma: %w", err)
	}
	return slots, nil
}

// ListByDay returns the slots recurring on the given weekday ordered by
// time. The inner join hides slots whose turma no longer exists.
func (r *AgendaRepository) ListByDay(ctx context.Context, dayOfWeek int) ([]models.AgendaSlot, error) {
	const query = `SELECT a.id, a.turma_id, a.title, a."time", a.day_of_week, a.type, a.location, a.period, a.created_at
FROM agenda a
INNER JOIN turmas t ON t.id = a.turma_id
WHERE a.day_of_week = $1
ORDER BY a."time" ASC`
	var slots []models.AgendaSlot
	if err := r.db.SelectContext(ctx, &slots, query, dayOfWeek); err != nil {
		return nil, fmt.Errorf("list agenda by day: %w", err)
	}
	return slots, nil
}

// ListClassSlots returns every CLASS slot of every existing turma, ordered
// by day and time, for the weekly chips and the "hoje" filter.
func (r *AgendaRepository) ListClassSlots(ctx context.Context) ([]models.AgendaSlot, error) {
	const query = `SELECT a.id, a.turma_id, a.title, a."time", a.day_of_week, a.type, a.location, a.period, a.created_at
FROM agenda a
INNER JOIN turmas t ON t.id = a.turma_id
WHERE a.type = $1
ORDER BY a.day_of_week ASC, a."time" ASC`
	var slots []models.AgendaSlot
	if err := r.db.SelectContext(ctx, &slots, query, models.SlotTypeClass); err != nil {
		return nil, fmt.Errorf("list class slots: %w", err)
	}
	return slots, nil
}

// ReplaceForTurma swaps a turma's whole slot set: delete-all-then-insert,
// never an incremental patch.
func (r *AgendaRepository) ReplaceForTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string, slots []models.AgendaSlot) error {
	target := r.exec(exec)

	if err := r.deleteByTurma(ctx, target, turmaID); err != nil {
		return err
	}

	now := time.Now().UTC()
	const query = `INSERT INTO agenda (id, turma_id, title, "time", day_of_week, type, location, period, created_at)
VALUES (:id, :turma_id, :title, :time, :day_of_week, :type, :location, :period, :created_at)`

	for i := range slots {
		slot := &slots[i]
		slot.TurmaID = turmaID
		if slot.ID == "" {
			slot.ID = uuid.NewString()
		}
		if slot.CreatedAt.IsZero() {
			slot.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, slot); err != nil {
			return fmt.Errorf("insert agenda slot: %w", err)
		}
	}
	return nil
}

// DeleteByTurma removes every slot referencing the turma.
func (r *AgendaRepository) DeleteByTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string) error {
	return r.deleteByTurma(ctx, r.exec(exec), turmaID)
}

func (r *AgendaRepository) deleteByTurma(ctx context.Context, target sqlx.ExtContext, turmaID string) error {
	if _, err := target.ExecContext(ctx, `DELETE FROM agenda WHERE turma_id = $1`, turmaID); err != nil {
		return fmt.Errorf("delete agenda by turma: %w", err)
	}
	return nil
}
