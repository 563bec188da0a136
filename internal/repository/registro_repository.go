package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

// RegistroRepository manages lesson records.
type RegistroRepository struct {
	db *sqlx.DB
}

// NewRegistroRepository constructs a new registro repository.
func NewRegistroRepository(db *sqlx.DB) *RegistroRepository {
	return &RegistroRepository{db: db}
}

func (r *RegistroRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// FindBySlot returns the registro matching the (turma, horario, calendar
// day) triple, with the day expressed as an inclusive timestamp range.
// sql.ErrNoRows signals that no record exists yet for the slot.
func (r *RegistroRepository) FindBySlot(ctx context.Context, turmaID, horario string, start, end time.Time) (*models.Registro, error) {
	const query = `SELECT id, turma_id, data, horario, conteudo, exercicios, proximos_passos, created_at, updated_at
FROM registros_aula
WHERE turma_id = $1 AND horario = $2 AND data >= $3 AND data <= $4
ORDER BY data DESC
LIMIT 1`
	var registro models.Registro
	if err := r.db.GetContext(ctx, &registro, query, turmaID, horario, start, end); err != nil {
		return nil, err
	}
	return &registro, nil
}

// FindLatestByTurma returns the most recent registro of a turma regardless
// of slot or date, for the reference card.
func (r *RegistroRepository) FindLatestByTurma(ctx context.Context, turmaID string) (*models.Registro, error) {
	const query = `SELECT id, turma_id, data, horario, conteudo, exercicios, proximos_passos, created_at, updated_at
FROM registros_aula
WHERE turma_id = $1
ORDER BY data DESC
LIMIT 1`
	var registro models.Registro
	if err := r.db.GetContext(ctx, &registro, query, turmaID); err != nil {
		return nil, err
	}
	return &registro, nil
}

// ListByDateRange returns the registros inside the range joined with their
// turma, newest first. Records of deleted turmas are filtered out by the
// inner join.
func (r *RegistroRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RegistroDetail, error) {
	const query = `SELECT r.id, r.turma_id, r.data, r.horario, r.conteudo, r.exercicios, r.proximos_passos, r.created_at, r.updated_at,
t.name AS turma_name, t.subject AS turma_subject
FROM registros_aula r
INNER JOIN turmas t ON t.id = r.turma_id
WHERE r.data >= $1 AND r.data <= $2
ORDER BY r.data DESC`
	var registros []models.RegistroDetail
	if err := r.db.SelectContext(ctx, &registros, query, start, end); err != nil {
		return nil, fmt.Errorf("list registros by range: %w", err)
	}
	return registros, nil
}

// Create persists a registro record.
func (r *RegistroRepository) Create(ctx context.Context, registro *models.Registro) error {
	if registro.ID == "" {
		registro.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if registro.CreatedAt.IsZero() {
		registro.CreatedAt = now
	}
	registro.UpdatedAt = now

	const query = `INSERT INTO registros_aula (id, turma_id, data, horario, conteudo, exercicios, proximos_passos, created_at, updated_at)
VALUES (:id, :turma_id, :data, :horario, :conteudo, :exercicios, :proximos_passos, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, registro); err != nil {
		return fmt.Errorf("create registro: %w", err)
	}
	return nil
}

// Update modifies a registro record by ID.
func (r *RegistroRepository) Update(ctx context.Context, registro *models.Registro) error {
	registro.UpdatedAt = time.Now().UTC()
	const query = `UPDATE registros_aula SET turma_id = :turma_id, data = :data, horario = :horario, conteudo = :conteudo, exercicios = :exercicios, proximos_passos = :proximos_passos, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, registro); err != nil {
		return fmt.Errorf("update registro: %w", err)
	}
	return nil
}

// DeleteByTurma removes every registro referencing the turma. It runs first
// in the cascade so a failure leaves the turma intact.
func (r *RegistroRepository) DeleteByTurma(ctx context.Context, exec sqlx.ExtContext, turmaID string) error {
	if _, err := r.exec(exec).ExecContext(ctx, `DELETE FROM registros_aula WHERE turma_id = $1`, turmaID); err != nil {
		return fmt.Errorf("delete registros by turma: %w", err)
	}
	return nil
}
