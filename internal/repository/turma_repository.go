package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

// TurmaRepository manages persistence for turmas.
type TurmaRepository struct {
	db *sqlx.DB
}

// NewTurmaRepository constructs a new turma repository.
func NewTurmaRepository(db *sqlx.DB) *TurmaRepository {
	return &TurmaRepository{db: db}
}

func (r *TurmaRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// List returns turmas matching the filter, ordered by name.
func (r *TurmaRepository) List(ctx context.Context, filter models.TurmaFilter) ([]models.Turma, error) {
	query := `SELECT id, name, subject, students_count, status, next_class, image_url, created_at, updated_at FROM turmas`
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(subject) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	var turmas []models.Turma
	if err := r.db.SelectContext(ctx, &turmas, query, args...); err != nil {
		return nil, fmt.Errorf("list turmas: %w", err)
	}
	return turmas, nil
}

// FindByID returns a turma by ID.
func (r *TurmaRepository) FindByID(ctx context.Context, id string) (*models.Turma, error) {
	const query = `SELECT id, name, subject, students_count, status, next_class, image_url, created_at, updated_at FROM turmas WHERE id = $1`
	var turma models.Turma
	if err := r.db.GetContext(ctx, &turma, query, id); err != nil {
		return nil, err
	}
	return &turma, nil
}

// Create persists a turma record.
func (r *TurmaRepository) Create(ctx context.Context, turma *models.Turma) error {
	if turma.ID == "" {
		turma.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if turma.CreatedAt.IsZero() {
		turma.CreatedAt = now
	}
	turma.UpdatedAt = now

	const query = `INSERT INTO turmas (id, name, subject, students_count, status, next_class, image_url, created_at, updated_at)
VALUES (:id, :name, :subject, :students_count, :status, :next_class, :image_url, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, turma); err != nil {
		return fmt.Errorf("create turma: %w", err)
	}
	return nil
}

// Update modifies a turma record.
func (r *TurmaRepository) Update(ctx context.Context, turma *models.Turma) error {
	turma.UpdatedAt = time.Now().UTC()
	const query = `UPDATE turmas SET name = :name, subject = :subject, students_count = :students_count, status = :status, next_class = :next_class, image_url = :image_url, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, turma); err != nil {
		return fmt.Errorf("update turma: %w", err)
	}
	return nil
}

// Delete removes a turma record. It participates in the cascade transaction
// when an exec is supplied.
func (r *TurmaRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	if _, err := r.exec(exec).ExecContext(ctx, `DELETE FROM turmas WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete turma: %w", err)
	}
	return nil
}
