package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func turmaRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "subject", "students_count", "status", "next_class", "image_url", "created_at", "updated_at"})
}

func TestTurmaRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTurmaRepository(db)

	rows := turmaRows().
		AddRow("turma-1", "9º Ano A", "Matemática", 28, models.TurmaStatusAtiva, "Seg 08:00", "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, subject, students_count, status, next_class, image_url, created_at, updated_at FROM turmas WHERE (LOWER(name) LIKE $1 OR LOWER(subject) LIKE $1) ORDER BY name ASC")).
		WithArgs("%mate%").
		WillReturnRows(rows)

	turmas, err := repo.List(context.Background(), models.TurmaFilter{Search: "Mate"})
	require.NoError(t, err)
	require.Len(t, turmas, 1)
	assert.Equal(t, "9º Ano A", turmas[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTurmaRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTurmaRepository(db)

	rows := turmaRows().
		AddRow("turma-1", "9º Ano A", "Matemática", 28, models.TurmaStatusAtiva, "", "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, subject, students_count, status, next_class, image_url, created_at, updated_at FROM turmas WHERE id = $1")).
		WithArgs("turma-1").
		WillReturnRows(rows)

	turma, err := repo.FindByID(context.Background(), "turma-1")
	require.NoError(t, err)
	assert.Equal(t, "Matemática", turma.Subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTurmaRepositoryCreateGeneratesID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTurmaRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO turmas")).
		WithArgs(sqlmock.AnyArg(), "9º Ano A", "Matemática", 28, models.TurmaStatusAtiva, "Seg 08:00 - 09:30", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	turma := &models.Turma{
		Name:          "9º Ano A",
		Subject:       "Matemática",
		StudentsCount: 28,
		Status:        models.TurmaStatusAtiva,
		NextClass:     "Seg 08:00 - 09:30",
	}
	require.NoError(t, repo.Create(context.Background(), turma))
	assert.NotEmpty(t, turma.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTurmaRepositoryDeleteUsesTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTurmaRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM turmas WHERE id = $1")).
		WithArgs("turma-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(context.Background(), tx, "turma-1"))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
