package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

func registroRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "turma_id", "data", "horario", "conteudo", "exercicios", "proximos_passos", "created_at", "updated_at"})
}

func TestRegistroRepositoryFindBySlot(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	day := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)

	rows := registroRows().
		AddRow("reg-1", "turma-1", day, "08:00", "Frações", "Página 42", "Revisão", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE turma_id = $1 AND horario = $2 AND data >= $3 AND data <= $4")).
		WithArgs("turma-1", "08:00", start, end).
		WillReturnRows(rows)

	registro, err := repo.FindBySlot(context.Background(), "turma-1", "08:00", start, end)
	require.NoError(t, err)
	assert.Equal(t, "reg-1", registro.ID)
	assert.Equal(t, "Frações", registro.Conteudo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroRepositoryFindBySlotNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE turma_id = $1 AND horario = $2 AND data >= $3 AND data <= $4")).
		WithArgs("turma-1", "08:00", start, end).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindBySlot(context.Background(), "turma-1", "08:00", start, end)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroRepositoryFindLatestByTurma(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	rows := registroRows().
		AddRow("reg-9", "turma-1", time.Now(), "10:00", "Equações", "", "Prova na sexta", time.Now(), time.Now())
	mock.ExpectQuery(`WHERE turma_id = \$1\s+ORDER BY data DESC\s+LIMIT 1`).
		WithArgs("turma-1").
		WillReturnRows(rows)

	registro, err := repo.FindLatestByTurma(context.Background(), "turma-1")
	require.NoError(t, err)
	assert.Equal(t, "reg-9", registro.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroRepositoryListByDateRangeInnerJoin(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	start := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "turma_id", "data", "horario", "conteudo", "exercicios", "proximos_passos", "created_at", "updated_at", "turma_name", "turma_subject"}).
		AddRow("reg-1", "turma-1", start.Add(12*time.Hour), "08:00", "Frações", "", "", time.Now(), time.Now(), "9º Ano A", "Matemática")
	mock.ExpectQuery(`INNER JOIN turmas t ON t\.id = r\.turma_id`).
		WithArgs(start, end).
		WillReturnRows(rows)

	registros, err := repo.ListByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, registros, 1)
	assert.Equal(t, "9º Ano A", registros[0].TurmaName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	day := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registros_aula")).
		WithArgs(sqlmock.AnyArg(), "turma-1", day, "08:00", "Frações", "Página 42", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	registro := &models.Registro{TurmaID: "turma-1", Data: day, Horario: "08:00", Conteudo: "Frações", Exercicios: "Página 42"}
	require.NoError(t, repo.Create(context.Background(), registro))
	assert.NotEmpty(t, registro.ID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registros_aula SET")).
		WithArgs("turma-1", day, "08:00", "Frações e decimais", "Página 42", "", sqlmock.AnyArg(), registro.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	registro.Conteudo = "Frações e decimais"
	require.NoError(t, repo.Update(context.Background(), registro))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistroRepositoryDeleteByTurma(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistroRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registros_aula WHERE turma_id = $1")).
		WithArgs("turma-1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.DeleteByTurma(context.Background(), nil, "turma-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
