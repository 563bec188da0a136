package models

import "time"

// Turma status values as persisted.
const (
	TurmaStatusAtiva     = "ATIVA"
	TurmaStatusPendente  = "AVALIAÇÃO PENDENTE"
	TurmaStatusConcluida = "CONCLUÍDA"
)

// Turma represents a class group taught by the teacher.
//
// NextClass is a cached display label computed from the first schedule
// entry at save time. It is not authoritative and may drift from the
// actual earliest slot; list views show it as-is.
type Turma struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Subject       string    `db:"subject" json:"subject"`
	StudentsCount int       `db:"students_count" json:"students_count"`
	Status        string    `db:"status" json:"status"`
	NextClass     string    `db:"next_class" json:"next_class"`
	ImageURL      string    `db:"image_url" json:"image_url"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// TurmaFilter defines filter criteria for listing turmas.
type TurmaFilter struct {
	Search string
	Status string
	Hoje   bool
}
