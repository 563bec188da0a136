package models

import "time"

// Registro is a lesson record, retrospective (what was taught) or
// prospective (what is planned). Data is anchored at midday of the lesson's
// calendar day so timezone conversion cannot shift the date; Horario holds
// the slot string the record corresponds to.
type Registro struct {
	ID             string    `db:"id" json:"id"`
	TurmaID        string    `db:"turma_id" json:"turma_id"`
	Data           time.Time `db:"data" json:"data"`
	Horario        string    `db:"horario" json:"horario"`
	Conteudo       string    `db:"conteudo" json:"conteudo"`
	Exercicios     string    `db:"exercicios" json:"exercicios"`
	ProximosPassos string    `db:"proximos_passos" json:"proximos_passos"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// RegistroDetail joins a registro with its turma for historico listings.
// Rows whose turma no longer exists never materialize here (inner join).
type RegistroDetail struct {
	Registro
	TurmaName    string `db:"turma_name" json:"turma_name"`
	TurmaSubject string `db:"turma_subject" json:"turma_subject"`
}
