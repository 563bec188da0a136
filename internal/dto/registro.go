package dto

import "github.com/minhasaulas/prof-agenda-api/internal/models"

// Reconciliation modes for the lesson-record screen.
const (
	ModeCreate = "CREATE"
	ModeEdit   = "EDIT"
)

// ReconcileResponse is the full state of the lesson-record screen for one
// (turma, date, horario) context.
type ReconcileResponse struct {
	TurmaID      string              `json:"turma_id"`
	TurmaName    string              `json:"turma_name"`
	TurmaSubject string              `json:"turma_subject"`
	Date         string              `json:"date"`
	Horario      string              `json:"horario"`
	Horarios     []models.AgendaSlot `json:"horarios"`
	Mode         string              `json:"mode"`
	IsFuture     bool                `json:"is_future"`
	Existing     *models.Registro    `json:"existing,omitempty"`
	Reference    *RegistroReference  `json:"reference,omitempty"`
}

// RegistroReference is the read-only "last lesson" context shown in CREATE
// mode. It is never copied into the editable fields.
type RegistroReference struct {
	Data           string `json:"data"`
	Conteudo       string `json:"conteudo"`
	ProximosPassos string `json:"proximos_passos"`
}

// SaveRegistroRequest upserts a lesson record. When ID is set the matching
// row is updated; otherwise a new row is inserted with Data anchored at
// midday of Date (or the current instant when Date is empty).
type SaveRegistroRequest struct {
	ID             string `json:"id"`
	TurmaID        string `json:"turma_id" validate:"required"`
	Date           string `json:"date"`
	Horario        string `json:"horario"`
	Conteudo       string `json:"conteudo"`
	Exercicios     string `json:"exercicios"`
	ProximosPassos string `json:"proximos_passos"`
}
