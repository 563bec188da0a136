package models

import "time"

// Agenda slot types.
const (
	SlotTypeClass   = "CLASS"
	SlotTypeBreak   = "BREAK"
	SlotTypeMeeting = "MEETING"
)

// AgendaSlot is a recurring weekly time block. Time holds the canonical
// "HH:MM" or "HH:MM - HH:MM" string; DayOfWeek is 0 = Sunday. Title is a
// denormalized copy of the turma's name and subject. The full slot set of
// a turma is replaced wholesale on every class-editor save.
type AgendaSlot struct {
	ID        string    `db:"id" json:"id"`
	TurmaID   string    `db:"turma_id" json:"turma_id"`
	Title     string    `db:"title" json:"title"`
	Time      string    `db:"time" json:"time"`
	DayOfWeek int       `db:"day_of_week" json:"day_of_week"`
	Type      string    `db:"type" json:"type"`
	Location  *string   `db:"location" json:"location,omitempty"`
	Period    *string   `db:"period" json:"period,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
