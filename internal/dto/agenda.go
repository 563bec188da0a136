package dto

import "github.com/minhasaulas/prof-agenda-api/internal/models"

// AgendaItem is one slot of the day view, annotated with the registro
// already saved for that calendar date and slot, when present.
type AgendaItem struct {
	models.AgendaSlot
	Planned *models.Registro `json:"planned,omitempty"`
}

// AgendaDayResponse is the agenda screen payload for one calendar date.
type AgendaDayResponse struct {
	Date      string       `json:"date"`
	DayOfWeek int          `json:"day_of_week"`
	Items     []AgendaItem `json:"items"`
}
