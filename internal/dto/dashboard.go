package dto

import "github.com/minhasaulas/prof-agenda-api/internal/models"

// DashboardHojeResponse is the "today" card: every slot recurring on the
// current weekday ordered by time, with the first one called out as the
// next class.
type DashboardHojeResponse struct {
	Date      string              `json:"date"`
	DayOfWeek int                 `json:"day_of_week"`
	NextClass *models.AgendaSlot  `json:"next_class,omitempty"`
	Schedule  []models.AgendaSlot `json:"schedule"`
}
