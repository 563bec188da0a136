package dto

import "github.com/minhasaulas/prof-agenda-api/internal/models"

// ScheduleEntry is one row of the class editor's weekly schedule form.
// StartTime/EndTime carry the masked "HH:MM" strings; EndTime may be empty.
type ScheduleEntry struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SaveTurmaRequest creates or updates a turma together with its full weekly
// schedule. The schedule replaces whatever was stored before; entries with
// an empty start time are dropped, mirroring the editor form.
type SaveTurmaRequest struct {
	Name          string          `json:"name" validate:"required"`
	Subject       string          `json:"subject" validate:"required"`
	StudentsCount int             `json:"students_count" validate:"min=0"`
	Status        string          `json:"status" validate:"omitempty,oneof=ATIVA 'AVALIAÇÃO PENDENTE' 'CONCLUÍDA'"`
	ImageURL      string          `json:"image_url"`
	Schedules     []ScheduleEntry `json:"schedules" validate:"dive"`
}

// TurmaItem is a turma plus the weekly chips rendered on the class list.
type TurmaItem struct {
	models.Turma
	Horarios []models.AgendaSlot `json:"horarios"`
	Hoje     bool                `json:"hoje"`
}

// TurmaDetail feeds the class editor: the stored turma and its schedule
// split back into editable entries.
type TurmaDetail struct {
	models.Turma
	Schedules []ScheduleEntry `json:"schedules"`
}
