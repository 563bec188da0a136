package service

import (
	"sort"
	"strings"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/internal/models"
)

// Portuguese day names, index 0 = Sunday, matching AgendaSlot.DayOfWeek.
var diasSemana = [7]string{
	"Domingo",
	"Segunda-feira",
	"Terça-feira",
	"Quarta-feira",
	"Quinta-feira",
	"Sexta-feira",
	"Sábado",
}

// DayName returns the full pt-BR weekday name, or "" when out of range.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return diasSemana[day]
}

// DayAbbrev returns the 3-letter weekday abbreviation used in chips and in
// the cached next_class label.
func DayAbbrev(day int) string {
	name := DayName(day)
	if name == "" {
		return ""
	}
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}

// ScheduleForDay filters slots down to one weekday and orders them by time.
// Lexicographic order on the canonical zero-padded "HH:MM" strings matches
// chronological order.
func ScheduleForDay(slots []models.AgendaSlot, dayOfWeek int) []models.AgendaSlot {
	out := make([]models.AgendaSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.DayOfWeek == dayOfWeek {
			out = append(out, slot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// GroupByTurma maps turma id to its ordered slots. Turmas without slots are
// simply absent; duplicated (turma, day, time) triples are kept as separate
// entries and tolerated downstream.
func GroupByTurma(slots []models.AgendaSlot) map[string][]models.AgendaSlot {
	grouped := make(map[string][]models.AgendaSlot)
	for _, slot := range slots {
		if slot.TurmaID == "" {
			continue
		}
		grouped[slot.TurmaID] = append(grouped[slot.TurmaID], slot)
	}
	return grouped
}

// TodayTurmaIDs returns the set of turmas with at least one slot recurring
// on the given weekday. It drives the "Hoje" filter on the class list.
func TodayTurmaIDs(slots []models.AgendaSlot, today int) map[string]bool {
	ids := make(map[string]bool)
	for _, slot := range slots {
		if slot.TurmaID != "" && slot.DayOfWeek == today {
			ids[slot.TurmaID] = true
		}
	}
	return ids
}

// NextClassLabel renders the cached next_class display string from the
// FIRST entered schedule entry only. Entries beyond index 0 never influence
// the label; it is recomputed from position 0 on every save, not maintained
// incrementally.
func NextClassLabel(entries []dto.ScheduleEntry) string {
	if len(entries) == 0 {
		return ""
	}
	first := entries[0]
	return strings.TrimSpace(DayAbbrev(first.DayOfWeek) + " " + timeRange(first.StartTime, first.EndTime))
}

// timeRange joins start and optional end into the stored slot string.
func timeRange(start, end string) string {
	if end == "" {
		return start
	}
	return start + " - " + end
}

// splitTimeRange is the inverse of timeRange, feeding the class editor.
func splitTimeRange(stored string) (string, string) {
	parts := strings.SplitN(stored, " - ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return stored, ""
}
