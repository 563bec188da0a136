package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/dto"
	"github.com/minhasaulas/prof-agenda-api/pkg/timeutil"
)

// DashboardService builds the "hoje" card: today's recurring slots with the
// first one called out as the next class. Results are cached per calendar
// date when the dashboard cache is enabled.
type DashboardService struct {
	agenda agendaDayLister
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(agenda agendaDayLister, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{agenda: agenda, cache: cache, logger: logger, now: time.Now}
}

// Hoje returns today's schedule. The agenda read degrades to an empty
// schedule on failure; cache failures fall through to the database.
func (s *DashboardService) Hoje(ctx context.Context) (*dto.DashboardHojeResponse, error) {
	today := s.now()
	weekday := timeutil.DayOfWeek(today)
	key := "dashboard:hoje:" + today.Format(dateLayout)

	if s.cache.Enabled() {
		var cached dto.DashboardHojeResponse
		if hit, _ := s.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	slots, err := s.agenda.ListByDay(ctx, weekday)
	if err != nil {
		s.logger.Warn("failed to load today's agenda", zap.Int("day_of_week", weekday), zap.Error(err))
		slots = nil
	}
	schedule := ScheduleForDay(slots, weekday)

	resp := &dto.DashboardHojeResponse{
		Date:      today.Format(dateLayout),
		DayOfWeek: weekday,
		Schedule:  schedule,
	}
	if len(schedule) > 0 {
		resp.NextClass = &schedule[0]
	}

	if s.cache.Enabled() && err == nil {
		_ = s.cache.Set(ctx, key, resp, 0)
	}
	return resp, nil
}
