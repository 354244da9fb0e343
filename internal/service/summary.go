package service

import (
	"context"
	"math"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

// DayWindow returns the first and last instant of day's calendar date in day's location.
func DayWindow(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// ComputeDailySummary aggregates one day of completions. It has no side effects.
//
// Only logs that fall inside the day and belong to one of habits are counted.
// Completed counts logs, not distinct habits, so NotCompleted goes negative
// when a habit is logged more than once.
func ComputeDailySummary(day time.Time, habits []models.Habit, logs []models.HabitLog) models.Summary {
	start, end := DayWindow(day)

	titles := make(map[int]string, len(habits))
	all := make([]string, 0, len(habits))
	for _, h := range habits {
		titles[h.ID] = h.Title
		all = append(all, h.Title)
	}

	done := make([]string, 0, len(logs))
	for _, l := range logs {
		if l.Date.Before(start) || l.Date.After(end) {
			continue
		}
		title, ok := titles[l.HabitID]
		if !ok {
			continue
		}
		done = append(done, title)
	}

	total := len(habits)
	completed := len(done)
	return models.Summary{
		Date:         start.Format(models.DateLayout),
		TotalHabits:  total,
		Completed:    completed,
		NotCompleted: total - completed,
		Percent:      completionPercent(completed, total),
		Habits:       all,
		DoneHabits:   done,
	}
}

// completionPercent is completed/total*100 rounded to two decimals, 0 for no habits.
func completionPercent(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}

type SummaryService struct {
	habits repository.Habits
	logs   repository.HabitLogs
	loc    *time.Location
	now    func() time.Time
}

func NewSummaryService(habits repository.Habits, logs repository.HabitLogs, loc *time.Location, now func() time.Time) *SummaryService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &SummaryService{habits: habits, logs: logs, loc: loc, now: now}
}

// DailySummary loads the user's habits and that day's logs and aggregates them.
// The calendar date of day is taken as-is and interpreted in the service's location.
func (s *SummaryService) DailySummary(ctx context.Context, userID int, day time.Time) (models.Summary, error) {
	day = s.normalizeDay(day)
	start, end := DayWindow(day)

	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return models.Summary{}, err
	}
	logs, err := s.logs.ListByUserBetween(ctx, userID, start.UTC(), end.UTC())
	if err != nil {
		return models.Summary{}, err
	}
	return ComputeDailySummary(day, habits, logs), nil
}

// normalizeDay maps a zero day to today and re-anchors a date in the service location.
func (s *SummaryService) normalizeDay(day time.Time) time.Time {
	if day.IsZero() {
		return s.now().In(s.loc)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}
