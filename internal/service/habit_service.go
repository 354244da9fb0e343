package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

// HabitInput is the caller-supplied part of a new habit.
type HabitInput struct {
	Title       string
	Description *string
}

type HabitService struct {
	habits repository.Habits
	logs   repository.HabitLogs
	// loc decides the calendar day of created_at, matching summary days.
	loc *time.Location
	now func() time.Time
}

func NewHabitService(habits repository.Habits, logs repository.HabitLogs, loc *time.Location, now func() time.Time) *HabitService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &HabitService{habits: habits, logs: logs, loc: loc, now: now}
}

// authorizeHabitAccess returns the habit only if principal owns it.
// Absent and foreign habits both yield ErrHabitNotFound.
func (s *HabitService) authorizeHabitAccess(ctx context.Context, principal models.User, habitID int) (models.Habit, error) {
	h, err := s.habits.GetByID(ctx, habitID)
	if err != nil {
		return models.Habit{}, err
	}
	if h == nil || h.UserID != principal.ID {
		return models.Habit{}, ErrHabitNotFound
	}
	return *h, nil
}

// authorizeLogAccess gates log operations. Logs carry no owner of their own,
// so the owning habit's check is the only one.
func (s *HabitService) authorizeLogAccess(ctx context.Context, principal models.User, habitID int) (models.Habit, error) {
	return s.authorizeHabitAccess(ctx, principal, habitID)
}

func (s *HabitService) CreateHabit(ctx context.Context, principal models.User, in HabitInput) (models.Habit, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Habit{}, fmt.Errorf("%w: title is empty", ErrInvalidInput)
	}
	return s.habits.Create(ctx, models.Habit{
		UserID:      principal.ID,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   s.now().In(s.loc),
	})
}

func (s *HabitService) ListHabits(ctx context.Context, principal models.User) ([]models.Habit, error) {
	return s.habits.ListByUser(ctx, principal.ID)
}

func (s *HabitService) GetHabit(ctx context.Context, principal models.User, habitID int) (models.Habit, error) {
	return s.authorizeHabitAccess(ctx, principal, habitID)
}

func (s *HabitService) DeleteHabit(ctx context.Context, principal models.User, habitID int) error {
	h, err := s.authorizeHabitAccess(ctx, principal, habitID)
	if err != nil {
		return err
	}
	deleted, err := s.habits.Delete(ctx, h.ID)
	if err != nil {
		return err
	}
	if !deleted {
		// removed concurrently between lookup and delete
		return ErrHabitNotFound
	}
	return nil
}

// LogHabit appends a completion stamped now; repeated calls on one day all count.
func (s *HabitService) LogHabit(ctx context.Context, principal models.User, habitID int) (models.HabitLog, error) {
	h, err := s.authorizeLogAccess(ctx, principal, habitID)
	if err != nil {
		return models.HabitLog{}, err
	}
	return s.logs.Append(ctx, h.ID, s.now())
}

func (s *HabitService) ListHabitLogs(ctx context.Context, principal models.User, habitID int) ([]models.HabitLog, error) {
	h, err := s.authorizeLogAccess(ctx, principal, habitID)
	if err != nil {
		return nil, err
	}
	return s.logs.ListByHabit(ctx, h.ID)
}
