package service

import (
	"context"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

// Authorization covers registration, login and token resolution.
type Authorization interface {
	Register(ctx context.Context, name, password string) (models.PublicUser, error)
	Login(ctx context.Context, name, password string) (string, error)
	ResolvePrincipal(ctx context.Context, token string) (models.User, error)
}

// Users exposes the unauthenticated user directory.
type Users interface {
	ListUsers(ctx context.Context) ([]models.PublicUser, error)
	GetUser(ctx context.Context, id int) (models.PublicUser, error)
	DeleteUser(ctx context.Context, id int) error
}

// Habits exposes habit and log operations scoped to the principal.
type Habits interface {
	CreateHabit(ctx context.Context, principal models.User, in HabitInput) (models.Habit, error)
	ListHabits(ctx context.Context, principal models.User) ([]models.Habit, error)
	GetHabit(ctx context.Context, principal models.User, habitID int) (models.Habit, error)
	DeleteHabit(ctx context.Context, principal models.User, habitID int) error
	LogHabit(ctx context.Context, principal models.User, habitID int) (models.HabitLog, error)
	ListHabitLogs(ctx context.Context, principal models.User, habitID int) ([]models.HabitLog, error)
}

// Summaries computes the end-of-day report.
type Summaries interface {
	// DailySummary reports on day; a zero day means today.
	DailySummary(ctx context.Context, userID int, day time.Time) (models.Summary, error)
}

type Service struct {
	Authorization
	Users
	Habits
	Summaries
}

// Options carries the tunables the services need from configuration.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
	// Location defines calendar days for summaries. Nil means UTC.
	Location *time.Location
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

func (o Options) clock() func() time.Time {
	if o.Now != nil {
		return o.Now
	}
	return time.Now
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.UTC
}

func NewService(repos *repository.Repository, opts Options) *Service {
	tokens := NewTokenManager(opts.SigningKey, opts.TokenTTL, opts.clock())
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Users:         NewUserService(repos.Users),
		Habits:        NewHabitService(repos.Habits, repos.HabitLogs, opts.location(), opts.clock()),
		Summaries:     NewSummaryService(repos.Habits, repos.HabitLogs, opts.location(), opts.clock()),
	}
}
