package repository

import (
	"context"
	"database/sql"
	"time"

	"habit_tracker/internal/models"
)

type Users interface {
	Create(ctx context.Context, name, hashedPassword string) (int, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Habits interface {
	Create(ctx context.Context, h models.Habit) (models.Habit, error)
	GetByID(ctx context.Context, id int) (*models.Habit, error)
	ListByUser(ctx context.Context, userID int) ([]models.Habit, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type HabitLogs interface {
	Append(ctx context.Context, habitID int, at time.Time) (models.HabitLog, error)
	ListByHabit(ctx context.Context, habitID int) ([]models.HabitLog, error)
	// ListByUserBetween returns logs of habits owned by userID with date in [from, to].
	ListByUserBetween(ctx context.Context, userID int, from, to time.Time) ([]models.HabitLog, error)
}

type Repository struct {
	Users     Users
	Habits    Habits
	HabitLogs HabitLogs
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Habits:    NewHabitSQLite(db),
		HabitLogs: NewHabitLogSQLite(db),
	}
}
