package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habit_tracker/internal/models"
)

type HabitSQLite struct {
	db *sql.DB
}

func NewHabitSQLite(db *sql.DB) *HabitSQLite {
	return &HabitSQLite{db: db}
}

var _ Habits = (*HabitSQLite)(nil)

const (
	insertHabitSQL = `INSERT INTO habits (user_id, title, description, created_at) VALUES (?, ?, ?, ?)`

	selectHabitByIDSQL = `
		SELECT id, user_id, title, description, created_at
		FROM habits WHERE id = ?
	`

	selectHabitsByUserSQL = `
		SELECT id, user_id, title, description, created_at
		FROM habits WHERE user_id = ? ORDER BY id ASC
	`

	deleteHabitSQL = `DELETE FROM habits WHERE id = ?`
)

// dateOnly keeps the calendar day of t as seen in t's own location and stores
// it as midnight UTC, so callers pick the zone that defines "today".
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create inserts h and returns it with ID set. A zero CreatedAt means today.
func (r *HabitSQLite) Create(ctx context.Context, h models.Habit) (models.Habit, error) {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	h.CreatedAt = dateOnly(h.CreatedAt)

	var desc sql.NullString
	if h.Description != nil {
		desc = sql.NullString{String: *h.Description, Valid: true}
	}

	res, err := r.db.ExecContext(ctx, insertHabitSQL, h.UserID, h.Title, desc, h.CreatedAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("insert habit for user %d: %w", h.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Habit{}, fmt.Errorf("get last insert id for habit: %w", err)
	}
	h.ID = int(id)
	return h, nil
}

// GetByID fetches a habit regardless of owner. Returns (nil, nil) if not found.
func (r *HabitSQLite) GetByID(ctx context.Context, id int) (*models.Habit, error) {
	h, err := scanHabit(r.db.QueryRowContext(ctx, selectHabitByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select habit %d: %w", id, err)
	}
	return &h, nil
}

func (r *HabitSQLite) ListByUser(ctx context.Context, userID int) ([]models.Habit, error) {
	rows, err := r.db.QueryContext(ctx, selectHabitsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select habits for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Habit, 0, 16)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan habit: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}
	return out, nil
}

// Delete removes the habit and, through ON DELETE CASCADE, its logs.
func (r *HabitSQLite) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteHabitSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete habit %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for habit %d: %w", id, err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var (
		h    models.Habit
		desc sql.NullString
	)
	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &desc, &h.CreatedAt); err != nil {
		return models.Habit{}, err
	}
	if desc.Valid {
		d := desc.String
		h.Description = &d
	}
	h.CreatedAt = h.CreatedAt.UTC()
	return h, nil
}
