package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"habit_tracker/internal/models"
)

type HabitLogSQLite struct {
	db *sql.DB
}

func NewHabitLogSQLite(db *sql.DB) *HabitLogSQLite { return &HabitLogSQLite{db: db} }

var _ HabitLogs = (*HabitLogSQLite)(nil)

const (
	insertHabitLogSQL = `INSERT INTO habit_logs (habit_id, date) VALUES (?, ?)`

	selectLogsByHabitSQL = `
		SELECT id, habit_id, date
		FROM habit_logs WHERE habit_id = ? ORDER BY date ASC, id ASC
	`

	selectLogsByUserBetweenSQL = `
		SELECT l.id, l.habit_id, l.date
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.date >= ? AND l.date <= ?
		ORDER BY l.date ASC, l.id ASC
	`
)

// Append inserts a new completion. A zero at means now.
func (r *HabitLogSQLite) Append(ctx context.Context, habitID int, at time.Time) (models.HabitLog, error) {
	if at.IsZero() {
		at = time.Now()
	}
	l := models.HabitLog{HabitID: habitID, Date: at.UTC()}

	res, err := r.db.ExecContext(ctx, insertHabitLogSQL, l.HabitID, l.Date)
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("insert log for habit %d: %w", habitID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.HabitLog{}, fmt.Errorf("get last insert id for log: %w", err)
	}
	l.ID = int(id)
	return l, nil
}

func (r *HabitLogSQLite) ListByHabit(ctx context.Context, habitID int) ([]models.HabitLog, error) {
	return r.query(ctx, selectLogsByHabitSQL, habitID)
}

func (r *HabitLogSQLite) ListByUserBetween(ctx context.Context, userID int, from, to time.Time) ([]models.HabitLog, error) {
	return r.query(ctx, selectLogsByUserBetweenSQL, userID, from.UTC(), to.UTC())
}

func (r *HabitLogSQLite) query(ctx context.Context, q string, args ...any) ([]models.HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select habit logs: %w", err)
	}
	defer rows.Close()

	out := make([]models.HabitLog, 0, 16)
	for rows.Next() {
		var l models.HabitLog
		if err := rows.Scan(&l.ID, &l.HabitID, &l.Date); err != nil {
			return nil, fmt.Errorf("scan habit log: %w", err)
		}
		l.Date = l.Date.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habit logs: %w", err)
	}
	return out, nil
}
