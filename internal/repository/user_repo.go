package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"habit_tracker/internal/models"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicate is returned when an insert violates a UNIQUE constraint.
var ErrDuplicate = errors.New("duplicate key")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL       = `INSERT INTO users (name, hashed_password) VALUES (?, ?)`
	selectUserByNameSQL = `SELECT id, name, hashed_password FROM users WHERE name = ?`
	selectUserByIDSQL   = `SELECT id, name, hashed_password FROM users WHERE id = ?`
	selectUsersSQL      = `SELECT id, name, hashed_password FROM users ORDER BY id ASC`
	deleteUserSQL       = `DELETE FROM users WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, name, hashedPassword string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, name, hashedPassword)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", name, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByName fetches a user by exact name. Returns (nil, nil) if not found.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByNameSQL, name))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", name, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUsersSQL)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := make([]models.User, 0, 16)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.HashedPassword); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

// Delete removes the user; habits and logs go with it through ON DELETE CASCADE.
// Reports whether a row was removed.
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user %d: %w", id, err)
	}
	return n > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.HashedPassword); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			// connection without extended result codes
			return strings.Contains(se.Error(), "UNIQUE")
		}
	}
	return false
}
