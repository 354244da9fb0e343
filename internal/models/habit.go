package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Habit struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // calendar date, midnight UTC; sent as YYYY-MM-DD
}

// habitFields drops Habit's methods so the JSON hooks can reuse its tags.
type habitFields Habit

func (h Habit) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		habitFields
		CreatedAt string `json:"created_at"`
	}{habitFields(h), h.CreatedAt.Format(DateLayout)})
}

func (h *Habit) UnmarshalJSON(data []byte) error {
	aux := struct {
		*habitFields
		CreatedAt string `json:"created_at"`
	}{habitFields: (*habitFields)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt == "" {
		h.CreatedAt = time.Time{}
		return nil
	}
	t, err := time.Parse(DateLayout, aux.CreatedAt)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	h.CreatedAt = t
	return nil
}

// HabitLog is a single completion event of a habit.
type HabitLog struct {
	ID      int       `json:"id"`
	HabitID int       `json:"habit_id"`
	Date    time.Time `json:"date"`
}
