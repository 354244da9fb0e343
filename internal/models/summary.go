package models

// Summary is the end-of-day completion report for one user.
type Summary struct {
	Date         string   `json:"date"` // YYYY-MM-DD
	TotalHabits  int      `json:"total_habits"`
	Completed    int      `json:"completed"`
	NotCompleted int      `json:"not_completed"` // total - completed, may be negative
	Percent      float64  `json:"percent"`
	Habits       []string `json:"habits"`
	DoneHabits   []string `json:"done_habits"`
}
