package service

import (
	"context"
	"sort"
	"time"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

// memStore is an in-test stand-in for the three repositories, with cascading deletes.
type memStore struct {
	users  map[int]models.User
	habits map[int]models.Habit
	logs   map[int]models.HabitLog
	nextID int

	err error // returned by every call when set
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[int]models.User{},
		habits: map[int]models.Habit{},
		logs:   map[int]models.HabitLog{},
	}
}

func (m *memStore) id() int {
	m.nextID++
	return m.nextID
}

func (m *memStore) repos() *repository.Repository {
	return &repository.Repository{
		Users:     memUsers{m},
		Habits:    memHabits{m},
		HabitLogs: memLogs{m},
	}
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(ctx context.Context, name, hash string) (int, error) {
	if r.m.err != nil {
		return 0, r.m.err
	}
	for _, u := range r.m.users {
		if u.Name == name {
			return 0, repository.ErrDuplicate
		}
	}
	id := r.m.id()
	r.m.users[id] = models.User{ID: id, Name: name, HashedPassword: hash}
	return id, nil
}

func (r memUsers) GetByName(ctx context.Context, name string) (*models.User, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	for _, u := range r.m.users {
		if u.Name == name {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(ctx context.Context, id int) (*models.User, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) List(ctx context.Context) ([]models.User, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := make([]models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) Delete(ctx context.Context, id int) (bool, error) {
	if r.m.err != nil {
		return false, r.m.err
	}
	if _, ok := r.m.users[id]; !ok {
		return false, nil
	}
	delete(r.m.users, id)
	for hid, h := range r.m.habits {
		if h.UserID == id {
			_, _ = memHabits{r.m}.Delete(ctx, hid)
		}
	}
	return true, nil
}

type memHabits struct{ m *memStore }

func (r memHabits) Create(ctx context.Context, h models.Habit) (models.Habit, error) {
	if r.m.err != nil {
		return models.Habit{}, r.m.err
	}
	h.ID = r.m.id()
	r.m.habits[h.ID] = h
	return h, nil
}

func (r memHabits) GetByID(ctx context.Context, id int) (*models.Habit, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	h, ok := r.m.habits[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r memHabits) ListByUser(ctx context.Context, userID int) ([]models.Habit, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.Habit{}
	for _, h := range r.m.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memHabits) Delete(ctx context.Context, id int) (bool, error) {
	if r.m.err != nil {
		return false, r.m.err
	}
	if _, ok := r.m.habits[id]; !ok {
		return false, nil
	}
	delete(r.m.habits, id)
	for lid, l := range r.m.logs {
		if l.HabitID == id {
			delete(r.m.logs, lid)
		}
	}
	return true, nil
}

type memLogs struct{ m *memStore }

func (r memLogs) Append(ctx context.Context, habitID int, at time.Time) (models.HabitLog, error) {
	if r.m.err != nil {
		return models.HabitLog{}, r.m.err
	}
	l := models.HabitLog{ID: r.m.id(), HabitID: habitID, Date: at.UTC()}
	r.m.logs[l.ID] = l
	return l, nil
}

func (r memLogs) ListByHabit(ctx context.Context, habitID int) ([]models.HabitLog, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.HabitLog{}
	for _, l := range r.m.logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memLogs) ListByUserBetween(ctx context.Context, userID int, from, to time.Time) ([]models.HabitLog, error) {
	if r.m.err != nil {
		return nil, r.m.err
	}
	out := []models.HabitLog{}
	for _, l := range r.m.logs {
		h, ok := r.m.habits[l.HabitID]
		if !ok || h.UserID != userID {
			continue
		}
		if l.Date.Before(from) || l.Date.After(to) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
