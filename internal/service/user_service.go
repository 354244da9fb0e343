package service

import (
	"context"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"
)

type UserService struct {
	users repository.Users
}

func NewUserService(users repository.Users) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (models.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.PublicUser{}, err
	}
	if u == nil {
		return models.PublicUser{}, ErrUserNotFound
	}
	return u.Public(), nil
}

// DeleteUser removes the user together with all habits and logs.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
