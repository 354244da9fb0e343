package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"habit_tracker/internal/models"
	"habit_tracker/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers users, logs them in and resolves bearer tokens to principals.
type AuthService struct {
	users  repository.Users
	tokens *TokenManager
	verify func(hash, password string) error
}

func NewAuthService(users repository.Users, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens, verify: verifyPassword}
}

// Register stores a new user with a bcrypt hash. Names are matched exactly.
func (s *AuthService) Register(ctx context.Context, name, password string) (models.PublicUser, error) {
	if strings.TrimSpace(name) == "" {
		return models.PublicUser{}, fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}

	existing, err := s.users.GetByName(ctx, name)
	if err != nil {
		return models.PublicUser{}, err
	}
	if existing != nil {
		return models.PublicUser{}, ErrUserExists
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.PublicUser{}, err
	}

	id, err := s.users.Create(ctx, name, hash)
	if err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return models.PublicUser{}, ErrUserExists
		}
		return models.PublicUser{}, err
	}
	return models.PublicUser{ID: id, Name: name}, nil
}

// Login checks credentials and issues an access token bound to the user's name.
// Unknown names and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if u == nil {
		// pay the same bcrypt cost as a wrong password
		_ = s.verify(dummyHash(), password)
		return "", ErrInvalidCredentials
	}
	if err := s.verify(u.HashedPassword, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.Name)
}

// ResolvePrincipal turns a bearer token into the user it names.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (models.User, error) {
	name, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrInvalidCredentials
	}
	return *u, nil
}

func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: password is empty", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password is longer than 72 bytes", ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

// dummyHash is a bcrypt hash at the cost real passwords use, compared against
// when the login name is unknown.
func dummyHash() string {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
		if err == nil {
			dummyHashValue = string(h)
		}
	})
	return dummyHashValue
}

func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
