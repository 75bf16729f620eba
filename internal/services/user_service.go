package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/store"
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService registers users and exchanges credentials for tokens.
type UserService struct {
	users  store.UserStore
	tokens TokenIssuer
	clock  core.Clock
}

func NewUserService(users store.UserStore, tokens TokenIssuer, clock core.Clock) *UserService {
	return &UserService{users: users, tokens: tokens, clock: clock}
}

// Register creates a user and returns a token for it.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if err := core.ValidateCredentials(email, password); err != nil {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	u, err := s.users.CreateUser(ctx, core.User{
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return "", ErrEmailTaken
	}
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User registered", "user_id", u.ID)
	return s.tokens.Issue(u.ID)
}

// Login checks credentials. Unknown email and wrong password are the same error.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		slog.WarnContext(ctx, "Invalid password attempt", "user_id", u.ID)
		return "", ErrBadCredentials
	}
	return s.tokens.Issue(u.ID)
}
