package service

import (
	"context"
	"errors"
	"strings"

	"authgate/internal/models"
	"authgate/internal/repository"
)

// RegisterResult is what a successful registration hands back to the caller.
type RegisterResult struct {
	UserID string
	Token  string
}

// AuthService handles user auth logic
type AuthService struct {
	users  repository.Users
	hasher *PasswordHasher
	tokens *TokenManager
}

func NewAuthService(users repository.Users, hasher *PasswordHasher, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// normalizeUsername is applied identically on register and login: surrounding whitespace
// is dropped, case is preserved.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// Register creates a new user and returns its id together with a fresh token.
func (s *AuthService) Register(ctx context.Context, username, password string) (RegisterResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return RegisterResult{}, ErrCredentialsRequired
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return RegisterResult{}, infraError("look up user", err)
	}
	if existing != nil {
		return RegisterResult{}, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return RegisterResult{}, infraError("hash password", err)
	}

	// The pre-check above is only a fast path; the unique constraint decides races.
	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return RegisterResult{}, ErrUsernameTaken
		}
		return RegisterResult{}, infraError("create user", err)
	}

	token, err := s.tokens.Issue(&models.User{ID: id, Username: username})
	if err != nil {
		return RegisterResult{}, infraError("issue token", err)
	}
	return RegisterResult{UserID: id, Token: token}, nil
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = normalizeUsername(username)
	if username == "" {
		return "", ErrEmptyUsername
	}
	if password == "" {
		return "", ErrEmptyPassword
	}

	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", infraError("look up user", err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := s.hasher.Compare(ctx, u.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return "", ErrInvalidPassword
		}
		return "", infraError("verify password", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", infraError("issue token", err)
	}
	return token, nil
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(accessToken string) (*Claims, error) {
	return s.tokens.Parse(accessToken)
}
