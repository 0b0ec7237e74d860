package service

import (
	"context"

	"authgate/internal/config"
	"authgate/internal/repository"
)

// Authorization is the credential flow exposed to the HTTP layer.
type Authorization interface {
	Register(ctx context.Context, username, password string) (RegisterResult, error)
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (*Claims, error)
}

// Service aggregates the services the handlers depend on.
type Service struct {
	Authorization
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	hasher := NewPasswordHasher(PasswordCost, cfg.HashConcurrency)
	tokens := NewTokenManager(cfg.JWTSecret)
	return &Service{
		Authorization: NewAuthService(repos.Users, hasher, tokens),
	}
}
