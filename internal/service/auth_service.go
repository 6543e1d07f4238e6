package service

import (
	"context"

	"event-platform/internal/auth"
	"event-platform/internal/metrics"
	"event-platform/internal/model"
	apperrors "event-platform/pkg/app_errors"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*model.Token, error)
}

type AuthServiceImpl struct {
	users  UserService
	tokens auth.TokenIssuer
}

func NewAuthService(users UserService, tokens auth.TokenIssuer) AuthService {
	return &AuthServiceImpl{
		users:  users,
		tokens: tokens,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*model.Token, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(loginResult(err)).Inc()
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &model.Token{AccessToken: token, TokenType: "bearer"}, nil
}

func loginResult(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidCredentials:
		return "invalid_credentials"
	case apperrors.KindForbidden:
		return "banned"
	default:
		return "error"
	}
}
