package service_test

import (
	"context"
	"testing"
	"time"

	"event-platform/internal/auth"
	"event-platform/internal/model"
	"event-platform/internal/service"
	serviceMocks "event-platform/internal/service/mocks"
	apperrors "event-platform/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret-key-for-event-platform", time.Hour, "event-platform")

	t.Run("Success", func(t *testing.T) {
		users := serviceMocks.NewUserServiceMock(t)
		users.On("Authenticate", ctx, "alice1", "pw12345").Return(&model.User{ID: 7, Username: "alice1"}, nil).Once()

		token, err := service.NewAuthService(users, tokens).Login(ctx, "alice1", "pw12345")

		require.NoError(t, err)
		assert.Equal(t, "bearer", token.TokenType)

		id, err := tokens.Decode(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("Failed - invalid credentials", func(t *testing.T) {
		users := serviceMocks.NewUserServiceMock(t)
		users.On("Authenticate", ctx, "alice1", "nope").Return(nil, apperrors.ErrInvalidCredentials).Once()

		_, err := service.NewAuthService(users, tokens).Login(ctx, "alice1", "nope")

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}
