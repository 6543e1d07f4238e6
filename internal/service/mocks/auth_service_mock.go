package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct {
	mock.Mock
}

func NewAuthServiceMock(t TestingT) *AuthServiceMock {
	m := &AuthServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (*model.Token, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}
