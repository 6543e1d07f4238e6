// Package mocks service 介面的 testify mock，給 handler 測試使用
package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

type UserServiceMock struct {
	mock.Mock
}

func NewUserServiceMock(t TestingT) *UserServiceMock {
	m := &UserServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserServiceMock) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserServiceMock) Register(ctx context.Context, username, password string) (*model.User, error) {
	return m.user(m.Called(ctx, username, password))
}

func (m *UserServiceMock) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	return m.user(m.Called(ctx, username, password))
}

func (m *UserServiceMock) ChangeUsername(ctx context.Context, userID int, newUsername string) (*model.User, error) {
	return m.user(m.Called(ctx, userID, newUsername))
}

func (m *UserServiceMock) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) (*model.User, error) {
	return m.user(m.Called(ctx, userID, oldPassword, newPassword))
}

func (m *UserServiceMock) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	return m.user(m.Called(ctx, userID))
}

func (m *UserServiceMock) EnsureActive(ctx context.Context, userID int) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *UserServiceMock) Ban(ctx context.Context, targetID, actingAdminID int) (*model.User, error) {
	return m.user(m.Called(ctx, targetID, actingAdminID))
}

func (m *UserServiceMock) ListAll(ctx context.Context, callerID int) ([]*model.User, error) {
	args := m.Called(ctx, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *UserServiceMock) Promote(ctx context.Context, username string) (*model.User, error) {
	return m.user(m.Called(ctx, username))
}
