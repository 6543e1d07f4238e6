package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockActivityRepository struct {
	mock.Mock
}

func NewMockActivityRepository(t TestingT) *MockActivityRepository {
	m := &MockActivityRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *model.Activity) (bool, error) {
	args := m.Called(ctx, activity)
	return args.Bool(0), args.Error(1)
}

func (m *MockActivityRepository) List(ctx context.Context, limit int) ([]*model.Activity, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Activity), args.Error(1)
}
