// Package mocks ActivityQueue 的 testify mock
package mocks

import (
	"context"

	"event-platform/internal/model"
	"event-platform/internal/queue"

	"github.com/stretchr/testify/mock"
)

type TestingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockActivityQueue struct {
	mock.Mock
}

func NewMockActivityQueue(t TestingT) *MockActivityQueue {
	m := &MockActivityQueue{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockActivityQueue) Publish(ctx context.Context, activity *model.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityQueue) Subscribe(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
