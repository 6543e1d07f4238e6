package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type ActivityServiceMock struct {
	mock.Mock
}

func NewActivityServiceMock(t TestingT) *ActivityServiceMock {
	m := &ActivityServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ActivityServiceMock) List(ctx context.Context, callerID, limit int) ([]*model.Activity, error) {
	args := m.Called(ctx, callerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Activity), args.Error(1)
}
