package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock(t TestingT) *EventServiceMock {
	m := &EventServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *EventServiceMock) event(args mock.Arguments) (*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) events(args mock.Arguments) ([]*model.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) Create(ctx context.Context, ownerID int, params model.CreateEventParams) (*model.Event, error) {
	return m.event(m.Called(ctx, ownerID, params))
}

func (m *EventServiceMock) Update(ctx context.Context, eventID, ownerID int, params model.UpdateEventParams) (*model.Event, error) {
	return m.event(m.Called(ctx, eventID, ownerID, params))
}

func (m *EventServiceMock) GetByID(ctx context.Context, eventID int) (*model.Event, error) {
	return m.event(m.Called(ctx, eventID))
}

func (m *EventServiceMock) ListByOwner(ctx context.Context, ownerID int) ([]*model.Event, error) {
	return m.events(m.Called(ctx, ownerID))
}

func (m *EventServiceMock) ListByOwnerActive(ctx context.Context, ownerID int) ([]*model.Event, error) {
	return m.events(m.Called(ctx, ownerID))
}

func (m *EventServiceMock) ListActive(ctx context.Context) ([]*model.Event, error) {
	return m.events(m.Called(ctx))
}

func (m *EventServiceMock) ListPast(ctx context.Context) ([]*model.Event, error) {
	return m.events(m.Called(ctx))
}

func (m *EventServiceMock) DeleteByAdmin(ctx context.Context, eventID, actingAdminID int) error {
	args := m.Called(ctx, eventID, actingAdminID)
	return args.Error(0)
}
