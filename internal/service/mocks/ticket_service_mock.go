package mocks

import (
	"context"

	"event-platform/internal/model"

	"github.com/stretchr/testify/mock"
)

type TicketServiceMock struct {
	mock.Mock
}

func NewTicketServiceMock(t TestingT) *TicketServiceMock {
	m := &TicketServiceMock{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TicketServiceMock) RegisterForEvent(ctx context.Context, eventID, participantID int) (*model.Ticket, error) {
	args := m.Called(ctx, eventID, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketServiceMock) Cancel(ctx context.Context, ticketID, callerID int) error {
	args := m.Called(ctx, ticketID, callerID)
	return args.Error(0)
}

func (m *TicketServiceMock) ListByParticipant(ctx context.Context, participantID int) ([]*model.Ticket, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}
