package service_test

import (
	"context"
	"testing"
	"time"

	"event-platform/internal/model"
	queueMocks "event-platform/internal/queue/mocks"
	repoMocks "event-platform/internal/repository/mocks"
	"event-platform/internal/service"
	apperrors "event-platform/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTicketService(t *testing.T) (
	service.TicketService,
	*repoMocks.MockTicketRepository,
	*repoMocks.MockEventRepository,
	*queueMocks.MockActivityQueue,
) {
	ticketRepo := repoMocks.NewMockTicketRepository(t)
	eventRepo := repoMocks.NewMockEventRepository(t)
	q := queueMocks.NewMockActivityQueue(t)
	return service.NewTicketService(&fakeTransactor{}, ticketRepo, eventRepo, q, fixedClock), ticketRepo, eventRepo, q
}

func TestTicketService_RegisterForEvent(t *testing.T) {
	ctx := context.Background()
	event := &model.Event{ID: 10, StartTime: fixedNow.Add(24 * time.Hour), OwnerID: 1}

	t.Run("Register twice - first succeeds, second conflicts", func(t *testing.T) {
		ticketService, ticketRepo, eventRepo, q := setupTicketService(t)

		eventRepo.On("FindByIDForShare", ctx, mock.Anything, 10).Return(event, nil).Twice()
		ticketRepo.On("FindByEventAndParticipant", ctx, mock.Anything, 10, 2).
			Return(nil, apperrors.ErrTicketNotFound).Once()
		ticketRepo.On("Create", ctx, mock.Anything, &model.Ticket{EventID: 10, ParticipantID: 2}).
			Return(&model.Ticket{ID: 100, EventID: 10, ParticipantID: 2}, nil).Once()
		ticketRepo.On("FindByID", ctx, 100).
			Return(&model.Ticket{ID: 100, EventID: 10, ParticipantID: 2, Event: event}, nil).Once()
		q.On("Publish", mock.Anything, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityTicketRegistered && a.ActorID == 2 && a.SubjectID == 100
		})).Return(nil).Once()

		ticket, err := ticketService.RegisterForEvent(ctx, 10, 2)
		require.NoError(t, err)
		assert.Equal(t, 100, ticket.ID)
		require.NotNil(t, ticket.Event)

		ticketRepo.On("FindByEventAndParticipant", ctx, mock.Anything, 10, 2).
			Return(&model.Ticket{ID: 100}, nil).Once()

		_, err = ticketService.RegisterForEvent(ctx, 10, 2)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})

	t.Run("Failed - unique constraint wins the race", func(t *testing.T) {
		ticketService, ticketRepo, eventRepo, _ := setupTicketService(t)

		eventRepo.On("FindByIDForShare", ctx, mock.Anything, 10).Return(event, nil).Once()
		ticketRepo.On("FindByEventAndParticipant", ctx, mock.Anything, 10, 2).
			Return(nil, apperrors.ErrTicketNotFound).Once()
		ticketRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrAlreadyRegistered).Once()

		_, err := ticketService.RegisterForEvent(ctx, 10, 2)

		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	})

	t.Run("Failed - event absent", func(t *testing.T) {
		ticketService, _, eventRepo, _ := setupTicketService(t)

		eventRepo.On("FindByIDForShare", ctx, mock.Anything, 99).Return(nil, apperrors.ErrEventNotFound).Once()

		_, err := ticketService.RegisterForEvent(ctx, 99, 2)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestTicketService_Cancel(t *testing.T) {
	ctx := context.Background()

	ticketFor := func(start time.Time) *model.Ticket {
		return &model.Ticket{
			ID:            100,
			EventID:       10,
			ParticipantID: 2,
			Event:         &model.Event{ID: 10, StartTime: start},
		}
	}

	t.Run("Success - before start removes ticket", func(t *testing.T) {
		ticketService, ticketRepo, _, q := setupTicketService(t)

		ticketRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(ticketFor(fixedNow.Add(time.Minute)), nil).Once()
		ticketRepo.On("Delete", ctx, mock.Anything, 100).Return(nil).Once()
		q.On("Publish", mock.Anything, mock.MatchedBy(func(a *model.Activity) bool {
			return a.Kind == model.ActivityTicketCancelled && a.SubjectID == 100
		})).Return(nil).Once()

		require.NoError(t, ticketService.Cancel(ctx, 100, 2))
	})

	t.Run("Failed - event starts exactly now", func(t *testing.T) {
		ticketService, ticketRepo, _, _ := setupTicketService(t)

		ticketRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(ticketFor(fixedNow), nil).Once()

		err := ticketService.Cancel(ctx, 100, 2)

		assert.ErrorIs(t, err, apperrors.ErrEventAlreadyStarted)
		assert.Equal(t, apperrors.KindInvalidOperation, apperrors.KindOf(err))
		ticketRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failed - event already past", func(t *testing.T) {
		ticketService, ticketRepo, _, _ := setupTicketService(t)

		ticketRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(ticketFor(fixedNow.Add(-time.Hour)), nil).Once()

		assert.ErrorIs(t, ticketService.Cancel(ctx, 100, 2), apperrors.ErrEventAlreadyStarted)
	})

	t.Run("Failed - caller is not the participant", func(t *testing.T) {
		ticketService, ticketRepo, _, _ := setupTicketService(t)

		ticketRepo.On("FindByIDWithLock", ctx, mock.Anything, 100).Return(ticketFor(fixedNow.Add(time.Hour)), nil).Once()

		assert.ErrorIs(t, ticketService.Cancel(ctx, 100, 3), apperrors.ErrNotTicketHolder)
	})

	t.Run("Failed - ticket absent", func(t *testing.T) {
		ticketService, ticketRepo, _, _ := setupTicketService(t)

		ticketRepo.On("FindByIDWithLock", ctx, mock.Anything, 999).Return(nil, apperrors.ErrTicketNotFound).Once()

		assert.ErrorIs(t, ticketService.Cancel(ctx, 999, 2), apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_ListByParticipant(t *testing.T) {
	ctx := context.Background()
	ticketService, ticketRepo, _, _ := setupTicketService(t)

	ticketRepo.On("ListByParticipant", ctx, 2).Return([]*model.Ticket{}, nil).Once()

	tickets, err := ticketService.ListByParticipant(ctx, 2)

	require.NoError(t, err)
	assert.Empty(t, tickets)
}
