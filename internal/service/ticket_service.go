package service

import (
	"context"
	"errors"
	"time"

	"event-platform/internal/database"
	"event-platform/internal/metrics"
	"event-platform/internal/model"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	apperrors "event-platform/pkg/app_errors"
	"event-platform/pkg/logger"

	"github.com/jackc/pgx/v5"
)

type TicketService interface {
	RegisterForEvent(ctx context.Context, eventID, participantID int) (*model.Ticket, error)
	// Cancel 只有持有者能取消，且活動尚未開始
	Cancel(ctx context.Context, ticketID, callerID int) error
	ListByParticipant(ctx context.Context, participantID int) ([]*model.Ticket, error)
}

type TicketServiceImpl struct {
	tx        database.Transactor
	tickets   repository.TicketRepository
	events    repository.EventRepository
	publisher activityPublisher
	now       Clock
}

func NewTicketService(
	tx database.Transactor,
	tickets repository.TicketRepository,
	events repository.EventRepository,
	activities queue.ActivityQueue,
	clock Clock,
) TicketService {
	if clock == nil {
		clock = time.Now
	}
	return &TicketServiceImpl{
		tx:        tx,
		tickets:   tickets,
		events:    events,
		publisher: activityPublisher{queue: activities, log: logger.WithComponent("service")},
		now:       clock,
	}
}

func (s *TicketServiceImpl) RegisterForEvent(ctx context.Context, eventID, participantID int) (*model.Ticket, error) {
	var created *model.Ticket
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		// FOR SHARE 擋住同時進行的刪除
		if _, err := s.events.FindByIDForShare(ctx, tx, eventID); err != nil {
			return err
		}

		_, err := s.tickets.FindByEventAndParticipant(ctx, tx, eventID, participantID)
		switch {
		case err == nil:
			return apperrors.ErrAlreadyRegistered
		case !errors.Is(err, apperrors.ErrTicketNotFound):
			return err
		}

		created, err = s.tickets.Create(ctx, tx, &model.Ticket{EventID: eventID, ParticipantID: participantID})
		return err
	})
	metrics.TicketOperations.WithLabelValues("register", resultOf(err)).Inc()
	if err != nil {
		return nil, err
	}

	s.publisher.publish(ctx, model.NewActivity(model.ActivityTicketRegistered, participantID, created.ID, s.now()))
	return s.tickets.FindByID(ctx, created.ID)
}

func (s *TicketServiceImpl) Cancel(ctx context.Context, ticketID, callerID int) error {
	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		ticket, err := s.tickets.FindByIDWithLock(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.ParticipantID != callerID {
			return apperrors.ErrNotTicketHolder
		}
		if ticket.Event == nil || !ticket.Event.IsActive(s.now()) {
			return apperrors.ErrEventAlreadyStarted
		}
		return s.tickets.Delete(ctx, tx, ticketID)
	})
	metrics.TicketOperations.WithLabelValues("cancel", resultOf(err)).Inc()
	if err != nil {
		return err
	}

	s.publisher.publish(ctx, model.NewActivity(model.ActivityTicketCancelled, callerID, ticketID, s.now()))
	return nil
}

func (s *TicketServiceImpl) ListByParticipant(ctx context.Context, participantID int) ([]*model.Ticket, error) {
	return s.tickets.ListByParticipant(ctx, participantID)
}

// resultOf 以錯誤分類當 metrics 標籤
func resultOf(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperrors.KindOf(err))
}
