package service

import (
	"context"
	"time"

	"event-platform/internal/database"
	"event-platform/internal/model"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	apperrors "event-platform/pkg/app_errors"
	"event-platform/pkg/logger"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EventService interface {
	Create(ctx context.Context, ownerID int, params model.CreateEventParams) (*model.Event, error)
	// Update 只有 owner 能修改；params 中 nil 欄位保持原值
	Update(ctx context.Context, eventID, ownerID int, params model.UpdateEventParams) (*model.Event, error)
	GetByID(ctx context.Context, eventID int) (*model.Event, error)
	ListByOwner(ctx context.Context, ownerID int) ([]*model.Event, error)
	ListByOwnerActive(ctx context.Context, ownerID int) ([]*model.Event, error)
	// ListActive 與 ListPast 以同一個 now 切分所有活動
	ListActive(ctx context.Context) ([]*model.Event, error)
	ListPast(ctx context.Context) ([]*model.Event, error)
	DeleteByAdmin(ctx context.Context, eventID, actingAdminID int) error
}

type EventServiceImpl struct {
	tx        database.Transactor
	events    repository.EventRepository
	users     repository.UserRepository
	publisher activityPublisher
	now       Clock
}

func NewEventService(
	tx database.Transactor,
	events repository.EventRepository,
	users repository.UserRepository,
	activities queue.ActivityQueue,
	clock Clock,
) EventService {
	if clock == nil {
		clock = time.Now
	}
	return &EventServiceImpl{
		tx:        tx,
		events:    events,
		users:     users,
		publisher: activityPublisher{queue: activities, log: logger.WithComponent("service")},
		now:       clock,
	}
}

func (s *EventServiceImpl) Create(ctx context.Context, ownerID int, params model.CreateEventParams) (*model.Event, error) {
	created, err := s.events.Create(ctx, &model.Event{
		Title:       params.Title,
		Description: params.Description,
		StartTime:   params.StartTime.UTC(),
		Location:    params.Location,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, err
	}
	return s.events.FindByID(ctx, created.ID)
}

func (s *EventServiceImpl) Update(ctx context.Context, eventID, ownerID int, params model.UpdateEventParams) (*model.Event, error) {
	if params.IsEmpty() {
		return nil, apperrors.ErrInvalidInput
	}
	if params.StartTime != nil {
		start := params.StartTime.UTC()
		params.StartTime = &start
	}

	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		event, err := s.events.FindByIDWithLock(ctx, tx, eventID)
		if err != nil {
			return err
		}
		if event.OwnerID != ownerID {
			return apperrors.ErrNotEventOwner
		}
		_, err = s.events.Update(ctx, tx, eventID, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.events.FindByID(ctx, eventID)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, eventID int) (*model.Event, error) {
	return s.events.FindByID(ctx, eventID)
}

func (s *EventServiceImpl) ListByOwner(ctx context.Context, ownerID int) ([]*model.Event, error) {
	return s.events.List(ctx, repository.EventFilter{OwnerID: &ownerID})
}

func (s *EventServiceImpl) ListByOwnerActive(ctx context.Context, ownerID int) ([]*model.Event, error) {
	now := s.now()
	return s.events.List(ctx, repository.EventFilter{OwnerID: &ownerID, StartsAfter: &now})
}

func (s *EventServiceImpl) ListActive(ctx context.Context) ([]*model.Event, error) {
	now := s.now()
	return s.events.List(ctx, repository.EventFilter{StartsAfter: &now})
}

func (s *EventServiceImpl) ListPast(ctx context.Context) ([]*model.Event, error) {
	now := s.now()
	return s.events.List(ctx, repository.EventFilter{StartsAtOrBefore: &now})
}

// DeleteByAdmin 票券由 FK cascade 一併刪除
func (s *EventServiceImpl) DeleteByAdmin(ctx context.Context, eventID, actingAdminID int) error {
	if _, err := requireAdmin(ctx, s.users, actingAdminID); err != nil {
		return err
	}

	err := s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		return s.events.Delete(ctx, tx, eventID)
	})
	if err != nil {
		return err
	}

	s.publisher.log.Info("event deleted", zap.Int("event_id", eventID), zap.Int("admin_id", actingAdminID))
	s.publisher.publish(ctx, model.NewActivity(model.ActivityEventDeleted, actingAdminID, eventID, s.now()))
	return nil
}
