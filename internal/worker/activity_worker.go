package worker

import (
	"context"
	"fmt"

	"event-platform/internal/metrics"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	"event-platform/pkg/logger"

	"go.uber.org/zap"
)

type ActivityWorker interface {
	// Run 消化隊列直到 ctx 結束或 channel 關閉
	Run(ctx context.Context) error
}

type ActivityWorkerImpl struct {
	repo  repository.ActivityRepository
	queue queue.ActivityQueue
	log   *zap.Logger
}

func NewActivityWorker(repo repository.ActivityRepository, queue queue.ActivityQueue) ActivityWorker {
	return &ActivityWorkerImpl{
		repo:  repo,
		queue: queue,
		log:   logger.WithComponent("worker"),
	}
}

func (w *ActivityWorkerImpl) Run(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribe activities: %w", err)
	}

	for msg := range msgs {
		w.handle(ctx, msg)
	}
	return nil
}

// handle 寫入失敗就 Nack(requeue)，重送由 request_id 去重
func (w *ActivityWorkerImpl) handle(ctx context.Context, msg queue.Delivery) {
	activity := msg.Data

	inserted, err := w.repo.Create(ctx, activity)
	if err != nil {
		metrics.ActivitiesPersisted.WithLabelValues("error").Inc()
		w.log.Warn("persist activity failed, requeue",
			zap.String("request_id", activity.RequestID.String()),
			zap.String("kind", string(activity.Kind)),
			zap.Error(err),
		)
		msg.Nack(true)
		return
	}

	if inserted {
		metrics.ActivitiesPersisted.WithLabelValues("inserted").Inc()
	} else {
		metrics.ActivitiesPersisted.WithLabelValues("duplicate").Inc()
		w.log.Debug("duplicate activity ignored", zap.String("request_id", activity.RequestID.String()))
	}
	msg.Ack()
}
