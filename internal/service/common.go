package service

import (
	"context"
	"errors"
	"time"

	"event-platform/internal/metrics"
	"event-platform/internal/model"
	"event-platform/internal/queue"
	"event-platform/internal/repository"
	apperrors "event-platform/pkg/app_errors"

	"go.uber.org/zap"
)

// Clock 可注入的時間來源，測試時固定 now
type Clock func() time.Time

const publishTimeout = 2 * time.Second

// requireAdmin 權限檢查在 service 內完成，不依賴路由層
func requireAdmin(ctx context.Context, users repository.UserRepository, callerID int) (*model.User, error) {
	caller, err := users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}
	if caller.Banned {
		return nil, apperrors.ErrUserBanned
	}
	if !caller.IsAdmin {
		return nil, apperrors.ErrAdminRequired
	}
	return caller, nil
}

// activityPublisher commit 之後才送出活動紀錄；送出失敗只記 log，不影響請求結果
type activityPublisher struct {
	queue queue.ActivityQueue
	log   *zap.Logger
}

func (p activityPublisher) publish(ctx context.Context, activity *model.Activity) {
	if p.queue == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.queue.Publish(ctx, activity)
	metrics.ActivitiesPublished.WithLabelValues(string(activity.Kind), metrics.Result(err)).Inc()
	if err != nil {
		p.log.Warn("publish activity failed",
			zap.String("kind", string(activity.Kind)),
			zap.Int("actor_id", activity.ActorID),
			zap.Int("subject_id", activity.SubjectID),
			zap.Error(err),
		)
	}
}
