package service

import (
	"context"

	"event-platform/internal/model"
	"event-platform/internal/repository"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

type ActivityService interface {
	List(ctx context.Context, callerID, limit int) ([]*model.Activity, error)
}

type ActivityServiceImpl struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
}

func NewActivityService(activities repository.ActivityRepository, users repository.UserRepository) ActivityService {
	return &ActivityServiceImpl{
		activities: activities,
		users:      users,
	}
}

// List limit 超出範圍時夾到 [1, MaxActivityLimit]，0 用預設值
func (s *ActivityServiceImpl) List(ctx context.Context, callerID, limit int) ([]*model.Activity, error) {
	if _, err := requireAdmin(ctx, s.users, callerID); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return s.activities.List(ctx, limit)
}
