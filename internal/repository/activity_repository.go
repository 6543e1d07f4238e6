package repository

import (
	"context"
	"fmt"

	"event-platform/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository interface {
	// Create 依 request_id 冪等寫入，重複的訊息回傳 false
	Create(ctx context.Context, activity *model.Activity) (bool, error)
	List(ctx context.Context, limit int) ([]*model.Activity, error)
}

type ActivityRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &ActivityRepositoryImpl{
		pool: pool,
	}
}

func (r *ActivityRepositoryImpl) Create(ctx context.Context, activity *model.Activity) (bool, error) {
	query := `
		INSERT INTO activities (request_id, kind, actor_id, subject_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (request_id) DO NOTHING
	`

	result, err := r.pool.Exec(ctx, query,
		activity.RequestID, activity.Kind, activity.ActorID, activity.SubjectID, activity.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create activity: %w", err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *ActivityRepositoryImpl) List(ctx context.Context, limit int) ([]*model.Activity, error) {
	query := `
		SELECT id, request_id, kind, actor_id, subject_id, occurred_at
		FROM activities
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		err := rows.Scan(
			&a.ID,
			&a.RequestID,
			&a.Kind,
			&a.ActorID,
			&a.SubjectID,
			&a.OccurredAt,
		)
		if err != nil {
			return nil, err
		}
		activities = append(activities, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}
