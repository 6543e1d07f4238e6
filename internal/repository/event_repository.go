package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-platform/internal/model"
	apperrors "event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventFilter 所有欄位為 AND 條件，nil 表示不過濾
type EventFilter struct {
	OwnerID          *int
	StartsAfter      *time.Time
	StartsAtOrBefore *time.Time
}

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	FindByIDForShare(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error)
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `e.id, e.title, e.description, e.start_time, e.location, e.owner_id, e.created_at, e.updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.Location,
		&event.OwnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// scanEventWithOwner 掃描 eventColumns 後接 owner 的 id, username
func scanEventWithOwner(row pgx.Row) (*model.Event, error) {
	var event model.Event
	var owner model.User
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.Location,
		&event.OwnerID,
		&event.CreatedAt,
		&event.UpdatedAt,
		&owner.ID,
		&owner.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	event.Owner = &owner
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events AS e (title, description, start_time, location, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + eventColumns

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.Title, event.Description, event.StartTime, event.Location, event.OwnerID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context, filter EventFilter) ([]*model.Event, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("e.owner_id = $%d", argPos))
		args = append(args, *filter.OwnerID)
		argPos++
	}
	if filter.StartsAfter != nil {
		conditions = append(conditions, fmt.Sprintf("e.start_time > $%d", argPos))
		args = append(args, *filter.StartsAfter)
		argPos++
	}
	if filter.StartsAtOrBefore != nil {
		conditions = append(conditions, fmt.Sprintf("e.start_time <= $%d", argPos))
		args = append(args, *filter.StartsAtOrBefore)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s, u.id, u.username
		FROM events e
		JOIN users u ON u.id = e.owner_id
		%s
		ORDER BY e.start_time, e.id
	`, eventColumns, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		event, err := scanEventWithOwner(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// FindByID 同時載入 owner 與 tickets（含 participant）
func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `, u.id, u.username
		FROM events e
		JOIN users u ON u.id = e.owner_id
		WHERE e.id = $1
	`

	event, err := scanEventWithOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	ticketsQuery := `
		SELECT t.id, t.event_id, t.participant_id, t.registration_time, u.id, u.username
		FROM tickets t
		JOIN users u ON u.id = t.participant_id
		WHERE t.event_id = $1
		ORDER BY t.registration_time, t.id
	`

	rows, err := r.pool.Query(ctx, ticketsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	event.Tickets = make([]*model.Ticket, 0)
	for rows.Next() {
		var ticket model.Ticket
		var participant model.User
		err := rows.Scan(
			&ticket.ID,
			&ticket.EventID,
			&ticket.ParticipantID,
			&ticket.RegistrationTime,
			&participant.ID,
			&participant.Username,
		)
		if err != nil {
			return nil, err
		}
		ticket.Participant = &participant
		event.Tickets = append(event.Tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.id = $1
		FOR UPDATE
	`
	return scanEvent(tx.QueryRow(ctx, query, id))
}

// FindByIDForShare 鎖住活動不被刪除，但允許同時報名
func (r *EventRepositoryImpl) FindByIDForShare(ctx context.Context, tx pgx.Tx, id int) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e
		WHERE e.id = $1
		FOR SHARE
	`
	return scanEvent(tx.QueryRow(ctx, query, id))
}

func (r *EventRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argPos))
		args = append(args, *params.Title)
		argPos++
	}

	if params.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", argPos))
		args = append(args, *params.Description)
		argPos++
	} else if params.ClearDescription {
		sets = append(sets, "description = NULL")
	}

	if params.StartTime != nil {
		sets = append(sets, fmt.Sprintf("start_time = $%d", argPos))
		args = append(args, *params.StartTime)
		argPos++
	}

	if params.Location != nil {
		sets = append(sets, fmt.Sprintf("location = $%d", argPos))
		args = append(args, *params.Location)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events AS e
		SET %s
		WHERE e.id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, eventColumns)

	updated, err := scanEvent(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return updated, nil
}

// Delete 刪除活動，tickets 由 ON DELETE CASCADE 一併刪除
func (r *EventRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	return nil
}
