package repository

import (
	"context"
	"errors"
	"fmt"

	"event-platform/internal/model"
	apperrors "event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository interface {
	FindByID(ctx context.Context, id int) (*model.Ticket, error)
	ListByParticipant(ctx context.Context, participantID int) ([]*model.Ticket, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error)
	FindByEventAndParticipant(ctx context.Context, tx pgx.Tx, eventID, participantID int) (*model.Ticket, error)
	Delete(ctx context.Context, tx pgx.Tx, id int) error
}

type TicketRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &TicketRepositoryImpl{
		pool: pool,
	}
}

// ticketDetailQuery 票券 + 活動(含 owner) + 參加者
const ticketDetailQuery = `
	SELECT t.id, t.event_id, t.participant_id, t.registration_time,
	       e.id, e.title, e.description, e.start_time, e.location, e.owner_id, e.created_at, e.updated_at,
	       o.id, o.username,
	       p.id, p.username
	FROM tickets t
	JOIN events e ON e.id = t.event_id
	JOIN users o ON o.id = e.owner_id
	JOIN users p ON p.id = t.participant_id
`

func scanTicketDetail(row pgx.Row) (*model.Ticket, error) {
	var ticket model.Ticket
	var event model.Event
	var owner, participant model.User
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.ParticipantID,
		&ticket.RegistrationTime,
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
		&participant.ID,
		&participant.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	event.Owner = &owner
	ticket.Event = &event
	ticket.Participant = &participant
	return &ticket, nil
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, ticket *model.Ticket) (*model.Ticket, error) {
	query := `
		INSERT INTO tickets (event_id, participant_id)
		VALUES ($1, $2)
		RETURNING id, event_id, participant_id, registration_time
	`

	var created model.Ticket
	err := tx.QueryRow(ctx, query, ticket.EventID, ticket.ParticipantID).Scan(
		&created.ID,
		&created.EventID,
		&created.ParticipantID,
		&created.RegistrationTime,
	)
	if err != nil {
		switch {
		case isConstraintViolation(err, pgUniqueViolation, constraintEventParticipant):
			return nil, apperrors.ErrAlreadyRegistered
		case isConstraintViolation(err, pgForeignKeyViolation, constraintTicketEventFK):
			return nil, apperrors.ErrEventNotFound
		case isConstraintViolation(err, pgForeignKeyViolation, constraintTicketParticipant):
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return &created, nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Ticket, error) {
	return scanTicketDetail(r.pool.QueryRow(ctx, ticketDetailQuery+`WHERE t.id = $1`, id))
}

// FindByIDWithLock 鎖住票券列，並帶出活動以檢查開始時間
func (r *TicketRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.Ticket, error) {
	return scanTicketDetail(tx.QueryRow(ctx, ticketDetailQuery+`WHERE t.id = $1 FOR UPDATE OF t`, id))
}

func (r *TicketRepositoryImpl) FindByEventAndParticipant(ctx context.Context, tx pgx.Tx, eventID, participantID int) (*model.Ticket, error) {
	query := `
		SELECT id, event_id, participant_id, registration_time
		FROM tickets
		WHERE event_id = $1 AND participant_id = $2
	`

	var ticket model.Ticket
	err := tx.QueryRow(ctx, query, eventID, participantID).Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.ParticipantID,
		&ticket.RegistrationTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}

	return &ticket, nil
}

func (r *TicketRepositoryImpl) ListByParticipant(ctx context.Context, participantID int) ([]*model.Ticket, error) {
	query := ticketDetailQuery + `
		WHERE t.participant_id = $1
		ORDER BY e.start_time, t.id
	`

	rows, err := r.pool.Query(ctx, query, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*model.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicketDetail(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, tx pgx.Tx, id int) error {
	result, err := tx.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTicketNotFound
	}

	return nil
}
