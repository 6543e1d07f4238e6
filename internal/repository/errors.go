package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	constraintUsername          = "users_username_key"
	constraintEventParticipant  = "tickets_event_participant_key"
	constraintTicketEventFK     = "tickets_event_id_fkey"
	constraintTicketParticipant = "tickets_participant_id_fkey"
)

// isConstraintViolation 檢查 err 是否為指定 constraint 的 SQLSTATE 錯誤
func isConstraintViolation(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code && pgErr.ConstraintName == constraint
}
