package model

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityTicketRegistered ActivityKind = "ticket_registered"
	ActivityTicketCancelled  ActivityKind = "ticket_cancelled"
	ActivityEventDeleted     ActivityKind = "event_deleted"
	ActivityUserBanned       ActivityKind = "user_banned"
)

// Activity 稽核紀錄，RequestID 讓重送的訊息只寫入一次
type Activity struct {
	ID         int64        `json:"id" db:"id"`
	RequestID  uuid.UUID    `json:"request_id" db:"request_id"`
	Kind       ActivityKind `json:"kind" db:"kind"`
	ActorID    int          `json:"actor_id" db:"actor_id"`
	SubjectID  int          `json:"subject_id" db:"subject_id"`
	OccurredAt time.Time    `json:"occurred_at" db:"occurred_at"`
}

func NewActivity(kind ActivityKind, actorID, subjectID int, at time.Time) *Activity {
	return &Activity{
		RequestID:  uuid.New(),
		Kind:       kind,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OccurredAt: at.UTC(),
	}
}
