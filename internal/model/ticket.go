package model

import "time"

// Ticket 使用者與活動的參加紀錄，(event, participant) 唯一
type Ticket struct {
	ID               int       `json:"id" db:"id"`
	EventID          int       `json:"event_id" db:"event_id"`
	ParticipantID    int       `json:"participant_id" db:"participant_id"`
	RegistrationTime time.Time `json:"registration_time" db:"registration_time"`

	Event       *Event `json:"event,omitempty" db:"-"`
	Participant *User  `json:"participant,omitempty" db:"-"`
}
