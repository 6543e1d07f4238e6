package model

import "time"

type Event struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	Location    string    `json:"location" db:"location"`
	OwnerID     int       `json:"owner_id" db:"owner_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Owner   *User     `json:"owner,omitempty" db:"-"`
	Tickets []*Ticket `json:"tickets,omitempty" db:"-"`
}

// IsActive 活動開始時間嚴格晚於 now；剛好等於 now 視為已開始
func (e *Event) IsActive(now time.Time) bool {
	return e.StartTime.After(now)
}

type CreateEventParams struct {
	Title       string
	Description *string
	StartTime   time.Time
	Location    string
}

// UpdateEventParams nil 欄位代表不更新；ClearDescription 把 description 設為 NULL
type UpdateEventParams struct {
	Title            *string
	Description      *string
	ClearDescription bool
	StartTime        *time.Time
	Location         *string
}

func (p UpdateEventParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription && p.StartTime == nil && p.Location == nil
}
