package model

import "time"

type User struct {
	ID             int       `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	HashedPassword string    `json:"-" db:"hashed_password"`
	Banned         bool      `json:"banned" db:"banned"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	CreatedEvents []*Event  `json:"-" db:"-"`
	Tickets       []*Ticket `json:"-" db:"-"`
}

type UpdateUserParams struct {
	Username       *string
	HashedPassword *string
	Banned         *bool
	IsAdmin        *bool
}
