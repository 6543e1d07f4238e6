package model

import "time"

// 同一個實體在不同端點有不同的輸出形狀，每個呼叫點各用一個 projection

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

type AdminUserView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	Banned   bool   `json:"banned"`
}

type UserProfile struct {
	ID            int            `json:"id"`
	Username      string         `json:"username"`
	CreatedEvents []EventSummary `json:"created_events"`
	Tickets       []TicketInUser `json:"tickets"`
}

type EventSummary struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
}

type EventListItem struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	StartTime   time.Time   `json:"start_time"`
	Location    string      `json:"location"`
	Owner       UserSummary `json:"owner"`
}

type EventDetail struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	StartTime   time.Time       `json:"start_time"`
	Location    string          `json:"location"`
	Owner       UserSummary     `json:"owner"`
	Tickets     []TicketInEvent `json:"tickets"`
}

type TicketInEvent struct {
	ID               int         `json:"id"`
	RegistrationTime time.Time   `json:"registration_time"`
	Participant      UserSummary `json:"participant"`
}

type TicketInUser struct {
	ID               int          `json:"id"`
	RegistrationTime time.Time    `json:"registration_time"`
	Event            EventSummary `json:"event"`
}

type TicketDetail struct {
	ID               int          `json:"id"`
	RegistrationTime time.Time    `json:"registration_time"`
	Event            EventSummary `json:"event"`
	Participant      UserSummary  `json:"participant"`
}

func NewUserSummary(u *User) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{ID: u.ID, Username: u.Username}
}

func NewAdminUserView(u *User) AdminUserView {
	return AdminUserView{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin, Banned: u.Banned}
}

func NewUserProfile(u *User) UserProfile {
	profile := UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		CreatedEvents: make([]EventSummary, 0, len(u.CreatedEvents)),
		Tickets:       make([]TicketInUser, 0, len(u.Tickets)),
	}
	for _, e := range u.CreatedEvents {
		profile.CreatedEvents = append(profile.CreatedEvents, NewEventSummary(e))
	}
	for _, t := range u.Tickets {
		profile.Tickets = append(profile.Tickets, TicketInUser{
			ID:               t.ID,
			RegistrationTime: t.RegistrationTime,
			Event:            NewEventSummary(t.Event),
		})
	}
	return profile
}

func NewEventSummary(e *Event) EventSummary {
	if e == nil {
		return EventSummary{}
	}
	return EventSummary{ID: e.ID, Title: e.Title, StartTime: e.StartTime}
}

func NewEventListItem(e *Event) EventListItem {
	return EventListItem{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		Location:    e.Location,
		Owner:       NewUserSummary(e.Owner),
	}
}

func NewEventDetail(e *Event) EventDetail {
	detail := EventDetail{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		Location:    e.Location,
		Owner:       NewUserSummary(e.Owner),
		Tickets:     make([]TicketInEvent, 0, len(e.Tickets)),
	}
	for _, t := range e.Tickets {
		detail.Tickets = append(detail.Tickets, TicketInEvent{
			ID:               t.ID,
			RegistrationTime: t.RegistrationTime,
			Participant:      NewUserSummary(t.Participant),
		})
	}
	return detail
}

func NewTicketDetail(t *Ticket) TicketDetail {
	return TicketDetail{
		ID:               t.ID,
		RegistrationTime: t.RegistrationTime,
		Event:            NewEventSummary(t.Event),
		Participant:      NewUserSummary(t.Participant),
	}
}

func NewEventListItems(events []*Event) []EventListItem {
	items := make([]EventListItem, 0, len(events))
	for _, e := range events {
		items = append(items, NewEventListItem(e))
	}
	return items
}

func NewEventSummaries(events []*Event) []EventSummary {
	items := make([]EventSummary, 0, len(events))
	for _, e := range events {
		items = append(items, NewEventSummary(e))
	}
	return items
}

func NewTicketDetails(tickets []*Ticket) []TicketDetail {
	items := make([]TicketDetail, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, NewTicketDetail(t))
	}
	return items
}
