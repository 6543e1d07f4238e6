package handler_test

import (
	"net/http"
	"testing"
	"time"

	"event-platform/internal/model"
	apperrors "event-platform/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCreateEvent(t *testing.T) {
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("Create", mock.Anything, 1, mock.MatchedBy(func(p model.CreateEventParams) bool {
			return p.Title == "Meetup" && p.Location == "Hall A" && p.StartTime.Equal(start) && p.Description == nil
		})).Return(&model.Event{
			ID: 10, Title: "Meetup", StartTime: start, Location: "Hall A",
			OwnerID: 1, Owner: &model.User{ID: 1, Username: "alice1"},
		}, nil).Once()

		w := doRequest(t, router, http.MethodPost, "/events", gin.H{
			"title":      "Meetup",
			"start_time": "2026-06-01T18:00:00Z",
			"location":   "Hall A",
		}, 1)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"id": 10,
			"title": "Meetup",
			"description": null,
			"start_time": "2026-06-01T18:00:00Z",
			"location": "Hall A",
			"owner": {"id": 1, "username": "alice1"},
			"tickets": []
		}`, w.Body.String())
	})

	t.Run("Failed - ShortTitle", func(t *testing.T) {
		router, m := setupTestRouter(t)

		w := doRequest(t, router, http.MethodPost, "/events", gin.H{
			"title":      "abc",
			"start_time": "2026-06-01T18:00:00Z",
			"location":   "Hall A",
		}, 1)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.events.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - MissingStartTime", func(t *testing.T) {
		router, m := setupTestRouter(t)

		w := doRequest(t, router, http.MethodPost, "/events", gin.H{"title": "Meetup", "location": "Hall A"}, 1)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.events.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - Unauthenticated", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(t, router, http.MethodPost, "/events", gin.H{"title": "Meetup"}, 0)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUpdateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("Update", mock.Anything, 10, 1, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.Location != nil && *p.Location == "Hall B" && p.Title == nil
		})).Return(&model.Event{ID: 10, Title: "Meetup", Location: "Hall B", Owner: &model.User{ID: 1}}, nil).Once()

		w := doRequest(t, router, http.MethodPatch, "/events/10", gin.H{"location": "Hall B"}, 1)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"location":"Hall B"`)
	})

	t.Run("NullDescriptionClears", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("Update", mock.Anything, 10, 1, model.UpdateEventParams{ClearDescription: true}).
			Return(&model.Event{ID: 10, Title: "Meetup", Owner: &model.User{ID: 1}}, nil).Once()

		w := doRequest(t, router, http.MethodPatch, "/events/10", `{"description": null}`, 1)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"description":null`)
	})

	t.Run("DescriptionValue", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("Update", mock.Anything, 10, 1, mock.MatchedBy(func(p model.UpdateEventParams) bool {
			return p.Description != nil && *p.Description == "bring a laptop" && !p.ClearDescription
		})).Return(&model.Event{ID: 10, Owner: &model.User{ID: 1}}, nil).Once()

		w := doRequest(t, router, http.MethodPatch, "/events/10", gin.H{"description": "bring a laptop"}, 1)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - EmptyBody", func(t *testing.T) {
		router, m := setupTestRouter(t)

		w := doRequest(t, router, http.MethodPatch, "/events/10", gin.H{}, 1)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		_, kind := decodeError(t, w)
		assert.Equal(t, "validation", kind)
		m.events.AssertNotCalled(t, "Update")
	})

	t.Run("Failed - NotOwner", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("Update", mock.Anything, 10, 2, mock.Anything).Return(nil, apperrors.ErrNotEventOwner).Once()

		w := doRequest(t, router, http.MethodPatch, "/events/10", gin.H{"title": "Hijacked"}, 2)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Failed - BadID", func(t *testing.T) {
		router, m := setupTestRouter(t)

		w := doRequest(t, router, http.MethodPatch, "/events/abc", gin.H{"title": "Meetup"}, 1)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		m.events.AssertNotCalled(t, "Update")
	})
}

func TestGetEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("GetByID", mock.Anything, 10).Return(&model.Event{
			ID: 10, Title: "Meetup", Owner: &model.User{ID: 1, Username: "alice1"},
			Tickets: []*model.Ticket{{ID: 100, Participant: &model.User{ID: 2, Username: "bob1234"}}},
		}, nil).Once()

		w := doRequest(t, router, http.MethodGet, "/events/10", nil, 2)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"participant":{"id":2,"username":"bob1234"}`)
	})

	t.Run("Failed - NotFound", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("GetByID", mock.Anything, 99).Return(nil, apperrors.ErrEventNotFound).Once()

		w := doRequest(t, router, http.MethodGet, "/events/99", nil, 1)

		assert.Equal(t, http.StatusNotFound, w.Code)
		msg, _ := decodeError(t, w)
		assert.Equal(t, "event not found", msg)
	})
}

func TestListEvents(t *testing.T) {
	t.Run("Active", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("ListActive", mock.Anything).Return([]*model.Event{
			{ID: 10, Title: "Meetup", Owner: &model.User{ID: 1, Username: "alice1"}},
		}, nil).Once()

		w := doRequest(t, router, http.MethodGet, "/events/active", nil, 1)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "tickets")
	})

	t.Run("History - InternalError", func(t *testing.T) {
		router, m := setupTestRouter(t)
		m.events.On("ListPast", mock.Anything).Return(nil, assert.AnError).Once()

		w := doRequest(t, router, http.MethodGet, "/events/history", nil, 1)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		msg, kind := decodeError(t, w)
		assert.Equal(t, "internal server error", msg)
		assert.Equal(t, "internal", kind)
	})
}
