package repository_test

import (
	"context"
	"testing"
	"time"

	"event-platform/internal/model"
	"event-platform/internal/repository"
	apperrors "event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(setupTestWithTruncate(t))
	ownerID := createTestUser(t, "alice1", false)
	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Microsecond)
	desc := "monthly meetup"

	created, err := repo.Create(ctx, &model.Event{
		Title:       "Go Meetup",
		Description: &desc,
		StartTime:   start,
		Location:    "Hall A",
		OwnerID:     ownerID,
	})

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Go Meetup", created.Title)
	require.NotNil(t, created.Description)
	assert.Equal(t, desc, *created.Description)
	assert.True(t, start.Equal(created.StartTime))
	assert.Equal(t, ownerID, created.OwnerID)
}

func TestEventRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("WithOwnerAndTickets", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		ownerID := createTestUser(t, "alice1", false)
		bobID := createTestUser(t, "bob1234", false)
		eventID := createTestEvent(t, ownerID, "Go Meetup", time.Now().Add(time.Hour))
		ticketID := createTestTicket(t, eventID, bobID)

		found, err := repo.FindByID(ctx, eventID)

		require.NoError(t, err)
		require.NotNil(t, found.Owner)
		assert.Equal(t, "alice1", found.Owner.Username)
		require.Len(t, found.Tickets, 1)
		assert.Equal(t, ticketID, found.Tickets[0].ID)
		assert.Equal(t, "bob1234", found.Tickets[0].Participant.Username)
	})

	t.Run("NoTickets", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		ownerID := createTestUser(t, "alice1", false)
		eventID := createTestEvent(t, ownerID, "Go Meetup", time.Now().Add(time.Hour))

		found, err := repo.FindByID(ctx, eventID)

		require.NoError(t, err)
		assert.NotNil(t, found.Tickets)
		assert.Empty(t, found.Tickets)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))

		_, err := repo.FindByID(ctx, 99999)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewEventRepository(setupTestWithTruncate(t))
	now := time.Now().UTC().Truncate(time.Microsecond)
	alice := createTestUser(t, "alice1", false)
	bob := createTestUser(t, "bob1234", false)
	pastID := createTestEvent(t, alice, "Past", now.Add(-time.Hour))
	boundaryID := createTestEvent(t, bob, "Boundary", now)
	futureID := createTestEvent(t, alice, "Future", now.Add(time.Hour))

	ids := func(events []*model.Event) []int {
		out := make([]int, 0, len(events))
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}

	t.Run("All", func(t *testing.T) {
		events, err := repo.List(ctx, repository.EventFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int{pastID, boundaryID, futureID}, ids(events))
		assert.Equal(t, "alice1", events[0].Owner.Username)
	})

	t.Run("ActiveExcludesBoundary", func(t *testing.T) {
		events, err := repo.List(ctx, repository.EventFilter{StartsAfter: &now})
		require.NoError(t, err)
		assert.Equal(t, []int{futureID}, ids(events))
	})

	t.Run("PastIncludesBoundary", func(t *testing.T) {
		events, err := repo.List(ctx, repository.EventFilter{StartsAtOrBefore: &now})
		require.NoError(t, err)
		assert.Equal(t, []int{pastID, boundaryID}, ids(events))
	})

	t.Run("ByOwnerActive", func(t *testing.T) {
		events, err := repo.List(ctx, repository.EventFilter{OwnerID: &alice, StartsAfter: &now})
		require.NoError(t, err)
		assert.Equal(t, []int{futureID}, ids(events))
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("PartialUpdate", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		ownerID := createTestUser(t, "alice1", false)
		eventID := createTestEvent(t, ownerID, "Go Meetup", time.Now().Add(time.Hour))
		location := "Hall B"

		withTx(t, func(tx pgx.Tx) {
			updated, err := repo.Update(ctx, tx, eventID, model.UpdateEventParams{Location: &location})

			require.NoError(t, err)
			assert.Equal(t, "Hall B", updated.Location)
			assert.Equal(t, "Go Meetup", updated.Title)
		})
	})

	t.Run("ClearDescription", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		ownerID := createTestUser(t, "alice1", false)
		eventID := createTestEvent(t, ownerID, "Go Meetup", time.Now().Add(time.Hour))
		description := "bring a laptop"

		withTx(t, func(tx pgx.Tx) {
			updated, err := repo.Update(ctx, tx, eventID, model.UpdateEventParams{Description: &description})
			require.NoError(t, err)
			require.NotNil(t, updated.Description)

			cleared, err := repo.Update(ctx, tx, eventID, model.UpdateEventParams{ClearDescription: true})

			require.NoError(t, err)
			assert.Nil(t, cleared.Description)
			assert.Equal(t, "Go Meetup", cleared.Title)
		})
	})

	t.Run("NoFields", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))

		withTx(t, func(tx pgx.Tx) {
			_, err := repo.Update(ctx, tx, 1, model.UpdateEventParams{})
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		title := "New title"

		withTx(t, func(tx pgx.Tx) {
			_, err := repo.Update(ctx, tx, 99999, model.UpdateEventParams{Title: &title})
			assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		})
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("CascadesTickets", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))
		ownerID := createTestUser(t, "alice1", false)
		bobID := createTestUser(t, "bob1234", false)
		eventID := createTestEvent(t, ownerID, "Go Meetup", time.Now().Add(time.Hour))
		createTestTicket(t, eventID, bobID)

		withTx(t, func(tx pgx.Tx) {
			require.NoError(t, repo.Delete(ctx, tx, eventID))
		})

		assertRowCount(t, "events", 0)
		assertRowCount(t, "tickets", 0)
		assertRowCount(t, "users", 2)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := repository.NewEventRepository(setupTestWithTruncate(t))

		withTx(t, func(tx pgx.Tx) {
			assert.ErrorIs(t, repo.Delete(ctx, tx, 99999), apperrors.ErrEventNotFound)
		})
	})
}
