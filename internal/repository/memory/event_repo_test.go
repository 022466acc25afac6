package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventportal/internal/domain"
)

func TestEventRepo_ListPublished(t *testing.T) {
	repo := NewEventRepo()

	events, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 3)

	// Soonest first; drafts, ended, and cancelled never appear.
	assert.Equal(t, "4", events[0].ID)
	assert.Equal(t, "6", events[1].ID)
	assert.Equal(t, "1", events[2].ID)
	for _, e := range events {
		assert.Equal(t, domain.StatusPublished, e.Status)
	}
}

func TestEventRepo_GetByID(t *testing.T) {
	repo := NewEventRepo()

	event, err := repo.GetByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Halal Awareness Training", event.Title)
	assert.Len(t, event.Schedule, 4)
	assert.Len(t, event.Facilitators, 3)

	_, err = repo.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Reads hand out copies; mutating a result must not leak back into the repo.
func TestEventRepo_CloneOnRead(t *testing.T) {
	repo := NewEventRepo()

	event, err := repo.GetByID(context.Background(), "4")
	require.NoError(t, err)
	event.Title = "Hijacked"
	event.Schedule[0].Title = "Hijacked Session"

	fresh, err := repo.GetByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "Halal Awareness Training", fresh.Title)
	assert.Equal(t, "Opening Keynote", fresh.Schedule[0].Title)
}

func TestEventRepo_Create(t *testing.T) {
	repo := NewEventRepo()

	event := &domain.Event{Title: "New Event", Status: domain.StatusPublished}
	require.NoError(t, repo.Create(context.Background(), event))
	require.NotEmpty(t, event.ID)

	stored, err := repo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Event", stored.Title)
}

func TestEventRepo_AddRegistrations(t *testing.T) {
	repo := NewEventRepo()

	require.NoError(t, repo.AddRegistrations(context.Background(), "4", 5, 250))
	event, err := repo.GetByID(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, 155, event.Registrations)
	assert.Equal(t, 10250.0, event.Revenue)

	assert.ErrorIs(t, repo.AddRegistrations(context.Background(), "999", 1, 10), domain.ErrNotFound)
}
