package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idolyst/mentorship-api/internal/httperr"
	"github.com/idolyst/mentorship-api/internal/models"
)

func TestRescheduleSwapsSlots(t *testing.T) {
	repo := seedRepo(t)
	book := NewBookSession(repo, &fakeGateway{}, testNotifier())
	uc := NewRescheduleSession(repo, testNotifier())
	ctx := context.Background()

	result, err := book.Execute(ctx, menteeID, BookSessionInput{
		MentorID: mentorID, SlotID: 10, SessionTypeID: 100, Title: "Intro call",
	})
	require.NoError(t, err)
	sessionID := result.Session.ID

	s, err := uc.Execute(ctx, mentorID, sessionID, 11)
	require.NoError(t, err)

	assert.Equal(t, "rescheduled", s.Status)
	assert.Equal(t, uint(11), s.SlotID)
	assert.Equal(t, repo.slot(11).StartTime, s.StartTime)
	assert.Equal(t, repo.slot(11).EndTime, s.EndTime)

	assert.False(t, repo.slot(10).Booked, "old slot reopens")
	assert.True(t, repo.slot(11).Booked, "new slot is taken")
}

func TestRescheduleToBookedSlotFails(t *testing.T) {
	repo := seedRepo(t)
	book := NewBookSession(repo, &fakeGateway{}, testNotifier())
	uc := NewRescheduleSession(repo, testNotifier())
	ctx := context.Background()

	first, err := book.Execute(ctx, menteeID, BookSessionInput{
		MentorID: mentorID, SlotID: 10, SessionTypeID: 100, Title: "Intro call",
	})
	require.NoError(t, err)

	_, err = book.Execute(ctx, 3, BookSessionInput{
		MentorID: mentorID, SlotID: 11, SessionTypeID: 100, Title: "Other mentee",
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, mentorID, first.Session.ID, 11)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"), "got %v", err)

	// The losing reschedule leaves the original booking untouched.
	stored := repo.session(first.Session.ID)
	assert.Equal(t, uint(10), stored.SlotID)
	assert.Equal(t, "scheduled", stored.Status)
	assert.True(t, repo.slot(10).Booked)
}

func TestRescheduleGuards(t *testing.T) {
	repo := seedRepo(t)
	uc := NewRescheduleSession(repo, testNotifier())
	ctx := context.Background()

	doneID := seedSession(repo, models.MentorSession{
		MentorID:  mentorID,
		MenteeID:  menteeID,
		SlotID:    10,
		StartTime: time.Now().Add(-2 * time.Hour).UTC(),
		Status:    "completed",
	})

	_, err := uc.Execute(ctx, mentorID, doneID, 11)
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	_, err = uc.Execute(ctx, mentorID, 999, 11)
	assert.True(t, httperr.IsBusiness(err, "session_not_found"))

	openID := seedSession(repo, models.MentorSession{
		MentorID:  mentorID,
		MenteeID:  menteeID,
		SlotID:    10,
		StartTime: time.Now().Add(2 * time.Hour).UTC(),
		Status:    "scheduled",
	})

	_, err = uc.Execute(ctx, menteeID, openID, 11)
	assert.True(t, httperr.IsBusiness(err, "unauthorized_actor"))

	_, err = uc.Execute(ctx, mentorID, openID, 999)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}
